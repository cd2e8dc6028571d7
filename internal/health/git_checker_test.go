package health

import (
	"context"
	"errors"
	"testing"
)

type fakeVersion struct {
	out string
	err error
}

func (f fakeVersion) Version(context.Context) (string, error) {
	return f.out, f.err
}

func TestGitCheckerCheck(t *testing.T) {
	tests := []struct {
		name   string
		git    fakeVersion
		want   Status
		detail string
	}{
		{"modern git", fakeVersion{out: "git version 2.42.0"}, StatusHealthy, "2.42.0"},
		{"windows build", fakeVersion{out: "git version 2.42.0.windows.1"}, StatusHealthy, "2.42.0"},
		{"too old for worktrees", fakeVersion{out: "git version 2.4.1"}, StatusDegraded, "2.4.1"},
		{"ancient", fakeVersion{out: "git version 1.9.5"}, StatusDegraded, "1.9.5"},
		{"unparseable", fakeVersion{out: "something else"}, StatusDegraded, ""},
		{"missing binary", fakeVersion{err: errors.New(`exec: "git": executable file not found`)}, StatusUnhealthy, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewGitChecker(tt.git)
			if checker.Name() != "git-binary" {
				t.Errorf("Name() = %q", checker.Name())
			}

			result := checker.Check(context.Background())
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", result.Status, tt.want, result.Message)
			}
			if tt.detail != "" && result.Details["version"] != tt.detail {
				t.Errorf("Details[version] = %v, want %v", result.Details["version"], tt.detail)
			}
		})
	}
}

func TestParseGitVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"git version 2.42.0", "2.42.0"},
		{"git version 2.39.3 (Apple Git-145)", "2.39.3"},
		{"git version 2.42.0.windows.1", "2.42.0"},
		{"git version", ""},
		{"git version abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseGitVersion(tt.input); got != tt.want {
			t.Errorf("parseGitVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		input        string
		major, minor int
	}{
		{"2.42.0", 2, 42},
		{"2", 2, 0},
		{"x.y", 0, 0},
	}

	for _, tt := range tests {
		major, minor := splitVersion(tt.input)
		if major != tt.major || minor != tt.minor {
			t.Errorf("splitVersion(%q) = %d.%d, want %d.%d", tt.input, major, minor, tt.major, tt.minor)
		}
	}
}
