package ux

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	chieferrors "github.com/felixgeelhaar/chief/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		suggestion string
		wantNil    bool
	}{
		{
			name:       "nil error returns nil",
			err:        nil,
			suggestion: "some suggestion",
			wantNil:    true,
		},
		{
			name:       "error with suggestion",
			err:        errors.New("something failed"),
			suggestion: "try this fix",
		},
		{
			name:       "error without suggestion",
			err:        errors.New("something failed"),
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewErrorWithSuggestion(tt.err, tt.suggestion)
			if tt.wantNil {
				if result != nil {
					t.Errorf("NewErrorWithSuggestion() = %v, want nil", result)
				}
				return
			}

			if result == nil {
				t.Fatal("NewErrorWithSuggestion() returned nil, want error")
			}

			errMsg := result.Error()
			if !strings.Contains(errMsg, tt.err.Error()) {
				t.Errorf("Error message %q does not contain original error %q", errMsg, tt.err.Error())
			}
			if tt.suggestion != "" && !strings.Contains(errMsg, tt.suggestion) {
				t.Errorf("Error message %q does not contain suggestion %q", errMsg, tt.suggestion)
			}
			if !errors.Is(result, tt.err) {
				t.Error("wrapped error should unwrap to the original")
			}
		})
	}
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "missing git binary",
			err:            errors.New(`git rev-parse: exec: "git": executable file not found in $PATH`),
			wantSuggestion: "Install git",
		},
		{
			name:           "branch checked out elsewhere",
			err:            errors.New("fatal: 'chief/login' is already checked out at '/repo'"),
			wantSuggestion: "branch is in use",
		},
		{
			name:           "permission denied",
			err:            errors.New("open .chief/config.json: permission denied"),
			wantSuggestion: "permissions",
		},
		{
			name:           "bad format flag",
			err:            errors.New("unknown format: xml (supported: text, json, yaml)"),
			wantSuggestion: "--format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enhanced := EnhanceError(tt.err)
			var ws *ErrorWithSuggestion
			if !errors.As(enhanced, &ws) {
				t.Fatalf("expected suggestion for %q", tt.err)
			}
			if !strings.Contains(ws.Suggestion, tt.wantSuggestion) {
				t.Errorf("suggestion %q does not contain %q", ws.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestEnhanceErrorPassThrough(t *testing.T) {
	if EnhanceError(nil) != nil {
		t.Error("nil should stay nil")
	}

	coded := chieferrors.New(chieferrors.ErrCodeGitCommandFailed, "failed: permission denied")
	if EnhanceError(coded) != error(coded) {
		t.Error("coded errors must not be wrapped")
	}

	plain := errors.New("something odd")
	if EnhanceError(plain) != plain {
		t.Error("unrecognized errors are returned unchanged")
	}
}

func TestRenderError(t *testing.T) {
	styles := NewStyles(true)

	out := RenderError(fmt.Errorf("use: %w", chieferrors.NewWorkspaceNotFoundError("alpha")), styles)
	for _, want := range []string{"Error:", "[WORKSPACE-001]", "worktree not found: alpha", "chief worktrees"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderError output %q missing %q", out, want)
		}
	}

	out = RenderError(NewErrorWithSuggestion(errors.New("boom"), "try again"), styles)
	if !strings.Contains(out, "boom") || !strings.Contains(out, "try again") {
		t.Errorf("unexpected output %q", out)
	}

	nested := chieferrors.Wrap(chieferrors.ErrCodeGitCommandFailed, "failed to create worktree",
		chieferrors.NewFileUnmarshalError(chieferrors.ErrCodeTasksParse, "tasks.json", errors.New("bad")))
	out = RenderError(nested, styles)
	lines := strings.Split(out, "\n")
	if lines[0] != "Error: [GIT-002] failed to create worktree: [TASKS-001] failed to parse tasks.json: bad" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if len(lines) != 2 || !strings.Contains(lines[1], "→ Check the file syntax") {
		t.Errorf("expected the cause's suggestion on its own line, got %q", out)
	}

	if RenderError(nil, styles) != "" {
		t.Error("nil renders empty")
	}
}
