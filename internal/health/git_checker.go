package health

import (
	"context"
	"strconv"
	"strings"
)

// VersionReporter runs `git --version`.
type VersionReporter interface {
	Version(ctx context.Context) (string, error)
}

// GitChecker checks if Git is installed and accessible.
type GitChecker struct {
	git VersionReporter
}

// NewGitChecker creates a new Git health checker.
func NewGitChecker(git VersionReporter) *GitChecker {
	return &GitChecker{git: git}
}

// Name returns the name of this health check.
func (c *GitChecker) Name() string {
	return "git-binary"
}

// Check verifies Git is installed. Worktree support needs 2.5 or later, so
// older versions are reported as degraded.
func (c *GitChecker) Check(ctx context.Context) *Result {
	output, err := c.git.Version(ctx)
	if err != nil {
		return Unhealthy("git is not available").
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Install Git from https://git-scm.com/downloads")
	}

	version := parseGitVersion(output)
	if version == "" {
		return Degraded("git installed but version cannot be parsed").
			WithDetail("version_output", output)
	}

	major, minor := splitVersion(version)
	if major < 2 || (major == 2 && minor < 5) {
		return Degraded("git version is older than 2.5").
			WithDetail("version", version).
			WithDetail("suggestion", "Upgrade Git; worktrees need 2.5 or later")
	}

	return Healthy("git is installed").
		WithDetail("version", version)
}

// parseGitVersion extracts version number from "git version X.Y.Z" format.
func parseGitVersion(versionOutput string) string {
	// Example: "git version 2.42.0" or "git version 2.42.0.windows.1"
	parts := strings.Fields(versionOutput)
	if len(parts) < 3 {
		return ""
	}

	version := parts[2]
	if len(version) == 0 || version[0] < '0' || version[0] > '9' {
		return ""
	}

	for _, suffix := range []string{".windows", ".darwin", ".linux"} {
		if idx := strings.Index(version, suffix); idx > 0 {
			version = version[:idx]
		}
	}

	return version
}

// splitVersion returns the numeric major and minor components; missing or
// non-numeric parts read as zero.
func splitVersion(version string) (int, int) {
	parts := strings.Split(version, ".")
	major, _ := strconv.Atoi(parts[0])
	minor := 0
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}
