package state

import "path/filepath"

// ControlDirFor returns the control directory that owns a repository root.
// When root is itself a chief worktree (<repo>/.chief/worktrees/<name>), the
// main repository's control directory is returned, so commands run inside a
// worktree see the same registry and pointer as commands run at the top.
func ControlDirFor(root string) string {
	root = filepath.Clean(root)
	parent := filepath.Dir(root)
	if filepath.Base(parent) == WorktreesDirName {
		control := filepath.Dir(parent)
		if filepath.Base(control) == ControlDirName {
			return control
		}
	}
	return filepath.Join(root, ControlDirName)
}

// Paths lists the well-known locations inside a control directory.
type Paths struct {
	ControlDir string
}

// NewPaths returns the paths for the repository at root.
func NewPaths(root string) Paths {
	return Paths{ControlDir: ControlDirFor(root)}
}

// RepoRoot returns the main repository root.
func (p Paths) RepoRoot() string { return filepath.Dir(p.ControlDir) }

// Plans returns <control>/plans.
func (p Paths) Plans() string { return filepath.Join(p.ControlDir, PlansDirName) }

// Tasks returns <control>/tasks.
func (p Paths) Tasks() string { return filepath.Join(p.ControlDir, TasksDirName) }

// Worktrees returns <control>/worktrees.
func (p Paths) Worktrees() string { return filepath.Join(p.ControlDir, WorktreesDirName) }

// Config returns <control>/config.json.
func (p Paths) Config() string { return filepath.Join(p.ControlDir, ConfigFileName) }

// Verification returns <control>/verification.txt.
func (p Paths) Verification() string { return filepath.Join(p.ControlDir, VerificationFileName) }
