package artifact

import (
	"fmt"
	"regexp"
)

// Kind identifies an artifact family by its filename suffix.
type Kind int

const (
	// KindPlan is a free-text plan: YYYY-MM-DD-<slug>.md
	KindPlan Kind = iota
	// KindTaskSet is a serialized task list: YYYY-MM-DD-<slug>.tasks.json
	KindTaskSet
)

var (
	planPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-.+\.md$`)
	taskSetPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-.+\.tasks\.json$`)
	datePrefix     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-(.+)$`)
)

// Suffix returns the full filename suffix for the kind.
func (k Kind) Suffix() string {
	if k == KindTaskSet {
		return ".tasks.json"
	}
	return ".md"
}

// Dir returns the control-directory subdirectory holding artifacts of the kind.
func (k Kind) Dir() string {
	if k == KindTaskSet {
		return "tasks"
	}
	return "plans"
}

// String returns a human-readable name used in messages.
func (k Kind) String() string {
	if k == KindTaskSet {
		return "task set"
	}
	return "plan"
}

// ListCommand is the command users run to see artifacts of this kind.
func (k Kind) ListCommand() string {
	if k == KindTaskSet {
		return "chief tasks"
	}
	return "chief plans"
}

// Match reports whether name is a well-formed artifact filename of this kind.
// The pattern is anchored at both ends.
func (k Kind) Match(name string) bool {
	if k == KindTaskSet {
		return taskSetPattern.MatchString(name)
	}
	return planPattern.MatchString(name)
}

// FileName builds the artifact filename for a date and slug.
func (k Kind) FileName(date, slug string) string {
	return fmt.Sprintf("%s-%s%s", date, slug, k.Suffix())
}
