package artifact

import (
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultSlug is used when the input has no usable text.
	DefaultSlug = "feature"

	// MaxSlugLength caps slugs so filenames stay readable.
	MaxSlugLength = 48

	dateLayout = "2006-01-02"
)

var (
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	lineBreak  = regexp.MustCompile(`\r?\n`)
)

// FormatDate returns the UTC calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string produced by FormatDate.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Slugify turns free text into a filename-safe token built from its first
// non-blank line.
func Slugify(text string) string {
	firstLine := DefaultSlug
	for _, line := range lineBreak.Split(text, -1) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}

	slug := nonSlugRun.ReplaceAllString(strings.ToLower(firstLine), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		// truncation can expose a hyphen at the cut
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}

	if slug == "" {
		return DefaultSlug
	}
	return slug
}
