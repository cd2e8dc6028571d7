package artifact

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// List returns the artifact filenames of the given kind in dir, newest first.
// Entries that are not regular files or do not match the kind's pattern are
// skipped. A missing directory is not an error.
func List(kind Kind, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s directory: %w", kind, err)
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !kind.Match(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}

	SortNewestFirst(files)
	return files, nil
}

// SortNewestFirst sorts filenames descending. The date prefix makes this
// newest first; equal dates fall back to string order.
func SortNewestFirst(files []string) {
	slices.Sort(files)
	slices.Reverse(files)
}

// Resolve maps a user-supplied fragment to one of files.
//
// The first matching rule wins:
//  1. the fragment already carries the kind's suffix and is present verbatim
//  2. fragment + suffix is present verbatim
//  3. some file ends with "-<fragment><suffix>"; the greatest filename wins
//
// An empty or whitespace-only fragment never resolves.
func Resolve(kind Kind, files []string, fragment string) (string, bool) {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return "", false
	}

	suffix := kind.Suffix()
	if strings.HasSuffix(trimmed, suffix) {
		if slices.Contains(files, trimmed) {
			return trimmed, true
		}
		return "", false
	}

	if direct := trimmed + suffix; slices.Contains(files, direct) {
		return direct, true
	}

	tail := "-" + trimmed + suffix
	best := ""
	for _, file := range files {
		if strings.HasSuffix(file, tail) && file > best {
			best = file
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// BaseName strips the kind's suffix from filename.
func BaseName(filename string, kind Kind) string {
	return strings.TrimSuffix(filename, kind.Suffix())
}

// FeatureName returns the part of a base name after its date prefix, or the
// base name unchanged when there is no date prefix.
func FeatureName(baseName string) string {
	if m := datePrefix.FindStringSubmatch(baseName); m != nil {
		return m[1]
	}
	return baseName
}
