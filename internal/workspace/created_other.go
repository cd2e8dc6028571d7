//go:build !darwin

package workspace

import (
	"os"
	"time"
)

// createdAt falls back to the modification time where the platform does not
// expose a birth time through os.FileInfo.
func createdAt(info os.FileInfo) time.Time {
	return info.ModTime()
}
