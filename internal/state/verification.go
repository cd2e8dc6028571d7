package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/fsutil"
)

// VerificationFileName stores how to validate completed work.
const VerificationFileName = "verification.txt"

// GetVerificationSteps returns the trimmed verification text. A missing or
// whitespace-only file is reported as absent.
func GetVerificationSteps(controlDir string) (string, bool, error) {
	path := filepath.Join(controlDir, VerificationFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	steps := strings.TrimSpace(string(data))
	if steps == "" {
		return "", false, nil
	}
	return steps, true, nil
}

// SetVerificationSteps writes steps verbatim.
func SetVerificationSteps(controlDir, steps string) error {
	path := filepath.Join(controlDir, VerificationFileName)
	if err := fsutil.WriteFileAtomic(path, []byte(steps), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
