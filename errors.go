package barecat

import (
	"errors"
	"fmt"

	"github.com/isarandi/barecat/index"
)

var (
	// ErrNotFound is returned when a path has no entry in the archive index.
	ErrNotFound = errors.New("barecat: file not found")

	// ErrClosed is returned by operations on a closed archive.
	ErrClosed = errors.New("barecat: archive is closed")

	// ErrNoChecksum is returned by Verify when the index has no stored
	// checksum for the file.
	ErrNoChecksum = errors.New("barecat: no checksum stored for file")
)

// ChecksumError indicates that a file's content no longer matches the CRC32C
// recorded in the index.
type ChecksumError struct {
	Path     string
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("barecat: checksum mismatch for %q: expected 0x%08x, got 0x%08x",
		e.Path, e.Expected, e.Actual)
}

// translateError funnels subpackage errors to this package's sentinels so
// callers only need errors.Is against the public surface.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, index.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
