// Package fs reports free disk space for the filesystem holding the board.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupportedOS is returned when the operating system is not supported.
var ErrUnsupportedOS = errors.New("unsupported operating system for disk space check")

// ErrLowSpace is returned by EnsureFree when the filesystem is below the requested threshold.
var ErrLowSpace = errors.New("free disk space below threshold")

// Available returns the bytes available to the current user on the
// filesystem holding path. A path that does not exist yet is resolved to its
// nearest existing parent directory.
func Available(path string) (uint64, error) {
	return available(existingAncestor(path))
}

// EnsureFree checks that at least threshold bytes are available on the filesystem
// holding path. Systems without a disk space check always pass.
func EnsureFree(path string, threshold uint64) error {
	if threshold == 0 {
		return nil
	}
	avail, err := Available(path)
	if errors.Is(err, ErrUnsupportedOS) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not check free space on %s: %w", path, err)
	}
	if avail < threshold {
		return fmt.Errorf("%w: %d bytes available, %d required", ErrLowSpace, avail, threshold)
	}
	return nil
}

func existingAncestor(path string) string {
	p := filepath.Clean(path)
	for {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}
