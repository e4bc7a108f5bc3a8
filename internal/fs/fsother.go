//go:build !linux && !darwin && !freebsd && !openbsd && !netbsd && !windows

package fs

func available(string) (uint64, error) {
	return 0, ErrUnsupportedOS
}
