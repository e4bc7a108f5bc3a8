package dirstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/perpetuallyhorni/diary/pkg/storage"
)

// validKey restricts slot keys to names that are safe as file names.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store keeps every slot in its own <key>.json file under a directory.
// Writes go to a temp file that is synced and renamed over the slot file.
type Store struct {
	dir string
}

var _ storage.Storer = (*Store)(nil)
var _ storage.Locator = (*Store)(nil)

// New creates the directory if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("dirstore: empty directory")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) slotPath(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("dirstore: invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Location returns the slot directory.
func (s *Store) Location() string {
	return s.dir
}

// Get reads a slot file.
func (s *Store) Get(key string) ([]byte, bool, error) {
	path, err := s.slotPath(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return b, true, nil
}

// Set replaces a slot file atomically.
func (s *Store) Set(key string, value []byte) error {
	path, err := s.slotPath(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, value, 0600); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; files are closed after every write.
func (s *Store) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir) // #nosec G304
	if err != nil {
		return err
	}
	defer f.Close()
	// Windows cannot fsync a directory handle.
	if err := f.Sync(); err != nil && runtime.GOOS != "windows" {
		return err
	}
	return nil
}
