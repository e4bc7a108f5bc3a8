package fs

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func TestEnsureFree(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureFree(dir, 0); err != nil {
		t.Fatalf("zero threshold: %v", err)
	}
	if err := EnsureFree(dir, 1); err != nil {
		t.Fatalf("one byte threshold: %v", err)
	}
	if _, err := Available(dir); errors.Is(err, ErrUnsupportedOS) {
		t.Skip("disk space check not supported here")
	}
	if err := EnsureFree(dir, math.MaxUint64); !errors.Is(err, ErrLowSpace) {
		t.Fatalf("err = %v, want ErrLowSpace", err)
	}
}

func TestAvailable_MissingPathUsesParent(t *testing.T) {
	dir := t.TempDir()
	want, err := Available(dir)
	if errors.Is(err, ErrUnsupportedOS) {
		t.Skip("disk space check not supported here")
	}
	if err != nil {
		t.Fatalf("Available(%s): %v", dir, err)
	}
	got, err := Available(filepath.Join(dir, "not", "yet", "board.db"))
	if err != nil {
		t.Fatalf("Available on a missing path: %v", err)
	}
	if got == 0 || want == 0 {
		t.Fatalf("available = %d, %d", got, want)
	}
}

func TestExistingAncestor(t *testing.T) {
	dir := t.TempDir()
	if got := existingAncestor(filepath.Join(dir, "a", "b")); got != dir {
		t.Fatalf("existingAncestor = %q, want %q", got, dir)
	}
	if got := existingAncestor(dir); got != dir {
		t.Fatalf("existingAncestor = %q, want %q", got, dir)
	}
}
