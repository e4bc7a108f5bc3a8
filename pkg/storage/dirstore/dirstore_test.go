package dirstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_GetSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok, err := s.Get("likes"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Set("likes", []byte(`{"1":2}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get("likes")
	if err != nil || !ok || string(got) != `{"1":2}` {
		t.Fatalf("Get: value=%s ok=%v err=%v", got, ok, err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "likes.json"))
	if err != nil {
		t.Fatalf("slot file missing: %v", err)
	}
	if string(raw) != `{"1":2}` {
		t.Fatalf("slot file = %s", raw)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the slot file, found %d entries", len(entries))
	}
}

func TestStore_RejectsUnsafeKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, key := range []string{"", "../escape", "a/b", "posts.json"} {
		if err := s.Set(key, []byte("x")); err == nil {
			t.Fatalf("Set(%q) accepted an unsafe key", key)
		}
	}
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("New(\"\") should fail")
	}
}
