package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDB_GetSet(t *testing.T) {
	dir := t.TempDir()
	db, err := New(filepath.Join(dir, "nested", "board.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, ok, err := db.Get("posts"); err != nil || ok {
		t.Fatalf("Get on empty db: ok=%v err=%v", ok, err)
	}
	if err := db.Set("posts", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set("posts", []byte(`[{"id":1,"content":"a"}]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, ok, err := db.Get("posts")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":1,"content":"a"}]` {
		t.Fatalf("value = %s", got)
	}
	if db.Location() != filepath.Join(dir, "nested") {
		t.Fatalf("Location = %s", db.Location())
	}
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")
	db, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set("likedPosts", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, ok, err := db.Get("likedPosts")
	if err != nil || !ok || string(got) != `[1,2]` {
		t.Fatalf("after reopen: value=%s ok=%v err=%v", got, ok, err)
	}
}
