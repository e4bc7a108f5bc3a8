package memory

import (
	"errors"
	"testing"

	"github.com/perpetuallyhorni/diary/pkg/storage"
)

func TestStorage_CopiesValues(t *testing.T) {
	s := NewStorage()
	v := []byte("abc")
	if err := s.Set("k", v); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v[0] = 'x'
	got, ok, _ := s.Get("k")
	if !ok || string(got) != "abc" {
		t.Fatalf("Get = %s ok=%v", got, ok)
	}
	got[1] = 'y'
	again, _, _ := s.Get("k")
	if string(again) != "abc" {
		t.Fatalf("stored value was aliased: %s", again)
	}
	if s.Writes["k"] != 1 {
		t.Fatalf("Writes = %d", s.Writes["k"])
	}
}

func TestStorage_Closed(t *testing.T) {
	s := NewStorage()
	_ = s.Close()
	if err := s.Set("k", nil); !errors.Is(err, storage.ErrClosed) {
		t.Fatalf("Set after close: %v", err)
	}
	if _, _, err := s.Get("k"); !errors.Is(err, storage.ErrClosed) {
		t.Fatalf("Get after close: %v", err)
	}
}
