package memory

import (
	"sync"

	"github.com/perpetuallyhorni/diary/pkg/storage"
)

// Storage keeps slots in process memory. Nothing survives the process; it
// backs ephemeral runs and tests.
type Storage struct {
	mu     sync.Mutex
	slots  map[string][]byte
	closed bool
	// Writes counts successful Set calls per key.
	Writes map[string]int
}

var _ storage.Storer = (*Storage)(nil)

// NewStorage returns an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{
		slots:  map[string][]byte{},
		Writes: map[string]int{},
	}
}

// Get returns a copy of the slot value.
func (s *Storage) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, storage.ErrClosed
	}
	v, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (s *Storage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrClosed
	}
	s.slots[key] = append([]byte(nil), value...)
	s.Writes[key]++
	return nil
}

// Close marks the store closed.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
