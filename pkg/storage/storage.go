package storage

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Storer defines the durable key-value slots the board is mirrored to.
// This allows for different backends to be used with the board.
type Storer interface {
	// Get returns the value of a slot. ok is false when the slot was never written.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites a slot with value.
	Set(key string, value []byte) error
	// Close releases the backend.
	Close() error
}

// Locator is implemented by backends that live on a filesystem. The board
// uses the location for the free disk space check before writing.
type Locator interface {
	Location() string
}
