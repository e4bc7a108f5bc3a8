package diary

import (
	"errors"
	"time"
)

// Slot keys of the durable store. Each key holds one JSON document.
const (
	SlotPosts      = "posts"
	SlotLikes      = "likes"
	SlotComments   = "comments"
	SlotLikedPosts = "likedPosts"
)

// Slots lists every slot key in the order they are written.
var Slots = []string{SlotPosts, SlotLikes, SlotComments, SlotLikedPosts}

// SnapshotVersion is the current version of the exported snapshot record.
const SnapshotVersion = 1

var (
	// ErrAlreadyLiked is returned when a post is liked a second time from the same store.
	ErrAlreadyLiked = errors.New("already liked")
	// ErrInvalidCredentials is returned when a login does not match the configured admin.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn is returned when an admin operation is attempted while logged out.
	ErrNotLoggedIn = errors.New("admin login required")
	// ErrDiskSpace is returned when there is not enough free space to persist the board.
	ErrDiskSpace = errors.New("insufficient disk space")
	// ErrSnapshotVersion is returned when a snapshot has an unsupported version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	// ErrInvalidSnapshot is returned when a snapshot holds data the slots cannot store.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Post is a single board entry.
type Post struct {
	// ID is the creation timestamp in Unix milliseconds.
	ID int64 `json:"id" yaml:"id"`
	// Content is the literal post text.
	Content string `json:"content" yaml:"content"`
}

// Created returns the creation time encoded in the post ID.
func (p Post) Created() time.Time {
	return time.UnixMilli(p.ID)
}

// Snapshot is a single versioned record holding all four slots.
type Snapshot struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Posts      []Post             `json:"posts"`
	Likes      map[int64]int      `json:"likes"`
	Comments   map[int64][]string `json:"comments"`
	LikedPosts []int64            `json:"likedPosts"`
}
