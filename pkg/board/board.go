package board

import (
	"fmt"
	"log"
	"strings"
	"time"

	diary "github.com/perpetuallyhorni/diary/internal"
	"github.com/perpetuallyhorni/diary/pkg/config"
	"github.com/perpetuallyhorni/diary/pkg/storage"
)

// Prompter asks for the replacement content of a post. It receives the
// current content as the initial value. Returning an empty string cancels
// the edit.
type Prompter func(current string) (string, error)

// Board is the main entry point for the diary library. It owns the board
// state and the session, and mirrors every state change to the store.
type Board struct {
	cfg     *config.Config
	store   storage.Storer
	logger  *log.Logger
	state   *diary.State
	session Session
	now     func() time.Time
	lastID  int64
}

// New creates a Board and loads its state from the store.
func New(cfg *config.Config, store storage.Storer, logger *log.Logger) (*Board, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	b := &Board{cfg: cfg, store: store, logger: logger, now: time.Now}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

// nextID returns the creation timestamp for a new post. Two posts created
// within the same millisecond get consecutive ids.
func (b *Board) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

// AddPost appends a post with the given content. Content that is blank
// after trimming is ignored and a nil post is returned. The stored content
// is not trimmed. On success the session draft is cleared.
func (b *Board) AddPost(content string) (*diary.Post, error) {
	if err := b.requireAdmin(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	post := diary.Post{ID: b.nextID(), Content: content}
	b.state.Append(post)
	b.session.Draft = ""
	b.logger.Printf("Added post %d (%d bytes)", post.ID, len(post.Content))
	if err := b.persist(); err != nil {
		return &post, err
	}
	return &post, nil
}

// PublishDraft adds the session draft as a new post.
func (b *Board) PublishDraft() (*diary.Post, error) {
	return b.AddPost(b.session.Draft)
}

// DeletePost removes a post. Likes and comments recorded for it stay in the
// store. Deleting an unknown id does nothing.
func (b *Board) DeletePost(id int64) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	if !b.state.Remove(id) {
		return nil
	}
	b.logger.Printf("Deleted post %d", id)
	return b.persist()
}

// EditPost replaces the content of a post with the prompter's answer. An
// unknown id or an empty answer leaves the board unchanged and reports false.
func (b *Board) EditPost(id int64, prompt Prompter) (bool, error) {
	if err := b.requireAdmin(); err != nil {
		return false, err
	}
	post, ok := b.state.Post(id)
	if !ok {
		return false, nil
	}
	content, err := prompt(post.Content)
	if err != nil {
		return false, fmt.Errorf("failed to read new content for post %d: %w", id, err)
	}
	if !b.state.Replace(id, content) {
		return false, nil
	}
	b.logger.Printf("Edited post %d", id)
	return true, b.persist()
}

// Like adds one like to a post. A post can be liked once per store; a
// repeated like returns diary.ErrAlreadyLiked.
func (b *Board) Like(id int64) error {
	if err := b.state.Like(id); err != nil {
		return err
	}
	b.logger.Printf("Liked post %d (now %d)", id, b.state.Likes[id])
	return b.persist()
}

// Comment appends a comment to a post. Blank text is ignored.
func (b *Board) Comment(id int64, text string) error {
	if !b.state.AddComment(id, text) {
		return nil
	}
	b.logger.Printf("Commented on post %d", id)
	return b.persist()
}

// Restore replaces the whole board with the contents of a snapshot and
// writes every slot.
func (b *Board) Restore(snap diary.Snapshot) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	state, err := diary.StateFromSnapshot(snap)
	if err != nil {
		return err
	}
	b.state = state
	b.trackIDs()
	b.logger.Printf("Restored board from snapshot: %d posts", len(state.Posts))
	return b.persist()
}

// Snapshot returns the board as a single versioned record.
func (b *Board) Snapshot() diary.Snapshot {
	snap := b.state.Snapshot()
	snap.ExportedAt = b.now().UTC()
	return snap
}

// Posts returns a copy of the posts in display order.
func (b *Board) Posts() []diary.Post {
	return append([]diary.Post{}, b.state.Posts...)
}

// Likes returns the like count of a post.
func (b *Board) Likes(id int64) int {
	return b.state.Likes[id]
}

// Comments returns a copy of the comments of a post in insertion order.
func (b *Board) Comments(id int64) []string {
	return append([]string{}, b.state.Comments[id]...)
}

// HasLiked reports whether the post was already liked from this store.
func (b *Board) HasLiked(id int64) bool {
	return b.state.HasLiked(id)
}
