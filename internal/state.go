package diary

import (
	"fmt"
	"slices"
	"strings"
)

// State is the in-memory board data: posts, like counters, comment logs and
// the ids liked from this store. It is the single source of truth; the
// durable slots only mirror it.
type State struct {
	Posts      []Post
	Likes      map[int64]int
	Comments   map[int64][]string
	LikedPosts []int64
}

// NewState returns an empty board.
func NewState() *State {
	return &State{
		Posts:      []Post{},
		Likes:      map[int64]int{},
		Comments:   map[int64][]string{},
		LikedPosts: []int64{},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := NewState()
	c.Posts = append(c.Posts, s.Posts...)
	for id, n := range s.Likes {
		c.Likes[id] = n
	}
	for id, comments := range s.Comments {
		c.Comments[id] = append([]string{}, comments...)
	}
	c.LikedPosts = append(c.LikedPosts, s.LikedPosts...)
	return c
}

// Post returns the post with the given id.
func (s *State) Post(id int64) (Post, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Append adds a post at the end of the board. Content that is blank after
// trimming is rejected and false is returned.
func (s *State) Append(p Post) bool {
	if strings.TrimSpace(p.Content) == "" {
		return false
	}
	s.Posts = append(s.Posts, p)
	return true
}

// Remove deletes the post with the given id, keeping the order of the
// others. Like and comment entries for the id are left in place.
func (s *State) Remove(id int64) bool {
	before := len(s.Posts)
	s.Posts = slices.DeleteFunc(s.Posts, func(p Post) bool { return p.ID == id })
	return len(s.Posts) != before
}

// Replace swaps the content of the post with the given id. Empty content is
// treated as a cancelled edit.
func (s *State) Replace(id int64, content string) bool {
	if content == "" {
		return false
	}
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			s.Posts[i].Content = content
			return true
		}
	}
	return false
}

// HasLiked reports whether the post id is already in the liked set.
func (s *State) HasLiked(id int64) bool {
	return slices.Contains(s.LikedPosts, id)
}

// Like increments the counter of a post once. A repeated like returns
// ErrAlreadyLiked without touching the counter.
func (s *State) Like(id int64) error {
	if s.HasLiked(id) {
		return ErrAlreadyLiked
	}
	s.Likes[id]++
	s.LikedPosts = append(s.LikedPosts, id)
	return nil
}

// AddComment appends a comment to the log of a post. Blank text is ignored.
func (s *State) AddComment(id int64, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.Comments[id] = append(s.Comments[id], text)
	return true
}

// Snapshot wraps a copy of the state into a versioned record.
func (s *State) Snapshot() Snapshot {
	c := s.Clone()
	return Snapshot{
		Version:    SnapshotVersion,
		Posts:      c.Posts,
		Likes:      c.Likes,
		Comments:   c.Comments,
		LikedPosts: c.LikedPosts,
	}
}

// StateFromSnapshot rebuilds a state from an exported record.
func StateFromSnapshot(snap Snapshot) (*State, error) {
	if snap.Version != SnapshotVersion {
		return nil, ErrSnapshotVersion
	}
	src := &State{Posts: snap.Posts, Likes: snap.Likes, Comments: snap.Comments, LikedPosts: snap.LikedPosts}
	s := src.Clone()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return s, nil
}

// validate checks that every slot of s would load back unchanged.
func (s *State) validate() error {
	if err := uniqueIDs(s.Posts); err != nil {
		return err
	}
	slots, err := EncodeSlots(s)
	if err != nil {
		return err
	}
	for _, slot := range Slots {
		if err := validateSlot(slot, slots[slot]); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(posts []Post) error {
	seen := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("duplicate post id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
