package board

import (
	"errors"
	"fmt"

	diary "github.com/perpetuallyhorni/diary/internal"
	"github.com/perpetuallyhorni/diary/internal/fs"
	"github.com/perpetuallyhorni/diary/pkg/storage"
)

// load reads the four slots and installs them as the board state. Absent or
// malformed slots become empty values and are only logged.
func (b *Board) load() error {
	raw := make(map[string][]byte, len(diary.Slots))
	for _, slot := range diary.Slots {
		v, ok, err := b.store.Get(slot)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}
		if ok {
			raw[slot] = v
		}
	}
	b.state = diary.DecodeSlots(raw, func(slot string, err error) {
		b.logger.Printf("WARN: ignoring stored slot %q: %v", slot, err)
	})
	b.trackIDs()
	b.logger.Printf("Loaded board: %d posts, %d liked", len(b.state.Posts), len(b.state.LikedPosts))
	return nil
}

// trackIDs makes sure new post ids stay above every id on the board.
func (b *Board) trackIDs() {
	for _, p := range b.state.Posts {
		if p.ID > b.lastID {
			b.lastID = p.ID
		}
	}
}

// persist overwrites every slot with the current state. Slots are written one
// after the other; a failure part way leaves earlier slots updated.
func (b *Board) persist() error {
	if loc, ok := b.store.(storage.Locator); ok {
		if err := fs.EnsureFree(loc.Location(), b.cfg.MinFreeBytes); err != nil {
			if errors.Is(err, fs.ErrLowSpace) {
				return fmt.Errorf("%w: %v", diary.ErrDiskSpace, err)
			}
			b.logger.Printf("WARN: %v", err)
		}
	}
	slots, err := diary.EncodeSlots(b.state)
	if err != nil {
		return err
	}
	for _, slot := range diary.Slots {
		if err := b.store.Set(slot, slots[slot]); err != nil {
			b.logger.Printf("ERROR: failed to persist slot %q: %v", slot, err)
			return fmt.Errorf("failed to persist board: %w", err)
		}
	}
	return nil
}
