package diary

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// slotSchemas holds the compiled validator for each slot key.
var slotSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	schemas := make(map[string]*jsonschema.Schema, len(Slots))
	for _, slot := range Slots {
		b, err := schemaFS.ReadFile("schemas/" + slot + ".json")
		if err != nil {
			panic(fmt.Sprintf("missing embedded schema for slot %s: %v", slot, err))
		}
		schemas[slot] = jsonschema.MustCompileString(slot+".json", string(b))
	}
	return schemas
}

// EncodeSlots serializes each part of the state into its own slot document.
func EncodeSlots(s *State) (map[string][]byte, error) {
	norm := s.Clone()
	values := map[string]any{
		SlotPosts:      norm.Posts,
		SlotLikes:      norm.Likes,
		SlotComments:   norm.Comments,
		SlotLikedPosts: norm.LikedPosts,
	}
	out := make(map[string][]byte, len(values))
	for _, slot := range Slots {
		b, err := json.Marshal(values[slot])
		if err != nil {
			return nil, fmt.Errorf("failed to encode slot %s: %w", slot, err)
		}
		out[slot] = b
	}
	return out, nil
}

// DecodeSlots rebuilds a state from raw slot documents. A slot that is
// absent resolves to its empty value. A slot that is not valid JSON or does
// not match its schema also resolves to the empty value and is reported to
// onInvalid, which may be nil.
func DecodeSlots(raw map[string][]byte, onInvalid func(slot string, err error)) *State {
	s := NewState()
	for _, slot := range Slots {
		b, ok := raw[slot]
		if !ok || len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		if err := decodeSlot(s, slot, b); err != nil && onInvalid != nil {
			onInvalid(slot, err)
		}
	}
	return s
}

// decodeSlot fills one part of s. s is only touched when the slot is valid.
func decodeSlot(s *State, slot string, b []byte) error {
	if err := validateSlot(slot, b); err != nil {
		return err
	}
	var err error
	switch slot {
	case SlotPosts:
		var posts []Post
		if err = json.Unmarshal(b, &posts); err == nil {
			if err = uniqueIDs(posts); err == nil {
				s.Posts = append(s.Posts, posts...)
			}
		}
	case SlotLikes:
		var likes map[int64]int
		if err = json.Unmarshal(b, &likes); err == nil {
			for id, n := range likes {
				s.Likes[id] = n
			}
		}
	case SlotComments:
		var comments map[int64][]string
		if err = json.Unmarshal(b, &comments); err == nil {
			for id, c := range comments {
				s.Comments[id] = append([]string{}, c...)
			}
		}
	case SlotLikedPosts:
		var liked []int64
		if err = json.Unmarshal(b, &liked); err == nil {
			s.LikedPosts = append(s.LikedPosts, liked...)
		}
	default:
		return fmt.Errorf("unknown slot %s", slot)
	}
	if err != nil {
		return fmt.Errorf("failed to decode slot %s: %w", slot, err)
	}
	return nil
}

// validateSlot checks a slot document against the slot's schema.
func validateSlot(slot string, b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("slot %s is not valid JSON: %w", slot, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("slot %s has trailing data", slot)
	}
	if err := slotSchemas[slot].Validate(v); err != nil {
		return fmt.Errorf("slot %s does not match its schema: %w", slot, err)
	}
	return nil
}
