package diary

import (
	"reflect"
	"testing"
)

func TestEncodeSlots_Layout(t *testing.T) {
	s := NewState()
	s.Append(Post{ID: 1700000000000, Content: "first"})
	_ = s.Like(1700000000000)
	s.AddComment(1700000000000, "nice")

	slots, err := EncodeSlots(s)
	if err != nil {
		t.Fatalf("EncodeSlots: %v", err)
	}
	want := map[string]string{
		SlotPosts:      `[{"id":1700000000000,"content":"first"}]`,
		SlotLikes:      `{"1700000000000":1}`,
		SlotComments:   `{"1700000000000":["nice"]}`,
		SlotLikedPosts: `[1700000000000]`,
	}
	for slot, w := range want {
		if got := string(slots[slot]); got != w {
			t.Fatalf("slot %s = %s, want %s", slot, got, w)
		}
	}
}

func TestEncodeSlots_EmptyState(t *testing.T) {
	slots, err := EncodeSlots(&State{})
	if err != nil {
		t.Fatalf("EncodeSlots: %v", err)
	}
	want := map[string]string{
		SlotPosts:      `[]`,
		SlotLikes:      `{}`,
		SlotComments:   `{}`,
		SlotLikedPosts: `[]`,
	}
	for slot, w := range want {
		if got := string(slots[slot]); got != w {
			t.Fatalf("slot %s = %s, want %s", slot, got, w)
		}
	}
}

func TestDecodeSlots_RoundTrip(t *testing.T) {
	s := NewState()
	s.Append(Post{ID: 1, Content: "a"})
	s.Append(Post{ID: 2, Content: "b"})
	_ = s.Like(2)
	_ = s.Like(99)
	s.AddComment(1, "hello")
	s.AddComment(1, "world")

	slots, err := EncodeSlots(s)
	if err != nil {
		t.Fatalf("EncodeSlots: %v", err)
	}
	got := DecodeSlots(slots, func(slot string, err error) {
		t.Fatalf("unexpected invalid slot %s: %v", slot, err)
	})
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestDecodeSlots_AbsentAndInvalidResolveToEmpty(t *testing.T) {
	raw := map[string][]byte{
		SlotPosts:      []byte(`{not json`),
		SlotLikes:      []byte(`{"1":-3}`),
		SlotComments:   []byte(`{"1":[1,2]}`),
		SlotLikedPosts: []byte(`[1, 2]`),
	}
	var reported []string
	got := DecodeSlots(raw, func(slot string, err error) {
		reported = append(reported, slot)
	})

	want := NewState()
	want.LikedPosts = []int64{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(reported, []string{SlotPosts, SlotLikes, SlotComments}) {
		t.Fatalf("reported = %v", reported)
	}

	empty := DecodeSlots(nil, nil)
	if !reflect.DeepEqual(empty, NewState()) {
		t.Fatalf("absent slots should give an empty state, got %+v", empty)
	}
}

func TestDecodeSlots_RejectsWrongShapes(t *testing.T) {
	tests := []struct {
		slot string
		raw  string
	}{
		{SlotPosts, `[{"id":1.5,"content":"x"}]`},
		{SlotPosts, `[{"id":1}]`},
		{SlotPosts, `null`},
		{SlotLikes, `{"abc":1}`},
		{SlotComments, `{"1":"not a list"}`},
		{SlotLikedPosts, `["1"]`},
		{SlotLikedPosts, `[1] [2]`},
		{SlotLikedPosts, `[] ]`},
		{SlotLikes, `{} }`},
		{SlotPosts, `[{"id":1,"content":"a"},{"id":1,"content":"b"}]`},
	}
	for _, tt := range tests {
		called := false
		got := DecodeSlots(map[string][]byte{tt.slot: []byte(tt.raw)}, func(string, error) { called = true })
		if !called {
			t.Fatalf("slot %s=%s was not reported invalid", tt.slot, tt.raw)
		}
		if !reflect.DeepEqual(got, NewState()) {
			t.Fatalf("slot %s=%s: state = %+v, want empty", tt.slot, tt.raw, got)
		}
	}
}
