package shell

import (
	"bytes"
	"io"
	"log"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/perpetuallyhorni/diary/pkg/board"
	"github.com/perpetuallyhorni/diary/pkg/config"
	"github.com/perpetuallyhorni/diary/pkg/storage/memory"
	"github.com/perpetuallyhorni/diary/tools/diary/internal/cli"
)

func init() {
	color.NoColor = true
}

func runShell(t *testing.T, store *memory.Storage, input string) (*board.Board, string, string) {
	t.Helper()
	cfg := config.Default()
	cfg.MinFreeBytes = 0
	b, err := board.New(cfg, store, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	var out, notices bytes.Buffer
	sh := New(b, cli.NewWithWriter(&notices, false), strings.NewReader(input), &out)
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return b, out.String(), notices.String()
}

func TestShell_AdminFlow(t *testing.T) {
	input := strings.Join([]string{
		"post too early",
		"login admin wrong",
		"login admin password",
		"draft hello  world",
		"post",
		"post second",
		"logout",
		"post after logout",
		"quit",
	}, "\n")
	b, _, notices := runShell(t, memory.NewStorage(), input)

	posts := b.Posts()
	if len(posts) != 2 || posts[0].Content != "hello  world" || posts[1].Content != "second" {
		t.Fatalf("posts = %+v", posts)
	}
	if b.LoggedIn() {
		t.Fatalf("still logged in after logout")
	}
	if strings.Count(notices, "Please log in as admin first.") != 2 {
		t.Fatalf("expected two login notices:\n%s", notices)
	}
	if !strings.Contains(notices, "Invalid credentials") {
		t.Fatalf("missing invalid credentials notice:\n%s", notices)
	}
}

func TestShell_RejectedPostKeepsDraft(t *testing.T) {
	b, _, notices := runShell(t, memory.NewStorage(), "draft keep me\npost something else\n")
	if got := b.Session().Draft; got != "keep me" {
		t.Fatalf("draft = %q, want %q", got, "keep me")
	}
	if len(b.Posts()) != 0 || !strings.Contains(notices, "Please log in as admin first.") {
		t.Fatalf("posts = %+v, notices:\n%s", b.Posts(), notices)
	}
}

func TestShell_EditPrompt(t *testing.T) {
	store := memory.NewStorage()
	b, _, _ := runShell(t, store, "login admin password\npost original\n")
	id := b.Posts()[0].ID
	idStr := "#" + formatID(id)

	input := strings.Join([]string{
		"login admin password",
		"edit " + idStr,
		"",
		"edit " + idStr,
		"rewritten",
		"edit " + idStr + " inline text",
	}, "\n")
	b, out, _ := runShell(t, store, input)
	if got := b.Posts()[0].Content; got != "inline text" {
		t.Fatalf("content = %q", got)
	}
	// The cancelled edit leaves the content, so both prompts show the original.
	if strings.Count(out, "Edit Post (empty to cancel) [original]: ") != 2 {
		t.Fatalf("prompt not shown with the current content:\n%s", out)
	}
	if !strings.Contains(out, "rewritten") {
		t.Fatalf("second edit not applied:\n%s", out)
	}
}

func TestShell_VisitorActions(t *testing.T) {
	store := memory.NewStorage()
	b, _, _ := runShell(t, store, "login admin password\npost a post\n")
	id := formatID(b.Posts()[0].ID)

	input := strings.Join([]string{
		"like " + id,
		"like " + id,
		"comment " + id + " hello",
		"comment " + id + "    ",
		"comment " + id + " world",
		"like nope",
		"frobnicate",
	}, "\n")
	b, out, notices := runShell(t, store, input)
	pid := b.Posts()[0].ID
	if b.Likes(pid) != 1 || !b.HasLiked(pid) {
		t.Fatalf("likes = %d", b.Likes(pid))
	}
	if !reflect.DeepEqual(b.Comments(pid), []string{"hello", "world"}) {
		t.Fatalf("comments = %v", b.Comments(pid))
	}
	if strings.Count(notices, "You have already liked this post!") != 1 {
		t.Fatalf("notices:\n%s", notices)
	}
	if !strings.Contains(notices, `invalid post id "nope"`) || !strings.Contains(notices, `unknown command "frobnicate"`) {
		t.Fatalf("errors not reported:\n%s", notices)
	}
	if !strings.Contains(out, "👍 1 (liked)") {
		t.Fatalf("board not re-rendered after like:\n%s", out)
	}
}

func TestShell_DeleteLeavesOthers(t *testing.T) {
	store := memory.NewStorage()
	b, _, _ := runShell(t, store, "login admin password\npost one\npost two\npost three\n")
	posts := b.Posts()

	b, _, _ = runShell(t, store, "login admin password\ndelete "+formatID(posts[1].ID)+"\ndelete 1\n")
	want := []string{"one", "three"}
	var got []string
	for _, p := range b.Posts() {
		got = append(got, p.Content)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("posts = %v, want %v", got, want)
	}
}

func TestShell_EmptyBoard(t *testing.T) {
	_, out, _ := runShell(t, memory.NewStorage(), "")
	if !strings.Contains(out, "No posts yet.") {
		t.Fatalf("output = %q", out)
	}
}

func TestSplitWord(t *testing.T) {
	tests := []struct{ in, word, rest string }{
		{"", "", ""},
		{"list", "list", ""},
		{"  comment 12  two  spaces ", "comment", "12  two  spaces "},
		{"login\tadmin password", "login", "admin password"},
	}
	for _, tt := range tests {
		w, r := splitWord(tt.in)
		if w != tt.word || r != tt.rest {
			t.Fatalf("splitWord(%q) = %q, %q; want %q, %q", tt.in, w, r, tt.word, tt.rest)
		}
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
