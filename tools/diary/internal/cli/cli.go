package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/perpetuallyhorni/diary/pkg/board"
)

// Console manages styled CLI output.
type Console struct {
	mu      sync.Mutex
	out     io.Writer // out receives notices; the board itself is printed by Board.
	isQuiet bool
	// Colors
	Bold   *color.Color
	Lime   *color.Color
	Yellow *color.Color
	Orange *color.Color
	Gray   *color.Color
	Cyan   *color.Color
	// palette holds the colors a post may be printed in.
	palette []*color.Color
	// progress is the active progress line, if any.
	progress *progress
}

// New creates a new Console writing to stderr.
func New(quiet bool) *Console {
	return NewWithWriter(os.Stderr, quiet)
}

// NewWithWriter creates a new Console writing notices to w.
func NewWithWriter(w io.Writer, quiet bool) *Console {
	return &Console{
		out:     w,
		isQuiet: quiet,
		Bold:    color.New(color.Bold),
		Lime:    color.New(color.FgHiGreen),
		Yellow:  color.New(color.FgHiYellow),
		Orange:  color.New(color.FgYellow),
		Gray:    color.New(color.FgHiBlack),
		Cyan:    color.New(color.FgCyan),
		palette: []*color.Color{
			color.New(color.FgBlue),
			color.New(color.FgGreen),
			color.New(color.FgRed),
			color.New(color.FgYellow),
			color.New(color.FgCyan),
		},
	}
}

func (c *Console) printStatic(msg string) {
	if c.isQuiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopProgressLocked()
	fmt.Fprintln(c.out, msg)
}

// Info, Success, Warn, Error methods for static messages
func (c *Console) Info(format string, a ...interface{}) { c.printStatic(fmt.Sprintf(format, a...)) }
func (c *Console) Success(format string, a ...interface{}) {
	c.printStatic(c.Lime.Sprintf("✓ %s", fmt.Sprintf(format, a...)))
}
func (c *Console) Warn(format string, a ...interface{}) {
	c.printStatic(c.Yellow.Sprintf("! %s", fmt.Sprintf(format, a...)))
}

// Error is printed even in quiet mode.
func (c *Console) Error(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopProgressLocked()
	fmt.Fprintln(c.out, c.Orange.Sprintf("✗ %s", fmt.Sprintf(format, a...)))
}

// randomColor picks the color of one post for one render. It is cosmetic
// and never stored.
func (c *Console) randomColor() *color.Color {
	return c.palette[rand.IntN(len(c.palette))]
}

// RenderBoard writes the board to w: every post with its like count and its
// comments, followed by the admin controls when logged in.
func (c *Console) RenderBoard(w io.Writer, v board.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(w, c.Bold.Sprint("N-Chat"))
	fmt.Fprintln(w)
	if len(v.Posts) == 0 {
		fmt.Fprintln(w, "No posts yet.")
	}
	for _, p := range v.Posts {
		fmt.Fprintf(w, "%s %s\n", c.Gray.Sprintf("#%d", p.ID), c.randomColor().Sprint(p.Content))
		like := fmt.Sprintf("👍 %d", p.Likes)
		if p.Liked {
			like = c.Gray.Sprintf("👍 %d (liked)", p.Likes)
		}
		fmt.Fprintf(w, "   %s\n", like)
		for _, comment := range p.Comments {
			fmt.Fprintf(w, "   %s %s\n", c.Cyan.Sprint("›"), comment)
		}
		fmt.Fprintln(w)
	}
	if v.LoggedIn {
		status := "Logged in as admin."
		if v.Draft != "" {
			status += fmt.Sprintf(" Draft: %q", v.Draft)
		}
		fmt.Fprintln(w, c.Lime.Sprint(status))
	}
}
