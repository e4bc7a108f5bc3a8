package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	diary "github.com/perpetuallyhorni/diary/internal"
	"github.com/perpetuallyhorni/diary/pkg/board"
	"github.com/perpetuallyhorni/diary/tools/diary/internal/cli"
)

// errQuit ends the read loop.
var errQuit = errors.New("quit")

const helpText = `Commands:
  list                     show the board
  login <user> <password>  log in as admin
  logout                   log out and clear the login fields
  draft [text]             set (or show) the draft post
  post [text]              add a post (the draft when no text is given)
  edit <id> [text]         edit a post; without text you are prompted, empty cancels
  delete <id>              delete a post
  like <id>                like a post once
  comment <id> <text>      add a comment to a post
  help                     show this help
  quit                     leave the shell`

// Shell is an interactive line-based session over a Board. The session
// (login state, draft) lives as long as the shell.
type Shell struct {
	board   *board.Board
	console *cli.Console
	out     io.Writer
	lines   *bufio.Scanner
}

// New creates a shell reading commands from in and printing the board to out.
func New(b *board.Board, console *cli.Console, in io.Reader, out io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Shell{board: b, console: console, out: out, lines: scanner}
}

// Run renders the board and processes commands until quit or end of input.
// Rejected actions are reported and the loop continues; only a failure to
// read input ends it with an error.
func (s *Shell) Run() error {
	s.render()
	for {
		fmt.Fprint(s.out, "> ")
		if !s.lines.Scan() {
			fmt.Fprintln(s.out)
			return s.lines.Err()
		}
		err := s.Exec(s.lines.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil && !s.console.Notice(err) {
			s.console.Error("%v", err)
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(line string) error {
	name, rest := splitWord(line)
	switch strings.ToLower(name) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "list", "ls":
		s.render()
		return nil
	case "login":
		user, pass := splitWord(rest)
		if err := s.board.Login(user, strings.TrimSpace(pass)); err != nil {
			return err
		}
		s.console.Success("Logged in.")
		s.render()
		return nil
	case "logout":
		s.board.Logout()
		s.console.Success("Logged out.")
		s.render()
		return nil
	case "draft":
		if rest == "" {
			fmt.Fprintf(s.out, "Draft: %q\n", s.board.Session().Draft)
			return nil
		}
		s.board.SetDraft(rest)
		return nil
	case "post", "add":
		publish := s.board.PublishDraft
		if rest != "" {
			publish = func() (*diary.Post, error) { return s.board.AddPost(rest) }
		}
		post, err := publish()
		if err != nil {
			return err
		}
		if post != nil {
			s.console.Success("Added post #%d.", post.ID)
			s.render()
		}
		return nil
	case "edit":
		id, text, err := parseID(rest)
		if err != nil {
			return err
		}
		prompt := s.prompt
		if text != "" {
			prompt = func(string) (string, error) { return text, nil }
		}
		changed, err := s.board.EditPost(id, prompt)
		if err != nil {
			return err
		}
		if changed {
			s.console.Success("Edited post #%d.", id)
			s.render()
		}
		return nil
	case "delete", "rm":
		id, _, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := s.board.DeletePost(id); err != nil {
			return err
		}
		s.render()
		return nil
	case "like":
		id, _, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := s.board.Like(id); err != nil {
			return err
		}
		s.render()
		return nil
	case "comment":
		id, text, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := s.board.Comment(id, text); err != nil {
			return err
		}
		s.render()
		return nil
	default:
		return fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
}

// prompt asks for replacement content on the next input line.
func (s *Shell) prompt(current string) (string, error) {
	fmt.Fprintf(s.out, "Edit Post (empty to cancel) [%s]: ", current)
	if !s.lines.Scan() {
		if err := s.lines.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return s.lines.Text(), nil
}

func (s *Shell) render() {
	s.console.RenderBoard(s.out, s.board.View())
}

// splitWord returns the first whitespace separated word of line and the
// remainder with the separating whitespace removed.
func splitWord(line string) (string, string) {
	line = strings.TrimLeft(line, " \t")
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}

// parseID reads a post id followed by optional text.
func parseID(rest string) (int64, string, error) {
	word, text := splitWord(rest)
	if word == "" {
		return 0, "", errors.New("missing post id")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(word, "#"), 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid post id %q", word)
	}
	return id, text, nil
}
