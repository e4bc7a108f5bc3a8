package cli

import (
	"errors"

	diary "github.com/perpetuallyhorni/diary/internal"
)

// notices maps rejected user actions to the message shown to the user.
var notices = []struct {
	err error
	msg string
}{
	{diary.ErrAlreadyLiked, "You have already liked this post!"},
	{diary.ErrInvalidCredentials, "Invalid credentials"},
	{diary.ErrNotLoggedIn, "Please log in as admin first."},
}

// Notice prints a warning for errors that reject a user action without
// changing anything. It reports whether err was such an error. In quiet mode
// the notice goes through Error so the rejection is still shown.
func (c *Console) Notice(err error) bool {
	for _, n := range notices {
		if errors.Is(err, n.err) {
			if c.isQuiet {
				c.Error("%s", n.msg)
			} else {
				c.Warn("%s", n.msg)
			}
			return true
		}
	}
	return false
}
