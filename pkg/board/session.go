package board

import (
	"crypto/subtle"

	diary "github.com/perpetuallyhorni/diary/internal"
)

// Session is the transient view state of one run. It is never persisted.
type Session struct {
	LoggedIn bool
	Username string
	Password string
	Draft    string
}

// Session returns a copy of the current session.
func (b *Board) Session() Session {
	return b.session
}

// LoggedIn reports whether the admin is logged in.
func (b *Board) LoggedIn() bool {
	return b.session.LoggedIn
}

// SetDraft replaces the draft post text.
func (b *Board) SetDraft(text string) {
	b.session.Draft = text
}

// Login compares the pair against the configured admin credentials. On a
// mismatch diary.ErrInvalidCredentials is returned and the session is left
// as it was.
func (b *Board) Login(username, password string) error {
	admin := b.cfg.Admin
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
	if !userOK || !passOK {
		b.logger.Printf("Rejected login attempt")
		return diary.ErrInvalidCredentials
	}
	b.session.Username = username
	b.session.Password = password
	b.session.LoggedIn = true
	b.logger.Printf("Admin logged in")
	return nil
}

// Logout clears the login flag and the credential buffers. The board and
// the draft are untouched.
func (b *Board) Logout() {
	b.session.LoggedIn = false
	b.session.Username = ""
	b.session.Password = ""
	b.logger.Printf("Admin logged out")
}

func (b *Board) requireAdmin() error {
	if !b.session.LoggedIn {
		return diary.ErrNotLoggedIn
	}
	return nil
}
