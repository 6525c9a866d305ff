package directory

import "unicode/utf8"

// Field bounds, in bytes.
const (
	MaxUsernameLen = 20
	MaxPasswordLen = 30
	MaxNameLen     = 63
	MaxMailLen     = 63
)

// User is one account record. Username never changes after insertion; the
// remaining fields are mutated in place by the session layer.
type User struct {
	Username  string
	Password  string
	Name      string
	Mail      string
	Privilege int
	LoggedIn  bool

	occupied bool
}

// SetPassword stores p truncated to MaxPasswordLen.
func (u *User) SetPassword(p string) { u.Password = Truncate(p, MaxPasswordLen) }

// SetName stores n truncated to MaxNameLen.
func (u *User) SetName(n string) { u.Name = Truncate(n, MaxNameLen) }

// SetMail stores m truncated to MaxMailLen.
func (u *User) SetMail(m string) { u.Mail = Truncate(m, MaxMailLen) }

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
