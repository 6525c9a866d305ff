package session

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/ticketsys/internal/common"
	"github.com/dmitrijs2005/ticketsys/internal/directory"
)

// Profile is the public view of a user returned by profile queries.
type Profile struct {
	Username  string
	Name      string
	Mail      string
	Privilege int
}

func profileOf(u *directory.User) Profile {
	return Profile{Username: u.Username, Name: u.Name, Mail: u.Mail, Privilege: u.Privilege}
}

// String renders the response line "username name mail privilege".
func (p Profile) String() string {
	return fmt.Sprintf("%s %s %s %d", p.Username, p.Name, p.Mail, p.Privilege)
}

// NewUser carries the add_user flags. Privilege is the raw -g value; empty
// means 0.
type NewUser struct {
	Username  string
	Password  string
	Name      string
	Mail      string
	Privilege string
}

// Changes carries the modify_profile flags. Empty fields are left untouched.
type Changes struct {
	Password  string
	Name      string
	Mail      string
	Privilege string
}

func parsePrivilege(s string) (int, error) {
	g, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: privilege %q", common.ErrorInvalidArgument, s)
	}
	return g, nil
}
