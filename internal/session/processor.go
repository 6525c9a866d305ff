// Package session implements the command processor that sits on top of the
// user directory: it checks who may do what and turns each input line into a
// single response line.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ticketsys/internal/common"
	"github.com/dmitrijs2005/ticketsys/internal/directory"
	"github.com/dmitrijs2005/ticketsys/internal/logging"
)

// RootPrivilege is assigned to the first account ever created.
const RootPrivilege = 10

type Processor struct {
	table    *directory.Table
	logger   logging.Logger
	handlers map[string]handler
	opts     options
}

// NewProcessor builds a processor that owns no state beyond table.
func NewProcessor(table *directory.Table, logger logging.Logger, opts ...Option) *Processor {
	p := &Processor{
		table:  table,
		logger: logger.With("module", "session"),
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	p.handlers = p.routes()
	return p
}

// AddUser creates an account. The very first account is always created with
// RootPrivilege whatever the caller and requested privilege; afterwards the
// caller must be logged in and outrank the new account.
func (p *Processor) AddUser(ctx context.Context, caller string, u NewUser) error {
	if p.table.Len() == 0 {
		_, err := p.table.Insert(u.Username, u.Password, u.Name, u.Mail, RootPrivilege)
		return err
	}

	c, err := p.loggedIn(caller)
	if err != nil {
		return err
	}

	g := 0
	if u.Privilege != "" {
		if g, err = parsePrivilege(u.Privilege); err != nil {
			return err
		}
	}
	if g >= c.Privilege {
		return fmt.Errorf("%w: privilege %d not below caller's %d", common.ErrorUnauthorized, g, c.Privilege)
	}

	_, err = p.table.Insert(u.Username, u.Password, u.Name, u.Mail, g)
	return err
}

// Login opens a session for username.
func (p *Processor) Login(ctx context.Context, username, password string) error {
	u, ok := p.table.Lookup(username)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, username)
	}
	if u.LoggedIn {
		return fmt.Errorf("%w: %s already logged in", common.ErrorInvalidState, username)
	}
	if u.Password != password {
		return fmt.Errorf("%w: wrong password for %s", common.ErrorUnauthorized, username)
	}
	u.LoggedIn = true
	return nil
}

// Logout closes the session for username.
func (p *Processor) Logout(ctx context.Context, username string) error {
	u, ok := p.table.Lookup(username)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, username)
	}
	if !u.LoggedIn {
		return fmt.Errorf("%w: %s not logged in", common.ErrorInvalidState, username)
	}
	u.LoggedIn = false
	return nil
}

// QueryProfile returns the profile of username as seen by caller.
func (p *Processor) QueryProfile(ctx context.Context, caller, username string) (Profile, error) {
	_, target, err := p.authorize(caller, username)
	if err != nil {
		return Profile{}, err
	}
	return profileOf(target), nil
}

// ModifyProfile applies ch to username on behalf of caller and returns the
// resulting profile. Nothing is written unless every check passes.
func (p *Processor) ModifyProfile(ctx context.Context, caller, username string, ch Changes) (Profile, error) {
	c, target, err := p.authorize(caller, username)
	if err != nil {
		return Profile{}, err
	}

	g := target.Privilege
	if ch.Privilege != "" {
		if g, err = parsePrivilege(ch.Privilege); err != nil {
			return Profile{}, err
		}
		if g >= c.Privilege {
			return Profile{}, fmt.Errorf("%w: privilege %d not below caller's %d", common.ErrorUnauthorized, g, c.Privilege)
		}
	}

	target.Privilege = g
	if ch.Password != "" {
		target.SetPassword(ch.Password)
	}
	if ch.Name != "" {
		target.SetName(ch.Name)
	}
	if ch.Mail != "" {
		target.SetMail(ch.Mail)
	}

	return profileOf(target), nil
}

// Clean drops every account.
func (p *Processor) Clean(ctx context.Context) {
	st := p.table.Stats()
	p.table.Reset()
	p.logger.Info(ctx, "directory reset",
		"dropped", st.Live, "capacity", st.Capacity, "max_probe", st.MaxProbe)
}

// Stats exposes the directory diagnostics.
func (p *Processor) Stats() directory.Stats {
	return p.table.Stats()
}

func (p *Processor) loggedIn(caller string) (*directory.User, error) {
	c, ok := p.table.Lookup(caller)
	if !ok {
		return nil, fmt.Errorf("%w: caller %s", common.ErrorNotFound, caller)
	}
	if !c.LoggedIn {
		return nil, fmt.Errorf("%w: caller %s not logged in", common.ErrorUnauthorized, caller)
	}
	return c, nil
}

// authorize resolves caller and target for profile access: the caller must be
// logged in and either be the target or outrank it.
func (p *Processor) authorize(caller, username string) (c, target *directory.User, err error) {
	c, err = p.loggedIn(caller)
	if err != nil {
		return nil, nil, err
	}
	target, ok := p.table.Lookup(username)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", common.ErrorNotFound, username)
	}
	if c != target && c.Privilege <= target.Privilege {
		return nil, nil, fmt.Errorf("%w: %s may not access %s", common.ErrorUnauthorized, caller, username)
	}
	return c, target, nil
}

// IsRecoverable reports whether err is an ordinary protocol failure that
// should be answered with -1.
func IsRecoverable(err error) bool {
	for _, e := range []error{
		common.ErrorNotFound,
		common.ErrorConflict,
		common.ErrorCapacity,
		common.ErrorUnauthorized,
		common.ErrorInvalidState,
		common.ErrorInvalidArgument,
		common.ErrorUnsupported,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
