package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ticketsys/internal/common"
)

const (
	respOK   = "0"
	respFail = "-1"
	respBye  = "bye"
)

type options struct {
	slowThreshold time.Duration
	now           func() time.Time
}

type Option func(*options)

// WithSlowThreshold makes Execute warn about commands that take longer than d.
// Zero disables the warning.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) { o.slowThreshold = d }
}

// WithClock replaces time.Now for latency measurement.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// handler returns the success response for a command.
type handler func(ctx context.Context, cmd Command) (string, error)

func (p *Processor) routes() map[string]handler {
	return map[string]handler{
		"add_user":       p.handleAddUser,
		"login":          p.handleLogin,
		"logout":         p.handleLogout,
		"query_profile":  p.handleQueryProfile,
		"modify_profile": p.handleModifyProfile,
		"clean":          p.handleClean,

		"query_ticket":   stub(respOK),
		"query_transfer": stub(respOK),
	}
}

// Execute runs one input line and returns the response line. exit is true
// once the line asked the interpreter to stop. Blank lines produce no output.
func (p *Processor) Execute(ctx context.Context, line string) (out string, exit bool) {
	cmd, ok := Parse(line)
	if !ok {
		return "", false
	}

	if cmd.Name == "exit" {
		p.logger.Info(ctx, "exit requested", "live", p.table.Len())
		return respBye, true
	}

	now := time.Now
	if p.opts.now != nil {
		now = p.opts.now
	}
	start := now()

	h, ok := p.handlers[cmd.Name]
	if !ok {
		h = unsupported
	}
	out, err := h(ctx, cmd)

	elapsed := now().Sub(start)
	if err != nil {
		out = respFail
		if IsRecoverable(err) {
			p.logger.Debug(ctx, "command rejected", "cmd", cmd.Name, "error", err)
		} else {
			p.logger.Error(ctx, "command failed", "cmd", cmd.Name, "error", err)
		}
	}
	p.logger.Debug(ctx, "command processed", "cmd", cmd.Name, "response", out, "elapsed", elapsed)

	if p.opts.slowThreshold > 0 && elapsed > p.opts.slowThreshold {
		p.logger.Warn(ctx, "slow command", "cmd", cmd.Name, "elapsed", elapsed, "threshold", p.opts.slowThreshold)
	}

	return out, false
}

func (p *Processor) handleAddUser(ctx context.Context, cmd Command) (string, error) {
	err := p.AddUser(ctx, cmd.Flag("-c"), NewUser{
		Username:  cmd.Flag("-u"),
		Password:  cmd.Flag("-p"),
		Name:      cmd.Flag("-n"),
		Mail:      cmd.Flag("-m"),
		Privilege: cmd.Flag("-g"),
	})
	return respOK, err
}

func (p *Processor) handleLogin(ctx context.Context, cmd Command) (string, error) {
	return respOK, p.Login(ctx, cmd.Flag("-u"), cmd.Flag("-p"))
}

func (p *Processor) handleLogout(ctx context.Context, cmd Command) (string, error) {
	return respOK, p.Logout(ctx, cmd.Flag("-u"))
}

func (p *Processor) handleQueryProfile(ctx context.Context, cmd Command) (string, error) {
	prof, err := p.QueryProfile(ctx, cmd.Flag("-c"), cmd.Flag("-u"))
	if err != nil {
		return "", err
	}
	return prof.String(), nil
}

func (p *Processor) handleModifyProfile(ctx context.Context, cmd Command) (string, error) {
	prof, err := p.ModifyProfile(ctx, cmd.Flag("-c"), cmd.Flag("-u"), Changes{
		Password:  cmd.Flag("-p"),
		Name:      cmd.Flag("-n"),
		Mail:      cmd.Flag("-m"),
		Privilege: cmd.Flag("-g"),
	})
	if err != nil {
		return "", err
	}
	return prof.String(), nil
}

func (p *Processor) handleClean(ctx context.Context, _ Command) (string, error) {
	p.Clean(ctx)
	return respOK, nil
}

// stub answers a train/ticket command with a fixed response.
func stub(resp string) handler {
	return func(context.Context, Command) (string, error) { return resp, nil }
}

func unsupported(context.Context, Command) (string, error) {
	return "", common.ErrorUnsupported
}
