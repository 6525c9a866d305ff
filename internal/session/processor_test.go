package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/ticketsys/internal/common"
	"github.com/dmitrijs2005/ticketsys/internal/directory"
	"github.com/dmitrijs2005/ticketsys/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	tbl, err := directory.New(101)
	require.NoError(t, err)
	return NewProcessor(tbl, logging.Discard())
}

// seed creates root (10, logged in) and alice (5, logged out).
func seed(t *testing.T, p *Processor) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, p.AddUser(ctx, "", NewUser{Username: "root", Password: "pw", Name: "Root", Mail: "r@x.com"}))
	require.NoError(t, p.Login(ctx, "root", "pw"))
	require.NoError(t, p.AddUser(ctx, "root", NewUser{Username: "alice", Password: "a1", Name: "Alice", Mail: "a@x.com", Privilege: "5"}))
}

func TestAddUser_FirstIsRoot(t *testing.T) {
	p := newProcessor(t)
	ctx := context.Background()

	require.NoError(t, p.AddUser(ctx, "garbage", NewUser{Username: "root", Password: "pw", Name: "Root", Mail: "r@x.com", Privilege: "not-a-number"}))

	require.NoError(t, p.Login(ctx, "root", "pw"))
	prof, err := p.QueryProfile(ctx, "root", "root")
	require.NoError(t, err)
	assert.Equal(t, Profile{Username: "root", Name: "Root", Mail: "r@x.com", Privilege: RootPrivilege}, prof)
}

func TestAddUser_Rules(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		user    NewUser
		wantErr error
	}{
		{name: "ok", caller: "root", user: NewUser{Username: "bob", Privilege: "9"}},
		{name: "empty privilege is zero", caller: "root", user: NewUser{Username: "bob"}},
		{name: "equal privilege", caller: "root", user: NewUser{Username: "bob", Privilege: "10"}, wantErr: common.ErrorUnauthorized},
		{name: "caller not logged in", caller: "alice", user: NewUser{Username: "bob", Privilege: "1"}, wantErr: common.ErrorUnauthorized},
		{name: "unknown caller", caller: "ghost", user: NewUser{Username: "bob", Privilege: "1"}, wantErr: common.ErrorNotFound},
		{name: "duplicate", caller: "root", user: NewUser{Username: "alice", Privilege: "1"}, wantErr: common.ErrorConflict},
		{name: "bad privilege", caller: "root", user: NewUser{Username: "bob", Privilege: "5x"}, wantErr: common.ErrorInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(t)
			seed(t, p)

			err := p.AddUser(context.Background(), tt.caller, tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoginLogout(t *testing.T) {
	p := newProcessor(t)
	seed(t, p)
	ctx := context.Background()

	assert.ErrorIs(t, p.Login(ctx, "ghost", "x"), common.ErrorNotFound)
	assert.ErrorIs(t, p.Login(ctx, "alice", "wrong"), common.ErrorUnauthorized)
	assert.ErrorIs(t, p.Logout(ctx, "alice"), common.ErrorInvalidState)

	require.NoError(t, p.Login(ctx, "alice", "a1"))
	assert.ErrorIs(t, p.Login(ctx, "alice", "a1"), common.ErrorInvalidState)

	require.NoError(t, p.Logout(ctx, "alice"))
	assert.ErrorIs(t, p.Logout(ctx, "alice"), common.ErrorInvalidState)
	assert.ErrorIs(t, p.Logout(ctx, "ghost"), common.ErrorNotFound)
}

func TestQueryProfile_Access(t *testing.T) {
	p := newProcessor(t)
	seed(t, p)
	ctx := context.Background()

	prof, err := p.QueryProfile(ctx, "root", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice Alice a@x.com 5", prof.String())

	_, err = p.QueryProfile(ctx, "alice", "alice")
	assert.ErrorIs(t, err, common.ErrorUnauthorized, "alice is not logged in")

	require.NoError(t, p.Login(ctx, "alice", "a1"))
	prof, err = p.QueryProfile(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", prof.Username)

	_, err = p.QueryProfile(ctx, "alice", "root")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = p.QueryProfile(ctx, "root", "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestModifyProfile(t *testing.T) {
	p := newProcessor(t)
	seed(t, p)
	ctx := context.Background()

	prof, err := p.ModifyProfile(ctx, "root", "alice", Changes{Name: "Alicia", Privilege: "7"})
	require.NoError(t, err)
	assert.Equal(t, Profile{Username: "alice", Name: "Alicia", Mail: "a@x.com", Privilege: 7}, prof)

	prof, err = p.ModifyProfile(ctx, "root", "alice", Changes{Password: "new", Mail: "alicia@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice Alicia alicia@x.com 7", prof.String())

	require.NoError(t, p.Login(ctx, "alice", "new"))
}

func TestModifyProfile_RejectedLeavesRecord(t *testing.T) {
	tests := []struct {
		name    string
		caller  string
		target  string
		changes Changes
		wantErr error
	}{
		{name: "privilege not below caller", caller: "root", target: "alice", changes: Changes{Name: "X", Privilege: "10"}, wantErr: common.ErrorUnauthorized},
		{name: "malformed privilege", caller: "root", target: "alice", changes: Changes{Mail: "m", Privilege: "high"}, wantErr: common.ErrorInvalidArgument},
		{name: "caller not logged in", caller: "alice", target: "alice", changes: Changes{Name: "X"}, wantErr: common.ErrorUnauthorized},
		{name: "unknown target", caller: "root", target: "ghost", changes: Changes{Name: "X"}, wantErr: common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(t)
			seed(t, p)
			ctx := context.Background()

			_, err := p.ModifyProfile(ctx, tt.caller, tt.target, tt.changes)
			require.ErrorIs(t, err, tt.wantErr)

			prof, err := p.QueryProfile(ctx, "root", "alice")
			require.NoError(t, err)
			assert.Equal(t, "alice Alice a@x.com 5", prof.String())
		})
	}
}

func TestModifyProfile_SelfCannotRaiseToOwnLevel(t *testing.T) {
	p := newProcessor(t)
	seed(t, p)
	ctx := context.Background()
	require.NoError(t, p.Login(ctx, "alice", "a1"))

	_, err := p.ModifyProfile(ctx, "alice", "alice", Changes{Privilege: "5"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	prof, err := p.ModifyProfile(ctx, "alice", "alice", Changes{Privilege: "4"})
	require.NoError(t, err)
	assert.Equal(t, 4, prof.Privilege)
}

func TestClean(t *testing.T) {
	p := newProcessor(t)
	seed(t, p)
	ctx := context.Background()

	p.Clean(ctx)
	assert.Equal(t, 0, p.Stats().Live)
	assert.ErrorIs(t, p.Login(ctx, "root", "pw"), common.ErrorNotFound)

	// After a reset the next account is the root account again.
	require.NoError(t, p.AddUser(ctx, "", NewUser{Username: "alice", Password: "a1"}))
	require.NoError(t, p.Login(ctx, "alice", "a1"))
	prof, err := p.QueryProfile(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, RootPrivilege, prof.Privilege)
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(common.ErrorCapacity))
	assert.True(t, IsRecoverable(common.ErrorUnsupported))
	assert.False(t, IsRecoverable(assert.AnError))
}
