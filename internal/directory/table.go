// Package directory implements the user directory: a fixed-capacity hash
// table with linear probing and no deletion.
//
// Records are never moved or removed once inserted, except by Reset which
// empties every slot at once. Because no slot ever goes from occupied back to
// empty on its own, a probe may stop at the first empty slot: a key cannot
// live beyond it.
package directory

import (
	"fmt"

	"github.com/dmitrijs2005/ticketsys/internal/common"
)

// DefaultCapacity is the slot count used when none is configured.
const DefaultCapacity = 200003

type Table struct {
	slots []User
	live  int
	hash  HashFunc
}

type Option func(*Table)

// WithHash replaces the default xxhash hasher.
func WithHash(h HashFunc) Option {
	return func(t *Table) {
		if h != nil {
			t.hash = h
		}
	}
}

// New allocates a table with capacity slots.
func New(capacity int, opts ...Option) (*Table, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrorInvalidCapacity, capacity)
	}

	t := &Table{
		slots: make([]User, capacity),
		hash:  XXHash,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Table) home(key string) int {
	return int(t.hash(key) % uint64(len(t.slots)))
}

// FindSlot returns the slot holding key, or the first empty slot on its probe
// sequence if key is absent. ok is false when every slot was probed without
// finding either.
func (t *Table) FindSlot(key string) (idx int, ok bool) {
	n := len(t.slots)
	idx = t.home(key)
	for i := 0; i < n; i++ {
		s := &t.slots[idx]
		if !s.occupied || s.Username == key {
			return idx, true
		}
		idx++
		if idx == n {
			idx = 0
		}
	}
	return -1, false
}

// Lookup returns the live record for username.
func (t *Table) Lookup(username string) (*User, bool) {
	key := Truncate(username, MaxUsernameLen)
	idx, ok := t.FindSlot(key)
	if !ok || !t.slots[idx].occupied {
		return nil, false
	}
	return &t.slots[idx], true
}

// Insert creates a record. It returns common.ErrorConflict when the username
// is taken and common.ErrorCapacity when no slot is left.
func (t *Table) Insert(username, password, name, mail string, privilege int) (*User, error) {
	key := Truncate(username, MaxUsernameLen)
	idx, ok := t.FindSlot(key)
	if !ok {
		return nil, common.ErrorCapacity
	}

	s := &t.slots[idx]
	if s.occupied {
		return nil, fmt.Errorf("%w: %s", common.ErrorConflict, key)
	}

	*s = User{Username: key, Privilege: privilege, occupied: true}
	s.SetPassword(password)
	s.SetName(name)
	s.SetMail(mail)
	t.live++

	return s, nil
}

// Reset empties every slot.
func (t *Table) Reset() {
	clear(t.slots)
	t.live = 0
}

// Len reports the number of live records.
func (t *Table) Len() int { return t.live }

// Cap reports the number of slots.
func (t *Table) Cap() int { return len(t.slots) }

type Stats struct {
	Live       int
	Capacity   int
	LoadFactor float64
	// MaxProbe is the largest distance from a record's home slot to the slot
	// it occupies.
	MaxProbe int
}

// Stats walks the whole table; it is meant for diagnostics, not the command path.
func (t *Table) Stats() Stats {
	n := len(t.slots)
	st := Stats{Live: t.live, Capacity: n, LoadFactor: float64(t.live) / float64(n)}
	for i := range t.slots {
		if !t.slots[i].occupied {
			continue
		}
		d := i - t.home(t.slots[i].Username)
		if d < 0 {
			d += n
		}
		st.MaxProbe = max(st.MaxProbe, d)
	}
	return st
}
