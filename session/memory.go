// This file is part of GopherDMG.
//
// GopherDMG is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDMG is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDMG.  If not, see <https://www.gnu.org/licenses/>.

package session

import (
	"sort"
	"sync"
	"time"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/random"
)

// the range of ids allocated by default. seven digit numbers
const (
	defaultLo = 1_000_000
	defaultHi = 9_999_999
)

// the number of times allocation is attempted before giving up
const maxAttempts = 1000

// Memory is an in-process implementation of the Registry interface.
type Memory struct {
	crit     sync.Mutex
	sessions map[ID]Session

	rnd *random.Random
	lo  int
	hi  int

	// returns the time to be used as the creation time of a new session
	now func() time.Time
}

// NewMemory is the preferred method of initialisation for the Memory type.
// A nil Random instance will cause a time-seeded instance to be created.
func NewMemory(rnd *random.Random) *Memory {
	if rnd == nil {
		rnd = random.NewRandom()
	}
	return &Memory{
		sessions: make(map[ID]Session),
		rnd:      rnd,
		lo:       defaultLo,
		hi:       defaultHi,
		now:      time.Now,
	}
}

// SetRange changes the half-open interval from which ids are allocated.
// Intended for testing allocation exhaustion.
func (reg *Memory) SetRange(lo int, hi int) {
	reg.crit.Lock()
	defer reg.crit.Unlock()
	reg.lo = lo
	reg.hi = hi
}

// Create implements the Registry interface.
func (reg *Memory) Create() (Session, error) {
	reg.crit.Lock()
	defer reg.crit.Unlock()

	for range maxAttempts {
		id := ID(reg.rnd.Range(reg.lo, reg.hi))
		if _, ok := reg.sessions[id]; ok {
			continue // for loop
		}

		s := newSession(id, reg.now())
		reg.sessions[id] = s
		return s, nil
	}

	return Session{}, curated.Errorf(Exhausted, maxAttempts)
}

// Exists implements the Registry interface.
func (reg *Memory) Exists(id ID) bool {
	reg.crit.Lock()
	defer reg.crit.Unlock()
	_, ok := reg.sessions[id]
	return ok
}

// Get implements the Registry interface.
func (reg *Memory) Get(id ID) (Session, error) {
	reg.crit.Lock()
	defer reg.crit.Unlock()
	s, ok := reg.sessions[id]
	if !ok {
		return Session{}, curated.Errorf(NotFound, id)
	}
	return s, nil
}

// Destroy implements the Registry interface.
func (reg *Memory) Destroy(id ID) error {
	reg.crit.Lock()
	defer reg.crit.Unlock()
	if _, ok := reg.sessions[id]; !ok {
		return curated.Errorf(NotFound, id)
	}
	delete(reg.sessions, id)
	return nil
}

// List implements the Registry interface.
func (reg *Memory) List() []Session {
	reg.crit.Lock()
	defer reg.crit.Unlock()

	l := make([]Session, 0, len(reg.sessions))
	for _, s := range reg.sessions {
		l = append(l, s)
	}
	sort.Slice(l, func(i, j int) bool {
		return l[i].ID < l[j].ID
	})

	return l
}
