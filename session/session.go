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
	"fmt"
	"strconv"
	"time"
)

// Error patterns.
const (
	NotFound  = "session: %d not found"
	Exhausted = "session: cannot allocate id after %d attempts"
)

// ID identifies a session.
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseID converts the string form of an ID. It is used to decode the id
// segment of a request path.
func ParseID(s string) (ID, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("session: invalid id (%s)", s)
	}
	return ID(v), nil
}

// Components are the instance references used to address the session's
// machine in each of the backend services. Provisioning of the instances is
// the job of the services themselves: they create an instance the first time
// a reference is used.
type Components struct {
	CPU       int `json:"cpu"`
	PPU       int `json:"ppu"`
	Cartridge int `json:"cartridge"`
	Memory    int `json:"memory"`
}

// Session is a single emulated machine.
type Session struct {
	ID         ID         `json:"session_id"`
	EmulatorID int        `json:"emulator_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Components Components `json:"components"`
}

// newSession creates a session with component references derived from the
// id. The emulator id and every component reference is the session id.
func newSession(id ID, createdAt time.Time) Session {
	ref := int(id)
	return Session{
		ID:         id,
		EmulatorID: ref,
		CreatedAt:  createdAt,
		Components: Components{
			CPU:       ref,
			PPU:       ref,
			Cartridge: ref,
			Memory:    ref,
		},
	}
}

// Registry is the interface to the collection of live sessions.
type Registry interface {
	// Create allocates a new session with a unique id.
	Create() (Session, error)

	// Exists returns true if the id refers to a live session. It has no
	// side effects.
	Exists(id ID) bool

	// Get returns the session for the id. Returns an error with the NotFound
	// pattern if the session does not exist.
	Get(id ID) (Session, error)

	// Destroy removes the session. Returns an error with the NotFound
	// pattern if the session does not exist.
	Destroy(id ID) error

	// List returns a copy of all live sessions ordered by id.
	List() []Session
}
