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

package memory

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/jetsetilly/gopherdmg/logger"
)

// Size of the address space of each instance.
const Size = 0x10000

// Store is an in-process register store. Instances are created the first
// time they are addressed, with every byte zero.
type Store struct {
	crit      sync.Mutex
	instances map[int][]uint8
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore() *Store {
	return &Store{
		instances: make(map[int][]uint8),
	}
}

// instance returns the memory for the instance, creating it if required. The
// critical section must be held.
func (s *Store) instance(instance int) []uint8 {
	m, ok := s.instances[instance]
	if !ok {
		m = make([]uint8, Size)
		s.instances[instance] = m
	}
	return m
}

// Peek implements the Bus interface.
func (s *Store) Peek(_ context.Context, instance int, address uint16) (uint8, error) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.instance(instance)[address], nil
}

// Poke implements the Bus interface.
func (s *Store) Poke(_ context.Context, instance int, address uint16, value uint8) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.instance(instance)[address] = value
	return nil
}

// Instances returns the number of instances that have been created.
func (s *Store) Instances() int {
	s.crit.Lock()
	defer s.crit.Unlock()
	return len(s.instances)
}

// ServeHTTP implements the http.Handler interface.
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	instance, err := strconv.Atoi(parts[0])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	address, err := strconv.Atoi(parts[1])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	length := 1
	if l := r.URL.Query().Get("len"); l != "" {
		length, err = strconv.Atoi(l)
		if err != nil || length < 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	if address < 0 || address >= Size || length > Size-address {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data := make([]byte, length)
		s.crit.Lock()
		copy(data, s.instance(instance)[address:])
		s.crit.Unlock()

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(length))
		w.Write(data)

	case http.MethodPost:
		// read the body before taking the critical section. a short body
		// writes only the bytes that were sent
		data, err := io.ReadAll(io.LimitReader(r.Body, int64(length)))
		if err != nil {
			logger.Logf(logger.Allow, "memory", "instance %d: %v", instance, err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.crit.Lock()
		copy(s.instance(instance)[address:], data)
		s.crit.Unlock()

		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
