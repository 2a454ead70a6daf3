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

package random

import (
	"math/rand"
	"sync"
	"time"
)

// Random is a source of random numbers. It is safe to use from more than one
// goroutine.
type Random struct {
	crit sync.Mutex
	rnd  *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
// The sequence of numbers is seeded with the current time.
func NewRandom() *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewZeroSeed creates a Random instance where the sequence of numbers is
// predictable. The seed argument selects the sequence.
func NewZeroSeed(seed int64) *Random {
	return &Random{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative random number in the half-open interval [0,n).
// It panics if n <= 0.
func (rnd *Random) Intn(n int) int {
	rnd.crit.Lock()
	defer rnd.crit.Unlock()
	return rnd.rnd.Intn(n)
}

// Range returns a random number in the half-open interval [lo,hi). It
// panics if hi <= lo.
func (rnd *Random) Range(lo int, hi int) int {
	return lo + rnd.Intn(hi-lo)
}
