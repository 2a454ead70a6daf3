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

package poller

import (
	"fmt"
	"sync"
	"time"
)

// Stats of a running Poller.
type Stats struct {
	Frames   int
	Failures int
	Rejected int
	Inputs   int

	// frames per second measured over the most recent complete second
	FPS float64
}

func (s Stats) String() string {
	return fmt.Sprintf("%.1f fps, %d frames, %d failures, %d rejected, %d inputs",
		s.FPS, s.Frames, s.Failures, s.Rejected, s.Inputs)
}

// stats are updated by the poller goroutines and read by anything
type stats struct {
	crit sync.Mutex
	Stats

	windowStart  time.Time
	windowFrames int
}

func (s *stats) frame(now time.Time) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.Frames++

	if s.windowStart.IsZero() {
		s.windowStart = now
	}
	s.windowFrames++

	if d := now.Sub(s.windowStart); d >= time.Second {
		s.FPS = float64(s.windowFrames) / d.Seconds()
		s.windowStart = now
		s.windowFrames = 0
	}
}

func (s *stats) failure(rejected bool) {
	s.crit.Lock()
	defer s.crit.Unlock()
	if rejected {
		s.Rejected++
	} else {
		s.Failures++
	}
}

func (s *stats) input() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.Inputs++
}

func (s *stats) get() Stats {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.Stats
}
