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
	"time"

	"github.com/jetsetilly/gopherdmg/hardware/joypad"
)

// Button on the controller.
type Button int

// List of valid Button values.
const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	Start
	Select
	numButtons
)

// list of ASCII codes for non-alphanumeric keys
const (
	keyCtrlC          = 3
	keyLineFeed       = 10
	keyCarriageReturn = 13
	keyEsc            = 27
	keySpace          = 32
)

// list of codes that follow keyEsc for the cursor keys
const (
	escCursor      = '['
	cursorUp       = 'A'
	cursorDown     = 'B'
	cursorForward  = 'C'
	cursorBackward = 'D'
)

// decode bytes read from a raw terminal into button presses. quit is true if
// the user asked to quit. the remainder is any incomplete escape sequence at
// the end of the input and should be prepended to the next read
func decode(b []byte) (presses []Button, quit bool, remainder []byte) {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case keyCtrlC, 'q', 'Q':
			return presses, true, nil
		case 'x', 'X':
			presses = append(presses, A)
		case 'z', 'Z':
			presses = append(presses, B)
		case keyCarriageReturn, keyLineFeed:
			presses = append(presses, Start)
		case keySpace:
			presses = append(presses, Select)
		case keyEsc:
			if i+1 >= len(b) || (b[i+1] == escCursor && i+2 >= len(b)) {
				return presses, false, b[i:]
			}
			if b[i+1] != escCursor {
				continue
			}
			switch b[i+2] {
			case cursorUp:
				presses = append(presses, Up)
			case cursorDown:
				presses = append(presses, Down)
			case cursorForward:
				presses = append(presses, Right)
			case cursorBackward:
				presses = append(presses, Left)
			}
			i += 2
		}
	}
	return presses, false, nil
}

// terminals report key presses and auto-repeats but not key releases. a
// button is held for a short time after the most recent press of its key
type held struct {
	hold time.Duration
	seen [numButtons]time.Time
}

func (h *held) press(b Button, now time.Time) {
	h.seen[b] = now
}

func (h *held) pressed(b Button, now time.Time) bool {
	return !h.seen[b].IsZero() && now.Sub(h.seen[b]) < h.hold
}

func (h *held) snapshot(now time.Time) joypad.Snapshot {
	return joypad.Snapshot{
		Up:     h.pressed(Up, now),
		Down:   h.pressed(Down, now),
		Left:   h.pressed(Left, now),
		Right:  h.pressed(Right, now),
		A:      h.pressed(A, now),
		B:      h.pressed(B, now),
		Start:  h.pressed(Start, now),
		Select: h.pressed(Select, now),
	}
}
