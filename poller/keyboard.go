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
	"context"
	"io"
	"time"

	"github.com/pkg/term"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
)

// Quit is the error pattern returned by Keyboard.Run() when the user asks to
// quit.
const Quit = "poller: quit"

// DefaultHold is the time a button remains pressed after a key press.
const DefaultHold = 300 * time.Millisecond

// how long a read of the terminal waits for input. the terminal measures the
// timeout in tenths of a second
const tick = 100 * time.Millisecond

// Keyboard reads key presses from a terminal in raw mode.
type Keyboard struct {
	t    *term.Term
	hold time.Duration
}

// OpenKeyboard puts the terminal device into raw mode. Close() must be called
// to restore the terminal.
func OpenKeyboard(device string, hold time.Duration) (*Keyboard, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, curated.Errorf("poller: keyboard: %v", err)
	}

	err = t.SetReadTimeout(tick)
	if err != nil {
		t.Restore()
		t.Close()
		return nil, curated.Errorf("poller: keyboard: %v", err)
	}

	return &Keyboard{t: t, hold: hold}, nil
}

// Close restores the terminal to the state it was in before OpenKeyboard().
func (k *Keyboard) Close() error {
	err := k.t.Restore()
	if err != nil {
		k.t.Close()
		return curated.Errorf("poller: keyboard: %v", err)
	}
	return k.t.Close()
}

// Run reads the keyboard and sends a snapshot of the buttons to the channel
// at a regular interval. The channel is closed when Run() returns.
//
// Returns an error with the Quit pattern if the user asked to quit.
func (k *Keyboard) Run(ctx context.Context, out chan<- joypad.Snapshot) error {
	return scan(ctx, k.t, k.hold, out, time.Now)
}

// scan the reader for key presses. a read that returns nothing is a timeout
func scan(ctx context.Context, r io.Reader, hold time.Duration, out chan<- joypad.Snapshot, now func() time.Time) error {
	defer close(out)

	h := held{hold: hold}
	buf := make([]byte, 64)
	var pending []byte

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		n, err := r.Read(buf)
		if err != nil && err != io.EOF {
			return curated.Errorf("poller: keyboard: %v", err)
		}

		if n > 0 {
			presses, quit, remainder := decode(append(pending, buf[:n]...))
			if quit {
				return curated.Errorf(Quit)
			}
			pending = remainder

			t := now()
			for _, b := range presses {
				h.press(b, t)
			}
		} else if err == io.EOF {
			// a timeout on a raw terminal. an incomplete escape sequence
			// will not be completed so it is dropped
			pending = nil
		}

		select {
		case <-ctx.Done():
			return nil
		case out <- h.snapshot(now()):
		}
	}
}
