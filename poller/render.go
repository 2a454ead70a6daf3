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
	"bufio"
	"fmt"
	"io"

	"github.com/jetsetilly/gopherdmg/curated"
)

// ANSI sequences used by Render()
const (
	ansiHome  = "\x1b[H"
	ansiOff   = "\x1b[0m"
	halfBlock = "▀"
)

// Render a frame to a terminal that supports 24bit colour. Each character
// cell is two pixels high, the upper pixel drawn with the pen and the lower
// with the paper. A scale of two draws every other pixel of every other row.
//
// Lines end with a carriage return as well as a line feed because the
// terminal may be in raw mode.
func Render(w io.Writer, frame []byte, scale int) error {
	if len(frame) != FrameSize {
		return curated.Errorf(BadFrame, len(frame))
	}
	if scale < 1 {
		scale = 1
	}

	b := bufio.NewWriter(w)
	b.WriteString(ansiHome)

	pixel := func(x, y int) (uint8, uint8, uint8) {
		i := (y*Width + x) * 4
		return frame[i], frame[i+1], frame[i+2]
	}

	for y := 0; y+scale < Height; y += scale * 2 {
		for x := 0; x < Width; x += scale {
			ur, ug, ub := pixel(x, y)
			lr, lg, lb := pixel(x, y+scale)
			fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s", ur, ug, ub, lr, lg, lb, halfBlock)
		}
		b.WriteString(ansiOff)
		b.WriteString("\r\n")
	}

	return b.Flush()
}
