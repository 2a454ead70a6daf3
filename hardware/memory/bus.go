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
)

// Error patterns.
const (
	ShortRead = "memory: read of %#04x returned %d bytes"
)

// Bus defines the operations for single byte access to the address space of
// an emulated machine. The instance argument is the machine's memory
// component reference.
type Bus interface {
	Peek(ctx context.Context, instance int, address uint16) (uint8, error)
	Poke(ctx context.Context, instance int, address uint16, value uint8) error
}
