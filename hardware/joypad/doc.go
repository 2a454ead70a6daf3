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

// Package joypad implements the bit logic of the joypad register at address
// 0xff00.
//
// The register is split into two nibbles. The upper nibble contains the
// selection bits, written by the program running on the CPU. Bit 5 selects
// the action buttons (start, select, B, A) and bit 4 selects the direction
// pad (down, up, left, right). Selection is active low.
//
// The lower nibble is the state of the selected group of buttons, also
// active low: a zero bit is a pressed button.
//
// If neither group is selected the lower nibble is 0b1111. If both groups
// are selected then the action buttons are reported. The hardware is
// ambiguous in this case and we choose the group that is checked first.
//
// This package performs no I/O. The read-modify-write of the register is
// the job of the input package.
package joypad
