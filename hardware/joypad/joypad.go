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

package joypad

import (
	"strings"
)

// Address of the joypad register in the memory map.
const Address uint16 = 0xff00

// selection bits in the upper nibble. active low
const (
	selectAction    = 0x20
	selectDirection = 0x10
)

const (
	upperMask = 0xf0
	lowerMask = 0x0f

	// the lower nibble when no button is pressed or when no group is
	// selected
	released = 0x0f
)

// action group bits of the lower nibble
const (
	buttonA      = 0x01
	buttonB      = 0x02
	buttonSelect = 0x04
	buttonStart  = 0x08
)

// direction group bits of the lower nibble
const (
	padRight = 0x01
	padLeft  = 0x02
	padUp    = 0x04
	padDown  = 0x08
)

// Group is the group of buttons selected by the upper nibble of the register.
type Group int

// List of valid Group values.
const (
	NoGroup Group = iota
	ActionGroup
	DirectionGroup
)

func (g Group) String() string {
	switch g {
	case ActionGroup:
		return "action"
	case DirectionGroup:
		return "direction"
	}
	return "none"
}

// Selected returns the group selected by the register value. The action
// group is checked first and so takes priority if both selection bits are
// low.
func Selected(reg uint8) Group {
	if reg&selectAction == 0 {
		return ActionGroup
	}
	if reg&selectDirection == 0 {
		return DirectionGroup
	}
	return NoGroup
}

// Snapshot is the state of every button on the controller at a moment in
// time. A true value is a pressed button.
type Snapshot struct {
	Up     bool `json:"up"`
	Down   bool `json:"down"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	A      bool `json:"a"`
	B      bool `json:"b"`
	Start  bool `json:"start"`
	Select bool `json:"select"`
}

// String lists the pressed buttons.
func (s Snapshot) String() string {
	var p []string
	add := func(pressed bool, name string) {
		if pressed {
			p = append(p, name)
		}
	}
	add(s.Up, "up")
	add(s.Down, "down")
	add(s.Left, "left")
	add(s.Right, "right")
	add(s.A, "a")
	add(s.B, "b")
	add(s.Start, "start")
	add(s.Select, "select")

	if len(p) == 0 {
		return "released"
	}
	return strings.Join(p, " ")
}

// Nibble returns the active low state of the buttons in the group.
func (s Snapshot) Nibble(g Group) uint8 {
	n := uint8(released)

	press := func(pressed bool, bit uint8) {
		if pressed {
			n &^= bit
		}
	}

	switch g {
	case ActionGroup:
		press(s.Start, buttonStart)
		press(s.Select, buttonSelect)
		press(s.B, buttonB)
		press(s.A, buttonA)
	case DirectionGroup:
		press(s.Down, padDown)
		press(s.Up, padUp)
		press(s.Left, padLeft)
		press(s.Right, padRight)
	}

	return n
}

// Update returns the new value of the register for the snapshot. The upper
// nibble of the register is preserved and the lower nibble replaced with the
// state of the selected group.
func Update(reg uint8, s Snapshot) uint8 {
	return reg&upperMask | s.Nibble(Selected(reg))&lowerMask
}
