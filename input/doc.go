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

// Package input translates the button state of a controller into the value
// of the joypad register of an emulated machine.
//
// The register lives in a memory.Bus and is never cached. Every call to
// Translator.Apply() reads the register, works out which button group the
// program has selected, and writes back the register with a new lower nibble.
// The read and the write are separate operations on the bus and so two calls
// for the same machine may interleave. When serialisation is enabled calls
// for the same instance are queued and performed one at a time. Calls for
// different instances are never queued behind one another.
//
// The Service type exposes a Translator over HTTP so that it can be run as
// its own process.
package input
