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

// Package poller is a client of the gateway. It creates a session, loads a
// cartridge and then pulls framebuffer frames at a fixed cadence while
// pushing changes of joypad state.
//
// A failed frame request is retried after a short backoff rather than at the
// normal cadence so that a struggling backend is not made to struggle more.
// Frames that are not exactly FrameSize bytes long are rejected.
//
// Input is posted only when the state of the buttons changes. The Keyboard
// type turns key presses on a raw terminal into joypad snapshots.
package poller
