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

// Package logger is the central log for the application. Entries are tagged
// by the component that made them ("gateway", "ppu", "memory", etc.) and the
// log is bounded, older entries being discarded once the maximum is reached.
//
// Log entries are made through a Permission. The Allow value is suitable for
// most purposes but a component may want to silence itself in some
// circumstances. The poller for example does not log every missed frame.
package logger
