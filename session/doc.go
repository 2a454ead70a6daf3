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

// Package session is the registry of emulated machines. Each session is one
// isolated machine, addressed by an integer id, and carries the references
// used to address the machine's components in the backend services.
//
// The Registry interface is what the gateway depends on. Memory is the
// in-process implementation: a map guarded by a single mutex. Registry
// operations never perform I/O so the mutex is never held for longer than a
// map access.
//
// Sessions are not persisted. A restarted process begins with an empty
// registry.
package session
