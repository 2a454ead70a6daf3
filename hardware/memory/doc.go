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

// Package memory is the interface to the register store: the service that
// holds the address space of every emulated machine. The store is the only
// place where the value of a hardware register lives.
//
// The Bus interface is satisfied by two types. Client talks to a remote
// store over HTTP:
//
//	GET  /{instance}/{address}[?len=n]   returns n bytes (default 1)
//	POST /{instance}/{address}[?len=n]   writes n bytes from the body
//
// Store is an in-process store that implements the same HTTP contract with
// its ServeHTTP() function. It is used by the REGSTORE mode and by tests.
//
// The store offers no transactions. A read followed by a write is two
// independent operations.
package memory
