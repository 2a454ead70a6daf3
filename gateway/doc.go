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

// Package gateway is the HTTP front door to the emulated machines. Each
// machine is a session in a session.Registry and every request names the
// session in the first segment of the path.
//
// The gateway holds no machine state. A request for a session that does not
// exist is answered with 404 before any backend is contacted. Otherwise the
// request is forwarded to the component service responsible for it:
//
//	POST   /                  create session
//	GET    /{id}              session information
//	DELETE /{id}              destroy session
//	GET    /{id}/framebuffer  PPU framebuffer, streamed
//	POST   /{id}/input        joypad snapshot, applied by the input translator
//	POST   /{id}/load         cartridge upload, forwarded to the cartridge service
//	POST   /{id}/step         single step of the CPU
//	POST   /{id}/reset        reset of the CPU
//	GET    /{id}/debug        CPU state, relayed as is
//
// A failure reported by a backend is relayed with the backend's status. A
// backend that cannot be reached, or which does not answer in time, is
// reported with status 500. The gateway never retries.
//
// The paths under /_debug/ show the log, the version and the contents of the
// registry.
package gateway
