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

// Package backend is the HTTP client used to talk to the emulator component
// services (CPU, PPU, cartridge, memory and input).
//
// Every request is bounded by the client's timeout. The deadline is derived
// from the context passed to the request, which for the gateway is the
// context of the incoming client request, so a client that disconnects also
// cancels the backend request.
//
// Failures come in two forms. If the component could not be reached, or did
// not respond within the timeout, the error has the Unavailable pattern. If
// the component responded with a non-success status the error is a
// *StatusError, which carries the status code and the text of the response
// so that it can be relayed to the client unchanged.
//
// No request is ever retried.
package backend
