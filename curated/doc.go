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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Packages that want callers to recognise a failure declare
// the pattern as an exported string constant. For example, the session
// package declares:
//
//	const NotFound = "session: %d not found"
//
// and a caller can test for it without caring about the id in the message:
//
//	if curated.Is(err, session.NotFound) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf(session.NotFound, 10)
//	f := curated.Errorf("gateway: %v", e)
//
//	curated.Has(f, session.NotFound) // true
//	curated.Is(f, session.NotFound)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of curated errors as 'expected' and other
// errors as 'unexpected'. The gateway uses this distinction to decide
// between relaying a failure to the client and reporting an internal error.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts:
//
//	curated.Errorf("memory: %v", curated.Errorf("memory: read failed"))
//
// prints as "memory: read failed" and not "memory: memory: read failed".
//
// Chains are composed of parts separated by the sub-string ': ' as suggested
// on p239 of "The Go Programming Language" (Donovan, Kernighan).
//
// Curated errors also implement Unwrap() so that any error values placed in
// the chain are reachable by errors.Is() and errors.As() from the standard
// library. This matters for context.DeadlineExceeded in particular.
package curated
