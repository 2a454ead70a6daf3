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

// Package test bundles a bunch of useful functions useful for testing
// purposes, particular useful in conjunction with the standard go test
// harness.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions report with t.Fatalf() and stop the
// test immediately. Both families accept optional tags which are prepended to
// the failure message, useful when the test is a loop over a table of cases.
//
// The success and failure tests understand bool and error values. A nil
// value is a success.
package test
