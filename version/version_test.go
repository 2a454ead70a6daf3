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

package version_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdmg/version"
	"github.com/jetsetilly/gopherdmg/test"
)

func TestVersion(t *testing.T) {
	v, r, release := version.Version()
	test.ExpectInequality(t, v, "")
	test.ExpectInequality(t, r, "")

	// tests are never built with a version number
	test.ExpectEquality(t, release, false)

	s := version.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, version.ApplicationName))
	test.ExpectSuccess(t, strings.Contains(s, v))
}
