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

// Package version reports the version of the application as recorded by the
// linker or, failing that, by the build information embedded by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "GopherDMG"

// set with -ldflags "-X github.com/jetsetilly/gopherdmg/version.number=v0.1.0"
var number string

var (
	version  string
	revision string
	modified bool
)

// Version returns the version string, the vcs revision and whether this is a
// numbered release.
//
// The version string is "unreleased" if the binary was built from a vcs
// checkout without a version number and "local" if there is no vcs
// information at all, which happens with "go run".
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a single line describing the version, suitable for the
// VERSION mode and the debug surface.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func init() {
	var vcs bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if revision == "" {
		revision = "no revision information"
	} else if modified {
		revision = fmt.Sprintf("%s+dirty", revision)
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
