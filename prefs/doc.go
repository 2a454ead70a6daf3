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

// Package prefs facilitates the storage of preferential values in the
// application. Values are typed (Bool, String, Int, Duration) and safe for
// concurrent access.
//
// Values are collected in a Disk instance under a key. The Disk decides where
// a value comes from. In order of increasing precedence:
//
//	the value set by the program before calling Load()
//	the preferences file (if the Disk was created with a path)
//	an environment variable bound with BindEnv()
//	the command line preferences stack (see PushCommandLineStack())
//
// The preferences file is a simple text file with one "key :: value" entry
// per line. The first line of the file is a warning not to edit the file by
// hand and is ignored on load.
//
// Once the program has finished setting up, Freeze() can be called on the
// Disk. Any subsequent attempt to set one of its values will fail.
package prefs
