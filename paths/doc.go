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

// Package paths contains functions to prepare paths to GopherDMG resources,
// such as the preferences file.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following returns the path
// to the preferences file:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// The policy of ResourcePath() is simple: if the directory ".gopherdmg" is
// present in the current directory then that is the base path. If it is not
// present then the user's config directory, as reported by os.UserConfigDir(),
// is used. On a modern Linux system the path in the example above will be:
//
//	/home/user/.config/gopherdmg/preferences
//
// Directories are created as required. The file itself is never created.
package paths
