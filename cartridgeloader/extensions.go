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

package cartridgeloader

import (
	"path"
	"strings"
)

// FileExtensions is the list of file extensions that are recognised as
// cartridge data when searching an archive.
var FileExtensions = [...]string{".GB", ".GBC", ".BIN", ".ROM"}

// IsCartridgeFile returns true if the filename has one of the recognised file
// extensions. Alphabetic characters can be in upper or lower case or a mixture
// of both.
func IsCartridgeFile(filename string) bool {
	ext := strings.ToUpper(path.Ext(filename))
	for _, e := range FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
