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
	"bytes"
)

// Format of uploaded data.
type Format int

// List of valid Format values.
const (
	Raw Format = iota
	ZIP
	SevenZip
	RAR
	Gzip
	Xz
)

func (f Format) String() string {
	switch f {
	case ZIP:
		return "zip"
	case SevenZip:
		return "7z"
	case RAR:
		return "rar"
	case Gzip:
		return "gzip"
	case Xz:
		return "xz"
	}
	return "raw"
}

// magic bytes at the start of each format
var (
	magicZIP      = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZIPEmpty = []byte{0x50, 0x4b, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicRAR      = []byte{0x52, 0x61, 0x72, 0x21, 0x1a, 0x07}
	magicGzip     = []byte{0x1f, 0x8b}
	magicXz       = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// tar archives have the magic string at a fixed offset in the first header
const tarMagicOffset = 257

var magicTar = []byte("ustar")

// Detect the format of the data from the magic bytes at the start. Data that
// is not recognised is Raw.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicZIP) || bytes.HasPrefix(data, magicZIPEmpty):
		return ZIP
	case bytes.HasPrefix(data, magic7z):
		return SevenZip
	case bytes.HasPrefix(data, magicRAR):
		return RAR
	case bytes.HasPrefix(data, magicXz):
		return Xz
	case bytes.HasPrefix(data, magicGzip):
		return Gzip
	}
	return Raw
}

func isTar(data []byte) bool {
	return len(data) > tarMagicOffset+len(magicTar) &&
		bytes.Equal(data[tarMagicOffset:tarMagicOffset+len(magicTar)], magicTar)
}
