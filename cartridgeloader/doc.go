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

// Package cartridgeloader prepares uploaded cartridge data for the cartridge
// component.
//
// Data is usually a raw ROM dump and is passed on exactly as it was received.
// Data that is recognised as an archive (ZIP, 7z, RAR, gzip, xz, or a tar
// inside gzip or xz) is unpacked and the first file with a recognised
// extension is used instead. Recognition is by the magic bytes at the start
// of the data. Upload requests have no filename so extensions are never used
// for detection.
//
// The simplest use of the Loader type:
//
//	ld, _ := cartridgeloader.NewLoader(true, 0)
//	cart, err := ld.Load(data)
//
// Unpacked data can be cached, keyed by the SHA-1 hash of the upload, so that
// the same archive uploaded by many sessions is only unpacked once.
package cartridgeloader
