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
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"path"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/nwaples/rardecode/v2"
	"github.com/ulikunitz/xz"

	"github.com/jetsetilly/gopherdmg/curated"
)

func fromZIP(data []byte) (Cartridge, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Cartridge{}, curated.Errorf(Unpackable, ZIP, err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !IsCartridgeFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return Cartridge{}, curated.Errorf(Unpackable, ZIP, err)
		}
		defer rc.Close()

		d, err := limitedRead(ZIP, rc)
		if err != nil {
			return Cartridge{}, err
		}
		return Cartridge{Name: path.Base(f.Name), Data: d}, nil
	}

	return Cartridge{}, curated.Errorf(NoFile, ZIP)
}

func from7z(data []byte) (Cartridge, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Cartridge{}, curated.Errorf(Unpackable, SevenZip, err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !IsCartridgeFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return Cartridge{}, curated.Errorf(Unpackable, SevenZip, err)
		}
		defer rc.Close()

		d, err := limitedRead(SevenZip, rc)
		if err != nil {
			return Cartridge{}, err
		}
		return Cartridge{Name: path.Base(f.Name), Data: d}, nil
	}

	return Cartridge{}, curated.Errorf(NoFile, SevenZip)
}

func fromRAR(data []byte) (Cartridge, error) {
	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return Cartridge{}, curated.Errorf(Unpackable, RAR, err)
	}

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Cartridge{}, curated.Errorf(Unpackable, RAR, err)
		}

		if hdr.IsDir || !IsCartridgeFile(hdr.Name) {
			continue
		}

		d, err := limitedRead(RAR, r)
		if err != nil {
			return Cartridge{}, err
		}
		return Cartridge{Name: path.Base(hdr.Name), Data: d}, nil
	}

	return Cartridge{}, curated.Errorf(NoFile, RAR)
}

// gzip and xz are single stream formats. the stream is either the cartridge
// or a tar archive containing the cartridge
func fromGzip(data []byte) (Cartridge, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return Cartridge{}, curated.Errorf(Unpackable, Gzip, err)
	}
	defer r.Close()

	d, err := limitedRead(Gzip, r)
	if err != nil {
		return Cartridge{}, err
	}

	if isTar(d) {
		return fromTar(Gzip, d)
	}

	// the original filename is optional in the gzip header
	c := Cartridge{Data: d}
	if r.Name != "" {
		c.Name = path.Base(r.Name)
	}
	return c, nil
}

func fromXz(data []byte) (Cartridge, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return Cartridge{}, curated.Errorf(Unpackable, Xz, err)
	}

	d, err := limitedRead(Xz, r)
	if err != nil {
		return Cartridge{}, err
	}

	if isTar(d) {
		return fromTar(Xz, d)
	}

	return Cartridge{Data: d}, nil
}

func fromTar(format Format, data []byte) (Cartridge, error) {
	r := tar.NewReader(bytes.NewReader(data))

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Cartridge{}, curated.Errorf(Unpackable, format, err)
		}

		if hdr.Typeflag != tar.TypeReg || !IsCartridgeFile(hdr.Name) {
			continue
		}

		d, err := io.ReadAll(r)
		if err != nil {
			return Cartridge{}, curated.Errorf(Unpackable, format, err)
		}
		return Cartridge{Name: path.Base(hdr.Name), Data: d}, nil
	}

	return Cartridge{}, curated.Errorf(NoFile, format)
}
