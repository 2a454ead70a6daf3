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
	"crypto/sha1"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/logger"
)

// MaxSize is the largest cartridge that will be unpacked from an archive.
const MaxSize = 8 * 1024 * 1024

// Error patterns.
const (
	NoData     = "cartridgeloader: no data"
	NoFile     = "cartridgeloader: %v: no cartridge file in archive"
	TooLarge   = "cartridgeloader: %v: cartridge is larger than %d bytes"
	Unpackable = "cartridgeloader: %v: %v"
)

// Cartridge is the result of a Load() operation. The Data field should be
// treated as read-only because it may be shared with other callers.
type Cartridge struct {
	// the file the data was taken from. empty if the upload was not an
	// archive or the archive format does not record a filename
	Name string

	// the format of the upload
	Format Format

	// hash of the upload. for archives this is not the hash of Data
	Hash string

	Data []byte
}

func (c Cartridge) String() string {
	if c.Name == "" {
		return fmt.Sprintf("%s (%d bytes)", c.Format, len(c.Data))
	}
	return fmt.Sprintf("%s from %s (%d bytes)", c.Name, c.Format, len(c.Data))
}

// Loader unpacks uploaded data.
type Loader struct {
	unpack bool
	cache  *lru.Cache[string, Cartridge]
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// If unpack is false then all data is treated as raw. The cache argument is
// the number of unpacked archives to keep. A value of zero or less disables
// the cache.
func NewLoader(unpack bool, cache int) (*Loader, error) {
	ld := &Loader{
		unpack: unpack,
	}

	if unpack && cache > 0 {
		var err error
		ld.cache, err = lru.New[string, Cartridge](cache)
		if err != nil {
			return nil, curated.Errorf("cartridgeloader: %v", err)
		}
	}

	return ld, nil
}

// Cached returns the number of entries in the cache.
func (ld *Loader) Cached() int {
	if ld.cache == nil {
		return 0
	}
	return ld.cache.Len()
}

// Load the cartridge from the uploaded data. Raw data is returned unchanged
// in the Data field of the Cartridge. Data that looks like an archive but
// cannot be unpacked is treated as raw.
func (ld *Loader) Load(data []byte) (Cartridge, error) {
	if len(data) == 0 {
		return Cartridge{}, curated.Errorf(NoData)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))

	format := Raw
	if ld.unpack {
		format = Detect(data)
	}

	if format == Raw {
		return Cartridge{
			Format: Raw,
			Hash:   hash,
			Data:   data,
		}, nil
	}

	if ld.cache != nil {
		if c, ok := ld.cache.Get(hash); ok {
			return c, nil
		}
	}

	var c Cartridge
	var err error

	switch format {
	case ZIP:
		c, err = fromZIP(data)
	case SevenZip:
		c, err = from7z(data)
	case RAR:
		c, err = fromRAR(data)
	case Gzip:
		c, err = fromGzip(data)
	case Xz:
		c, err = fromXz(data)
	}
	if err != nil {
		// a raw cartridge can begin with the magic bytes of an archive
		// format. if the data cannot be opened as that format then it is
		// used as it is. an archive that opens but holds no usable
		// cartridge is still an error
		if curated.Is(err, Unpackable) {
			logger.Logf(logger.Allow, "cartridgeloader", "%v: using upload as raw data", err)
			return Cartridge{
				Format: Raw,
				Hash:   hash,
				Data:   data,
			}, nil
		}
		return Cartridge{}, err
	}

	c.Format = format
	c.Hash = hash

	logger.Logf(logger.Allow, "cartridgeloader", "unpacked %s", c)

	if ld.cache != nil {
		ld.cache.Add(hash, c)
	}

	return c, nil
}

// read the reader up to MaxSize bytes. the format is used for the error
func limitedRead(format Format, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, curated.Errorf(Unpackable, format, err)
	}
	if len(data) > MaxSize {
		return nil, curated.Errorf(TooLarge, format, MaxSize)
	}
	return data, nil
}
