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

package input

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
)

// BadSnapshot is the error pattern for a request body that is not a valid
// button snapshot.
const BadSnapshot = "input: bad snapshot: %v"

// the largest body that will be considered. a snapshot with every button
// named and pressed is well under this
const maxSnapshot = 1024

// ReadSnapshot reads and decodes a snapshot from the reader. Buttons that
// are not named are released. Unknown names are an error. The raw bytes are
// returned as well as the decoded snapshot.
func ReadSnapshot(r io.Reader) (joypad.Snapshot, []byte, error) {
	var s joypad.Snapshot

	data, err := io.ReadAll(io.LimitReader(r, maxSnapshot+1))
	if err != nil {
		return s, nil, curated.Errorf(BadSnapshot, err)
	}
	if len(data) > maxSnapshot {
		return s, nil, curated.Errorf(BadSnapshot, "too long")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(&s)
	if err != nil {
		return s, nil, curated.Errorf(BadSnapshot, err)
	}

	// only white space may follow the object
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return s, nil, curated.Errorf(BadSnapshot, "unexpected data after object")
	}

	return s, data, nil
}
