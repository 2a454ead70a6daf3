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

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is the address the stats server listens on if none is
// given to Launch().
const DefaultAddress = "localhost:12600"

const url = "/debug/statsview"

// Launch the stats server in its own goroutine. An empty address means
// DefaultAddress. The URL of the server is written to output.
func Launch(output io.Writer, address string) {
	if address == "" {
		address = DefaultAddress
	}

	viewer.SetConfiguration(viewer.WithAddr(address))

	go func() {
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", address, url)
}
