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

package gateway

import (
	"strings"
	"time"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/prefs"
)

// Preferences for the gateway. Values are loaded from the preferences file,
// then the environment, then the command line stack.
type Preferences struct {
	dsk *prefs.Disk

	// address to listen on. a value with no colon is taken to be a port
	Addr prefs.String

	// base URLs of the component services. an empty Input value means that
	// the input translator runs inside the gateway and talks to the Memory
	// service directly
	CPU       prefs.String
	PPU       prefs.String
	Cartridge prefs.String
	Input     prefs.String
	Memory    prefs.String

	// the longest time any single backend request may take
	Timeout prefs.Duration

	// comma separated list of origins allowed to make cross-origin requests
	Origins prefs.String

	// queue input for the same session so that register updates never
	// interleave
	Serialise prefs.Bool

	// unpack uploaded archives and the number of unpacked archives to keep
	Unpack prefs.Bool
	Cache  prefs.Int
}

// environment variables bound to preference keys
var environment = map[string]string{
	"gateway.addr":      "PORT",
	"gateway.cpu":       "CPU_SERVICE",
	"gateway.ppu":       "PPU_SERVICE",
	"gateway.cartridge": "CART_SERVICE",
	"gateway.input":     "INPUT_SERVICE",
	"gateway.memory":    "MEMORY_SERVICE",
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path means that there is no preferences file.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, curated.Errorf("gateway: %v", err)
	}

	for _, err := range []error{
		p.dsk.Add("gateway.addr", &p.Addr),
		p.dsk.Add("gateway.cpu", &p.CPU),
		p.dsk.Add("gateway.ppu", &p.PPU),
		p.dsk.Add("gateway.cartridge", &p.Cartridge),
		p.dsk.Add("gateway.input", &p.Input),
		p.dsk.Add("gateway.memory", &p.Memory),
		p.dsk.Add("gateway.timeout", &p.Timeout),
		p.dsk.Add("gateway.origins", &p.Origins),
		p.dsk.Add("input.serialise", &p.Serialise),
		p.dsk.Add("cartridge.unpack", &p.Unpack),
		p.dsk.Add("cartridge.cache", &p.Cache),
	} {
		if err != nil {
			return nil, curated.Errorf("gateway: %v", err)
		}
	}

	for key, variable := range environment {
		err = p.dsk.BindEnv(key, variable)
		if err != nil {
			return nil, curated.Errorf("gateway: %v", err)
		}
	}

	p.Timeout.SetHookPre(func(v prefs.Value) error {
		if v.(time.Duration) <= 0 {
			return curated.Errorf("gateway: timeout must be positive")
		}
		return nil
	})

	p.Cache.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return curated.Errorf("gateway: cache size cannot be negative")
		}
		return nil
	})

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Addr.Set(":8080")
	p.CPU.Set("http://cpu_service:8080")
	p.PPU.Set("http://ppu_service:8080")
	p.Cartridge.Set("http://cartridge_service:8080")
	p.Input.Set("http://input_service:8080")
	p.Memory.Set("http://memory_service:8080")
	p.Timeout.Set(5 * time.Second)
	p.Origins.Set("*")
	p.Serialise.Set(false)
	p.Unpack.Set(true)
	p.Cache.Set(16)
}

// Load preferences from the file, the environment and the command line.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to the file.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Freeze the preferences. The values cannot be changed after this.
func (p *Preferences) Freeze() {
	p.dsk.Freeze()
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// ListenAddr returns the Addr value in a form suitable for http.Server.
func (p *Preferences) ListenAddr() string {
	a := p.Addr.String()
	if !strings.Contains(a, ":") {
		return ":" + a
	}
	return a
}

// AllowedOrigins returns the Origins value as a list.
func (p *Preferences) AllowedOrigins() []string {
	var o []string
	for _, s := range strings.Split(p.Origins.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			o = append(o, s)
		}
	}
	return o
}
