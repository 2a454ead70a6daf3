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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the separator between key and value in the preferences file.
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	crit sync.Mutex

	// the file path of the preferences file. an empty path means that the
	// values are never loaded from or saved to a file
	path string

	entries map[string]pref

	// environment variable name for each key bound with BindEnv()
	env map[string]string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
		env:     make(map[string]string),
	}
	return dsk, nil
}

// Add preference value to list of values to store/load from Disk.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, keySep) || strings.TrimSpace(key) != key || key == "" {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}

	dsk.entries[key] = p
	return nil
}

// BindEnv associates an environment variable with a key. On Load() the value
// of the environment variable, if it is set and not empty, takes precedence
// over the value in the preferences file.
func (dsk *Disk) BindEnv(key string, variable string) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; !ok {
		return fmt.Errorf("prefs: cannot bind environment to unknown key (%s)", key)
	}

	dsk.env[key] = variable
	return nil
}

// Load preference values from disk, the environment and the command line
// stack.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if dsk.path != "" {
		err := dsk.loadFile()
		if err != nil {
			return err
		}
	}

	for key, variable := range dsk.env {
		if v, ok := os.LookupEnv(variable); ok && v != "" {
			if err := dsk.entries[key].Set(v); err != nil {
				return fmt.Errorf("prefs: %s (from $%s): %w", key, variable, err)
			}
		}
	}

	for key, p := range dsk.entries {
		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s (from command line): %w", key, err)
			}
		}
	}

	return nil
}

func (dsk *Disk) loadFile() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		// a missing preferences file is not an error. the values simply
		// remain as they are
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line == WarningBoilerPlate {
			continue
		}

		kv := strings.SplitN(line, keySep, 2)
		if len(kv) != 2 {
			continue
		}

		// keys in the file that have not been added are ignored. the file
		// may be shared by more than one mode
		if p, ok := dsk.entries[kv[0]]; ok {
			if err := p.Set(kv[1]); err != nil {
				return fmt.Errorf("prefs: %s: %w", kv[0], err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Save current preference values to disk. Keys are written in alphabetical
// order.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if dsk.path == "" {
		return nil
	}

	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, dsk.entries[key].String()))
	}

	err := os.WriteFile(dsk.path, []byte(s.String()), 0o640)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Freeze all values added to the Disk. Subsequent calls to Set() on any of
// the values will fail.
func (dsk *Disk) Freeze() {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	for _, p := range dsk.entries {
		p.freeze()
	}
}

// String returns every key and value, one per line, in alphabetical order.
func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, dsk.entries[key].String()))
	}
	return s.String()
}
