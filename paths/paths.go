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

package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/gopherdmg/curated"
)

// the base path for all resources if it is present in the current directory
const localConfigDir = ".gopherdmg"

// the base path for all resources inside the user's config directory
const userConfigDir = "gopherdmg"

// ResourcePath returns the path of the resource inside the config directory.
// The sub-directory and resource may both be empty.
func ResourcePath(subPth string, resource string) (string, error) {
	base, err := getBasePath()
	if err != nil {
		return "", curated.Errorf("paths: %v", err)
	}

	pth := filepath.Join(base, subPth)
	if _, err := os.Stat(pth); err != nil {
		if err := os.MkdirAll(pth, 0o700); err != nil {
			return "", curated.Errorf("paths: %v", err)
		}
	}

	return filepath.Join(pth, resource), nil
}

func getBasePath() (string, error) {
	if fi, err := os.Stat(localConfigDir); err == nil && fi.IsDir() {
		return localConfigDir, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, userConfigDir), nil
}
