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

package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdmg/test"
)

// run tests in a temporary directory with a local config directory
func chdir(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	t.Cleanup(func() { os.Chdir(wd) })

	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	test.DemandSuccess(t, os.Mkdir(".gopherdmg", 0o700))

	t.Setenv("PORT", "")
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestLaunchErrors(t *testing.T) {
	test.ExpectEquality(t, launch(context.Background(), []string{"-nosuchflag"}), 10)
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION", "-nosuchflag"}), 20)
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION"}), 0)
}

func TestLaunchServers(t *testing.T) {
	chdir(t)

	for _, mode := range []string{"REGSTORE", "INPUT", "GATEWAY"} {
		v := launch(cancelled(), []string{mode, "-prefs", "gateway.addr::127.0.0.1:0"})
		test.ExpectEquality(t, v, 0, mode)
	}

	// bad preference values are an error in the mode
	v := launch(cancelled(), []string{"GATEWAY", "-prefs", "gateway.timeout::0s"})
	test.ExpectEquality(t, v, 20)
}

func TestSavePreferences(t *testing.T) {
	chdir(t)

	v := launch(cancelled(), []string{"GATEWAY", "-saveprefs", "-prefs", "gateway.addr::127.0.0.1:0; input.serialise::true"})
	test.ExpectEquality(t, v, 0)

	data, err := os.ReadFile(".gopherdmg/preferences")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "input.serialise :: true"))
}
