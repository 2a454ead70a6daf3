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
	"fmt"
	"sort"
	"strings"
	"sync"
)

// the command line stack is used by all Disk instances. it's a stack so that
// a mode can push its own preferences and pop them when it is finished.
var commandLineStack []map[string]string
var commandLineCrit sync.Mutex

// PushCommandLineStack forwards command line preferences to the prefs package.
// The string is a list of key/value pairs separated by semi-colons. The key
// and value are separated by a double colon. For example:
//
//	gateway.ppu::http://localhost:8081; input.serialise::true
func PushCommandLineStack(prefs string) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	cl := make(map[string]string)
	commandLineStack = append(commandLineStack, cl)

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.SplitN(p, "::", 2)
		if len(kv) == 2 {
			cl[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
}

// PopCommandLineStack returns the unused preferences on the top of the stack,
// in the same format as accepted by PushCommandLineStack(), and removes them
// from the stack. An empty string means that every preference was used.
func PopCommandLineStack() string {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return ""
	}

	popped := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%s; ", key, popped[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}

// SizeCommandLineStack returns the number of entries in the command line
// stack.
func SizeCommandLineStack() int {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()
	return len(commandLineStack)
}

// GetCommandLinePref returns the value for the key in the top of the command
// line stack. The entry is removed so that it can only be used once.
func GetCommandLinePref(key string) (bool, string) {
	commandLineCrit.Lock()
	defer commandLineCrit.Unlock()

	if len(commandLineStack) == 0 {
		return false, ""
	}

	cl := commandLineStack[len(commandLineStack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}

	return false, ""
}
