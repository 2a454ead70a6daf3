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
	"fmt"
	"net/http"
	"strconv"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/version"
)

// number of log entries returned by /_debug/log if the request does not say
const defaultTail = 100

func (gw *Gateway) addDebugRoutes() {
	gw.mux.HandleFunc("GET /_debug/log", gw.debugLog)
	gw.mux.HandleFunc("GET /_debug/version", gw.debugVersion)
	gw.mux.HandleFunc("GET /_debug/registry", gw.debugRegistry)
}

func (gw *Gateway) debugLog(w http.ResponseWriter, r *http.Request) {
	n := defaultTail
	if v := r.URL.Query().Get("n"); v != "" {
		var err error
		n, err = strconv.Atoi(v)
		if err != nil || n < 1 {
			replyError(w, http.StatusBadRequest, "invalid number of entries")
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	logger.Tail(w, n)
}

func (gw *Gateway) debugVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, version.String())
}

// the registry is written as a graphviz document
func (gw *Gateway) debugRegistry(w http.ResponseWriter, r *http.Request) {
	sessions := gw.reg.List()
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Header().Set("Cache-Control", "no-store")
	memviz.Map(w, &sessions)
}
