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
	"encoding/json"
	"net/http"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/session"
)

type failure struct {
	Error string `json:"error"`
	Text  string `json:"text,omitempty"`
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Logf(logger.Allow, "gateway", "reply: %v", err)
	}
}

func replyError(w http.ResponseWriter, status int, msg string) {
	reply(w, status, failure{Error: msg})
}

func notFound(w http.ResponseWriter) {
	replyError(w, http.StatusNotFound, "session not found")
}

// relay the failure of a backend request to the client. a failure status
// from the backend is relayed along with the text of the response. a backend
// that could not be reached is an internal error
func relay(w http.ResponseWriter, id session.ID, component string, err error, failed string, unreachable string) {
	logger.Logf(logger.Allow, component, "session %d: %v", id, err)

	if se, ok := backend.AsStatus(err); ok {
		reply(w, se.Code, failure{Error: failed, Text: se.Text})
		return
	}

	replyError(w, http.StatusInternalServerError, unreachable)
}
