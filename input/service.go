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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jetsetilly/gopherdmg/logger"
)

// Service exposes a Translator over HTTP. The only route is POST /{id} with
// a JSON snapshot as the body. The id is the memory instance of the machine.
type Service struct {
	tr  *Translator
	mux *http.ServeMux
}

// NewService is the preferred method of initialisation for the Service type.
func NewService(tr *Translator) *Service {
	svc := &Service{
		tr:  tr,
		mux: http.NewServeMux(),
	}
	svc.mux.HandleFunc("POST /{id}", svc.apply)
	return svc
}

// ServeHTTP implements the http.Handler interface.
func (svc *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.mux.ServeHTTP(w, r)
}

type applied struct {
	OK   bool  `json:"ok"`
	FF00 uint8 `json:"ff00"`
}

type failed struct {
	Error string `json:"error"`
}

func (svc *Service) apply(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		reply(w, http.StatusBadRequest, failed{Error: "bad instance"})
		return
	}

	s, _, err := ReadSnapshot(r.Body)
	if err != nil {
		reply(w, http.StatusBadRequest, failed{Error: err.Error()})
		return
	}

	v, err := svc.tr.Apply(r.Context(), id, s)
	if err != nil {
		logger.Logf(logger.Allow, "input", "instance %d: %v", id, err)
		reply(w, http.StatusInternalServerError, failed{Error: "failed to update FF00"})
		return
	}

	reply(w, http.StatusOK, applied{OK: true, FF00: v})
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
