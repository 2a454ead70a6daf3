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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/input"
	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/session"
)

// lookup the session named in the request path. a reply is written to the
// client if the session does not exist
func (gw *Gateway) lookup(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id, err := session.ParseID(r.PathValue("id"))
	if err != nil {
		notFound(w)
		return session.Session{}, false
	}

	sess, err := gw.reg.Get(id)
	if err != nil {
		notFound(w)
		return session.Session{}, false
	}

	return sess, true
}

func (gw *Gateway) create(w http.ResponseWriter, r *http.Request) {
	sess, err := gw.reg.Create()
	if err != nil {
		logger.Log(logger.Allow, "gateway", err)
		replyError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	logger.Logf(logger.Allow, "gateway", "session %d created", sess.ID)
	reply(w, http.StatusOK, sess)
}

func (gw *Gateway) info(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}
	reply(w, http.StatusOK, sess)
}

func (gw *Gateway) destroy(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	// the session may have been destroyed by another request since the lookup
	err := gw.reg.Destroy(sess.ID)
	if err != nil {
		if curated.Is(err, session.NotFound) {
			notFound(w)
			return
		}
		logger.Log(logger.Allow, "gateway", err)
		replyError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	logger.Logf(logger.Allow, "gateway", "session %d destroyed", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (gw *Gateway) framebuffer(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	path := fmt.Sprintf("/%d/framebuffer", sess.Components.PPU)
	resp, err := gw.ppu.Stream(r.Context(), http.MethodGet, path, "", nil)
	if err != nil {
		relay(w, sess.ID, "ppu", err, "ppu service error", "failed to fetch framebuffer")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "no-store")
	if resp.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(resp.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	// the status has been sent so a failure part way through the copy can
	// only be logged. the client will see a short frame
	_, err = io.Copy(w, resp.Body)
	if err != nil && r.Context().Err() == nil {
		logger.Logf(logger.Allow, "ppu", "session %d: %v", sess.ID, err)
	}
}

func (gw *Gateway) postInput(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	s, raw, err := input.ReadSnapshot(r.Body)
	if err != nil {
		reply(w, http.StatusBadRequest, failure{Error: "invalid input", Text: err.Error()})
		return
	}

	err = gw.input.Forward(r.Context(), sess, raw, s)
	if err != nil {
		// a register store that answered with a failure status is not the
		// status of the session. the store's text is kept
		if curated.Has(err, input.ReadFailed) || curated.Has(err, input.WriteFailed) {
			if se, ok := backend.AsStatus(err); ok {
				logger.Logf(logger.Allow, "input", "session %d: %v", sess.ID, err)
				reply(w, http.StatusBadGateway, failure{Error: "failed to update FF00", Text: se.Text})
				return
			}
		}
		relay(w, sess.ID, "input", err, "input service error", "failed to forward input")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type loaded struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (gw *Gateway) load(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	// the whole of the upload is read before anything is sent to the
	// cartridge service
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Logf(logger.Allow, "cartridge", "session %d: %v", sess.ID, err)
		replyError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	if len(data) == 0 {
		replyError(w, http.StatusBadRequest, "No ROM uploaded")
		return
	}

	cart, err := gw.loader.Load(data)
	if err != nil {
		logger.Logf(logger.Allow, "cartridge", "session %d: %v", sess.ID, err)
		reply(w, http.StatusBadRequest, failure{Error: "Invalid ROM archive", Text: err.Error()})
		return
	}

	path := fmt.Sprintf("/%d/load", sess.Components.Cartridge)
	_, err = gw.cartridge.Post(r.Context(), path, "application/octet-stream", cart.Data)
	if err != nil {
		logger.Logf(logger.Allow, "cartridge", "session %d: %v", sess.ID, err)
		if _, ok := backend.AsStatus(err); ok {
			replyError(w, http.StatusInternalServerError, "Failed to load ROM")
		} else {
			replyError(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	logger.Logf(logger.Allow, "cartridge", "session %d: loaded %s", sess.ID, cart)
	reply(w, http.StatusOK, loaded{Success: true, Message: "ROM loaded"})
}

func (gw *Gateway) step(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	path := fmt.Sprintf("/%d/step", sess.Components.CPU)
	_, err := gw.cpu.Post(r.Context(), path, "", nil)
	if err != nil {
		relay(w, sess.ID, "cpu", err, "CPU step failed", "CPU step error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (gw *Gateway) reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	path := fmt.Sprintf("/%d/reset", sess.Components.CPU)
	_, err := gw.cpu.Post(r.Context(), path, "", nil)
	if err != nil {
		relay(w, sess.ID, "cpu", err, "CPU reset failed", "CPU reset error")
		return
	}

	logger.Logf(logger.Allow, "cpu", "session %d: reset", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (gw *Gateway) debug(w http.ResponseWriter, r *http.Request) {
	sess, ok := gw.lookup(w, r)
	if !ok {
		return
	}

	// the CPU service puts the id after the action for this route
	path := fmt.Sprintf("/debug/%d", sess.Components.CPU)
	data, _, err := gw.cpu.Get(r.Context(), path)
	if err != nil {
		relay(w, sess.ID, "cpu", err, "CPU debug failed", "CPU debug error")
		return
	}

	// the state is not interpreted but it must be JSON
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		logger.Logf(logger.Allow, "cpu", "session %d: debug state is not valid JSON", sess.ID)
		replyError(w, http.StatusInternalServerError, "CPU debug error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
