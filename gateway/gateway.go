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
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/cartridgeloader"
	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
	"github.com/jetsetilly/gopherdmg/input"
	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/session"
)

// Gateway routes requests for sessions to the component services. Create
// with NewGateway().
type Gateway struct {
	reg session.Registry

	cpu       *backend.Client
	ppu       *backend.Client
	cartridge *backend.Client
	input     Forwarder

	loader *cartridgeloader.Loader

	mux     *http.ServeMux
	handler http.Handler
}

// NewGateway is the preferred method of initialisation for the Gateway type.
// The preferences are read once and should be frozen before the call.
func NewGateway(reg session.Registry, p *Preferences) (*Gateway, error) {
	timeout := p.Timeout.Value()

	gw := &Gateway{
		reg:       reg,
		cpu:       backend.NewClient("cpu", p.CPU.String(), timeout),
		ppu:       backend.NewClient("ppu", p.PPU.String(), timeout),
		cartridge: backend.NewClient("cartridge", p.Cartridge.String(), timeout),
		mux:       http.NewServeMux(),
	}

	if strings.TrimSpace(p.Input.String()) == "" {
		mem := memory.NewClient(p.Memory.String(), timeout)
		gw.input = NewLocalInput(input.NewTranslator(mem, p.Serialise.Value()))
		logger.Logf(logger.Allow, "gateway", "input translated locally (serialised: %v)", p.Serialise.Value())
	} else {
		gw.input = NewRemoteInput(backend.NewClient("input", p.Input.String(), timeout))
		logger.Logf(logger.Allow, "gateway", "input forwarded to %s", p.Input.String())
	}

	var err error
	gw.loader, err = cartridgeloader.NewLoader(p.Unpack.Value(), p.Cache.Value())
	if err != nil {
		return nil, curated.Errorf("gateway: %v", err)
	}

	gw.mux.HandleFunc("POST /{$}", gw.create)
	gw.mux.HandleFunc("GET /{id}", gw.info)
	gw.mux.HandleFunc("DELETE /{id}", gw.destroy)
	gw.mux.HandleFunc("GET /{id}/framebuffer", gw.framebuffer)
	gw.mux.HandleFunc("POST /{id}/input", gw.postInput)
	gw.mux.HandleFunc("POST /{id}/load", gw.load)
	gw.mux.HandleFunc("POST /{id}/step", gw.step)
	gw.mux.HandleFunc("POST /{id}/reset", gw.reset)
	gw.mux.HandleFunc("GET /{id}/debug", gw.debug)
	gw.addDebugRoutes()

	gw.handler = cors.New(cors.Options{
		AllowedOrigins: p.AllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(gw.mux)

	return gw, nil
}

// ServeHTTP implements the http.Handler interface.
func (gw *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gw.handler.ServeHTTP(w, r)
}
