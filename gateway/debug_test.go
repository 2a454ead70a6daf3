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

package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherdmg/gateway"
	"github.com/jetsetilly/gopherdmg/test"
	"github.com/jetsetilly/gopherdmg/version"
)

func TestDebugSurface(t *testing.T) {
	e := newEnv(t, nil)
	s := e.create(t)

	r := e.do(http.MethodGet, "/_debug/version", nil)
	test.ExpectEquality(t, r.code, http.StatusOK)
	test.ExpectEquality(t, strings.TrimSpace(string(r.body)), version.String())

	r = e.do(http.MethodGet, "/_debug/log?n=1000", nil)
	test.ExpectEquality(t, r.code, http.StatusOK)
	test.ExpectSuccess(t, strings.Contains(string(r.body), "session "+s.ID.String()+" created"))

	r = e.do(http.MethodGet, "/_debug/log?n=none", nil)
	test.ExpectEquality(t, r.code, http.StatusBadRequest)

	r = e.do(http.MethodGet, "/_debug/registry", nil)
	test.ExpectEquality(t, r.code, http.StatusOK)
	test.ExpectSuccess(t, strings.Contains(string(r.body), "digraph"))
	test.ExpectSuccess(t, strings.Contains(string(r.body), s.ID.String()))

	test.ExpectEquality(t, e.hits(), int64(0))
}

func TestCORS(t *testing.T) {
	e := newEnv(t, func(_ *env, p *gateway.Preferences) {
		test.DemandSuccess(t, p.Origins.Set("http://localhost:3000, http://example.com"))
	})

	get := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/_debug/version", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		e.gw.ServeHTTP(rec, req)
		return rec
	}

	rec := get("http://example.com")
	test.ExpectEquality(t, rec.Code, http.StatusOK)
	test.ExpectEquality(t, rec.Header().Get("Access-Control-Allow-Origin"), "http://example.com")

	rec = get("http://elsewhere.com")
	test.ExpectEquality(t, rec.Header().Get("Access-Control-Allow-Origin"), "")

	// preflight for a JSON post of input
	req := httptest.NewRequest(http.MethodOptions, "/1234567/input", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec = httptest.NewRecorder()
	e.gw.ServeHTTP(rec, req)
	test.ExpectEquality(t, rec.Header().Get("Access-Control-Allow-Origin"), "http://localhost:3000")
	test.ExpectSuccess(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost))
	test.ExpectEquality(t, e.hits(), int64(0))
}
