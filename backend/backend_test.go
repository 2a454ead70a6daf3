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

package backend_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/test"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		test.ExpectEquality(t, r.Method, http.MethodGet)
		test.ExpectEquality(t, r.URL.Path, "/debug/1234567")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"PC":256}`)
	}))
	defer srv.Close()

	c := backend.NewClient("cpu", srv.URL+"/", time.Second)
	data, hdr, err := c.Get(context.Background(), "/debug/1234567")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), `{"PC":256}`)
	test.ExpectEquality(t, hdr.Get("Content-Type"), "application/json")
}

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		test.ExpectEquality(t, r.Method, http.MethodPost)
		test.ExpectEquality(t, r.Header.Get("Content-Type"), "application/octet-stream")
		b, _ := io.ReadAll(r.Body)
		test.ExpectEquality(t, string(b), "\x01\x02")
		io.WriteString(w, "OK")
	}))
	defer srv.Close()

	c := backend.NewClient("cartridge", srv.URL, time.Second)
	data, err := c.Post(context.Background(), "/1/load", "application/octet-stream", []byte{1, 2})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "OK")
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such cpu", http.StatusNotFound)
	}))
	defer srv.Close()

	c := backend.NewClient("cpu", srv.URL, time.Second)
	_, err := c.Post(context.Background(), "/1/step", "", nil)
	test.DemandFailure(t, err)

	se, ok := backend.AsStatus(err)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, se.Code, http.StatusNotFound)
	test.ExpectEquality(t, se.Text, "no such cpu")
	test.ExpectEquality(t, se.Component, "cpu")
	test.ExpectEquality(t, err.Error(), "cpu: status 404: no such cpu")

	// the status error survives being wrapped by a curated error
	wrapped := curated.Errorf("input: %v", err)
	_, ok = backend.AsStatus(wrapped)
	test.ExpectSuccess(t, ok)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.NewClient("ppu", url, time.Second)
	_, _, err := c.Get(context.Background(), "/1/framebuffer")
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, backend.Unavailable))

	_, ok := backend.AsStatus(err)
	test.ExpectFailure(t, ok)
}

func TestTimeout(t *testing.T) {
	release := make(chan bool)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := backend.NewClient("ppu", srv.URL, 50*time.Millisecond)
	_, _, err := c.Get(context.Background(), "/1/framebuffer")
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, backend.Unavailable))
	test.ExpectSuccess(t, errors.Is(err, context.DeadlineExceeded))
}

func TestStreamCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("first"))
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := backend.NewClient("ppu", srv.URL, 0)
	resp, err := c.Stream(ctx, http.MethodGet, "/1/framebuffer", "", nil)
	test.DemandSuccess(t, err)
	defer resp.Body.Close()

	b := make([]byte, 5)
	_, err = io.ReadFull(resp.Body, b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "first")

	// cancelling the caller's context abandons the stream
	cancel()
	_, err = io.ReadAll(resp.Body)
	test.ExpectFailure(t, err)
}
