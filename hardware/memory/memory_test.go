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

package memory_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
	"github.com/jetsetilly/gopherdmg/test"
)

func TestStoreBus(t *testing.T) {
	var bus memory.Bus = memory.NewStore()
	ctx := context.Background()

	v, err := bus.Peek(ctx, 1, 0xff00)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0))

	test.ExpectSuccess(t, bus.Poke(ctx, 1, 0xff00, 0xdf))
	v, err = bus.Peek(ctx, 1, 0xff00)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xdf))

	// instances are isolated from one another
	v, err = bus.Peek(ctx, 2, 0xff00)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0))
}

func TestClientRoundTrip(t *testing.T) {
	store := memory.NewStore()
	srv := httptest.NewServer(store)
	defer srv.Close()

	c := memory.NewClient(srv.URL, time.Second)
	ctx := context.Background()

	test.DemandSuccess(t, c.Poke(ctx, 1234567, 0xff00, 0b11011110))
	v, err := c.Peek(ctx, 1234567, 0xff00)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0b11011110))

	// the write is visible in the store directly
	v, _ = store.Peek(ctx, 1234567, 0xff00)
	test.ExpectEquality(t, v, uint8(0b11011110))

	// the highest address is addressable
	test.ExpectSuccess(t, c.Poke(ctx, 1234567, 0xffff, 0x1f))
	v, err = c.Peek(ctx, 1234567, 0xffff)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x1f))
}

func TestStoreRanges(t *testing.T) {
	store := memory.NewStore()
	srv := httptest.NewServer(store)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/1/65344?len=3", "application/octet-stream", bytes.NewReader([]byte{0x91, 0x00, 0x05}))
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	resp, err = http.Get(srv.URL + "/1/65344?len=3")
	test.DemandSuccess(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)
	test.ExpectEquality(t, string(data), "\x91\x00\x05")
}

func TestStoreBadRequests(t *testing.T) {
	srv := httptest.NewServer(memory.NewStore())
	defer srv.Close()

	for _, p := range []string{"/1", "/x/65280", "/1/x", "/1/65535?len=2", "/1/-1", "/1/0?len=0", "/1/2/3", "/1/1?len=9223372036854775807", "/1/65536"} {
		resp, err := http.Get(srv.URL + p)
		test.DemandSuccess(t, err, p)
		resp.Body.Close()
		test.ExpectEquality(t, resp.StatusCode, http.StatusBadRequest, p)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/1/65280", nil)
	resp, err := http.DefaultClient.Do(req)
	test.DemandSuccess(t, err)
	resp.Body.Close()
	test.ExpectEquality(t, resp.StatusCode, http.StatusMethodNotAllowed)
}

func TestClientFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// two bytes is not a valid response for a single byte read
			w.Write([]byte{1, 2})
		default:
			http.Error(w, "read only", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	c := memory.NewClient(srv.URL, time.Second)

	_, err := c.Peek(context.Background(), 1, 0xff00)
	test.ExpectSuccess(t, curated.Is(err, memory.ShortRead))

	err = c.Poke(context.Background(), 1, 0xff00, 0)
	se, ok := backend.AsStatus(err)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, se.Code, http.StatusForbidden)
}
