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

package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jetsetilly/gopherdmg/curated"
)

// Unavailable is the error pattern for a component that could not be reached.
// The values are the component name and the underlying error.
const Unavailable = "%s: unavailable: %v"

// the maximum amount of a failed response that is kept as the error text
const maxErrorText = 4096

// StatusError is returned when a component responds with a status other than
// 2xx.
type StatusError struct {
	Component string
	Code      int
	Text      string
}

func (e *StatusError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s: status %d", e.Component, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Component, e.Code, e.Text)
}

// AsStatus returns the StatusError in the error chain, if there is one.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// the transport is shared by all clients. many sessions talk to the same
// component at the same time so the number of idle connections per host is
// raised from the default of two
var transport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        256,
	MaxIdleConnsPerHost: 64,
	IdleConnTimeout:     90 * time.Second,
}

// Client is an HTTP client for a single component.
type Client struct {
	component string
	base      string
	timeout   time.Duration
	http      *http.Client
}

// NewClient is the preferred method of initialisation for the Client type.
// The component name is used in error messages and log entries. The base URL
// is prefixed to every request path. A timeout of zero means that requests
// are bounded only by the context.
func NewClient(component string, base string, timeout time.Duration) *Client {
	return &Client{
		component: component,
		base:      strings.TrimSuffix(base, "/"),
		timeout:   timeout,
		http:      &http.Client{Transport: transport},
	}
}

// Component returns the name of the component.
func (c *Client) Component() string {
	return c.component
}

// URL returns the full URL for the path.
func (c *Client) URL(path string) string {
	return c.base + path
}

// Get sends a GET request and returns the body of a successful response.
func (c *Client) Get(ctx context.Context, path string) ([]byte, http.Header, error) {
	resp, err := c.Stream(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, curated.Errorf(Unavailable, c.component, err)
	}

	return data, resp.Header, nil
}

// Post sends a POST request with the body (which may be nil) and returns the
// body of a successful response.
func (c *Client) Post(ctx context.Context, path string, contentType string, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	resp, err := c.Stream(ctx, http.MethodPost, path, contentType, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, curated.Errorf(Unavailable, c.component, err)
	}

	return data, nil
}

// Stream sends a request and returns the response without reading the body.
// The caller must close the body. The timeout covers reading of the body so
// a stalled stream is eventually abandoned.
//
// A response with a non-success status is consumed and closed, and a
// *StatusError returned.
func (c *Client) Stream(ctx context.Context, method string, path string, contentType string, body io.Reader) (*http.Response, error) {
	cancel := context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		cancel()
		return nil, curated.Errorf(Unavailable, c.component, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, curated.Errorf(Unavailable, c.component, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer cancel()
		defer resp.Body.Close()
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorText))
		return nil, &StatusError{
			Component: c.component,
			Code:      resp.StatusCode,
			Text:      strings.TrimSpace(string(text)),
		}
	}

	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelBody releases the context of the request when the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
