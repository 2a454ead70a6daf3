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

package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/session"
)

// Dimensions of the framebuffer. Each pixel is four bytes: red, green, blue,
// alpha.
const (
	Width     = 160
	Height    = 144
	FrameSize = Width * Height * 4
)

// BadFrame is the error pattern for a framebuffer of the wrong length.
const BadFrame = "poller: framebuffer is %d bytes"

// Client of the gateway.
type Client struct {
	be *backend.Client
}

// NewClient is the preferred method of initialisation for the Client type.
func NewClient(gateway string, timeout time.Duration) *Client {
	return &Client{
		be: backend.NewClient("gateway", gateway, timeout),
	}
}

// Create a new session.
func (c *Client) Create(ctx context.Context) (session.Session, error) {
	var s session.Session
	data, err := c.be.Post(ctx, "/", "", nil)
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(data, &s)
	if err != nil {
		return s, curated.Errorf("poller: %v", err)
	}
	return s, nil
}

// Destroy the session.
func (c *Client) Destroy(ctx context.Context, id session.ID) error {
	resp, err := c.be.Stream(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), "", nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Load cartridge data into the session.
func (c *Client) Load(ctx context.Context, id session.ID, data []byte) error {
	_, err := c.be.Post(ctx, fmt.Sprintf("/%d/load", id), "application/octet-stream", data)
	return err
}

// Frame returns the current framebuffer of the session.
func (c *Client) Frame(ctx context.Context, id session.ID) ([]byte, error) {
	data, _, err := c.be.Get(ctx, fmt.Sprintf("/%d/framebuffer", id))
	if err != nil {
		return nil, err
	}
	if len(data) != FrameSize {
		return nil, curated.Errorf(BadFrame, len(data))
	}
	return data, nil
}

// Input sends the snapshot to the session.
func (c *Client) Input(ctx context.Context, id session.ID, s joypad.Snapshot) error {
	var b bytes.Buffer
	err := json.NewEncoder(&b).Encode(s)
	if err != nil {
		return curated.Errorf("poller: %v", err)
	}
	_, err = c.be.Post(ctx, fmt.Sprintf("/%d/input", id), "application/json", b.Bytes())
	return err
}

// Step the CPU of the session by one instruction.
func (c *Client) Step(ctx context.Context, id session.ID) error {
	_, err := c.be.Post(ctx, fmt.Sprintf("/%d/step", id), "", nil)
	return err
}

// Debug returns the CPU state of the session.
func (c *Client) Debug(ctx context.Context, id session.ID) (map[string]any, error) {
	data, _, err := c.be.Get(ctx, fmt.Sprintf("/%d/debug", id))
	if err != nil {
		return nil, err
	}
	var state map[string]any
	err = json.Unmarshal(data, &state)
	if err != nil {
		return nil, curated.Errorf("poller: %v", err)
	}
	return state, nil
}
