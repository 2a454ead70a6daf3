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

package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/curated"
)

// Client is an implementation of the Bus interface for a remote register
// store.
type Client struct {
	be *backend.Client
}

// NewClient is the preferred method of initialisation for the Client type.
func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		be: backend.NewClient("memory", base, timeout),
	}
}

func path(instance int, address uint16) string {
	return fmt.Sprintf("/%d/%d", instance, address)
}

// Peek implements the Bus interface.
func (c *Client) Peek(ctx context.Context, instance int, address uint16) (uint8, error) {
	data, _, err := c.be.Get(ctx, path(instance, address))
	if err != nil {
		return 0, err
	}
	if len(data) != 1 {
		return 0, curated.Errorf(ShortRead, address, len(data))
	}
	return data[0], nil
}

// Poke implements the Bus interface.
func (c *Client) Poke(ctx context.Context, instance int, address uint16, value uint8) error {
	_, err := c.be.Post(ctx, path(instance, address), "application/octet-stream", []byte{value})
	return err
}
