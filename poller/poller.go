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
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/logger"
	"github.com/jetsetilly/gopherdmg/session"
)

// Default timings of the frame loop.
const (
	DefaultInterval = 16 * time.Millisecond
	DefaultBackoff  = 200 * time.Millisecond
)

// Poller pulls frames from a session and pushes input to it.
type Poller struct {
	client *Client
	id     session.ID

	// delay between successful frame requests and after a failed request
	Interval time.Duration
	Backoff  time.Duration

	stats stats
}

// NewPoller is the preferred method of initialisation for the Poller type.
func NewPoller(client *Client, id session.ID) *Poller {
	return &Poller{
		client:   client,
		id:       id,
		Interval: DefaultInterval,
		Backoff:  DefaultBackoff,
	}
}

// Stats returns a copy of the current statistics.
func (p *Poller) Stats() Stats {
	return p.stats.get()
}

// Run the poller until the context is cancelled or the input channel is
// closed. Every frame is passed to the frame function, which must not keep
// the slice. Snapshots received on the input channel are sent to the
// gateway if they differ from the previous snapshot.
//
// Returns nil if the context was cancelled or the input channel closed.
func (p *Poller) Run(ctx context.Context, input <-chan joypad.Snapshot, frame func([]byte)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.frames(ctx, frame)
	})

	g.Go(func() error {
		// closing the input channel ends the frame loop too
		defer cancel()
		return p.inputs(ctx, input)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Poller) frames(ctx context.Context, frame func([]byte)) error {
	for {
		delay := p.Interval

		data, err := p.client.Frame(ctx, p.id)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.stats.failure(curated.Is(err, BadFrame))
			logger.Logf(logger.Allow, "poller", "session %d: %v", p.id, err)
			delay = p.Backoff
		} else {
			p.stats.frame(time.Now())
			if frame != nil {
				frame(data)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (p *Poller) inputs(ctx context.Context, input <-chan joypad.Snapshot) error {
	var prev joypad.Snapshot
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-input:
			if !ok {
				return nil
			}
			if s == prev {
				continue
			}

			// a failed post is not retried. the next change of state will
			// be sent as normal
			err := p.client.Input(ctx, p.id, s)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Logf(logger.Allow, "poller", "session %d: input: %v", p.id, err)
				continue
			}

			prev = s
			p.stats.input()
		}
	}
}
