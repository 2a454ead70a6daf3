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
	"context"
	"sync"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
)

// Error patterns.
const (
	ReadFailed  = "input: read joypad register: %v"
	WriteFailed = "input: write joypad register: %v"
	Abandoned   = "input: abandoned while queued: %v"
)

// Translator applies Snapshot values to the joypad register.
type Translator struct {
	bus       memory.Bus
	serialise bool

	// queues are only created when serialise is true. the critical section
	// protects the map and the reference counts and is never held while
	// waiting on a queue or on the bus
	crit   sync.Mutex
	queues map[int]*queue
}

// queue is a semaphore with a single slot. waiters are admitted in the order
// they arrived.
type queue struct {
	slot chan struct{}
	refs int
}

// NewTranslator is the preferred method of initialisation for the Translator
// type. If serialise is true then calls to Apply() for the same instance are
// performed one at a time.
func NewTranslator(bus memory.Bus, serialise bool) *Translator {
	return &Translator{
		bus:       bus,
		serialise: serialise,
		queues:    make(map[int]*queue),
	}
}

// Serialised returns true if calls for the same instance are queued.
func (tr *Translator) Serialised() bool {
	return tr.serialise
}

// Apply the snapshot to the joypad register of the instance. Returns the
// value written to the register.
//
// A failure to read the register means the register is not written. A write
// failure leaves the register as it was before the call.
func (tr *Translator) Apply(ctx context.Context, instance int, s joypad.Snapshot) (uint8, error) {
	if tr.serialise {
		release, err := tr.acquire(ctx, instance)
		if err != nil {
			return 0, err
		}
		defer release()
	}

	reg, err := tr.bus.Peek(ctx, instance, joypad.Address)
	if err != nil {
		return 0, curated.Errorf(ReadFailed, err)
	}

	v := joypad.Update(reg, s)

	err = tr.bus.Poke(ctx, instance, joypad.Address, v)
	if err != nil {
		return 0, curated.Errorf(WriteFailed, err)
	}

	return v, nil
}

// acquire the queue for the instance. the returned function must be called
// to release the queue.
func (tr *Translator) acquire(ctx context.Context, instance int) (func(), error) {
	tr.crit.Lock()
	q, ok := tr.queues[instance]
	if !ok {
		q = &queue{slot: make(chan struct{}, 1)}
		tr.queues[instance] = q
	}
	q.refs++
	tr.crit.Unlock()

	select {
	case q.slot <- struct{}{}:
	case <-ctx.Done():
		tr.unref(instance, q)
		return nil, curated.Errorf(Abandoned, ctx.Err())
	}

	return func() {
		<-q.slot
		tr.unref(instance, q)
	}, nil
}

// remove the queue from the map once nothing is using it
func (tr *Translator) unref(instance int, q *queue) {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	q.refs--
	if q.refs == 0 {
		delete(tr.queues, instance)
	}
}

// pending returns the number of instances with a queue. used by tests
func (tr *Translator) pending() int {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	return len(tr.queues)
}
