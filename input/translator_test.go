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

package input_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/gopherdmg/curated"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
	"github.com/jetsetilly/gopherdmg/input"
	"github.com/jetsetilly/gopherdmg/test"
)

const instance = 1234567

// access is a single operation on the bus
type access struct {
	write bool
	value uint8
}

// recorder wraps a Store and records every access to the joypad register.
//
// if arrived is not nil every Peek() is reported to the channel on entry. if
// gate is not nil every Peek() waits for it to close before reading. if
// barrier is not nil every Peek() waits for the barrier after reading
type recorder struct {
	*memory.Store

	crit     sync.Mutex
	accesses []access

	arrived chan struct{}
	gate    chan struct{}
	barrier *sync.WaitGroup

	peekErr error
	pokeErr error
}

func newRecorder() *recorder {
	return &recorder{Store: memory.NewStore()}
}

func (r *recorder) Peek(ctx context.Context, inst int, address uint16) (uint8, error) {
	if r.arrived != nil {
		r.arrived <- struct{}{}
	}
	if r.gate != nil {
		<-r.gate
	}
	if r.peekErr != nil {
		return 0, r.peekErr
	}
	v, err := r.Store.Peek(ctx, inst, address)
	r.crit.Lock()
	r.accesses = append(r.accesses, access{value: v})
	r.crit.Unlock()
	if r.barrier != nil {
		r.barrier.Done()
		r.barrier.Wait()
	}
	return v, err
}

func (r *recorder) Poke(ctx context.Context, inst int, address uint16, value uint8) error {
	r.crit.Lock()
	r.accesses = append(r.accesses, access{write: true, value: value})
	r.crit.Unlock()
	if r.pokeErr != nil {
		return r.pokeErr
	}
	return r.Store.Poke(ctx, inst, address, value)
}

func (r *recorder) log() []access {
	r.crit.Lock()
	defer r.crit.Unlock()
	return append([]access{}, r.accesses...)
}

func TestApply(t *testing.T) {
	store := memory.NewStore()
	tr := input.NewTranslator(store, false)
	ctx := context.Background()

	apply := func(reg uint8, s joypad.Snapshot, expected uint8) {
		t.Helper()
		test.DemandSuccess(t, store.Poke(ctx, instance, joypad.Address, reg))
		v, err := tr.Apply(ctx, instance, s)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, v, expected, s)

		// the value returned is the value in the store
		v, _ = store.Peek(ctx, instance, joypad.Address)
		test.ExpectEquality(t, v, expected, s)
	}

	// action group selected
	apply(0b11011111, joypad.Snapshot{A: true}, 0b11011110)
	apply(0b11011111, joypad.Snapshot{B: true}, 0b11011101)
	apply(0b11011111, joypad.Snapshot{Select: true}, 0b11011011)
	apply(0b11011111, joypad.Snapshot{Start: true}, 0b11010111)
	apply(0b11011111, joypad.Snapshot{Up: true, Right: true}, 0b11011111)

	// direction group selected
	apply(0b11101111, joypad.Snapshot{Right: true}, 0b11101110)
	apply(0b11101111, joypad.Snapshot{Left: true}, 0b11101101)
	apply(0b11101111, joypad.Snapshot{Up: true}, 0b11101011)
	apply(0b11101111, joypad.Snapshot{Down: true}, 0b11100111)
	apply(0b11101111, joypad.Snapshot{A: true, Start: true}, 0b11101111)

	// both groups selected. action group wins
	apply(0b11001111, joypad.Snapshot{A: true, Down: true}, 0b11001110)

	// neither group selected. the stale lower nibble is replaced
	apply(0b00110000, joypad.Snapshot{A: true, Down: true}, 0b00111111)

	// a released snapshot clears a previously pressed button
	apply(0b11010000, joypad.Snapshot{}, 0b11011111)
}

func TestApplyIdempotent(t *testing.T) {
	store := memory.NewStore()
	tr := input.NewTranslator(store, false)
	ctx := context.Background()

	test.DemandSuccess(t, store.Poke(ctx, instance, joypad.Address, 0b11101111))

	s := joypad.Snapshot{Left: true, Down: true}
	a, err := tr.Apply(ctx, instance, s)
	test.DemandSuccess(t, err)
	b, err := tr.Apply(ctx, instance, s)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a, b)
	test.ExpectEquality(t, a, uint8(0b11100101))
}

func TestApplyReadFailure(t *testing.T) {
	rec := newRecorder()
	rec.peekErr = errors.New("connection refused")
	tr := input.NewTranslator(rec, false)

	_, err := tr.Apply(context.Background(), instance, joypad.Snapshot{A: true})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, input.ReadFailed))

	// nothing was written
	test.ExpectEquality(t, len(rec.log()), 0)
}

func TestApplyWriteFailure(t *testing.T) {
	rec := newRecorder()
	rec.pokeErr = errors.New("connection reset")
	tr := input.NewTranslator(rec, false)

	_, err := tr.Apply(context.Background(), instance, joypad.Snapshot{A: true})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, input.WriteFailed))
	test.ExpectFailure(t, curated.Is(err, input.ReadFailed))
}

// two unqueued calls for the same instance can both read the register before
// either writes it. the second write is based on a stale read and the first
// update is lost
func TestApplyRace(t *testing.T) {
	rec := newRecorder()
	rec.barrier = &sync.WaitGroup{}
	rec.barrier.Add(2)
	tr := input.NewTranslator(rec, false)
	ctx := context.Background()

	test.DemandSuccess(t, rec.Store.Poke(ctx, instance, joypad.Address, 0b11011111))

	var wg sync.WaitGroup
	results := make([]uint8, 2)
	snapshots := []joypad.Snapshot{{A: true}, {B: true}}
	for i := range snapshots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := tr.Apply(ctx, instance, snapshots[i])
			test.ExpectSuccess(t, err)
			results[i] = v
		}()
	}

	// neither call can write until both have read
	wg.Wait()

	log := rec.log()
	test.DemandEquality(t, len(log), 4)

	// read, read, write, write
	test.ExpectEquality(t, log[0].write, false)
	test.ExpectEquality(t, log[1].write, false)
	test.ExpectEquality(t, log[2].write, true)
	test.ExpectEquality(t, log[3].write, true)

	// both reads saw the original value
	test.ExpectEquality(t, log[0].value, uint8(0b11011111))
	test.ExpectEquality(t, log[1].value, uint8(0b11011111))

	// the register holds whichever write came last. the other update is gone
	v, _ := rec.Store.Peek(ctx, instance, joypad.Address)
	test.ExpectEquality(t, v, log[3].value)
	test.ExpectInequality(t, log[2].value, log[3].value)
	test.ExpectSuccess(t, v == results[0] || v == results[1])
}

// queued calls for the same instance never interleave. every read sees the
// value of the previous write
func TestApplySerialised(t *testing.T) {
	rec := newRecorder()
	tr := input.NewTranslator(rec, true)
	ctx := context.Background()

	test.DemandSuccess(t, rec.Store.Poke(ctx, instance, joypad.Address, 0b11011111))

	const calls = 50

	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := joypad.Snapshot{A: i%2 == 0, B: i%3 == 0, Start: i%5 == 0}
			_, err := tr.Apply(ctx, instance, s)
			test.ExpectSuccess(t, err)
		}()
	}
	wg.Wait()

	log := rec.log()
	test.DemandEquality(t, len(log), calls*2)

	for i := 0; i < len(log); i += 2 {
		test.ExpectEquality(t, log[i].write, false, i)
		test.ExpectEquality(t, log[i+1].write, true, i+1)
		if i > 0 {
			test.ExpectEquality(t, log[i].value, log[i-1].value, i)
		}
	}
}

// a queued call does not reach the bus while another call for the same
// instance is in progress. a call for another instance is not held up
func TestApplySerialisedBlocking(t *testing.T) {
	rec := newRecorder()
	rec.arrived = make(chan struct{}, 3)
	rec.gate = make(chan struct{})
	tr := input.NewTranslator(rec, true)
	ctx := context.Background()

	var wg sync.WaitGroup
	apply := func(inst int) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tr.Apply(ctx, inst, joypad.Snapshot{})
			test.ExpectSuccess(t, err)
		}()
	}

	apply(instance)
	<-rec.arrived

	apply(instance)
	apply(instance + 1)

	// the call for the other instance arrives
	select {
	case <-rec.arrived:
	case <-time.After(time.Second):
		t.Fatalf("call for a different instance was held up")
	}

	// the second call for the first instance does not
	select {
	case <-rec.arrived:
		t.Fatalf("queued call reached the bus")
	case <-time.After(50 * time.Millisecond):
	}

	close(rec.gate)
	wg.Wait()
	test.ExpectEquality(t, len(rec.log()), 6)
}

func TestApplySerialisedCancel(t *testing.T) {
	rec := newRecorder()
	rec.arrived = make(chan struct{}, 1)
	rec.gate = make(chan struct{})
	tr := input.NewTranslator(rec, true)

	done := make(chan error)
	go func() {
		_, err := tr.Apply(context.Background(), instance, joypad.Snapshot{})
		done <- err
	}()
	<-rec.arrived

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.Apply(ctx, instance, joypad.Snapshot{A: true})
	test.ExpectSuccess(t, curated.Is(err, input.Abandoned))
	test.ExpectSuccess(t, errors.Is(err, context.DeadlineExceeded))

	close(rec.gate)
	test.ExpectSuccess(t, <-done)
}
