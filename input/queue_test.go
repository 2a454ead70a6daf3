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
	"testing"

	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/hardware/memory"
	"github.com/jetsetilly/gopherdmg/test"
)

func TestQueuesReleased(t *testing.T) {
	tr := NewTranslator(memory.NewStore(), true)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tr.Apply(context.Background(), i%7, joypad.Snapshot{Up: true})
			test.ExpectSuccess(t, err)
		}()
	}
	wg.Wait()

	// queues do not outlive the calls that use them
	test.ExpectEquality(t, tr.pending(), 0)
}

func TestQueuesReleasedOnCancel(t *testing.T) {
	tr := NewTranslator(memory.NewStore(), true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the slot is free so a cancelled context may or may not be admitted.
	// either way the queue is removed
	tr.Apply(ctx, 1, joypad.Snapshot{})
	test.ExpectEquality(t, tr.pending(), 0)

	release, err := tr.acquire(context.Background(), 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tr.pending(), 1)

	_, err = tr.acquire(ctx, 1)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, tr.pending(), 1)

	release()
	test.ExpectEquality(t, tr.pending(), 0)
}

func TestUnserialisedHasNoQueues(t *testing.T) {
	tr := NewTranslator(memory.NewStore(), false)
	_, err := tr.Apply(context.Background(), 1, joypad.Snapshot{})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tr.pending(), 0)
	test.ExpectEquality(t, tr.Serialised(), false)
}
