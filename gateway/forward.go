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

package gateway

import (
	"context"
	"fmt"

	"github.com/jetsetilly/gopherdmg/backend"
	"github.com/jetsetilly/gopherdmg/hardware/joypad"
	"github.com/jetsetilly/gopherdmg/input"
	"github.com/jetsetilly/gopherdmg/session"
)

// Forwarder delivers a joypad snapshot to the machine of a session. The raw
// argument is the snapshot exactly as it was received from the client.
type Forwarder interface {
	Forward(ctx context.Context, sess session.Session, raw []byte, s joypad.Snapshot) error
}

// RemoteInput forwards snapshots to an input service.
type RemoteInput struct {
	client *backend.Client
}

// NewRemoteInput is the preferred method of initialisation for the
// RemoteInput type.
func NewRemoteInput(client *backend.Client) *RemoteInput {
	return &RemoteInput{client: client}
}

// Forward implements the Forwarder interface. The raw snapshot is sent
// unchanged.
func (f *RemoteInput) Forward(ctx context.Context, sess session.Session, raw []byte, _ joypad.Snapshot) error {
	_, err := f.client.Post(ctx, fmt.Sprintf("/%d", sess.Components.Memory), "application/json", raw)
	return err
}

// LocalInput applies snapshots with an input.Translator in the same process.
type LocalInput struct {
	tr *input.Translator
}

// NewLocalInput is the preferred method of initialisation for the LocalInput
// type.
func NewLocalInput(tr *input.Translator) *LocalInput {
	return &LocalInput{tr: tr}
}

// Forward implements the Forwarder interface.
func (f *LocalInput) Forward(ctx context.Context, sess session.Session, _ []byte, s joypad.Snapshot) error {
	_, err := f.tr.Apply(ctx, sess.Components.Memory, s)
	return err
}
