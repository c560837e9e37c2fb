// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package prover

import (
	"context"
	"sync"

	"github.com/sage-x-project/a2avcx/pkg/agency"
	"github.com/sage-x-project/a2avcx/pkg/wire"
)

// pendingRecord is the agency inbox coordinate of one delivered
// presentation request.
type pendingRecord struct {
	pairwiseDID string
	uid         string
}

// AgencyPendingMessages is the agency-backed PendingMessages: Register
// records which inbox uid carried a presentation request, and Remove marks
// that record reviewed on the agency (UPDATE_MSG_STATUS_BY_CONNS) once the
// presentation answering it has gone out.
type AgencyPendingMessages struct {
	Client *agency.Client

	mu      sync.Mutex
	byMsgID map[string]pendingRecord
}

func NewAgencyPendingMessages(client *agency.Client) *AgencyPendingMessages {
	return &AgencyPendingMessages{Client: client, byMsgID: make(map[string]pendingRecord)}
}

// Register remembers that the presentation request msgID arrived as inbox
// record uid on the pairwiseDID connection.
func (p *AgencyPendingMessages) Register(msgID, pairwiseDID, uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byMsgID[msgID] = pendingRecord{pairwiseDID: pairwiseDID, uid: uid}
}

// Remove marks the registered record for msgID reviewed and drops the
// marker. Removing an unregistered msgID is a no-op.
func (p *AgencyPendingMessages) Remove(ctx context.Context, msgID string) error {
	p.mu.Lock()
	rec, ok := p.byMsgID[msgID]
	if ok {
		delete(p.byMsgID, msgID)
	}
	p.mu.Unlock()
	if !ok {
		return nil
	}

	_, err := p.Client.UpdateMessageStatusByConnections(ctx, wire.StatusReviewed, []wire.PairwiseDIDUIDs{
		{PairwiseDID: rec.pairwiseDID, UIDs: []string{rec.uid}},
	})
	return err
}
