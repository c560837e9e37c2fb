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
	"encoding/json"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/agency"
	"github.com/sage-x-project/a2avcx/pkg/payload"
	"github.com/sage-x-project/a2avcx/pkg/routing"
)

// Transmitter performs the Send side of the Prover transition table:
// actually delivering a prepared presentation or a
// problem report over a connection. Kept separate from SM.Step so the
// state machine itself never performs I/O.
type Transmitter interface {
	SendPresentation(ctx context.Context, connection string, req PresentationRequest, pres Presentation) error
	SendProblemReport(ctx context.Context, connection string, req PresentationRequest, report ProblemReport) error
}

// PeerAddress is what an AddressBook resolves a connection handle to: the
// peer's pairwise verkey for the inner payload pack, plus their cloud
// agent's DID/verkey for the routing Forward.
type PeerAddress struct {
	PeerVK       string
	PeerAgentDID string
	PeerAgentVK  string
}

// AddressBook resolves a Prover's opaque connection handle to the peer
// addressing a Transmitter needs. This core does not define how
// connections are established; callers own that mapping.
type AddressBook interface {
	Resolve(connection string) (PeerAddress, error)
}

// PendingMessages tracks which agency inbox record delivered each
// presentation request, keyed by the request's @id. Remove clears the
// marker once the request has been answered.
type PendingMessages interface {
	Remove(ctx context.Context, msgID string) error
}

// AgencyTransmitter is the concrete Transmitter: it payload-encrypts the
// outgoing artifact for the peer, wraps it for delivery through the
// agency (pkg/routing), and posts it via the Agency Client's transport.
// When Pending is set, a successfully sent presentation also clears the
// pending-message marker for the request it answers.
type AgencyTransmitter struct {
	Agency    *agency.Client
	MyVK      string
	Addresses AddressBook
	Pending   PendingMessages
}

func (t *AgencyTransmitter) send(ctx context.Context, connection string, kind payload.Kind, body []byte, thid string) error {
	addr, err := t.Addresses.Resolve(connection)
	if err != nil {
		return a2aerr.Wrap(a2aerr.InvalidState, "resolving connection "+connection, err)
	}
	packed, err := payload.Encrypt(ctx, t.Agency.Crypto, t.MyVK, addr.PeerVK, kind, string(body), payload.Thread{ThID: thid})
	if err != nil {
		return err
	}
	routed, err := routing.WrapForAgent(ctx, t.Agency.Crypto, packed, t.MyVK, addr.PeerAgentDID, addr.PeerAgentVK, t.Agency.AgencyDID, t.Agency.AgencyVK)
	if err != nil {
		return err
	}
	_, err = t.Agency.Transport.PostU8(ctx, routed)
	return err
}

func (t *AgencyTransmitter) SendPresentation(ctx context.Context, connection string, req PresentationRequest, pres Presentation) error {
	body, err := json.Marshal(pres)
	if err != nil {
		return a2aerr.Wrap(a2aerr.SerializationError, "encoding presentation", err)
	}
	if err := t.send(ctx, connection, payload.KindProof, body, req.ID); err != nil {
		return err
	}
	if t.Pending != nil {
		return t.Pending.Remove(ctx, req.ID)
	}
	return nil
}

func (t *AgencyTransmitter) SendProblemReport(ctx context.Context, connection string, req PresentationRequest, report ProblemReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return a2aerr.Wrap(a2aerr.SerializationError, "encoding problem report", err)
	}
	return t.send(ctx, connection, payload.Other("problem-report"), body, req.ID)
}

// Send drives the Send side of the transition table: it transmits via tx,
// and only on success advances the state machine; a transmit error
// propagates to the caller with the state unchanged. Valid
// from PresentationPrepared (sends the presentation) and
// PresentationPreparationFailed (sends the problem report); any other
// phase is a no-op, matching Step's own "any other -> unchanged" rule.
func (s *SM) Send(ctx context.Context, connection string, tx Transmitter) (*SM, error) {
	switch s.phase {
	case PhasePresentationPrepared:
		if err := tx.SendPresentation(ctx, connection, s.request, s.presentation); err != nil {
			return s, err
		}
	case PhasePresentationPreparationFailed:
		if err := tx.SendProblemReport(ctx, connection, s.request, s.problemReport); err != nil {
			return s, err
		}
	default:
		return s, nil
	}
	return s.Step(Command{Kind: CmdSendPresentation, Connection: connection}, nil), nil
}
