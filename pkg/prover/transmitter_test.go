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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/a2avcx/pkg/agency"
	a2acrypto "github.com/sage-x-project/a2avcx/pkg/crypto"
	"github.com/sage-x-project/a2avcx/pkg/wallet"
)

type fakeTransmitter struct {
	sendPresentationErr  error
	sendProblemReportErr error
	presentationsSent    int
	reportsSent          int
}

func (f *fakeTransmitter) SendPresentation(ctx context.Context, connection string, req PresentationRequest, pres Presentation) error {
	f.presentationsSent++
	return f.sendPresentationErr
}

func (f *fakeTransmitter) SendProblemReport(ctx context.Context, connection string, req PresentationRequest, report ProblemReport) error {
	f.reportsSent++
	return f.sendProblemReportErr
}

func TestSendAdvancesOnSuccess(t *testing.T) {
	ctx := context.Background()
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}
	sm := New(PresentationRequest{ID: "t"}, "s")
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)

	tx := &fakeTransmitter{}
	next, err := sm.Send(ctx, "conn-1", tx)
	require.NoError(t, err)
	assert.Equal(t, PhasePresentationSent, next.Phase())
	assert.Equal(t, 1, tx.presentationsSent)
}

func TestSendLeavesStateUnchangedOnNetworkError(t *testing.T) {
	ctx := context.Background()
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}
	sm := New(PresentationRequest{ID: "t"}, "s")
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)

	tx := &fakeTransmitter{sendPresentationErr: errors.New("network down")}
	next, err := sm.Send(ctx, "conn-1", tx)
	require.Error(t, err)
	assert.Equal(t, PhasePresentationPrepared, next.Phase())
}

func TestSendProblemReportOnPreparationFailed(t *testing.T) {
	ctx := context.Background()
	gen := fakeGenerator{err: errors.New("boom")}
	sm := New(PresentationRequest{ID: "t"}, "s")
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	require.Equal(t, PhasePresentationPreparationFailed, sm.Phase())

	tx := &fakeTransmitter{}
	next, err := sm.Send(ctx, "conn-2", tx)
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, next.Phase())
	assert.Equal(t, 1, tx.reportsSent)
	assert.Equal(t, StatusFailed, next.PresentationStatus())
}

type fakeAddressBook struct {
	addr PeerAddress
}

func (f fakeAddressBook) Resolve(string) (PeerAddress, error) { return f.addr, nil }

type fakePending struct {
	removed []string
}

func (f *fakePending) Remove(_ context.Context, msgID string) error {
	f.removed = append(f.removed, msgID)
	return nil
}

func TestAgencyTransmitterClearsPendingMarkerAfterSend(t *testing.T) {
	ctx := context.Background()
	keys := wallet.NewMemoryWallet()
	myVK, err := keys.Put("me")
	require.NoError(t, err)
	peerVK, err := keys.Put("peer")
	require.NoError(t, err)
	peerAgentVK, err := keys.Put("peer-agent")
	require.NoError(t, err)
	agencyVK, err := keys.Put("agency")
	require.NoError(t, err)

	pending := &fakePending{}
	tx := &AgencyTransmitter{
		Agency: &agency.Client{
			Transport: &recordingTransport{responses: [][]byte{nil}},
			Crypto:    a2acrypto.New(keys),
			Wallet:    keys,
			AgencyDID: "did:sov:agency",
			AgencyVK:  agencyVK,
		},
		MyVK: myVK,
		Addresses: fakeAddressBook{addr: PeerAddress{
			PeerVK:       peerVK,
			PeerAgentDID: "did:sov:peer-agent",
			PeerAgentVK:  peerAgentVK,
		}},
		Pending: pending,
	}

	req := PresentationRequest{ID: "req-42"}
	err = tx.SendPresentation(ctx, "conn", req, Presentation{ThreadID: "req-42"})
	require.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, pending.removed)
}

func TestSendIsNoOpInOtherPhases(t *testing.T) {
	ctx := context.Background()
	sm := New(PresentationRequest{ID: "t"}, "s")

	tx := &fakeTransmitter{}
	next, err := sm.Send(ctx, "conn", tx)
	require.NoError(t, err)
	assert.Equal(t, PhaseInitiated, next.Phase())
	assert.Equal(t, 0, tx.presentationsSent)
	assert.Equal(t, 0, tx.reportsSent)
}
