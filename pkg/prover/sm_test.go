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
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	attachment json.RawMessage
	err        error
}

func (f fakeGenerator) GenerateProof(PresentationRequest, string, string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attachment, nil
}

func TestHappyPathReachesFinishedSuccess(t *testing.T) {
	req := PresentationRequest{ID: "thread-1"}
	sm := New(req, "source-1")
	assert.Equal(t, PhaseInitiated, sm.Phase())
	assert.False(t, sm.HasTransitions())

	gen := fakeGenerator{attachment: json.RawMessage(`{"proof":true}`)}
	sm = sm.Step(Command{Kind: CmdPreparePresentation, Credentials: "c", SelfAttested: "s"}, gen)
	require.Equal(t, PhasePresentationPrepared, sm.Phase())
	assert.True(t, sm.HasTransitions())

	pres, err := sm.Presentation()
	require.NoError(t, err)
	assert.Equal(t, "thread-1", pres.ThreadID)

	sm = sm.Step(Command{Kind: CmdSendPresentation, Connection: "conn-1"}, gen)
	require.Equal(t, PhasePresentationSent, sm.Phase())
	conn, err := sm.ConnectionHandle()
	require.NoError(t, err)
	assert.Equal(t, "conn-1", conn)

	sm = sm.Step(Command{Kind: CmdPresentationAckReceived, Ack: Ack{ThreadID: "thread-1"}}, gen)
	require.Equal(t, PhaseFinished, sm.Phase())
	assert.False(t, sm.HasTransitions())
	assert.Equal(t, StatusSuccess, sm.PresentationStatus())
}

func TestFailurePathReachesFinishedFailed(t *testing.T) {
	req := PresentationRequest{ID: "thread-2"}
	sm := New(req, "source-2")

	gen := fakeGenerator{err: errors.New("no matching credentials")}
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	require.Equal(t, PhasePresentationPreparationFailed, sm.Phase())

	sm = sm.Step(Command{Kind: CmdSendPresentation, Connection: "conn-2"}, gen)
	require.Equal(t, PhaseFinished, sm.Phase())
	assert.Equal(t, StatusFailed, sm.PresentationStatus())
}

func TestRejectPathReachesFinishedFailed(t *testing.T) {
	req := PresentationRequest{ID: "thread-3"}
	sm := New(req, "source-3")
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}

	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	sm = sm.Step(Command{Kind: CmdSendPresentation, Connection: "conn-3"}, gen)
	require.Equal(t, PhasePresentationSent, sm.Phase())

	sm = sm.Step(Command{Kind: CmdPresentationRejectReceived, Report: ProblemReport{ThreadID: "thread-3", Comment: "rejected"}}, gen)
	require.Equal(t, PhaseFinished, sm.Phase())
	assert.Equal(t, StatusFailed, sm.PresentationStatus())
}

func TestUnmatchedCommandLeavesStateUnchanged(t *testing.T) {
	req := PresentationRequest{ID: "thread-4"}
	sm := New(req, "source-4")
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}

	// SendPresentation makes no sense in Initiated.
	next := sm.Step(Command{Kind: CmdSendPresentation, Connection: "conn"}, gen)
	assert.Equal(t, PhaseInitiated, next.Phase())

	// A second PreparePresentation past Initiated leaves the state unchanged.
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	again := sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	assert.Equal(t, PhasePresentationPrepared, again.Phase())
}

func TestStateMapsPhasesToExternalCodes(t *testing.T) {
	req := PresentationRequest{ID: "thread-5"}
	sm := New(req, "s")
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}

	assert.Equal(t, StateInitialized, sm.State())
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	assert.Equal(t, StateInitialized, sm.State())
	sm = sm.Step(Command{Kind: CmdSendPresentation, Connection: "c"}, gen)
	assert.Equal(t, StateOfferSent, sm.State())
	sm = sm.Step(Command{Kind: CmdPresentationAckReceived, Ack: Ack{ThreadID: "thread-5"}}, gen)
	assert.Equal(t, StateAccepted, sm.State())
}

func TestStatusCodesAreStable(t *testing.T) {
	assert.Equal(t, uint32(0), StatusUndefined.Code())
	assert.Equal(t, uint32(1), StatusSuccess.Code())
	assert.Equal(t, uint32(2), StatusFailed.Code())
}

func TestConnectionHandleNotReadyBeforeSent(t *testing.T) {
	sm := New(PresentationRequest{ID: "t"}, "s")
	_, err := sm.ConnectionHandle()
	require.Error(t, err)
}

func TestPresentationNotReadyInitiated(t *testing.T) {
	sm := New(PresentationRequest{ID: "t"}, "s")
	_, err := sm.Presentation()
	require.Error(t, err)
}

func TestThreadIDPreservedAcrossStates(t *testing.T) {
	req := PresentationRequest{ID: "stable-thread"}
	sm := New(req, "s")
	gen := fakeGenerator{attachment: json.RawMessage(`{}`)}

	assert.Equal(t, "stable-thread", sm.ThreadID())
	sm = sm.Step(Command{Kind: CmdPreparePresentation}, gen)
	assert.Equal(t, "stable-thread", sm.ThreadID())
	sm = sm.Step(Command{Kind: CmdSendPresentation, Connection: "c"}, gen)
	assert.Equal(t, "stable-thread", sm.ThreadID())
}
