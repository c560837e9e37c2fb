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
	"github.com/google/uuid"

	"github.com/sage-x-project/a2avcx/internal/metrics"
	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

// Phase is the closed set of Prover states.
type Phase int

const (
	PhaseInitiated Phase = iota
	PhasePresentationPrepared
	PhasePresentationPreparationFailed
	PhasePresentationSent
	PhaseFinished
)

// External state codes exposed to host applications through State(). The
// numbering follows the libvcx connection lifecycle, which is why three
// internal phases collapse onto StateInitialized.
const (
	StateNone        uint32 = 0
	StateInitialized uint32 = 1
	StateOfferSent   uint32 = 2
	StateAccepted    uint32 = 4
)

func (p Phase) String() string {
	switch p {
	case PhaseInitiated:
		return "Initiated"
	case PhasePresentationPrepared:
		return "PresentationPrepared"
	case PhasePresentationPreparationFailed:
		return "PresentationPreparationFailed"
	case PhasePresentationSent:
		return "PresentationSent"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// CommandKind is the closed set of driver commands the machine accepts.
type CommandKind int

const (
	CmdPreparePresentation CommandKind = iota
	CmdSendPresentation
	CmdPresentationAckReceived
	CmdPresentationRejectReceived
	CmdPresentationProposalReceived // ignored on the Prover side
)

// Command is the closed driver-command sum type.
type Command struct {
	Kind CommandKind

	// CmdPreparePresentation
	Credentials  string
	SelfAttested string

	// CmdSendPresentation
	Connection string

	// CmdPresentationAckReceived
	Ack Ack

	// CmdPresentationRejectReceived
	Report ProblemReport
}

// SM is the Prover state machine. All fields are unexported; advance it
// only through Step so the transition table remains the single source of
// truth for reachable states.
type SM struct {
	sourceID string
	phase    Phase

	request       PresentationRequest
	presentation  Presentation
	problemReport ProblemReport
	connection    string
	status        Status
}

// New constructs a fresh Prover in Initiated, with thread id request.ID.
func New(request PresentationRequest, sourceID string) *SM {
	return &SM{sourceID: sourceID, phase: PhaseInitiated, request: request}
}

func (s *SM) SourceID() string { return s.sourceID }

// ThreadID returns the protocol thread id: the original request's @id,
// preserved verbatim in every state.
func (s *SM) ThreadID() string { return s.request.ID }

func (s *SM) Phase() Phase { return s.phase }

// State maps the internal phase onto the external state code a host
// application sees: Initialized until the presentation goes out, OfferSent
// while an answer is awaited, Accepted once Finished.
func (s *SM) State() uint32 {
	switch s.phase {
	case PhaseInitiated, PhasePresentationPrepared, PhasePresentationPreparationFailed:
		return StateInitialized
	case PhasePresentationSent:
		return StateOfferSent
	case PhaseFinished:
		return StateAccepted
	default:
		return StateNone
	}
}

// HasTransitions reports whether any command can still move this SM:
// false only in Initiated and Finished.
func (s *SM) HasTransitions() bool {
	switch s.phase {
	case PhaseInitiated, PhaseFinished:
		return false
	default:
		return true
	}
}

// PresentationStatus returns the Finished outcome, or Undefined before
// that.
func (s *SM) PresentationStatus() StatusCode {
	if s.phase == PhaseFinished {
		return s.status.Code
	}
	return StatusUndefined
}

// ConnectionHandle returns the connection carried since PresentationSent;
// NotReady in any earlier state.
func (s *SM) ConnectionHandle() (string, error) {
	switch s.phase {
	case PhasePresentationSent, PhaseFinished:
		return s.connection, nil
	default:
		return "", a2aerr.New(a2aerr.NotReady, "connection handle isn't set")
	}
}

// PresentationRequest returns the request this SM was constructed with,
// preserved verbatim across every state.
func (s *SM) PresentationRequest() PresentationRequest { return s.request }

// Presentation returns the prepared proof; NotReady before it exists.
func (s *SM) Presentation() (Presentation, error) {
	switch s.phase {
	case PhasePresentationPrepared, PhasePresentationSent, PhaseFinished:
		return s.presentation, nil
	default:
		return Presentation{}, a2aerr.New(a2aerr.NotReady, "presentation is not created yet")
	}
}

// Step applies cmd to the current phase, returning the resulting SM.
// Unmatched (phase, command) pairs leave the SM unchanged, exactly as the
// upstream transition table specifies.
func (s *SM) Step(cmd Command, gen ProofGenerator) *SM {
	next := *s

	switch s.phase {
	case PhaseInitiated:
		if cmd.Kind == CmdPreparePresentation {
			attachment, err := gen.GenerateProof(s.request, cmd.Credentials, cmd.SelfAttested)
			if err != nil {
				next.problemReport = ProblemReport{ID: uuid.NewString(), ThreadID: s.request.ID, Comment: err.Error()}
				next.phase = PhasePresentationPreparationFailed
			} else {
				next.presentation = Presentation{ID: uuid.NewString(), ThreadID: s.request.ID, Attachment: attachment}
				next.phase = PhasePresentationPrepared
			}
		}

	case PhasePresentationPrepared:
		if cmd.Kind == CmdSendPresentation {
			next.connection = cmd.Connection
			next.phase = PhasePresentationSent
		}

	case PhasePresentationPreparationFailed:
		if cmd.Kind == CmdSendPresentation {
			next.connection = cmd.Connection
			next.status = Status{Code: StatusFailed, Report: &s.problemReport}
			next.phase = PhaseFinished
		}

	case PhasePresentationSent:
		switch cmd.Kind {
		case CmdPresentationAckReceived:
			next.status = Status{Code: StatusSuccess}
			next.phase = PhaseFinished
		case CmdPresentationRejectReceived:
			report := cmd.Report
			next.status = Status{Code: StatusFailed, Report: &report}
			next.phase = PhaseFinished
		}

	case PhaseFinished:
		// terminal: no command moves it further.
	}

	if next.phase != s.phase {
		metrics.ProverTransitions.WithLabelValues(s.phase.String(), next.phase.String()).Inc()
		if next.phase == PhaseFinished {
			status := "success"
			if next.status.Code == StatusFailed {
				status = "failed"
			}
			metrics.ProverFinished.WithLabelValues(status).Inc()
		}
	}

	return &next
}
