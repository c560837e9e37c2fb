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

// Package verifier implements the Verifier-side inbound typing: the
// translation from wire A2A messages to the commands the Verifier-side
// presentation-exchange state machine would accept. That state machine
// mirrors pkg/prover's shape and lives with the host application.
package verifier

import "github.com/sage-x-project/a2avcx/pkg/prover"

// CommandKind is the closed set of driver commands this translation can
// produce.
type CommandKind int

const (
	CmdVerifyPresentation CommandKind = iota
	CmdPresentationProposalReceived
	CmdPresentationRejectReceived
	CmdUnknown
)

// Command is the Verifier-side counterpart to pkg/prover.Command.
type Command struct {
	Kind         CommandKind
	Presentation prover.Presentation
	Report       prover.ProblemReport
}

// PresentationProposal is the proposal message a Prover may send before a
// formal PresentationRequest; the Verifier's only reaction in this core is
// to record that one arrived.
type PresentationProposal struct {
	ThreadID string `json:"thid"`
}

// Inbound is one decoded wire message offered to Classify: the shape of an
// agency Message record once its @type has been resolved.
type Inbound struct {
	Presentation *prover.Presentation
	Proposal     *PresentationProposal
	Report       *prover.ProblemReport
}

// Classify maps an Inbound wire message to the Verifier-side command it
// drives: Presentation -> VerifyPresentation,
// PresentationProposal -> PresentationProposalReceived,
// CommonProblemReport -> PresentationRejectReceived, anything else ->
// Unknown.
func Classify(m Inbound) Command {
	switch {
	case m.Presentation != nil:
		return Command{Kind: CmdVerifyPresentation, Presentation: *m.Presentation}
	case m.Proposal != nil:
		return Command{Kind: CmdPresentationProposalReceived}
	case m.Report != nil:
		return Command{Kind: CmdPresentationRejectReceived, Report: *m.Report}
	default:
		return Command{Kind: CmdUnknown}
	}
}
