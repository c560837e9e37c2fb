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

// Package prover drives the Prover side of the presentation-exchange
// protocol: Initiated -> PresentationPrepared (or
// PreparationFailed) -> PresentationSent -> Finished.
package prover

import "encoding/json"

// PresentationRequest is preserved verbatim across every state past
// Initiated; its ID is the protocol thread id.
type PresentationRequest struct {
	ID         string          `json:"@id"`
	Attachment json.RawMessage `json:"request_presentations_attach,omitempty"`
}

// Presentation is the prepared proof artifact.
type Presentation struct {
	ID         string          `json:"@id,omitempty"`
	ThreadID   string          `json:"thid,omitempty"`
	Attachment json.RawMessage `json:"presentations_attach,omitempty"`
}

// ProblemReport is attached to a Prover that failed to prepare, or to a
// Finished(Failed) outcome.
type ProblemReport struct {
	ID       string `json:"@id,omitempty"`
	ThreadID string `json:"thid"`
	Comment  string `json:"comment"`
}

// IsReply reports whether this report replies to thread thid, used by
// find_message_to_handle's is_reply check.
func (p ProblemReport) IsReply(thid string) bool { return p.ThreadID != "" && p.ThreadID == thid }

// Ack acknowledges receipt of a presentation.
type Ack struct {
	ThreadID string `json:"thid"`
}

func (a Ack) IsReply(thid string) bool { return a.ThreadID != "" && a.ThreadID == thid }

// StatusCode is the closed Finished outcome set.
type StatusCode int

const (
	StatusUndefined StatusCode = iota
	StatusSuccess
	StatusFailed
)

// Code returns the numeric outcome code reported to host applications
// through presentation_status.
func (c StatusCode) Code() uint32 { return uint32(c) }

// Status carries the Finished state's terminal outcome; Report is set iff
// Code == StatusFailed.
type Status struct {
	Code   StatusCode
	Report *ProblemReport
}

// ProofGenerator is the narrow interface onto the out-of-scope anonymous-
// credential cryptographic library: given a
// presentation request and the prover-supplied credentials/self-attested
// attributes, produce a presentation attachment.
type ProofGenerator interface {
	GenerateProof(request PresentationRequest, credentials, selfAttested string) (json.RawMessage, error)
}
