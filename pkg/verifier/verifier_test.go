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

package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sage-x-project/a2avcx/pkg/prover"
)

func TestClassifyPresentation(t *testing.T) {
	pres := prover.Presentation{ThreadID: "t1"}
	cmd := Classify(Inbound{Presentation: &pres})
	assert.Equal(t, CmdVerifyPresentation, cmd.Kind)
	assert.Equal(t, pres, cmd.Presentation)
}

func TestClassifyProposal(t *testing.T) {
	cmd := Classify(Inbound{Proposal: &PresentationProposal{ThreadID: "t1"}})
	assert.Equal(t, CmdPresentationProposalReceived, cmd.Kind)
}

func TestClassifyReport(t *testing.T) {
	report := prover.ProblemReport{ThreadID: "t1", Comment: "rejected"}
	cmd := Classify(Inbound{Report: &report})
	assert.Equal(t, CmdPresentationRejectReceived, cmd.Kind)
	assert.Equal(t, report, cmd.Report)
}

func TestClassifyUnknown(t *testing.T) {
	cmd := Classify(Inbound{})
	assert.Equal(t, CmdUnknown, cmd.Kind)
}

func TestClassifyPrefersPresentationOverOthers(t *testing.T) {
	pres := prover.Presentation{ThreadID: "t1"}
	report := prover.ProblemReport{ThreadID: "t1"}
	cmd := Classify(Inbound{Presentation: &pres, Report: &report})
	assert.Equal(t, CmdVerifyPresentation, cmd.Kind)
}
