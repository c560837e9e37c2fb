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

// InboundKind narrows an Inbound candidate to the wire messages
// find_message_to_handle actually recognizes.
type InboundKind int

const (
	InboundAck InboundKind = iota
	InboundProblemReport
	InboundOther
)

// Inbound is one candidate message offered to FindMessageToHandle: the
// decoded shape of an agency Message record once its @type has been
// resolved to Ack, CommonProblemReport, or anything else.
type Inbound struct {
	Kind   InboundKind
	Ack    Ack
	Report ProblemReport
}

func (m Inbound) isReply(thid string) bool {
	switch m.Kind {
	case InboundAck:
		return m.Ack.IsReply(thid)
	case InboundProblemReport:
		return m.Report.IsReply(thid)
	default:
		return false
	}
}

// FindMessageToHandle scans candidates — keyed by agency message uid, in
// no guaranteed order — for the single message this SM should act on
// next. Only PresentationSent ever matches anything: the first
// thread-matching Ack if one exists, else the first thread-matching
// CommonProblemReport. Every other phase returns found=false, and a
// thread mismatch is silently skipped rather than matched.
func (s *SM) FindMessageToHandle(candidates map[string]Inbound) (uid string, msg Inbound, found bool) {
	if s.phase != PhasePresentationSent {
		return "", Inbound{}, false
	}
	thid := s.ThreadID()

	var ackUID string
	var ack Inbound
	haveAck := false
	var reportUID string
	var report Inbound
	haveReport := false

	for id, cand := range candidates {
		if !cand.isReply(thid) {
			continue
		}
		switch cand.Kind {
		case InboundAck:
			if !haveAck {
				ackUID, ack, haveAck = id, cand, true
			}
		case InboundProblemReport:
			if !haveReport {
				reportUID, report, haveReport = id, cand, true
			}
		}
	}

	if haveAck {
		return ackUID, ack, true
	}
	if haveReport {
		return reportUID, report, true
	}
	return "", Inbound{}, false
}

// CommandForInbound translates a dispatched Inbound into the driver
// Command that advances the SM, completing the find -> step pipeline a
// caller drives after each download_messages poll.
func CommandForInbound(m Inbound) Command {
	switch m.Kind {
	case InboundAck:
		return Command{Kind: CmdPresentationAckReceived, Ack: m.Ack}
	case InboundProblemReport:
		return Command{Kind: CmdPresentationRejectReceived, Report: m.Report}
	default:
		return Command{}
	}
}
