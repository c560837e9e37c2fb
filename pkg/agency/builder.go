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

// Package agency implements the Agency Client:
// GetMessagesBuilder's send_secure/download_messages operations and
// per-connection decrypt.
package agency

import (
	"fmt"
	"strings"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

// GetMessagesBuilder accumulates the optional filters and required
// addressing for a GET_MSGS or GET_MSGS_BY_CONNS request.
type GetMessagesBuilder struct {
	uids           []string
	statusCodes    []string
	pairwiseDIDs   []string
	excludePayload string

	toDID    string
	toVK     string
	agentDID string
	agentVK  string

	err error
}

// NewGetMessagesBuilder starts a builder addressed at the given pairwise
// relationship and cloud agent.
func NewGetMessagesBuilder(toDID, toVK, agentDID, agentVK string) *GetMessagesBuilder {
	b := &GetMessagesBuilder{toDID: toDID, toVK: toVK, agentDID: agentDID, agentVK: agentVK}
	b.validateAddressing()
	return b
}

func (b *GetMessagesBuilder) validateAddressing() {
	for _, v := range []struct{ name, val string }{
		{"to_did", b.toDID}, {"to_vk", b.toVK}, {"agent_did", b.agentDID}, {"agent_vk", b.agentVK},
	} {
		if v.val == "" {
			b.fail(fmt.Sprintf("%s must not be empty", v.name))
			return
		}
	}
}

func (b *GetMessagesBuilder) fail(msg string) {
	if b.err == nil {
		b.err = a2aerr.New(a2aerr.InvalidState, msg)
	}
}

// UIDs restricts the request to specific message uids.
func (b *GetMessagesBuilder) UIDs(uids []string) *GetMessagesBuilder {
	b.uids = uids
	return b
}

// StatusCodes restricts the request to specific message status codes.
func (b *GetMessagesBuilder) StatusCodes(codes []string) *GetMessagesBuilder {
	b.statusCodes = codes
	return b
}

// PairwiseDIDs restricts a download_messages call to specific connections.
func (b *GetMessagesBuilder) PairwiseDIDs(dids []string) *GetMessagesBuilder {
	for _, d := range dids {
		if strings.TrimSpace(d) == "" {
			b.fail("pairwise DID must not be empty")
			return b
		}
	}
	b.pairwiseDIDs = dids
	return b
}

// ExcludePayload, when set, asks the agency to omit the encrypted payload
// bytes from the response (uid/status-only query).
func (b *GetMessagesBuilder) ExcludePayload(v string) *GetMessagesBuilder {
	b.excludePayload = v
	return b
}

func (b *GetMessagesBuilder) validate() error {
	return b.err
}
