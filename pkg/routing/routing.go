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

// Package routing implements the double-wrapped Forward routing used to
// deliver a message to the agency on behalf of a cloud agent.
package routing

import (
	"context"
	"encoding/json"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/crypto"
	"github.com/sage-x-project/a2avcx/pkg/wire"
)

// WrapAnonymous wraps m as Forward{@fwd=d} and anonymous-packs it toward
// agencyVK (no sender key).
func WrapAnonymous(ctx context.Context, c crypto.Crypto, m []byte, d, agencyVK string) ([]byte, error) {
	fwdBody, err := json.Marshal(wire.NewForward(d, m))
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding forward", err)
	}
	packed, err := c.Pack(ctx, "", []string{agencyVK}, fwdBody)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "packing forward", err)
	}
	return packed, nil
}

// WrapForAgent performs the two nestings needed to route a message to a
// peer's cloud agent: an inner authenticated pack (myVK -> peerAgentVK)
// wrapped in Forward(@fwd=peerAgentDID), then an outer anonymous pack
// (-> agencyVK) wrapped in Forward(@fwd=agencyDID).
func WrapForAgent(ctx context.Context, c crypto.Crypto, m []byte, myVK, peerAgentDID, peerAgentVK, agencyDID, agencyVK string) ([]byte, error) {
	innerPacked, err := c.Pack(ctx, myVK, []string{peerAgentVK}, m)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "inner packing for peer agent", err)
	}
	innerForward, err := json.Marshal(wire.NewForward(peerAgentDID, innerPacked))
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding inner forward", err)
	}
	return WrapAnonymous(ctx, c, innerForward, agencyDID, agencyVK)
}
