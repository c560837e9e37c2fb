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

// Package payload implements the Payload Decryptor: V2 payload
// encrypt/decrypt over the Crypto collaborator, the v3 fallback
// classification for Aries-shaped ciphertext, and the Thread correlation
// invariant.
package payload

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/crypto"
	"github.com/sage-x-project/a2avcx/pkg/wire"
)

// Thread correlates a message with the conversation it belongs to.
type Thread struct {
	ThID           string         `json:"thid,omitempty"`
	SenderOrder    int            `json:"sender_order,omitempty"`
	ReceivedOrders map[string]int `json:"received_orders,omitempty"`
}

// IsReply reports whether thid names the conversation t belongs to.
func (t Thread) IsReply(thid string) bool {
	return t.ThID != "" && t.ThID == thid
}

// V2 is the inner authenticated payload carried inside a pack/unpack
// envelope.
type V2 struct {
	Type   wire.Type `json:"@type"`
	ID     string    `json:"@id"`
	Msg    string    `json:"@msg"`
	Thread Thread    `json:"~thread"`
}

// Kind is the credential-exchange payload kind a V2 payload carries. Kinds
// built with Other map to family Unknown(s); every other Kind, including
// the zero value (empty name), maps to family CredentialExchange.
type Kind struct {
	name  string
	other bool
}

var (
	KindCredOffer    = Kind{name: "credential-offer"}
	KindCredReq      = Kind{name: "credential-request"}
	KindCred         = Kind{name: "credential"}
	KindProof        = Kind{name: "presentation"}
	KindProofRequest = Kind{name: "presentation-request"}
)

// Other builds the catch-all Kind for any payload type this core does not
// otherwise recognize, mapped to family Unknown(s).
func Other(s string) Kind { return Kind{name: s, other: true} }

func (k Kind) family() wire.Family {
	if k.other {
		return wire.Unknown(k.name)
	}
	return wire.FamilyCredentialExchange
}

func buildType(k Kind) wire.Type {
	fam := k.family()
	return wire.Type{
		DID:     wire.DID,
		Family:  fam,
		Version: fam.Version(),
		Name:    k.name,
	}
}

// Encrypt builds a PayloadV2 envelope around data and packs it for
// their_vk using the Crypto collaborator. thread must be
// non-empty, matching the upstream requirement.
func Encrypt(ctx context.Context, c crypto.Crypto, myVK, theirVK string, kind Kind, data string, thread Thread) ([]byte, error) {
	if thread.ThID == "" {
		return nil, a2aerr.New(a2aerr.InvalidState, "thread info not found")
	}
	body := V2{Type: buildType(kind), ID: "", Msg: data, Thread: thread}
	message, err := json.Marshal(body)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding payload", err)
	}
	packed, err := c.Pack(ctx, myVK, []string{theirVK}, message)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "packing payload", err)
	}
	return packed, nil
}

// DecryptV2 unpacks packed for myVK, extracts the `message` field, and
// parses it as a PayloadV2 — restoring thread.thid from @id when the peer
// omitted it, per the upstream invariant. When myVK is
// non-empty, an envelope addressed to a different local key is rejected.
func DecryptV2(ctx context.Context, c crypto.Crypto, myVK string, packed []byte) (V2, error) {
	unpackedRaw, err := c.Unpack(ctx, packed)
	if err != nil {
		return V2{}, a2aerr.Wrap(a2aerr.InvalidMessagePack, "unpacking payload", err)
	}

	var unpacked struct {
		Message         string `json:"message"`
		RecipientVerkey string `json:"recipient_verkey"`
	}
	if err := json.Unmarshal(unpackedRaw, &unpacked); err != nil {
		return V2{}, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding unpacked envelope", err)
	}
	if unpacked.Message == "" {
		return V2{}, a2aerr.New(a2aerr.InvalidJSON, "cannot find `message` field")
	}
	if myVK != "" && unpacked.RecipientVerkey != "" && unpacked.RecipientVerkey != myVK {
		return V2{}, a2aerr.New(a2aerr.InvalidMessagePack, "payload was not addressed to this verkey")
	}

	var v2 V2
	if err := json.Unmarshal([]byte(unpacked.Message), &v2); err != nil {
		return V2{}, a2aerr.Wrap(a2aerr.InvalidJSON, fmt.Sprintf("decoding payload body: %v", err), err)
	}

	if v2.Thread.ThID == "" {
		v2.Thread.ThID = v2.ID
	}
	return v2, nil
}
