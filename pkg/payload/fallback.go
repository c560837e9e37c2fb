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

package payload

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sage-x-project/a2avcx/pkg/crypto"
)

// PayloadTypeV1 is the legacy {name, ver, fmt} type tag a synthetic v3
// fallback payload is labeled with.
type PayloadTypeV1 struct {
	Name string `json:"name"`
	Ver  string `json:"ver"`
	Fmt  string `json:"fmt"`
}

func buildV1(k Kind, fmt string) PayloadTypeV1 {
	return PayloadTypeV1{Name: k.name, Ver: "1.0", Fmt: fmt}
}

// SyntheticV1 is what _decrypt_v3_message produces when V2 decoding fails
// but the bytes open as an Aries-shaped encryption envelope.
type SyntheticV1 struct {
	Type PayloadTypeV1 `json:"type"`
	Msg  string        `json:"msg"`
}

// ariesInnerMessage is the generic shape of an Aries protocol message,
// enough to read its @type for classification.
type ariesInnerMessage struct {
	Type string `json:"@type"`
}

// classifyAriesType maps an Aries message type URI onto this core's Kind
// enum by the URI's last path segment: request-presentation to
// ProofRequest, offer-credential to CredOffer, issue-credential to Cred,
// presentation to Proof, anything else to Other("aries").
func classifyAriesType(typeURI string) Kind {
	switch typeURI[strings.LastIndex(typeURI, "/")+1:] {
	case "request-presentation":
		return KindProofRequest
	case "offer-credential":
		return KindCredOffer
	case "issue-credential":
		return KindCred
	case "presentation":
		return KindProof
	default:
		return Other("aries")
	}
}

// decryptV3Message opens packed as a plain encryption envelope (no
// PayloadV2 wrapper expected) and classifies its inner Aries message type,
// producing a synthetic V1 payload.
func decryptV3Message(ctx context.Context, c crypto.Crypto, packed []byte) (SyntheticV1, error) {
	unpackedRaw, err := c.Unpack(ctx, packed)
	if err != nil {
		return SyntheticV1{}, err
	}
	var unpacked struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(unpackedRaw, &unpacked); err != nil {
		return SyntheticV1{}, err
	}

	var inner ariesInnerMessage
	if err := json.Unmarshal([]byte(unpacked.Message), &inner); err != nil {
		return SyntheticV1{}, err
	}

	kind := classifyAriesType(inner.Type)
	return SyntheticV1{Type: buildV1(kind, "json"), Msg: unpacked.Message}, nil
}

// Decrypted is the result of DecryptWithFallback: exactly one of V2 or V1
// is set, or both are nil when both decode paths failed.
type Decrypted struct {
	V2 *V2
	V1 *SyntheticV1
}

// DecryptWithFallback implements the core's decryption policy: attempt
// DecryptV2 against myVK first; on failure, fall back to
// decryptV3Message; if both fail, return a zero Decrypted with no error —
// the caller stores a null decrypted_payload rather than aborting the
// batch.
func DecryptWithFallback(ctx context.Context, c crypto.Crypto, myVK string, packed []byte) Decrypted {
	if v2, err := DecryptV2(ctx, c, myVK, packed); err == nil {
		return Decrypted{V2: &v2}
	}
	if v1, err := decryptV3Message(ctx, c, packed); err == nil {
		return Decrypted{V1: &v1}
	}
	return Decrypted{}
}
