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

package wire

import (
	"encoding/json"
	"fmt"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

// Envelope is the decoded form of a wire body: the resolved @type token
// plus the raw bytes, ready for a caller to type-assert against the
// concrete struct its token implies.
type Envelope struct {
	Token string
	Body  []byte
}

// Decode reads just enough of body to resolve its @type.type discriminator.
// Callers then json.Unmarshal the same body into the concrete struct that
// token names. An unrecognized or missing token is InvalidJSON: this core
// never silently drops an unknown message.
func Decode(body []byte) (Envelope, error) {
	token, err := peekTypeToken(body)
	if err != nil {
		return Envelope{}, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding @type", err)
	}
	if token == "" {
		return Envelope{}, a2aerr.New(a2aerr.InvalidJSON, "missing @type.type")
	}
	if !knownToken(token) {
		return Envelope{}, a2aerr.New(a2aerr.InvalidJSON, fmt.Sprintf("unrecognized message type %q", token))
	}
	return Envelope{Token: token, Body: body}, nil
}

func knownToken(token string) bool {
	for k := KindForward; k <= KindRemoteMsgSent; k++ {
		if k.token() == token {
			return true
		}
	}
	return false
}

// Encode marshals v as-is. It does not check that v carries a @type object
// or that the token is one this package knows, since v may be a raw
// Forward-wrapped payload bound for a different family.
func Encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding wire message", err)
	}
	return body, nil
}

// DecodeInto decodes body's @type token and, if it matches want, unmarshals
// body into out. Mismatched tokens are InvalidState: the caller expected
// one message and the peer sent another.
func DecodeInto(body []byte, want Kind, out any) error {
	env, err := Decode(body)
	if err != nil {
		return err
	}
	if env.Token != want.token() {
		return a2aerr.New(a2aerr.InvalidState, fmt.Sprintf("expected %q, got %q", want.token(), env.Token))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return a2aerr.Wrap(a2aerr.InvalidJSON, "decoding message body", err)
	}
	return nil
}
