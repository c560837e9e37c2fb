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
	"testing"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	req := NewGetMessages()
	req.UIDs = []string{"uid-1", "uid-2"}
	req.StatusCodes = []string{"MS-102"}

	body, err := Encode(req)
	require.NoError(t, err)

	env, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, "GET_MSGS", env.Token)

	var decoded GetMessages
	require.NoError(t, DecodeInto(body, KindGetMessages, &decoded))
	assert.Equal(t, req.UIDs, decoded.UIDs)
	assert.Equal(t, req.StatusCodes, decoded.StatusCodes)
	assert.Equal(t, req.Type, decoded.Type)
}

func TestForwardRoundTrip(t *testing.T) {
	fwd := NewForward("did:sov:peer123", []byte(`{"ciphertext":"abc"}`))
	body, err := Encode(fwd)
	require.NoError(t, err)

	env, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, "FWD", env.Token)

	var decoded Forward
	require.NoError(t, DecodeInto(body, KindForward, &decoded))
	assert.Equal(t, fwd.FWD, decoded.FWD)
	assert.Equal(t, fwd.Msg, decoded.Msg)
}

func TestDecodeUnknownTypeIsInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"@type":{"type":"NOT_A_REAL_TYPE"}}`))
	require.Error(t, err)
	assert.True(t, a2aerr.Is(err, a2aerr.InvalidJSON))
}

func TestDecodeMissingTypeIsInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{}`))
	require.Error(t, err)
	assert.True(t, a2aerr.Is(err, a2aerr.InvalidJSON))
}

func TestDecodeIntoWrongVariantIsInvalidState(t *testing.T) {
	req := NewGetMessages()
	body, err := Encode(req)
	require.NoError(t, err)

	var out MessagesResponse
	err = DecodeInto(body, KindMessages, &out)
	require.Error(t, err)
	assert.True(t, a2aerr.Is(err, a2aerr.InvalidState))
}
