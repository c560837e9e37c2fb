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

package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordVersionSelectsSerializedFields(t *testing.T) {
	rec := ProverRecord{
		SourceID: "src",
		Version:  VersionV1,
		Data:     json.RawMessage(`{"a":1}`),
		State:    json.RawMessage(`{"b":2}`),
	}

	v1, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0","data":{"a":1}}`, string(v1))

	rec.Version = VersionV2
	v2, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","data":{"a":1},"state":{"b":2}}`, string(v2))

	rec.Version = VersionV3
	v3, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"3.0","data":{"a":1},"state":{"b":2},"source_id":"src"}`, string(v3))
}

func TestRecordRoundTripAllVersions(t *testing.T) {
	for _, version := range []Version{VersionV1, VersionV2, VersionV3} {
		rec := ProverRecord{
			SourceID: "src",
			Version:  version,
			Data:     json.RawMessage(`{"a":1}`),
			State:    json.RawMessage(`{"b":2}`),
		}
		body, err := json.Marshal(rec)
		require.NoError(t, err)

		var got ProverRecord
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, version, got.Version)
		assert.JSONEq(t, `{"a":1}`, string(got.Data))
		if version != VersionV1 {
			assert.JSONEq(t, `{"b":2}`, string(got.State))
		}
		if version == VersionV3 {
			assert.Equal(t, "src", got.SourceID)
		}
	}
}

func TestRecordRejectsUnknownVersion(t *testing.T) {
	_, err := json.Marshal(ProverRecord{Version: Version("9.0"), Data: json.RawMessage(`{}`)})
	require.Error(t, err)

	var rec ProverRecord
	require.Error(t, json.Unmarshal([]byte(`{"version":"9.0","data":{}}`), &rec))
}
