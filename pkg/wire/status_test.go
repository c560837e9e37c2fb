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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStatusCodeRoundTrip(t *testing.T) {
	cases := []struct {
		code MessageStatusCode
		want string
	}{
		{StatusCreated, "MS-101"},
		{StatusSent, "MS-102"},
		{StatusReceived, "MS-103"},
		{StatusAccepted, "MS-104"},
		{StatusRejected, "MS-105"},
		{StatusReviewed, "MS-106"},
		{StatusRedirected, "MS-107"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.String())

			data, err := json.Marshal(tc.code)
			require.NoError(t, err)
			assert.Equal(t, `"`+tc.want+`"`, string(data))

			decoded, err := ParseStatusCode(tc.want)
			require.NoError(t, err)
			assert.Equal(t, tc.code, decoded)

			var unmarshaled MessageStatusCode
			require.NoError(t, json.Unmarshal(data, &unmarshaled))
			assert.Equal(t, tc.code, unmarshaled)
		})
	}
}

func TestParseStatusCodeUnknown(t *testing.T) {
	_, err := ParseStatusCode("MS-999")
	require.Error(t, err)
}
