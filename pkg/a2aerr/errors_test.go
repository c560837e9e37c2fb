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

package a2aerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDetectedByKind(t *testing.T) {
	err := New(InvalidState, "bad state")
	assert.True(t, Is(err, InvalidState))
	assert.False(t, Is(err, NotReady))
}

func TestWrapPreservesUnderlyingCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(InvalidJSON, "decoding", cause)
	assert.True(t, Is(err, InvalidJSON))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

func TestIsUnwrapsThroughFmtErrorf(t *testing.T) {
	base := New(NotReady, "not ready yet")
	wrapped := fmt.Errorf("context: %w", base)
	assert.True(t, Is(wrapped, NotReady))
}

func TestIsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), InvalidState))
	assert.False(t, Is(nil, InvalidState))
}
