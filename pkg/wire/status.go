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

// MessageStatusCode is the closed set of agency message lifecycle states.
type MessageStatusCode int

const (
	StatusCreated MessageStatusCode = iota
	StatusSent
	StatusReceived
	StatusAccepted
	StatusRejected
	StatusReviewed
	StatusRedirected
)

// String returns the MS-1xx wire code.
func (s MessageStatusCode) String() string {
	switch s {
	case StatusCreated:
		return "MS-101"
	case StatusSent:
		return "MS-102"
	case StatusReceived:
		return "MS-103"
	case StatusAccepted:
		return "MS-104"
	case StatusRejected:
		return "MS-105"
	case StatusReviewed:
		return "MS-106"
	case StatusRedirected:
		return "MS-107"
	default:
		return "MS-000"
	}
}

// Message returns a human-readable description, mirroring the upstream
// `MessageStatusCode::message` helper.
func (s MessageStatusCode) Message() string {
	switch s {
	case StatusCreated:
		return "message created"
	case StatusSent:
		return "message sent"
	case StatusReceived:
		return "message received"
	case StatusAccepted:
		return "message accepted"
	case StatusRejected:
		return "message rejected"
	case StatusReviewed:
		return "message reviewed"
	case StatusRedirected:
		return "message redirected"
	default:
		return "unknown"
	}
}

// ParseStatusCode decodes an MS-1xx string back into a MessageStatusCode.
func ParseStatusCode(s string) (MessageStatusCode, error) {
	switch s {
	case "MS-101":
		return StatusCreated, nil
	case "MS-102":
		return StatusSent, nil
	case "MS-103":
		return StatusReceived, nil
	case "MS-104":
		return StatusAccepted, nil
	case "MS-105":
		return StatusRejected, nil
	case "MS-106":
		return StatusReviewed, nil
	case "MS-107":
		return StatusRedirected, nil
	default:
		return 0, a2aerr.New(a2aerr.InvalidJSON, fmt.Sprintf("unexpected message status code %q", s))
	}
}

func (s MessageStatusCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *MessageStatusCode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	code, err := ParseStatusCode(str)
	if err != nil {
		return err
	}
	*s = code
	return nil
}
