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

import "encoding/json"

// RemoteMessageType is the credential-exchange artifact tag carried on
// individual agency Message records. It is an open-ish enum:
// anything not recognized decodes into Other(name), and several aliases
// collapse onto the same canonical value.
type RemoteMessageType struct {
	name string
}

var (
	RemoteConnReq         = RemoteMessageType{"connReq"}
	RemoteConnReqAnswer   = RemoteMessageType{"connReqAnswer"}
	RemoteConnReqRedirect = RemoteMessageType{"connReqRedirect"}
	RemoteCredOffer       = RemoteMessageType{"credOffer"}
	RemoteCredReq         = RemoteMessageType{"credReq"}
	RemoteCred            = RemoteMessageType{"cred"}
	RemoteProofReq        = RemoteMessageType{"proofReq"}
	RemoteProof           = RemoteMessageType{"proof"}
)

// RemoteOther builds the catch-all variant for an unrecognized tag.
func RemoteOther(name string) RemoteMessageType { return RemoteMessageType{name} }

// String returns the canonical wire token for the type.
func (t RemoteMessageType) String() string { return t.name }

// IsOther reports whether t fell through to the catch-all variant.
func (t RemoteMessageType) IsOther() bool {
	switch t.name {
	case "connReq", "connReqAnswer", "connReqRedirect", "credOffer", "credReq", "cred", "proofReq", "proof":
		return false
	default:
		return true
	}
}

// remoteTypeAliases maps every accepted wire spelling onto its canonical RemoteMessageType.
var remoteTypeAliases = map[string]RemoteMessageType{
	"connReq":             RemoteConnReq,
	"CONN_REQ":            RemoteConnReq,
	"connReqAnswer":       RemoteConnReqAnswer,
	"CONN_REQ_ACCEPTED":   RemoteConnReqAnswer,
	"connReqRedirect":     RemoteConnReqRedirect,
	"connReqRedirected":   RemoteConnReqRedirect,
	"CONN_REQ_REDIRECTED": RemoteConnReqRedirect,
	"credOffer":           RemoteCredOffer,
	"CRED_OFFER":          RemoteCredOffer,
	"credReq":             RemoteCredReq,
	"CRED_REQ":            RemoteCredReq,
	"cred":                RemoteCred,
	"CRED":                RemoteCred,
	"proofReq":            RemoteProofReq,
	"PROOF_REQ":           RemoteProofReq,
	"proof":               RemoteProof,
	"PROOF":               RemoteProof,
}

// ParseRemoteMessageType decodes any accepted wire spelling, falling back to
// Other(name) for anything unrecognized (never an error: the upstream
// RemoteMessageType enum round-trips every string it is given).
func ParseRemoteMessageType(s string) RemoteMessageType {
	if canon, ok := remoteTypeAliases[s]; ok {
		return canon
	}
	return RemoteOther(s)
}

func (t RemoteMessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.name)
}

func (t *RemoteMessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseRemoteMessageType(s)
	return nil
}
