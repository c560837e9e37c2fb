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

// Package wire implements the A2A envelope layer: the versioned tagged
// union of wire messages and their @type tokens.
package wire

import "encoding/json"

// DID is the fixed registry identifier embedded in every V2 @type tag.
const DID = "did:sov:123456789abcdefghi1234"

// Family is the canonical message family string.
type Family string

const (
	FamilyRouting            Family = "routing"
	FamilyOnboarding         Family = "onboarding"
	FamilyPairwise           Family = "pairwise"
	FamilyConfigs            Family = "configs"
	FamilyCredentialExchange Family = "credential_exchange"
)

// Version returns the family's associated version token.
func (f Family) Version() string {
	switch f {
	case FamilyCredentialExchange:
		return "1.0"
	default:
		return "1.0"
	}
}

// Unknown builds the family value used for an Other(kind) payload tag.
func Unknown(name string) Family { return Family(name) }

// Type is the structured @type tag carried by every V2 wire message.
type Type struct {
	DID     string `json:"did"`
	Family  Family `json:"family"`
	Version string `json:"version"`
	Name    string `json:"type"`
}

// Kind enumerates the closed set of A2A message kinds this core knows how
// to build a Type for.
type Kind int

const (
	KindForward Kind = iota
	KindConnect
	KindConnected
	KindSignUp
	KindSignedUp
	KindCreateAgent
	KindAgentCreated
	KindCreateKey
	KindKeyCreated
	KindGetMessages
	KindGetMessagesByConnections
	KindMessages
	KindMessagesByConnections
	KindUpdateConnStatus
	KindConnStatusUpdated
	KindUpdateMsgStatusByConns
	KindMsgStatusUpdatedByConns
	KindUpdateConfigs
	KindConfigsUpdated
	KindUpdateComMethod
	KindComMethodUpdated
	KindSendRemoteMessage
	KindRemoteMsgSent
)

// family returns the MessageFamily a Kind belongs to.
func (k Kind) family() Family {
	switch k {
	case KindForward, KindSendRemoteMessage, KindRemoteMsgSent:
		return FamilyRouting
	case KindConnect, KindConnected, KindSignUp, KindSignedUp, KindCreateAgent, KindAgentCreated:
		return FamilyOnboarding
	case KindUpdateConfigs, KindConfigsUpdated, KindUpdateComMethod, KindComMethodUpdated:
		return FamilyConfigs
	default:
		return FamilyPairwise
	}
}

// token returns the wire @type.type string for a Kind.
func (k Kind) token() string {
	switch k {
	case KindForward:
		return "FWD"
	case KindConnect:
		return "CONNECT"
	case KindConnected:
		return "CONNECTED"
	case KindSignUp:
		return "SIGNUP"
	case KindSignedUp:
		return "SIGNED_UP"
	case KindCreateAgent:
		return "CREATE_AGENT"
	case KindAgentCreated:
		return "AGENT_CREATED"
	case KindCreateKey:
		return "CREATE_KEY"
	case KindKeyCreated:
		return "KEY_CREATED"
	case KindGetMessages:
		return "GET_MSGS"
	case KindMessages:
		return "MSGS"
	case KindGetMessagesByConnections:
		return "GET_MSGS_BY_CONNS"
	case KindMessagesByConnections:
		return "MSGS_BY_CONNS"
	case KindSendRemoteMessage:
		return "SEND_REMOTE_MSG"
	case KindRemoteMsgSent:
		return "REMOTE_MSG_SENT"
	case KindUpdateConnStatus:
		return "UPDATE_CONN_STATUS"
	case KindConnStatusUpdated:
		return "CONN_STATUS_UPDATED"
	case KindUpdateMsgStatusByConns:
		return "UPDATE_MSG_STATUS_BY_CONNS"
	case KindMsgStatusUpdatedByConns:
		return "MSG_STATUS_UPDATED_BY_CONNS"
	case KindUpdateConfigs:
		return "UPDATE_CONFIGS"
	case KindConfigsUpdated:
		return "CONFIGS_UPDATED"
	case KindUpdateComMethod:
		return "UPDATE_COM_METHOD"
	case KindComMethodUpdated:
		return "COM_METHOD_UPDATED"
	default:
		return ""
	}
}

// BuildType constructs the canonical V2 @type object for a Kind.
func BuildType(kind Kind) Type {
	fam := kind.family()
	return Type{
		DID:     DID,
		Family:  fam,
		Version: fam.Version(),
		Name:    kind.token(),
	}
}

// rawType is used only to read the @type.type discriminator out of an
// otherwise-unparsed wire body.
type rawType struct {
	Type struct {
		Name string `json:"type"`
	} `json:"@type"`
}

func peekTypeToken(body []byte) (string, error) {
	var rt rawType
	if err := json.Unmarshal(body, &rt); err != nil {
		return "", err
	}
	return rt.Type.Name, nil
}
