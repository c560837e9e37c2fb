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

// Forward wraps an already-packed message for delivery to @fwd, the next
// hop in a (possibly double-nested) routing chain. @msg is
// the packed envelope embedded verbatim as JSON.
type Forward struct {
	Type Type            `json:"@type"`
	FWD  string          `json:"@fwd"`
	Msg  json.RawMessage `json:"@msg"`
}

func NewForward(fwd string, msg []byte) Forward {
	return Forward{Type: BuildType(KindForward), FWD: fwd, Msg: msg}
}

// DeliveryDetails carries agency delivery-attempt diagnostics attached to a
// Message record.
type DeliveryDetails struct {
	ToDID               string `json:"to,omitempty"`
	Status              string `json:"status,omitempty"`
	LastUpdatedDateTime string `json:"lastUpdatedDateTime,omitempty"`
}

// Message is an agency inbox record. Payload
// is the encrypted envelope exactly as the agency stored it; after a
// decrypt pass it is cleared in favor of DecryptedPayload.
type Message struct {
	StatusCode       MessageStatusCode `json:"statusCode"`
	Payload          json.RawMessage   `json:"payload,omitempty"`
	SenderDID        string            `json:"senderDID,omitempty"`
	UID              string            `json:"uid"`
	Type             RemoteMessageType `json:"type"`
	RefMsgID         string            `json:"refMsgId,omitempty"`
	DeliveryDetails  []DeliveryDetails `json:"deliveryDetails,omitempty"`
	DecryptedPayload string            `json:"decryptedPayload,omitempty"`
}

// GetMessages requests messages from the caller's own cloud agent
// (GET_MSGS).
type GetMessages struct {
	Type           Type     `json:"@type"`
	ExcludePayload string   `json:"excludePayload,omitempty"`
	UIDs           []string `json:"uids,omitempty"`
	StatusCodes    []string `json:"statusCodes,omitempty"`
}

func NewGetMessages() GetMessages {
	return GetMessages{Type: BuildType(KindGetMessages)}
}

// MessagesResponse answers GetMessages.
type MessagesResponse struct {
	Type Type      `json:"@type"`
	Msgs []Message `json:"msgs"`
}

// PairwiseDIDFilter narrows GetMessagesByConnections to one pairwise
// connection and, optionally, specific uids within it (GET_MSGS_BY_CONNS).
type PairwiseDIDFilter struct {
	PairwiseDID string   `json:"pairwiseDID"`
	UIDs        []string `json:"uids,omitempty"`
}

type GetMessagesByConnections struct {
	Type           Type                `json:"@type"`
	ExcludePayload string              `json:"excludePayload,omitempty"`
	StatusCodes    []string            `json:"statusCodes,omitempty"`
	PairwiseDIDs   []PairwiseDIDFilter `json:"pairwiseDIDs,omitempty"`
}

func NewGetMessagesByConnections() GetMessagesByConnections {
	return GetMessagesByConnections{Type: BuildType(KindGetMessagesByConnections)}
}

// MessageByConnection bundles one pairwise connection's share of a
// GET_MSGS_BY_CONNS response.
type MessageByConnection struct {
	PairwiseDID string    `json:"pairwiseDID"`
	Msgs        []Message `json:"msgs"`
}

type MessagesByConnectionsResponse struct {
	Type        Type                  `json:"@type"`
	MsgsByConns []MessageByConnection `json:"msgsByConns"`
}

// PairwiseDIDUIDs lists message uids of one pairwise connection, as carried
// by UPDATE_MSG_STATUS_BY_CONNS and its response.
type PairwiseDIDUIDs struct {
	PairwiseDID string   `json:"pairwiseDID"`
	UIDs        []string `json:"uids"`
}

// UpdateMessageStatusByConnections moves a batch of messages to a new
// status code across one or more pairwise connections
// (UPDATE_MSG_STATUS_BY_CONNS).
type UpdateMessageStatusByConnections struct {
	Type         Type              `json:"@type"`
	StatusCode   MessageStatusCode `json:"statusCode"`
	PairwiseDIDs []PairwiseDIDUIDs `json:"uidsByConns"`
}

func NewUpdateMessageStatusByConnections(status MessageStatusCode) UpdateMessageStatusByConnections {
	return UpdateMessageStatusByConnections{Type: BuildType(KindUpdateMsgStatusByConns), StatusCode: status}
}

type MessageStatusUpdatedByConnectionsResponse struct {
	Type               Type              `json:"@type"`
	UpdatedUIDsByConns []PairwiseDIDUIDs `json:"updatedUidsByConns"`
}
