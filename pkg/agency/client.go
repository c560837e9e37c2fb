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

package agency

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sage-x-project/a2avcx/internal/logger"
	"github.com/sage-x-project/a2avcx/internal/metrics"
	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/crypto"
	"github.com/sage-x-project/a2avcx/pkg/payload"
	"github.com/sage-x-project/a2avcx/pkg/routing"
	"github.com/sage-x-project/a2avcx/pkg/transport"
	"github.com/sage-x-project/a2avcx/pkg/wallet"
	"github.com/sage-x-project/a2avcx/pkg/wire"
)

// Client is the Agency Client: it knows how to address both the caller's
// own cloud agent and the agency itself, and how to reach the wallet for
// per-connection decrypt during download_messages.
type Client struct {
	Transport transport.Transport
	Crypto    crypto.Crypto
	Wallet    wallet.Wallet

	AgencyDID string
	AgencyVK  string

	// Mock, when true, short-circuits an empty HTTP response to an empty
	// result instead of an error, for test harnesses that stub the
	// transport without returning a real wire body.
	Mock bool

	Log logger.Logger
}

func (c *Client) log() logger.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logger.NewDefaultLogger()
}

// SendSecure builds a GET_MSGS request targeted at the caller's own cloud
// agent, packs it for that agent (inner), wraps it with a Forward toward
// the agency, POSTs, then decodes the response.
func (c *Client) SendSecure(ctx context.Context, b *GetMessagesBuilder) (_ []wire.Message, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.AgencyRoundTrips.WithLabelValues("send_secure", status).Inc()
		metrics.AgencyRoundTripDuration.WithLabelValues("send_secure").Observe(time.Since(start).Seconds())
	}()

	if err := b.validate(); err != nil {
		return nil, err
	}

	req := wire.NewGetMessages()
	req.ExcludePayload = b.excludePayload
	req.UIDs = b.uids
	req.StatusCodes = b.statusCodes

	body, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}
	packed, err := routing.WrapForAgent(ctx, c.Crypto, body, b.toVK, b.agentDID, b.agentVK, c.AgencyDID, c.AgencyVK)
	if err != nil {
		return nil, err
	}

	respBody, err := c.Transport.PostU8(ctx, packed)
	if err != nil {
		return nil, err
	}
	if c.Mock && len(respBody) == 0 {
		return nil, nil
	}

	var resp wire.MessagesResponse
	if err := wire.DecodeInto(respBody, wire.KindMessages, &resp); err != nil {
		c.log().Error("send_secure: unexpected response variant", logger.Error(err))
		return nil, a2aerr.Wrap(a2aerr.InvalidHTTPResponse, "expected GetMessagesResponse", err)
	}
	return resp.Msgs, nil
}

// DownloadMessages builds a GET_MSGS_BY_CONNS request packed directly for
// the agency (no inner/forward pair), decodes the response, and
// per-connection decrypts each bundle's payloads. A decrypt or
// verkey-resolution failure for any one connection fails the whole call,
// per DESIGN.md Open Question 2.
func (c *Client) DownloadMessages(ctx context.Context, b *GetMessagesBuilder) (_ []wire.MessageByConnection, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.AgencyRoundTrips.WithLabelValues("download_messages", status).Inc()
		metrics.AgencyRoundTripDuration.WithLabelValues("download_messages").Observe(time.Since(start).Seconds())
	}()

	if err := b.validate(); err != nil {
		return nil, err
	}

	req := wire.NewGetMessagesByConnections()
	req.ExcludePayload = b.excludePayload
	req.StatusCodes = b.statusCodes
	for _, did := range b.pairwiseDIDs {
		req.PairwiseDIDs = append(req.PairwiseDIDs, wire.PairwiseDIDFilter{PairwiseDID: did})
	}

	body, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}
	packed, err := routing.WrapAnonymous(ctx, c.Crypto, body, c.AgencyDID, c.AgencyVK)
	if err != nil {
		return nil, err
	}

	respBody, err := c.Transport.PostU8(ctx, packed)
	if err != nil {
		return nil, err
	}
	if c.Mock && len(respBody) == 0 {
		return nil, nil
	}

	var resp wire.MessagesByConnectionsResponse
	if err := wire.DecodeInto(respBody, wire.KindMessagesByConnections, &resp); err != nil {
		c.log().Error("download_messages: unexpected response variant", logger.Error(err))
		return nil, a2aerr.Wrap(a2aerr.InvalidHTTPResponse, "expected MessagesByConnectionsResponse", err)
	}

	out := make([]wire.MessageByConnection, 0, len(resp.MsgsByConns))
	for _, bundle := range resp.MsgsByConns {
		decrypted, err := c.decryptBundle(ctx, bundle)
		if err != nil {
			return nil, err
		}
		out = append(out, decrypted)
	}
	return out, nil
}

func (c *Client) decryptBundle(ctx context.Context, bundle wire.MessageByConnection) (wire.MessageByConnection, error) {
	vk, err := c.Wallet.LocalVerkey(ctx, bundle.PairwiseDID)
	if err != nil {
		return wire.MessageByConnection{}, a2aerr.Wrap(a2aerr.NotReady, "resolving local verkey for "+bundle.PairwiseDID, err)
	}

	out := wire.MessageByConnection{PairwiseDID: bundle.PairwiseDID, Msgs: make([]wire.Message, 0, len(bundle.Msgs))}
	for _, msg := range bundle.Msgs {
		if len(msg.Payload) > 0 {
			decrypted := payload.DecryptWithFallback(ctx, c.Crypto, vk, msg.Payload)
			msg.DecryptedPayload = renderDecrypted(decrypted)
			msg.Payload = nil
		}
		out.Msgs = append(out.Msgs, msg)
	}
	return out, nil
}

// renderDecrypted serializes whichever payload shape the decrypt pass
// produced; when both paths failed the record carries the JSON literal
// null, so a reader can tell "decrypt attempted and failed" from "never
// had a payload".
func renderDecrypted(d payload.Decrypted) string {
	var v any
	switch {
	case d.V2 != nil:
		v = d.V2
	case d.V1 != nil:
		v = d.V1
	default:
		return "null"
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(out)
}

// UpdateMessageStatusByConnections issues UPDATE_MSG_STATUS_BY_CONNS
// packed directly for the agency.
func (c *Client) UpdateMessageStatusByConnections(ctx context.Context, status wire.MessageStatusCode, byConn []wire.PairwiseDIDUIDs) (_ []wire.PairwiseDIDUIDs, err error) {
	start := time.Now()
	defer func() {
		s := "ok"
		if err != nil {
			s = "error"
		}
		metrics.AgencyRoundTrips.WithLabelValues("update_msg_status", s).Inc()
		metrics.AgencyRoundTripDuration.WithLabelValues("update_msg_status").Observe(time.Since(start).Seconds())
	}()

	req := wire.NewUpdateMessageStatusByConnections(status)
	req.PairwiseDIDs = byConn

	body, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}
	packed, err := routing.WrapAnonymous(ctx, c.Crypto, body, c.AgencyDID, c.AgencyVK)
	if err != nil {
		return nil, err
	}

	respBody, err := c.Transport.PostU8(ctx, packed)
	if err != nil {
		return nil, err
	}
	if c.Mock && len(respBody) == 0 {
		return nil, nil
	}

	var resp wire.MessageStatusUpdatedByConnectionsResponse
	if err := wire.DecodeInto(respBody, wire.KindMsgStatusUpdatedByConns, &resp); err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidHTTPResponse, "expected MessageStatusUpdatedByConnectionsResponse", err)
	}
	return resp.UpdatedUIDsByConns, nil
}
