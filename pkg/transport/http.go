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

// Package transport implements the Transport collaborator: a single
// blocking byte-in/byte-out HTTP POST, the one operation the agency
// protocol actually needs.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

// Transport delivers packed bytes to the agency and returns the raw
// response body.
type Transport interface {
	PostU8(ctx context.Context, body []byte) ([]byte, error)
}

// HTTPTransport posts packed envelope bytes to a fixed agency endpoint.
type HTTPTransport struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func NewHTTPTransportWithClient(endpoint string, client *http.Client) *HTTPTransport {
	return &HTTPTransport{endpoint: endpoint, httpClient: client}
}

// PostU8 sends body as the raw POST payload and returns the response body
// verbatim. A non-2xx status is InvalidHTTPResponse; a transport-level
// failure (DNS, connection refused, timeout) is PostMessageFailed.
func (t *HTTPTransport) PostU8(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.PostMessageFailed, "building request", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.PostMessageFailed, "posting to agency", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidHTTPResponse, "reading response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, a2aerr.New(a2aerr.InvalidHTTPResponse, http.StatusText(resp.StatusCode))
	}
	return respBody, nil
}
