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

// Package crypto implements the pack/unpack authenticated-encryption
// collaborator: an X25519-ECDH + HKDF-SHA256 + ChaCha20-Poly1305
// envelope, one sender per message and one or more recipients, rendered
// as a JWE-like JSON envelope on the wire.
package crypto

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/sage-x-project/a2avcx/internal/metrics"
	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/wallet"
)

const wrapInfoPrefix = "a2avcx-pack-v1:"

// Envelope is the wire form of a packed message.
type Envelope struct {
	Protected  string              `json:"protected"`
	Recipients []EnvelopeRecipient `json:"recipients"`
	IV         string              `json:"iv"`
	Ciphertext string              `json:"ciphertext"`
	Tag        string              `json:"tag"`
}

type EnvelopeRecipient struct {
	EncryptedKey string                  `json:"encrypted_key"`
	Header       EnvelopeRecipientHeader `json:"header"`
}

type EnvelopeRecipientHeader struct {
	KID    string `json:"kid"`              // recipient verkey
	Sender string `json:"sender,omitempty"` // sender or ephemeral verkey, empty only if anoncrypt omits it
	IV     string `json:"iv"`               // per-recipient key-wrap nonce
}

type protectedHeader struct {
	Enc string `json:"enc"`
	Typ string `json:"typ"`
}

// Crypto authenticated-encrypts and decrypts message bodies; pack is
// anonymous when senderVK is empty.
type Crypto interface {
	Pack(ctx context.Context, senderVK string, recipientVKs []string, plaintext []byte) ([]byte, error)
	Unpack(ctx context.Context, packed []byte) ([]byte, error)
}

// UnpackedMessage is what Unpack effectively reconstructs before the caller
// re-marshals the `message` field.
type UnpackedMessage struct {
	Message         string `json:"message"`
	RecipientVerkey string `json:"recipient_verkey"`
	SenderVerkey    string `json:"sender_verkey,omitempty"`
}

// AgentCrypto is the concrete Crypto collaborator, backed by a KeyStore for
// resolving this agent's own private keys during Unpack.
type AgentCrypto struct {
	keys wallet.KeyStore
}

func New(keys wallet.KeyStore) *AgentCrypto {
	return &AgentCrypto{keys: keys}
}

// Pack authenticated-encrypts plaintext for every recipientVK. When
// senderVK is empty the pack is anonymous: an ephemeral X25519 key stands
// in for the sender, matching libindy's anoncrypt.
func (c *AgentCrypto) Pack(ctx context.Context, senderVK string, recipientVKs []string, plaintext []byte) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.PackOperations.WithLabelValues("pack", status).Inc()
		metrics.PackDuration.WithLabelValues("pack").Observe(time.Since(start).Seconds())
	}()

	if len(recipientVKs) == 0 {
		return nil, a2aerr.New(a2aerr.InvalidState, "pack requires at least one recipient")
	}

	var senderPriv []byte
	var senderPub string
	anon := senderVK == ""
	if anon {
		priv, pub, err := wallet.GenerateKeyPair()
		if err != nil {
			return nil, a2aerr.Wrap(a2aerr.NotReady, "generating ephemeral key", err)
		}
		senderPriv, senderPub = priv, wallet.EncodeVerkey(pub)
	} else {
		priv, err := c.keys.PrivateKey(ctx, senderVK)
		if err != nil {
			return nil, a2aerr.Wrap(a2aerr.NotReady, "resolving sender private key", err)
		}
		senderPriv, senderPub = priv, senderVK
	}

	cek := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(cek); err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "generating content key", err)
	}
	iv := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "generating nonce", err)
	}

	protected, err := json.Marshal(protectedHeader{Enc: "chacha20poly1305", Typ: "A2A/1.0"})
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding protected header", err)
	}
	protectedB64 := base64.RawURLEncoding.EncodeToString(protected)

	contentAEAD, err := chacha20poly1305.New(cek)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "constructing content cipher", err)
	}
	sealed := contentAEAD.Seal(nil, iv, plaintext, []byte(protectedB64))
	ciphertext, tag := splitTag(sealed, contentAEAD.Overhead())

	recipients := make([]EnvelopeRecipient, 0, len(recipientVKs))
	for _, recVK := range recipientVKs {
		recPub, err := wallet.DecodeVerkey(recVK)
		if err != nil {
			return nil, a2aerr.Wrap(a2aerr.InvalidState, fmt.Sprintf("decoding recipient verkey %q", recVK), err)
		}
		wrapKey, err := deriveWrapKey(senderPriv, recPub, recVK)
		if err != nil {
			return nil, a2aerr.Wrap(a2aerr.NotReady, "deriving recipient wrap key", err)
		}
		wrapIV := make([]byte, chacha20poly1305.NonceSize)
		if _, err := rand.Read(wrapIV); err != nil {
			return nil, a2aerr.Wrap(a2aerr.NotReady, "generating wrap nonce", err)
		}
		wrapAEAD, err := chacha20poly1305.New(wrapKey)
		if err != nil {
			return nil, a2aerr.Wrap(a2aerr.NotReady, "constructing wrap cipher", err)
		}
		encryptedKey := wrapAEAD.Seal(nil, wrapIV, cek, nil)

		header := EnvelopeRecipientHeader{
			KID:    recVK,
			Sender: senderPub,
			IV:     base64.RawURLEncoding.EncodeToString(wrapIV),
		}
		recipients = append(recipients, EnvelopeRecipient{
			EncryptedKey: base64.RawURLEncoding.EncodeToString(encryptedKey),
			Header:       header,
		})
	}

	env := Envelope{
		Protected:  protectedB64,
		Recipients: recipients,
		IV:         base64.RawURLEncoding.EncodeToString(iv),
		Ciphertext: base64.RawURLEncoding.EncodeToString(ciphertext),
		Tag:        base64.RawURLEncoding.EncodeToString(tag),
	}
	out, err := json.Marshal(env)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding envelope", err)
	}
	return out, nil
}

// Unpack decrypts packed for whichever local verkey it is addressed to.
func (c *AgentCrypto) Unpack(ctx context.Context, packed []byte) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.PackOperations.WithLabelValues("unpack", status).Inc()
		metrics.PackDuration.WithLabelValues("unpack").Observe(time.Since(start).Seconds())
	}()

	var env Envelope
	if err := json.Unmarshal(packed, &env); err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding envelope", err)
	}

	var recv EnvelopeRecipient
	var recvPriv []byte
	found := false
	for _, r := range env.Recipients {
		priv, err := c.keys.PrivateKey(ctx, r.Header.KID)
		if err != nil {
			continue
		}
		recv, recvPriv, found = r, priv, true
		break
	}
	if !found {
		return nil, a2aerr.New(a2aerr.NotReady, "no local key matches any envelope recipient")
	}

	senderPub, err := wallet.DecodeVerkey(recv.Header.Sender)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding sender verkey", err)
	}
	wrapKey, err := deriveWrapKey(recvPriv, senderPub, recv.Header.KID)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "deriving recipient wrap key", err)
	}

	wrapIV, err := base64.RawURLEncoding.DecodeString(recv.Header.IV)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding wrap nonce", err)
	}
	encryptedKey, err := base64.RawURLEncoding.DecodeString(recv.EncryptedKey)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding encrypted key", err)
	}
	wrapAEAD, err := chacha20poly1305.New(wrapKey)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "constructing wrap cipher", err)
	}
	cek, err := wrapAEAD.Open(nil, wrapIV, encryptedKey, nil)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidMessagePack, "unwrapping content key", err)
	}

	iv, err := base64.RawURLEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding iv", err)
	}
	ciphertext, err := base64.RawURLEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding ciphertext", err)
	}
	tag, err := base64.RawURLEncoding.DecodeString(env.Tag)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding tag", err)
	}
	contentAEAD, err := chacha20poly1305.New(cek)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.NotReady, "constructing content cipher", err)
	}
	plaintext, err := contentAEAD.Open(nil, iv, append(ciphertext, tag...), []byte(env.Protected))
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidMessagePack, "decrypting message", err)
	}

	out := UnpackedMessage{
		Message:         string(plaintext),
		RecipientVerkey: recv.Header.KID,
	}
	if recv.Header.Sender != "" {
		out.SenderVerkey = recv.Header.Sender
	}
	result, err := json.Marshal(out)
	if err != nil {
		return nil, a2aerr.Wrap(a2aerr.SerializationError, "encoding unpacked message", err)
	}
	return result, nil
}

func deriveWrapKey(priv, peerPub []byte, salt string) ([]byte, error) {
	shared, err := curve25519.X25519(priv, peerPub)
	if err != nil {
		return nil, err
	}
	r := hkdf.New(sha256.New, shared, nil, []byte(wrapInfoPrefix+salt))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func splitTag(sealed []byte, overhead int) (ciphertext, tag []byte) {
	n := len(sealed) - overhead
	return sealed[:n], sealed[n:]
}
