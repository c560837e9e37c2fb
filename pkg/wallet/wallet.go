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

// Package wallet backs the Wallet collaborator: resolving a pairwise DID
// to the locally held X25519 verkey, and (for pkg/crypto) the matching
// private scalar for a verkey this wallet owns.
package wallet

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"

	"golang.org/x/crypto/curve25519"
)

// ErrKeyNotFound is returned when a DID or verkey has no local key material.
var ErrKeyNotFound = errors.New("wallet: key not found")

// Wallet is the Wallet collaborator contract.
type Wallet interface {
	LocalVerkey(ctx context.Context, did string) (string, error)
}

// KeyStore is the superset pkg/crypto needs: verkey resolution plus access
// to the private scalar behind a verkey this wallet owns.
type KeyStore interface {
	Wallet
	PrivateKey(ctx context.Context, verkey string) ([]byte, error)
}

// EncodeVerkey renders a 32-byte X25519 public key as a printable verkey.
func EncodeVerkey(pub []byte) string {
	return base64.RawURLEncoding.EncodeToString(pub)
}

// DecodeVerkey parses a printable verkey back into its 32 raw bytes.
func DecodeVerkey(verkey string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(verkey)
}

// GenerateKeyPair produces a fresh X25519 key pair.
func GenerateKeyPair() (priv, pub []byte, err error) {
	priv = make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return nil, nil, err
	}
	pub, err = curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

// MemoryWallet is an in-memory KeyStore, the default for tests; the CLI
// uses the file-backed FileWallet.
type MemoryWallet struct {
	mu       sync.RWMutex
	byDID    map[string]string // did -> verkey
	privKeys map[string][]byte // verkey -> private scalar
}

func NewMemoryWallet() *MemoryWallet {
	return &MemoryWallet{
		byDID:    make(map[string]string),
		privKeys: make(map[string][]byte),
	}
}

// Put generates a fresh key pair, binds it to did, and returns the verkey.
func (w *MemoryWallet) Put(did string) (string, error) {
	priv, pub, err := GenerateKeyPair()
	if err != nil {
		return "", err
	}
	verkey := EncodeVerkey(pub)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.byDID[did] = verkey
	w.privKeys[verkey] = priv
	return verkey, nil
}

func (w *MemoryWallet) LocalVerkey(_ context.Context, did string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	vk, ok := w.byDID[did]
	if !ok {
		return "", ErrKeyNotFound
	}
	return vk, nil
}

func (w *MemoryWallet) PrivateKey(_ context.Context, verkey string) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	priv, ok := w.privKeys[verkey]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return priv, nil
}
