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

// Package memory implements store.ProverStore over an in-process map, the
// default backend for tests and the CLI demo.
package memory

import (
	"context"
	"sync"

	"github.com/sage-x-project/a2avcx/pkg/store"
)

// Store is an in-memory, thread-safe ProverStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.ProverRecord
}

func New() *Store {
	return &Store{records: make(map[string]store.ProverRecord)}
}

func (s *Store) Save(_ context.Context, threadID string, rec store.ProverRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[threadID] = rec
	return nil
}

func (s *Store) Load(_ context.Context, threadID string) (store.ProverRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[threadID]
	if !ok {
		return store.ProverRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) Delete(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[threadID]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, threadID)
	return nil
}
