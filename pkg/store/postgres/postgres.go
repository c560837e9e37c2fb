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

// Package postgres implements store.ProverStore over PostgreSQL via
// jackc/pgx/v5.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sage-x-project/a2avcx/pkg/store"
)

// Store persists ProverRecords in a single `prover_states` table keyed by
// thread id.
type Store struct {
	pool *pgxpool.Pool
}

// Config holds the PostgreSQL connection parameters.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

const schema = `
CREATE TABLE IF NOT EXISTS prover_states (
	thread_id  TEXT PRIMARY KEY,
	source_id  TEXT NOT NULL,
	version    TEXT NOT NULL,
	data       JSONB NOT NULL,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// New opens a pool, verifies connectivity, and ensures the backing table
// exists.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("store/postgres: creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store/postgres: pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store/postgres: creating schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewFromPool wraps an already-open pool, for callers that manage the pool
// lifecycle themselves (e.g. sharing it with other stores).
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) Save(ctx context.Context, threadID string, rec store.ProverRecord) error {
	const q = `
INSERT INTO prover_states (thread_id, source_id, version, data, state, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (thread_id) DO UPDATE SET
	source_id = EXCLUDED.source_id,
	version   = EXCLUDED.version,
	data      = EXCLUDED.data,
	state     = EXCLUDED.state,
	updated_at = now();`

	_, err := s.pool.Exec(ctx, q, threadID, rec.SourceID, string(rec.Version), []byte(rec.Data), []byte(rec.State))
	if err != nil {
		return fmt.Errorf("store/postgres: saving %s: %w", threadID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, threadID string) (store.ProverRecord, error) {
	const q = `SELECT source_id, version, data, state FROM prover_states WHERE thread_id = $1`

	var rec store.ProverRecord
	var version string
	err := s.pool.QueryRow(ctx, q, threadID).Scan(&rec.SourceID, &version, &rec.Data, &rec.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ProverRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.ProverRecord{}, fmt.Errorf("store/postgres: loading %s: %w", threadID, err)
	}
	rec.Version = store.Version(version)
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, threadID string) error {
	const q = `DELETE FROM prover_states WHERE thread_id = $1`

	tag, err := s.pool.Exec(ctx, q, threadID)
	if err != nil {
		return fmt.Errorf("store/postgres: deleting %s: %w", threadID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
