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

package prover

import (
	"context"
	"encoding/json"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
	"github.com/sage-x-project/a2avcx/pkg/store"
)

// snapshotState is everything Step can change, round-tripped through
// store.ProverRecord.State. PresentationRequest is kept separately as
// ProverRecord.Data so the original request survives every transition
// untouched.
type snapshotState struct {
	Phase         Phase         `json:"phase"`
	Presentation  Presentation  `json:"presentation,omitempty"`
	ProblemReport ProblemReport `json:"problem_report,omitempty"`
	Connection    string        `json:"connection,omitempty"`
	Status        Status        `json:"status,omitempty"`
}

// Snapshot renders s as a store.ProverRecord for persistence, keyed by
// ThreadID() at the call site. Every SM is realized as a V3 record
// (Data/State/SourceID), the superset of the "1.0"/"2.0" variants.
func (s *SM) Snapshot() (store.ProverRecord, error) {
	data, err := json.Marshal(s.request)
	if err != nil {
		return store.ProverRecord{}, a2aerr.Wrap(a2aerr.SerializationError, "encoding prover request", err)
	}
	state, err := json.Marshal(snapshotState{
		Phase:         s.phase,
		Presentation:  s.presentation,
		ProblemReport: s.problemReport,
		Connection:    s.connection,
		Status:        s.status,
	})
	if err != nil {
		return store.ProverRecord{}, a2aerr.Wrap(a2aerr.SerializationError, "encoding prover state", err)
	}
	return store.ProverRecord{
		SourceID: s.sourceID,
		Version:  store.VersionV3,
		Data:     data,
		State:    state,
	}, nil
}

// Restore rebuilds an SM from a previously Snapshot-ted record.
func Restore(rec store.ProverRecord) (*SM, error) {
	var req PresentationRequest
	if err := json.Unmarshal(rec.Data, &req); err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding prover request", err)
	}
	var st snapshotState
	if err := json.Unmarshal(rec.State, &st); err != nil {
		return nil, a2aerr.Wrap(a2aerr.InvalidJSON, "decoding prover state", err)
	}
	return &SM{
		sourceID:      rec.SourceID,
		phase:         st.Phase,
		request:       req,
		presentation:  st.Presentation,
		problemReport: st.ProblemReport,
		connection:    st.Connection,
		status:        st.Status,
	}, nil
}

// Save snapshots s and persists it under its thread id.
func (s *SM) Save(ctx context.Context, st store.ProverStore) error {
	rec, err := s.Snapshot()
	if err != nil {
		return err
	}
	return st.Save(ctx, s.ThreadID(), rec)
}

// Load resolves threadID from st and rebuilds the SM it names.
func Load(ctx context.Context, st store.ProverStore, threadID string) (*SM, error) {
	rec, err := st.Load(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return Restore(rec)
}
