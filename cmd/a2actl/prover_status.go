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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/a2avcx/pkg/prover"
)

var proverStatusCmd = &cobra.Command{
	Use:   "prover-status <thread-id>",
	Short: "Load a persisted Prover state machine by thread id and print its phase",
	Long: `prover-status opens the ProverStore named by store.driver/store.dsn
(memory or postgres) and resolves the Prover record for thread-id, printing
its current phase, source id and presentation status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := newProverStore(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("a2actl: prover-status: %w", err)
		}

		sm, err := prover.Load(cmd.Context(), st, args[0])
		if err != nil {
			return fmt.Errorf("a2actl: prover-status: %w", err)
		}
		return printJSON(struct {
			ThreadID           string `json:"thread_id"`
			SourceID           string `json:"source_id"`
			Phase              string `json:"phase"`
			State              uint32 `json:"state"`
			PresentationStatus uint32 `json:"presentation_status"`
		}{
			ThreadID:           sm.ThreadID(),
			SourceID:           sm.SourceID(),
			Phase:              sm.Phase().String(),
			State:              sm.State(),
			PresentationStatus: sm.PresentationStatus().Code(),
		})
	},
}

func init() {
	rootCmd.AddCommand(proverStatusCmd)
}
