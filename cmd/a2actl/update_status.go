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

	"github.com/sage-x-project/a2avcx/pkg/wire"
)

var (
	updateStatusConn string
	updateStatusUIDs []string
	updateStatusCode string
)

var updateStatusCmd = &cobra.Command{
	Use:   "update-status",
	Short: "Mark messages as read/reviewed on the agency (UPDATE_MSG_STATUS_BY_CONNS)",
	RunE:  runUpdateStatus,
}

func init() {
	rootCmd.AddCommand(updateStatusCmd)
	updateStatusCmd.Flags().StringVar(&updateStatusConn, "conn", "", "pairwise DID whose messages are being updated (required)")
	updateStatusCmd.Flags().StringSliceVar(&updateStatusUIDs, "uid", nil, "message uids to update (repeatable, required)")
	updateStatusCmd.Flags().StringVar(&updateStatusCode, "status", "MS-106", "new message status code")
	_ = updateStatusCmd.MarkFlagRequired("conn")
	_ = updateStatusCmd.MarkFlagRequired("uid")
}

func runUpdateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newAgencyClient(cfg)
	if err != nil {
		return err
	}

	status, err := wire.ParseStatusCode(updateStatusCode)
	if err != nil {
		return fmt.Errorf("a2actl: update-status: %w", err)
	}

	byConn := []wire.PairwiseDIDUIDs{{PairwiseDID: updateStatusConn, UIDs: updateStatusUIDs}}
	updated, err := client.UpdateMessageStatusByConnections(cmd.Context(), status, byConn)
	if err != nil {
		return fmt.Errorf("a2actl: update-status: %w", err)
	}
	return printJSON(updated)
}
