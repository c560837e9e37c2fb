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

	"github.com/sage-x-project/a2avcx/pkg/agency"
)

var (
	downloadConns  []string
	downloadStatus []string
)

var downloadMessagesCmd = &cobra.Command{
	Use:   "download-messages",
	Short: "Download and decrypt messages directly from the agency (GET_MSGS_BY_CONNS)",
	Long: `download-messages sends GET_MSGS_BY_CONNS anonymously packed for the
agency, decrypts each connection's bundle with this wallet, and prints the
per-connection results as JSON. A decrypt or verkey-resolution failure on
any one connection fails the whole call.`,
	RunE: runDownloadMessages,
}

func init() {
	rootCmd.AddCommand(downloadMessagesCmd)
	downloadMessagesCmd.Flags().StringSliceVar(&downloadConns, "conn", nil, "restrict to specific pairwise DIDs (repeatable)")
	downloadMessagesCmd.Flags().StringSliceVar(&downloadStatus, "status", nil, "restrict to specific message status codes (repeatable)")
}

func runDownloadMessages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newAgencyClient(cfg)
	if err != nil {
		return err
	}

	b := agency.NewGetMessagesBuilder(cfg.Agent.ToDID, cfg.Agent.ToVerkey, cfg.Agent.AgentDID, cfg.Agent.AgentVerkey)
	if len(downloadConns) > 0 {
		b = b.PairwiseDIDs(downloadConns)
	}
	if len(downloadStatus) > 0 {
		b = b.StatusCodes(downloadStatus)
	}

	bundles, err := client.DownloadMessages(cmd.Context(), b)
	if err != nil {
		return fmt.Errorf("a2actl: download-messages: %w", err)
	}
	return printJSON(bundles)
}
