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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sage-x-project/a2avcx/pkg/agency"
)

var (
	getMsgsUIDs   []string
	getMsgsStatus []string
)

var getMessagesCmd = &cobra.Command{
	Use:   "get-messages",
	Short: "Send a GET_MSGS request to this agent's own cloud agent via the agency",
	Long: `get-messages builds a GetMessagesBuilder addressed at agent.to_did/to_verkey
and agent.agent_did/agent_verkey, sends it through SendSecure (inner pack for
the cloud agent, routed Forward to the agency), and prints the decoded
response as JSON.`,
	RunE: runGetMessages,
}

func init() {
	rootCmd.AddCommand(getMessagesCmd)
	getMessagesCmd.Flags().StringSliceVar(&getMsgsUIDs, "uid", nil, "restrict to specific message uids (repeatable)")
	getMessagesCmd.Flags().StringSliceVar(&getMsgsStatus, "status", nil, "restrict to specific message status codes (repeatable)")
}

func runGetMessages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newAgencyClient(cfg)
	if err != nil {
		return err
	}

	b := agency.NewGetMessagesBuilder(cfg.Agent.ToDID, cfg.Agent.ToVerkey, cfg.Agent.AgentDID, cfg.Agent.AgentVerkey)
	if len(getMsgsUIDs) > 0 {
		b = b.UIDs(getMsgsUIDs)
	}
	if len(getMsgsStatus) > 0 {
		b = b.StatusCodes(getMsgsStatus)
	}

	msgs, err := client.SendSecure(cmd.Context(), b)
	if err != nil {
		return fmt.Errorf("a2actl: get-messages: %w", err)
	}
	return printJSON(msgs)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
