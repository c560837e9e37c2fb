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
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "a2actl",
	Short: "a2actl drives an agency-relayed agent connection from the command line",
	Long: `a2actl exercises the A2A messaging core: downloading and decrypting
agency messages, sending secure requests to a cloud agent, inspecting a
persisted Prover presentation exchange, and updating message delivery status.

Configuration is resolved from config/<env>.yaml, config/default.yaml or
config/config.yaml, then overridden by A2A_* environment variables (see
pkg/config).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "config", "directory holding <env>.yaml/default.yaml/config.yaml")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "deployment environment (default: $A2A_ENV or development)")
	rootCmd.PersistentFlags().StringVar(&flagWalletDir, "wallet-dir", "./wallet", "directory holding this agent's FileWallet key material")

	// Subcommands register themselves in their own files' init():
	// - version.go: versionCmd
	// - init_wallet.go: initWalletCmd
	// - get_messages.go: getMessagesCmd
	// - download_messages.go: downloadMessagesCmd
	// - update_status.go: updateStatusCmd
	// - prover_status.go: proverStatusCmd
	// - serve_metrics.go: serveMetricsCmd
}
