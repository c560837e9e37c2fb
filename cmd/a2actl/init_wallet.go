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

	"github.com/sage-x-project/a2avcx/pkg/wallet"
)

var initWalletCmd = &cobra.Command{
	Use:   "init-wallet <did>",
	Short: "Generate a fresh X25519 key pair and store it in the wallet under did",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.NewFileWallet(flagWalletDir)
		if err != nil {
			return fmt.Errorf("a2actl: opening wallet: %w", err)
		}
		verkey, err := w.Put(args[0])
		if err != nil {
			return fmt.Errorf("a2actl: init-wallet: %w", err)
		}
		fmt.Printf("did:     %s\nverkey:  %s\nwallet:  %s\n", args[0], verkey, flagWalletDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initWalletCmd)
}
