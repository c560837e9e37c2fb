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

	"github.com/sage-x-project/a2avcx/internal/metrics"
)

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose the Prometheus registry over HTTP (config: metrics.addr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr := cfg.Metrics.Addr
		if addr == "" {
			addr = ":9090"
		}
		fmt.Printf("a2actl: serving metrics on %s/metrics\n", addr)
		return metrics.StartServer(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveMetricsCmd)
}
