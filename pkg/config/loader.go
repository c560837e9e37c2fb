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

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoaderOptions configures Load's search path and behavior.
type LoaderOptions struct {
	// ConfigDir is the directory containing config files (default: ./config).
	ConfigDir string
	// Environment overrides automatic environment detection.
	Environment string
	// EnvFile, if non-empty, is loaded via godotenv before overrides apply.
	EnvFile string
}

// DefaultLoaderOptions returns the default search path.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{ConfigDir: "config", EnvFile: ".env"}
}

// Environment returns the deployment environment, defaulting to "development".
func Environment() string {
	if e := os.Getenv("A2A_ENV"); e != "" {
		return e
	}
	return "development"
}

// Load resolves configuration in layers: an environment-specific file
// first, then default.yaml, then config.yaml, then an empty config —
// followed by defaults, then .env/os.Getenv overrides (highest priority).
func Load(opts ...LoaderOptions) (*Config, error) {
	options := DefaultLoaderOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	env := options.Environment
	if env == "" {
		env = Environment()
	}

	cfg, err := firstExisting(
		filepath.Join(options.ConfigDir, fmt.Sprintf("%s.yaml", env)),
		filepath.Join(options.ConfigDir, "default.yaml"),
		filepath.Join(options.ConfigDir, "config.yaml"),
	)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Environment == "" {
		cfg.Environment = env
	}

	setDefaults(cfg)

	if options.EnvFile != "" && fileExists(options.EnvFile) {
		if err := godotenv.Load(options.EnvFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", options.EnvFile, err)
		}
	}
	applyEnvOverrides(cfg)

	return cfg, nil
}

func firstExisting(paths ...string) (*Config, error) {
	for _, p := range paths {
		if !fileExists(p) {
			continue
		}
		return loadFromFile(p)
	}
	return nil, nil
}

// applyEnvOverrides applies the highest-priority layer: explicit
// environment variables under the A2A_* namespace.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("A2A_AGENCY_DID"); v != "" {
		cfg.Agency.DID = v
	}
	if v := os.Getenv("A2A_AGENCY_VERKEY"); v != "" {
		cfg.Agency.Verkey = v
	}
	if v := os.Getenv("A2A_AGENCY_ENDPOINT"); v != "" {
		cfg.Agency.Endpoint = v
	}
	if v := os.Getenv("A2A_AGENT_TO_DID"); v != "" {
		cfg.Agent.ToDID = v
	}
	if v := os.Getenv("A2A_AGENT_TO_VERKEY"); v != "" {
		cfg.Agent.ToVerkey = v
	}
	if v := os.Getenv("A2A_AGENT_AGENT_DID"); v != "" {
		cfg.Agent.AgentDID = v
	}
	if v := os.Getenv("A2A_AGENT_AGENT_VERKEY"); v != "" {
		cfg.Agent.AgentVerkey = v
	}
	if v := os.Getenv("A2A_PROTOCOL_VERSION"); v != "" {
		cfg.Protocol.Version = v
	}
	if os.Getenv("A2A_PROTOCOL_MOCK") == "true" {
		cfg.Protocol.Mock = true
	}
	if v := os.Getenv("A2A_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("A2A_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("A2A_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
