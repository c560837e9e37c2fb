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

// Package config loads the addressing and protocol settings an agent needs
// to talk to its agency.
package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

// Config holds every value the Configuration collaborator must resolve,
// keyed by dotted name (agency.did, agency.verkey, agent.to_did, ...).
type Config struct {
	Environment string         `yaml:"environment"`
	Agency      AgencyConfig   `yaml:"agency"`
	Agent       AgentConfig    `yaml:"agent"`
	Protocol    ProtocolConfig `yaml:"protocol"`
	Store       StoreConfig    `yaml:"store"`
	Logging     LoggingConfig  `yaml:"logging"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

// AgencyConfig addresses the agency relay itself.
type AgencyConfig struct {
	DID      string `yaml:"did"`
	Verkey   string `yaml:"verkey"`
	Endpoint string `yaml:"endpoint"`
}

// AgentConfig addresses the pairwise relationship this process acts for:
// the remote peer (to_did/to_verkey) and this side's own cloud agent
// (agent_did/agent_verkey), the two hops a routed message needs.
type AgentConfig struct {
	ToDID       string `yaml:"to_did"`
	ToVerkey    string `yaml:"to_verkey"`
	AgentDID    string `yaml:"agent_did"`
	AgentVerkey string `yaml:"agent_verkey"`
}

// ProtocolConfig pins the wire protocol version this build speaks.
type ProtocolConfig struct {
	Version string `yaml:"version"`
	Mock    bool   `yaml:"mock"`
}

// StoreConfig selects and addresses the ProverStore backend.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "memory" | "postgres"
	DSN    string `yaml:"dsn"`
}

// LoggingConfig selects the structured logger's level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles the Prometheus registry's HTTP exposition.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Value is a key-value lookup over dotted keys that fails loudly on
// anything missing, rather than returning a silently empty default.
func (c *Config) Value(key string) (string, error) {
	switch key {
	case "agency.did":
		return nonEmpty(c.Agency.DID, key)
	case "agency.verkey":
		return nonEmpty(c.Agency.Verkey, key)
	case "agency.endpoint":
		return nonEmpty(c.Agency.Endpoint, key)
	case "agent.to_did":
		return nonEmpty(c.Agent.ToDID, key)
	case "agent.to_verkey":
		return nonEmpty(c.Agent.ToVerkey, key)
	case "agent.agent_did":
		return nonEmpty(c.Agent.AgentDID, key)
	case "agent.agent_verkey":
		return nonEmpty(c.Agent.AgentVerkey, key)
	case "protocol.version":
		return nonEmpty(c.Protocol.Version, key)
	default:
		return "", a2aerr.New(a2aerr.InvalidConfiguration, fmt.Sprintf("unknown key %q", key))
	}
}

func nonEmpty(v, key string) (string, error) {
	if v == "" {
		return "", a2aerr.New(a2aerr.InvalidConfiguration, fmt.Sprintf("missing required key %q", key))
	}
	return v, nil
}

func setDefaults(cfg *Config) {
	if cfg.Protocol.Version == "" {
		cfg.Protocol.Version = "1.0"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func loadFromFile(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
