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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/a2avcx/pkg/a2aerr"
)

func TestValueResolvesKnownKeys(t *testing.T) {
	cfg := &Config{
		Agency: AgencyConfig{DID: "did:sov:agency", Verkey: "vk", Endpoint: "https://agency"},
		Agent:  AgentConfig{ToDID: "did:sov:peer", ToVerkey: "pvk", AgentDID: "did:sov:agent", AgentVerkey: "avk"},
	}
	setDefaults(cfg)

	v, err := cfg.Value("agency.did")
	require.NoError(t, err)
	assert.Equal(t, "did:sov:agency", v)

	v, err = cfg.Value("protocol.version")
	require.NoError(t, err)
	assert.Equal(t, "1.0", v)
}

func TestValueFailsOnMissingRequiredKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Value("agency.did")
	require.Error(t, err)
	assert.True(t, a2aerr.Is(err, a2aerr.InvalidConfiguration))
}

func TestValueFailsOnUnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Value("not.a.real.key")
	require.Error(t, err)
}

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	assert.Equal(t, "1.0", cfg.Protocol.Version)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFileLayering(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yaml"), []byte("agency:\n  did: did:sov:from-file\n  verkey: vk-file\n  endpoint: https://file\n"), 0644))

	cfg, err := Load(LoaderOptions{ConfigDir: configDir, Environment: "test"})
	require.NoError(t, err)
	assert.Equal(t, "did:sov:from-file", cfg.Agency.DID)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoadEnvOverridesFileValues(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yaml"), []byte("agency:\n  did: did:sov:from-file\n"), 0644))

	t.Setenv("A2A_AGENCY_DID", "did:sov:from-env")
	cfg, err := Load(LoaderOptions{ConfigDir: configDir, Environment: "test"})
	require.NoError(t, err)
	assert.Equal(t, "did:sov:from-env", cfg.Agency.DID)
}

func TestLoadWithNoFilesStillAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoaderOptions{ConfigDir: filepath.Join(dir, "missing"), Environment: "test"})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
}
