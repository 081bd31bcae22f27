// Copyright 2026 The Chunkstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 100, cfg.ChunkSize)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunkstore.toml")
	require.NoError(t, os.WriteFile(path, []byte(`chunk_size = 7
log_level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.ChunkSize)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunkstore.toml")
	require.NoError(t, os.WriteFile(path, []byte(`chunk_size = 42
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 42, cfg.ChunkSize)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsNonPositiveChunkSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chunkstore.toml")
	require.NoError(t, os.WriteFile(path, []byte(`chunk_size = 0
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}
