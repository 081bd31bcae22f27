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

// Package config loads engine-wide defaults from a TOML file, the way
// dolt's server layer reads its YAML config before constructing anything:
// one struct, one loader, and the Default() value for every field a
// config file omits.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/dyod/chunkstore/internal/d"
)

// Config holds the engine defaults cmd/chunkstore-demo (and any future
// entry point) reads before constructing a table.
type Config struct {
	// ChunkSize is the default target chunk size for new tables.
	ChunkSize int `toml:"chunk_size"`
	// LogLevel is the default zap level name ("debug", "info", "warn",
	// "error") for loggers this process constructs.
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{ChunkSize: 100, LogLevel: "info"}
}

// Load reads path as TOML, starting from Default() so a config file only
// needs to set the fields it wants to override.
func Load(path string) (cfg Config, err error) {
	cfg = Default()
	err = d.Try(func() {
		_, terr := toml.DecodeFile(path, &cfg)
		d.PanicIfTrue(terr != nil, "loading config %q: %s", path, terr)
		d.PanicIfFalse(cfg.ChunkSize > 0, "config: chunk_size must be positive, got %d", cfg.ChunkSize)
	})
	return cfg, err
}
