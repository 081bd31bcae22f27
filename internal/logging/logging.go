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

// Package logging wraps zap the way dolt's server layer does: one
// constructor picking an encoder/level from a config string, plus a
// package-level no-op logger tests and library defaults can fall back to
// without wiring a real one through every constructor.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap.Logger at the given level ("debug", "info",
// "warn", "error"). An empty level defaults to "info".
func NewLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	var zl zapcore.Level
	if err := zl.Set(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

// NoOp returns a logger that discards everything, for callers (chiefly
// tests and Table's zero-value construction path) that don't want to wire
// a real sink.
func NoOp() *zap.Logger { return zap.NewNop() }
