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

// Command chunkstore-demo builds a small table, registers it, compresses
// one chunk, and runs a handful of scans concurrently against it: a
// walkthrough of every package wired together, in the spirit of dolt's
// own small cmd/ entry points.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dyod/chunkstore/internal/config"
	"github.com/dyod/chunkstore/internal/logging"
	"github.com/dyod/chunkstore/operator"
	"github.com/dyod/chunkstore/registry"
	"github.com/dyod/chunkstore/storage"
	"github.com/dyod/chunkstore/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chunkstore-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a chunkstore.toml (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	table, err := storage.NewTable(cfg.ChunkSize, storage.WithLogger(log))
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	if err := table.AddColumn("id", "int"); err != nil {
		return fmt.Errorf("declaring column: %w", err)
	}
	for i := int32(0); i < 10; i++ {
		if err := table.Append([]types.Value{types.IntValue(i)}); err != nil {
			return fmt.Errorf("appending row: %w", err)
		}
	}
	if err := table.CompressChunk(0); err != nil {
		return fmt.Errorf("compressing chunk: %w", err)
	}

	reg := registry.Default()
	if err := reg.Add("widgets", table); err != nil {
		return fmt.Errorf("registering table: %w", err)
	}

	searches := []types.Value{types.IntValue(2), types.IntValue(5), types.IntValue(8)}
	results := make([]int, len(searches))

	g, ctx := errgroup.WithContext(context.Background())
	for i, search := range searches {
		i, search := i, search
		g.Go(func() error {
			scan := operator.NewScan(operator.NewSource(table), 0, operator.GreaterThan, search, operator.WithScanLogger(log))
			if err := scan.Execute(ctx); err != nil {
				return err
			}
			out, err := scan.Output()
			if err != nil {
				return err
			}
			results[i] = out.RowCount()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("running scans: %w", err)
	}

	for i, search := range searches {
		s, _ := search.AsString()
		fmt.Printf("rows with id > %s: %d\n", s, results[i])
	}
	fmt.Print(reg.DumpString())
	return nil
}
