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

package operator

import (
	"context"

	"github.com/dyod/chunkstore/storage"
)

// Source adapts an already-built *storage.Table into an Operator, so a
// Scan (or any other operator) can take a plain table as its input
// without a pipeline root that does actual work.
type Source struct {
	table *storage.Table
}

// NewSource wraps table as a zero-work Operator.
func NewSource(table *storage.Table) *Source {
	return &Source{table: table}
}

func (s *Source) Execute(ctx context.Context) error { return nil }
func (s *Source) Output() (*storage.Table, error)   { return s.table, nil }
