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

// Package registry implements the process-wide named-table directory the
// original DYOD storage manager provided: a place higher-level callers
// (a CLI, a demo, a test harness) can stash and look up tables by name,
// kept deliberately outside the core packages so storage/segment/operator
// never depend on a process-wide singleton.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dyod/chunkstore/storage"
)

// Registry is a concurrency-safe name -> *storage.Table directory.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*storage.Table
}

// New returns an empty, independent Registry. Tests that need isolation
// from the process-wide default should construct their own via New rather
// than sharing Default().
func New() *Registry {
	return &Registry{tables: make(map[string]*storage.Table)}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, constructing it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
	})
	return defaultReg
}

// Add registers table under name. Fails if name is already in use.
func (r *Registry) Add(name string, table *storage.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[name]; exists {
		return fmt.Errorf("registry: table %q already registered", name)
	}
	r.tables[name] = table
	return nil
}

// Drop removes name from the registry. Fails if no such table is registered.
func (r *Registry) Drop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[name]; !exists {
		return fmt.Errorf("registry: no table named %q", name)
	}
	delete(r.tables, name)
	return nil
}

// Get returns the table registered under name. Fails if none is.
func (r *Registry) Get(name string) (*storage.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.tables[name]
	if !exists {
		return nil, fmt.Errorf("registry: no table named %q", name)
	}
	return t, nil
}

// Has reports whether name is currently registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.tables[name]
	return exists
}

// Names returns every registered table name, sorted for stable output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every registered table, leaving the registry empty.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]*storage.Table)
}

// DumpString renders one "name, column_count, row_count, chunk_count" line
// per registered table, in name order, for diagnostic/demo output.
func (r *Registry) DumpString() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	out := ""
	for _, name := range names {
		t := r.tables[name]
		out += fmt.Sprintf("%s, %d, %d, %d\n", name, t.ColumnCount(), t.RowCount(), t.ChunkCount())
	}
	return out
}
