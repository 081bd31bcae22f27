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

// Package operator implements the minimal operator contract this engine
// relies on: up to two inputs and a lazily materialized cached output,
// plus the one concrete operator this engine ships, a predicate scan.
package operator

import (
	"context"
	"sync"

	"github.com/dyod/chunkstore/storage"
)

// Operator is a node that consumes up to two input tables and produces
// one output table on demand. Execute is idempotent: calling it more than
// once runs the underlying work exactly once and every call returns the
// same cached result.
type Operator interface {
	Execute(ctx context.Context) error
	Output() (*storage.Table, error)
}

// base implements the caching/idempotency half of the Operator contract;
// concrete operators embed it and supply their own run(ctx).
type base struct {
	left, right Operator

	once   sync.Once
	output *storage.Table
	err    error

	run func(ctx context.Context) (*storage.Table, error)
}

func (b *base) Execute(ctx context.Context) error {
	b.once.Do(func() {
		b.output, b.err = b.run(ctx)
	})
	return b.err
}

func (b *base) Output() (*storage.Table, error) {
	if b.output == nil && b.err == nil {
		return nil, errNotExecuted
	}
	return b.output, b.err
}

// LeftInput returns the operator's primary input, or nil if it has none.
func (b *base) LeftInput() Operator { return b.left }

// RightInput returns the operator's secondary input, or nil. No operator
// defined by this package uses it; it exists so the contract holds up to
// two input operators, even though only single-input operators are
// implemented here.
func (b *base) RightInput() Operator { return b.right }
