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

package storage

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dyod/chunkstore/internal/d"
	"github.com/dyod/chunkstore/internal/logging"
	"github.com/dyod/chunkstore/segment"
	"github.com/dyod/chunkstore/types"
)

// Table is an ordered sequence of chunks sharing one schema and target
// chunk size. Structural mutations of the chunk list (row append causing
// rollover, CompressChunk's swap, EmplaceChunk) are serialized under a
// single exclusive lock; GetChunk may run concurrently with other
// readers under the matching read lock. A handed-out *Chunk is itself
// append-only until CompressChunk replaces it.
type Table struct {
	id uuid.UUID

	mu          sync.RWMutex
	chunkSize   int
	columnNames []string
	columnKinds []types.Kind
	chunks      []*Chunk

	log *zap.Logger
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithLogger overrides the table's logger (default: a no-op logger).
func WithLogger(log *zap.Logger) Option {
	return func(t *Table) { t.log = log }
}

// NewTable constructs a Table with the given target chunk size and a
// single empty chunk. chunkSize must be positive.
func NewTable(chunkSize int, opts ...Option) (*Table, error) {
	var t *Table
	err := d.Try(func() {
		d.PanicIfFalse(chunkSize > 0, "chunk size must be positive, got %d", chunkSize)
		t = &Table{
			id:        uuid.New(),
			chunkSize: chunkSize,
			chunks:    []*Chunk{NewChunk()},
			log:       logging.NoOp(),
		}
		for _, opt := range opts {
			opt(t)
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ID returns the table's process-local identity, used only to correlate
// log lines across operations on the same table.
func (t *Table) ID() uuid.UUID { return t.id }

// ChunkSize returns the table's target chunk size.
func (t *Table) ChunkSize() int { return t.chunkSize }

// ColumnCount returns the number of declared columns.
func (t *Table) ColumnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.columnNames)
}

// ColumnNames returns a copy of the declared column names, in order.
func (t *Table) ColumnNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.columnNames))
	copy(out, t.columnNames)
	return out
}

// ColumnName returns the name of column id.
func (t *Table) ColumnName(id int) (name string, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	err = d.Try(func() {
		d.PanicIfFalse(id >= 0 && id < len(t.columnNames), "column id %d out of range [0,%d)", id, len(t.columnNames))
		name = t.columnNames[id]
	})
	return name, err
}

// ColumnType returns the element kind of column id.
func (t *Table) ColumnType(id int) (kind types.Kind, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	err = d.Try(func() {
		d.PanicIfFalse(id >= 0 && id < len(t.columnKinds), "column id %d out of range [0,%d)", id, len(t.columnKinds))
		kind = t.columnKinds[id]
	})
	return kind, err
}

// ColumnIDByName returns the column id for name, failing if no such
// column was declared.
func (t *Table) ColumnIDByName(name string) (id int, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	err = d.Try(func() {
		for i, n := range t.columnNames {
			if n == name {
				id = i
				return
			}
		}
		d.Panic("unknown column %q", name)
	})
	return id, err
}

// RowCount is the sum of every chunk's size.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := 0
	for _, c := range t.chunks {
		total += c.Size()
	}
	return total
}

// ChunkCount returns the number of chunks, always >= 1.
func (t *Table) ChunkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.chunks)
}

// GetChunk returns the chunk at chunkID.
func (t *Table) GetChunk(chunkID int) (c *Chunk, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	err = d.Try(func() {
		d.PanicIfFalse(chunkID >= 0 && chunkID < len(t.chunks), "chunk id %d out of range [0,%d)", chunkID, len(t.chunks))
		c = t.chunks[chunkID]
	})
	return c, err
}

// AsSegmentTable exposes t as a segment.Table, the minimal read view a
// ReferenceSegment needs (GetChunk/ColumnCount returning the segment
// package's interfaces rather than *storage.Chunk directly). The scan
// operator, which lives in another package, uses this when wiring up the
// reference segments of a scan's output table.
func (t *Table) AsSegmentTable() segment.Table { return tableView{t} }

type tableView struct{ t *Table }

func (v tableView) GetChunk(chunkID int) (segment.Chunk, error) { return v.t.GetChunk(chunkID) }
func (v tableView) ColumnCount() int                            { return v.t.ColumnCount() }

// AddColumn declares a new column. Fails if any row has been appended, or
// if the name is already in use.
func (t *Table) AddColumn(name string, typeName string) error {
	return d.Try(func() {
		kind, err := types.KindFromName(typeName)
		d.PanicIfError(err)

		t.mu.Lock()
		defer t.mu.Unlock()

		total := 0
		for _, c := range t.chunks {
			total += c.Size()
		}
		d.PanicIfTrue(total > 0, "cannot add column %q: table already has rows", name)
		for _, n := range t.columnNames {
			d.PanicIfTrue(n == name, "duplicate column name %q", name)
		}

		seg, err := newValueSegmentForKind(kind)
		d.PanicIfError(err)

		t.columnNames = append(t.columnNames, name)
		t.columnKinds = append(t.columnKinds, kind)
		// There is exactly one (empty) chunk before any row is appended.
		t.chunks[len(t.chunks)-1].AddSegment(seg)
	})
}

// Append appends row to the table, rolling over to a fresh chunk first if
// the last chunk has reached ChunkSize.
func (t *Table) Append(row []types.Value) error {
	return d.Try(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		last := t.chunks[len(t.chunks)-1]
		if last.Size() >= t.chunkSize {
			fresh := NewChunk()
			for _, k := range t.columnKinds {
				seg, err := newValueSegmentForKind(k)
				d.PanicIfError(err)
				fresh.AddSegment(seg)
			}
			t.chunks = append(t.chunks, fresh)
			last = fresh
			t.log.Debug("rolled over to a new chunk",
				zap.String("table", t.id.String()),
				zap.Int("chunk_count", len(t.chunks)))
		}
		d.PanicIfError(last.Append(row))
		t.log.Debug("appended row",
			zap.String("table", t.id.String()),
			zap.String("row_count", humanize.Comma(int64(t.rowCountLocked()))))
	})
}

func (t *Table) rowCountLocked() int {
	total := 0
	for _, c := range t.chunks {
		total += c.Size()
	}
	return total
}

// CompressChunk replaces chunk chunkID's segments with dictionary-
// compressed versions, atomically. The new chunk is built off-lock; only
// the final assignment into the chunk list takes the exclusive lock.
func (t *Table) CompressChunk(chunkID int) error {
	return d.Try(func() {
		t.mu.RLock()
		d.PanicIfFalse(chunkID >= 0 && chunkID < len(t.chunks), "chunk id %d out of range [0,%d)", chunkID, len(t.chunks))
		old := t.chunks[chunkID]
		kinds := make([]types.Kind, len(t.columnKinds))
		copy(kinds, t.columnKinds)
		t.mu.RUnlock()

		compressed := NewChunk()
		for col := 0; col < old.ColumnCount(); col++ {
			seg, err := old.GetSegment(col)
			d.PanicIfError(err)
			newSeg, err := compressSegment(kinds[col], seg)
			d.PanicIfError(err)
			compressed.AddSegment(newSeg)
		}

		t.mu.Lock()
		t.chunks[chunkID] = compressed
		t.mu.Unlock()

		t.log.Info("compressed chunk",
			zap.String("table", t.id.String()),
			zap.Int("chunk_id", chunkID),
			zap.String("rows", humanize.Comma(int64(compressed.Size()))))
	})
}

// EmplaceChunk appends a preconstructed chunk. If the table is still
// empty, the incoming chunk replaces the initial empty chunk; otherwise
// the current last chunk must be exactly full, and the incoming chunk's
// column count must match the schema's.
func (t *Table) EmplaceChunk(c *Chunk) error {
	return d.Try(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		d.PanicIfFalse(c.ColumnCount() == len(t.columnNames), "chunk has %d columns, schema has %d", c.ColumnCount(), len(t.columnNames))

		if t.rowCountLocked() == 0 {
			t.chunks[len(t.chunks)-1] = c
			return
		}
		last := t.chunks[len(t.chunks)-1]
		d.PanicIfFalse(last.Size() == t.chunkSize, "cannot emplace: last chunk has %d of %d rows", last.Size(), t.chunkSize)
		t.chunks = append(t.chunks, c)
	})
}

func newValueSegmentForKind(kind types.Kind) (segment.Segment, error) {
	return segment.NewValueSegment(kind)
}

// compressSegment builds the dictionary-compressed equivalent of seg
// (a ValueSegment[T] or, idempotently, an already-compressed
// DictionarySegment[T]), specialized on kind.
func compressSegment(kind types.Kind, seg segment.Segment) (segment.Segment, error) {
	return types.Dispatch(kind, types.Family[segment.Segment]{
		Int:    func() segment.Segment { return compressTyped[int32](seg) },
		Long:   func() segment.Segment { return compressTyped[int64](seg) },
		Float:  func() segment.Segment { return compressTyped[float32](seg) },
		Double: func() segment.Segment { return compressTyped[float64](seg) },
		String: func() segment.Segment { return compressTyped[string](seg) },
	})
}

func compressTyped[T types.Element](seg segment.Segment) segment.Segment {
	switch s := seg.(type) {
	case *segment.ValueSegment[T]:
		return segment.NewDictionarySegment[T](s)
	case *segment.DictionarySegment[T]:
		// Compressing an already-compressed chunk is idempotent: rebuild
		// from the current values rather than no-op, so the result is a
		// fresh, independently owned segment either way.
		rebuilt := segment.NewValueSegmentTyped[T]()
		for i := 0; i < s.Size(); i++ {
			v, err := s.At(i)
			d.PanicIfError(err)
			d.PanicIfError(rebuilt.Append(v))
		}
		return segment.NewDictionarySegment[T](rebuilt)
	default:
		d.Panic("unsupported segment encoding %T for compression", seg)
		return nil
	}
}
