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

// Package storage implements the chunk/table lifecycle: fixed-capacity
// horizontal partitions of columnar segments, row append with rollover,
// and whole-chunk dictionary compression.
package storage

import (
	"github.com/dyod/chunkstore/internal/d"
	"github.com/dyod/chunkstore/segment"
	"github.com/dyod/chunkstore/types"
)

// Chunk is an ordered list of segments, one per column, all of equal
// size. A Chunk owns its segments exclusively.
type Chunk struct {
	segments []segment.Segment
}

// NewChunk returns an empty chunk (no segments, no rows).
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddSegment appends a segment as the next column. Used while building or
// rebuilding a chunk; chunks do not support removing or reordering
// columns afterwards.
func (c *Chunk) AddSegment(s segment.Segment) {
	c.segments = append(c.segments, s)
}

// GetSegment returns the segment for columnID.
func (c *Chunk) GetSegment(columnID int) (s segment.Segment, err error) {
	err = d.Try(func() {
		d.PanicIfFalse(columnID >= 0 && columnID < len(c.segments), "column id %d out of range [0,%d)", columnID, len(c.segments))
		s = c.segments[columnID]
	})
	return s, err
}

// ColumnCount returns the number of segments (columns) in the chunk.
func (c *Chunk) ColumnCount() int { return len(c.segments) }

// Size returns the chunk's row count: the size of its first segment, or 0
// if the chunk has no columns. All segments in a chunk are invariantly
// the same size.
func (c *Chunk) Size() int {
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

// appendable is the narrow interface ValueSegment[T] satisfies that lets
// Chunk.Append push a row without knowing each column's element type.
type appendable interface {
	Append(types.Value) error
}

// Append pushes one row (an ordered slice of values, one per column)
// onto every segment in the chunk. row must have exactly ColumnCount()
// elements, and each element must convert to its column's element type
// (fatal abort otherwise, e.g. appending to an immutable dictionary
// segment or an unconvertible value).
func (c *Chunk) Append(row []types.Value) error {
	return d.Try(func() {
		d.PanicIfFalse(len(row) == len(c.segments), "row has %d values, chunk has %d columns", len(row), len(c.segments))
		for i, v := range row {
			seg, ok := c.segments[i].(appendable)
			d.PanicIfFalse(ok, "column %d's segment encoding does not support append", i)
			d.PanicIfError(seg.Append(v))
		}
	})
}
