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

// Package segment implements the three physical segment encodings,
// ValueSegment, DictionarySegment, and ReferenceSegment, behind one
// uniform access contract, plus the RowID/PosList machinery reference
// segments share.
package segment

import "github.com/dyod/chunkstore/types"

// Segment is the polymorphic, element-type-erased read contract every
// encoding satisfies. It is deliberately narrow (size + slow per-offset
// read + kind): callers that need the fast typed path downcast to the
// concrete *ValueSegment[T]/*DictionarySegment[T] via a type switch
// inside a function already specialized on T (see operator.Scan).
type Segment interface {
	// Size returns the number of rows held in this segment.
	Size() int
	// At resolves the value at offset, converting through the boxed
	// Value variant. This is the generic, slow path.
	At(offset int) (types.Value, error)
	// Kind reports the column element type this segment stores.
	Kind() types.Kind
}

// RowID identifies one row inside one chunk of a specific table.
type RowID struct {
	ChunkID uint32
	Offset  uint32
}

// PosList is an ordered sequence of RowIDs. Order is meaningful: it
// defines the row order a ReferenceSegment (and therefore a scan's
// output table) presents.
type PosList []RowID

// Table is the minimal read contract a ReferenceSegment needs from the
// table it points into. storage.Table exposes itself through this
// interface via its AsSegmentTable adapter (its own GetChunk returns
// *storage.Chunk), which keeps the segment package free of an import
// cycle with storage.
type Table interface {
	GetChunk(chunkID int) (Chunk, error)
	ColumnCount() int
}

// Chunk is the minimal read contract a ReferenceSegment needs from one
// chunk of its referenced table.
type Chunk interface {
	GetSegment(columnID int) (Segment, error)
	Size() int
}
