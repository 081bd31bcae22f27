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

package segment

import (
	"github.com/dyod/chunkstore/internal/d"
	"github.com/dyod/chunkstore/types"
)

// ReferenceSegment is a logical segment: it holds no data of its own,
// only a shared pointer to a base table, a column id into that table, and
// a shared PosList of RowIDs. It is how scan results are represented,
// as "rows 3 and 7 of column 2 of table T", without copying any data.
//
// The referenced table must never itself contain reference segments (see
// the scan operator's reference-collapse logic, which enforces this by
// construction).
type ReferenceSegment struct {
	kind         types.Kind
	table        Table
	referencedCol int
	positions    *PosList
}

// NewReferenceSegment builds a reference segment over columnID of table,
// sharing the given PosList with any sibling reference segments produced
// by the same scan.
func NewReferenceSegment(kind types.Kind, table Table, columnID int, positions *PosList) *ReferenceSegment {
	return &ReferenceSegment{kind: kind, table: table, referencedCol: columnID, positions: positions}
}

func (r *ReferenceSegment) Size() int        { return len(*r.positions) }
func (r *ReferenceSegment) Kind() types.Kind { return r.kind }

// ReferencedTable returns the base table this segment points into.
func (r *ReferenceSegment) ReferencedTable() Table { return r.table }

// ReferencedColumnID returns the column id in the referenced table this
// segment exposes.
func (r *ReferenceSegment) ReferencedColumnID() int { return r.referencedCol }

// Positions returns the shared PosList backing this segment.
func (r *ReferenceSegment) Positions() *PosList { return r.positions }

// At resolves the RowID at offset, then reads the value at that row from
// the referenced table's chunk at the referenced column.
func (r *ReferenceSegment) At(offset int) (v types.Value, err error) {
	err = d.Try(func() {
		positions := *r.positions
		d.PanicIfFalse(offset >= 0 && offset < len(positions), "row offset %d out of range [0,%d)", offset, len(positions))
		row := positions[offset]

		chunk, cerr := r.table.GetChunk(int(row.ChunkID))
		d.PanicIfError(cerr)

		seg, serr := chunk.GetSegment(r.referencedCol)
		d.PanicIfError(serr)

		value, verr := seg.At(int(row.Offset))
		d.PanicIfError(verr)
		v = value
	})
	return v, err
}
