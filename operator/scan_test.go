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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyod/chunkstore/segment"
	"github.com/dyod/chunkstore/storage"
	"github.com/dyod/chunkstore/types"
)

func newRolloverTable(t *testing.T) *storage.Table {
	t.Helper()
	table, err := storage.NewTable(2)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("col_1", "int"))
	require.NoError(t, table.AddColumn("col_2", "string"))
	require.NoError(t, table.AddColumn("col_3", "int"))
	require.NoError(t, table.AddColumn("col_4", "int"))
	require.NoError(t, table.AddColumn("col_5", "int"))

	rows := [][]types.Value{
		{types.IntValue(4), types.StringValue("Hello,"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
		{types.IntValue(6), types.StringValue("world"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
		{types.IntValue(3), types.StringValue("!"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
	}
	for _, row := range rows {
		require.NoError(t, table.Append(row))
	}
	return table
}

// chunkAt fetches chunkID from a segment.Table view (as returned by
// ReferenceSegment.ReferencedTable) and downcasts it to *storage.Chunk,
// which tableView's GetChunk always hands back under the hood. It is
// used purely to assert pointer identity of the referenced table's
// backing chunk against a *storage.Table obtained directly.
func chunkAt(t *testing.T, st segment.Table, chunkID int) *storage.Chunk {
	t.Helper()
	c, err := st.GetChunk(chunkID)
	require.NoError(t, err)
	sc, ok := c.(*storage.Chunk)
	require.True(t, ok, "referenced table's chunk is not a *storage.Chunk")
	return sc
}

// TestScanOverValueSegment scans an uncompressed column and checks that
// the output table's single chunk holds one ReferenceSegment per input
// column, all sharing one PosList back into the original table.
func TestScanOverValueSegment(t *testing.T) {
	table := newRolloverTable(t)

	scan := NewScan(NewSource(table), 0, LessThan, types.IntValue(5))
	require.NoError(t, scan.Execute(context.Background()))

	out, err := scan.Output()
	require.NoError(t, err)
	require.Equal(t, 1, out.ChunkCount())
	require.Equal(t, 2, out.RowCount())

	chunk, err := out.GetChunk(0)
	require.NoError(t, err)
	require.Equal(t, 5, chunk.ColumnCount())

	baseChunk0, err := table.GetChunk(0)
	require.NoError(t, err)

	var sharedPosList *segment.PosList
	for col := 0; col < 5; col++ {
		seg, err := chunk.GetSegment(col)
		require.NoError(t, err)
		ref, ok := seg.(*segment.ReferenceSegment)
		require.True(t, ok)
		require.Same(t, baseChunk0, chunkAt(t, ref.ReferencedTable(), 0))
		if sharedPosList == nil {
			sharedPosList = ref.Positions()
		} else {
			require.Same(t, sharedPosList, ref.Positions())
		}
	}

	want := segment.PosList{{ChunkID: 0, Offset: 0}, {ChunkID: 1, Offset: 0}}
	require.Equal(t, want, *sharedPosList)
}

func TestScanRejectsUnknownColumn(t *testing.T) {
	table := newRolloverTable(t)
	scan := NewScan(NewSource(table), 99, Equals, types.IntValue(1))
	err := scan.Execute(context.Background())
	require.Error(t, err)
}

func newChainTable(t *testing.T) *storage.Table {
	t.Helper()
	table, err := storage.NewTable(3)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("v", "int"))
	for _, n := range []int32{5, 3, 8, 1, 7, 2} {
		require.NoError(t, table.Append([]types.Value{types.IntValue(n)}))
	}
	return table
}

// TestScanChainingCollapsesToBaseTable checks that a second scan over a
// first scan's output references the original base table directly, with
// its PosList expressed in the base table's row ids, not the intermediate
// scan's own (single-chunk) row numbering.
func TestScanChainingCollapsesToBaseTable(t *testing.T) {
	base := newChainTable(t)

	first := NewScan(NewSource(base), 0, GreaterThan, types.IntValue(2))
	require.NoError(t, first.Execute(context.Background()))
	firstOut, err := first.Output()
	require.NoError(t, err)

	firstChunk, err := firstOut.GetChunk(0)
	require.NoError(t, err)
	firstSeg, err := firstChunk.GetSegment(0)
	require.NoError(t, err)
	firstRef := firstSeg.(*segment.ReferenceSegment)

	// base values by (chunk,offset): chunk0=[5,3,8] chunk1=[1,7,2].
	// >2 matches chunk0 offsets 0,1,2 (5,3,8) and chunk1 offset 1 (7).
	wantP1 := segment.PosList{
		{ChunkID: 0, Offset: 0}, {ChunkID: 0, Offset: 1}, {ChunkID: 0, Offset: 2}, {ChunkID: 1, Offset: 1},
	}
	require.Equal(t, wantP1, *firstRef.Positions())

	second := NewScan(first, 0, LessThan, types.IntValue(8))
	require.NoError(t, second.Execute(context.Background()))
	secondOut, err := second.Output()
	require.NoError(t, err)

	secondChunk, err := secondOut.GetChunk(0)
	require.NoError(t, err)
	secondSeg, err := secondChunk.GetSegment(0)
	require.NoError(t, err)
	secondRef := secondSeg.(*segment.ReferenceSegment)

	// Of P1's rows (values 5,3,8,7), <8 keeps 5,3,7: P1 offsets 0,1,3,
	// i.e. original RowIDs (0,0),(0,1),(1,1).
	wantP2 := segment.PosList{
		{ChunkID: 0, Offset: 0}, {ChunkID: 0, Offset: 1}, {ChunkID: 1, Offset: 1},
	}
	require.Equal(t, wantP2, *secondRef.Positions())

	baseChunk0, err := base.GetChunk(0)
	require.NoError(t, err)
	require.Same(t, baseChunk0, chunkAt(t, secondRef.ReferencedTable(), 0))

	intermediateChunk0, err := firstOut.GetChunk(0)
	require.NoError(t, err)
	require.NotSame(t, intermediateChunk0, chunkAt(t, secondRef.ReferencedTable(), 0))
}

// TestScanOverDictionarySegmentMatchesValueSegment checks that compressing
// a chunk into a dictionary segment does not change scan results compared
// to scanning the uncompressed value segment.
func TestScanOverDictionarySegmentMatchesValueSegment(t *testing.T) {
	table := newRolloverTable(t)
	require.NoError(t, table.CompressChunk(0))

	scan := NewScan(NewSource(table), 0, LessThan, types.IntValue(5))
	require.NoError(t, scan.Execute(context.Background()))
	out, err := scan.Output()
	require.NoError(t, err)

	require.Equal(t, 2, out.RowCount())
	chunk, err := out.GetChunk(0)
	require.NoError(t, err)
	seg, err := chunk.GetSegment(0)
	require.NoError(t, err)
	ref := seg.(*segment.ReferenceSegment)

	want := segment.PosList{{ChunkID: 0, Offset: 0}, {ChunkID: 1, Offset: 0}}
	require.Equal(t, want, *ref.Positions())
}

func TestScanEqualsAndNotEqualsOverDictionarySegment(t *testing.T) {
	table := newRolloverTable(t)
	require.NoError(t, table.CompressChunk(0))
	require.NoError(t, table.CompressChunk(1))

	eq := NewScan(NewSource(table), 0, Equals, types.IntValue(6))
	require.NoError(t, eq.Execute(context.Background()))
	eqOut, err := eq.Output()
	require.NoError(t, err)
	require.Equal(t, 1, eqOut.RowCount())

	neq := NewScan(NewSource(table), 0, NotEquals, types.IntValue(6))
	require.NoError(t, neq.Execute(context.Background()))
	neqOut, err := neq.Output()
	require.NoError(t, err)
	require.Equal(t, 2, neqOut.RowCount())
}
