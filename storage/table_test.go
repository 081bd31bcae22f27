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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyod/chunkstore/types"
)

func mustAddColumns(t *testing.T, table *Table, cols [][2]string) {
	t.Helper()
	for _, c := range cols {
		require.NoError(t, table.AddColumn(c[0], c[1]))
	}
}

// TestTableRollover covers a chunk_size=2 table with five columns: after
// three appended rows, the first chunk is full and the third row rolls
// over into a second chunk.
func TestTableRollover(t *testing.T) {
	table, err := NewTable(2)
	require.NoError(t, err)
	mustAddColumns(t, table, [][2]string{
		{"col_1", "int"}, {"col_2", "string"}, {"col_3", "int"}, {"col_4", "int"}, {"col_5", "int"},
	})

	rows := [][]types.Value{
		{types.IntValue(4), types.StringValue("Hello,"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
		{types.IntValue(6), types.StringValue("world"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
		{types.IntValue(3), types.StringValue("!"), types.IntValue(1), types.IntValue(2), types.IntValue(3)},
	}
	for _, row := range rows {
		require.NoError(t, table.Append(row))
	}

	require.Equal(t, 2, table.ChunkCount())
	require.Equal(t, 3, table.RowCount())

	chunk0, err := table.GetChunk(0)
	require.NoError(t, err)
	seg0, err := chunk0.GetSegment(0)
	require.NoError(t, err)

	v0, err := seg0.At(0)
	require.NoError(t, err)
	n0, err := v0.AsInt32()
	require.NoError(t, err)
	require.EqualValues(t, 4, n0)

	v1, err := seg0.At(1)
	require.NoError(t, err)
	n1, err := v1.AsInt32()
	require.NoError(t, err)
	require.EqualValues(t, 6, n1)
}

func TestNewTableRejectsNonPositiveChunkSize(t *testing.T) {
	_, err := NewTable(0)
	require.Error(t, err)
	_, err = NewTable(-1)
	require.Error(t, err)
}

func TestAddColumnAfterRowsFails(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("a", "int"))
	require.NoError(t, table.Append([]types.Value{types.IntValue(1)}))

	err = table.AddColumn("b", "int")
	require.Error(t, err)
}

func TestAddColumnDuplicateNameFails(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("a", "int"))
	require.Error(t, table.AddColumn("a", "long"))
}

func TestAddColumnUnknownTypeFails(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.Error(t, table.AddColumn("a", "bogus"))
}

func TestColumnIDByName(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("a", "int"))
	require.NoError(t, table.AddColumn("b", "string"))

	id, err := table.ColumnIDByName("b")
	require.NoError(t, err)
	require.Equal(t, 1, id)

	_, err = table.ColumnIDByName("missing")
	require.Error(t, err)
}

func TestCompressChunkIsQueryEquivalent(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("col_1", "int"))
	for _, n := range []int32{4, 6, 3} {
		require.NoError(t, table.Append([]types.Value{types.IntValue(n)}))
	}

	require.NoError(t, table.CompressChunk(0))
	require.Equal(t, 3, table.RowCount())

	chunk, err := table.GetChunk(0)
	require.NoError(t, err)
	seg, err := chunk.GetSegment(0)
	require.NoError(t, err)

	v, err := seg.At(1)
	require.NoError(t, err)
	n, err := v.AsInt32()
	require.NoError(t, err)
	require.EqualValues(t, 6, n)
}

func TestCompressChunkIsIdempotent(t *testing.T) {
	table, err := NewTable(10)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("col_1", "int"))
	for _, n := range []int32{4, 6, 3} {
		require.NoError(t, table.Append([]types.Value{types.IntValue(n)}))
	}

	require.NoError(t, table.CompressChunk(0))
	require.NoError(t, table.CompressChunk(0))

	chunk, err := table.GetChunk(0)
	require.NoError(t, err)
	require.Equal(t, 3, chunk.Size())
	seg, err := chunk.GetSegment(0)
	require.NoError(t, err)
	v, err := seg.At(2)
	require.NoError(t, err)
	n, err := v.AsInt32()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestEmplaceChunkIntoEmptyTable(t *testing.T) {
	table, err := NewTable(3)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("col_1", "int"))

	built, err := newValueSegmentForKind(types.IntKind)
	require.NoError(t, err)
	replacement := NewChunk()
	replacement.AddSegment(built)
	require.NoError(t, replacement.Append([]types.Value{types.IntValue(9)}))

	require.NoError(t, table.EmplaceChunk(replacement))
	require.Equal(t, 1, table.ChunkCount())
	require.Equal(t, 1, table.RowCount())
}

func TestEmplaceChunkColumnCountMismatchFails(t *testing.T) {
	table, err := NewTable(3)
	require.NoError(t, err)
	require.NoError(t, table.AddColumn("col_1", "int"))
	require.NoError(t, table.AddColumn("col_2", "int"))

	built, err := newValueSegmentForKind(types.IntKind)
	require.NoError(t, err)
	replacement := NewChunk()
	replacement.AddSegment(built)

	err = table.EmplaceChunk(replacement)
	require.Error(t, err)
}
