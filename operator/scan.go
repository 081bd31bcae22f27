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
	"fmt"

	"go.uber.org/zap"

	"github.com/dyod/chunkstore/attrvec"
	"github.com/dyod/chunkstore/internal/d"
	"github.com/dyod/chunkstore/internal/logging"
	"github.com/dyod/chunkstore/segment"
	"github.com/dyod/chunkstore/storage"
	"github.com/dyod/chunkstore/types"
)

// Scan is the one relational operator this engine ships: it tests one
// column of its input against a predicate and a search value, and
// produces a single-chunk output table made entirely of ReferenceSegments
// pointing at the qualifying rows of the input's ultimate base table.
type Scan struct {
	base

	columnID    int
	predicate   Predicate
	searchValue types.Value
	log         *zap.Logger
}

// ScanOption configures a Scan at construction time.
type ScanOption func(*Scan)

// WithScanLogger overrides the scan's logger (default: no-op).
func WithScanLogger(log *zap.Logger) ScanOption {
	return func(s *Scan) { s.log = log }
}

// NewScan builds a scan of input's column columnID, keeping rows for
// which predicate(column value, searchValue) holds.
func NewScan(input Operator, columnID int, predicate Predicate, searchValue types.Value, opts ...ScanOption) *Scan {
	s := &Scan{
		columnID:    columnID,
		predicate:   predicate,
		searchValue: searchValue,
		log:         logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.base.left = input
	s.base.run = s.execute
	return s
}

func (s *Scan) execute(ctx context.Context) (*storage.Table, error) {
	if err := s.base.left.Execute(ctx); err != nil {
		return nil, err
	}
	inputTable, err := s.base.left.Output()
	if err != nil {
		return nil, err
	}

	kind, err := inputTable.ColumnType(s.columnID)
	if err != nil {
		return nil, err
	}

	var posList segment.PosList
	var baseTable segment.Table

	_, err = types.Dispatch(kind, types.Family[struct{}]{
		Int:    func() struct{} { posList, baseTable, _ = runScan[int32](s, inputTable); return struct{}{} },
		Long:   func() struct{} { posList, baseTable, _ = runScan[int64](s, inputTable); return struct{}{} },
		Float:  func() struct{} { posList, baseTable, _ = runScan[float32](s, inputTable); return struct{}{} },
		Double: func() struct{} { posList, baseTable, _ = runScan[float64](s, inputTable); return struct{}{} },
		String: func() struct{} { posList, baseTable, _ = runScan[string](s, inputTable); return struct{}{} },
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("scan matched rows",
		zap.Int("column_id", s.columnID),
		zap.String("predicate", s.predicate.String()),
		zap.Int("matches", len(posList)))

	return buildOutputTable(inputTable, baseTable, posList)
}

// runScan is a thin, panic-based adapter between scanColumn's ordinary
// error return and types.Dispatch's Family[R] shape, so every element
// kind shares the same dispatch call.
func runScan[T types.Element](s *Scan, inputTable *storage.Table) (segment.PosList, segment.Table, int) {
	posList, baseTable, baseColumn, err := scanColumn[T](inputTable, s.columnID, s.predicate, s.searchValue)
	d.PanicIfError(err)
	return posList, baseTable, baseColumn
}

// scanColumn implements the predicate scan algorithm specialized on
// element type T, iterating every chunk of input and branching on the
// encoding of the segment at columnID.
func scanColumn[T types.Element](input *storage.Table, columnID int, pred Predicate, searchValue types.Value) (segment.PosList, segment.Table, int, error) {
	search, err := types.ConvertTo[T](searchValue)
	if err != nil {
		return nil, nil, 0, err
	}

	var posList segment.PosList
	var baseTable segment.Table
	baseColumn := columnID
	sawReference := false
	sawOther := false

	chunkCount := input.ChunkCount()
	for chunkID := 0; chunkID < chunkCount; chunkID++ {
		chunk, err := input.GetChunk(chunkID)
		if err != nil {
			return nil, nil, 0, err
		}
		seg, err := chunk.GetSegment(columnID)
		if err != nil {
			return nil, nil, 0, err
		}

		switch s := seg.(type) {
		case *segment.ValueSegment[T]:
			sawOther = true
			scanValueSegment(s, pred, search, uint32(chunkID), &posList)
		case *segment.DictionarySegment[T]:
			sawOther = true
			scanDictionarySegment(s, pred, search, uint32(chunkID), &posList)
		case *segment.ReferenceSegment:
			sawReference = true
			if baseTable == nil {
				baseTable = s.ReferencedTable()
				baseColumn = s.ReferencedColumnID()
			}
			if err := scanReferenceSegment[T](s, pred, search, &posList); err != nil {
				return nil, nil, 0, err
			}
		default:
			return nil, nil, 0, fmt.Errorf("scan: column %d has unsupported segment encoding %T", columnID, seg)
		}
	}

	if sawReference && sawOther {
		return nil, nil, 0, fmt.Errorf("scan: column %d mixes reference segments with other encodings", columnID)
	}
	if !sawReference {
		baseTable = input.AsSegmentTable()
		baseColumn = columnID
	}
	return posList, baseTable, baseColumn, nil
}

func cmpOrdered[T types.Element](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func scanValueSegment[T types.Element](s *segment.ValueSegment[T], pred Predicate, search T, chunkID uint32, posList *segment.PosList) {
	for offset, v := range s.Values() {
		if evalOrdered(pred, cmpOrdered(v, search)) {
			*posList = append(*posList, segment.RowID{ChunkID: chunkID, Offset: uint32(offset)})
		}
	}
}

func scanReferenceSegment[T types.Element](s *segment.ReferenceSegment, pred Predicate, search T, posList *segment.PosList) error {
	positions := *s.Positions()
	for offset := range positions {
		val, err := s.At(offset)
		if err != nil {
			return err
		}
		v, err := types.ConvertTo[T](val)
		if err != nil {
			return err
		}
		if evalOrdered(pred, cmpOrdered(v, search)) {
			*posList = append(*posList, positions[offset])
		}
	}
	return nil
}

// scanDictionarySegment implements the bounds-based, value-id-space
// pruning path: lower_bound/upper_bound are computed once against the
// dictionary, then every predicate is rewritten into a single pass over
// the attribute vector's native-width codes, with no further dictionary
// lookups.
func scanDictionarySegment[T types.Element](s *segment.DictionarySegment[T], pred Predicate, search T, chunkID uint32, posList *segment.PosList) {
	lb := s.LowerBound(search)
	ub := s.UpperBound(search)
	attrs := s.AttributeVector()

	switch pred {
	case Equals:
		if lb == ub {
			return
		}
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code == lb })
	case NotEquals:
		if lb == ub {
			emitCodesWhere(attrs, chunkID, posList, func(uint32) bool { return true })
			return
		}
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code != lb })
	case LessThan:
		v := truncateToWidth(lb, attrs.Width())
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code < v })
	case LessThanOrEqual:
		v := truncateToWidth(ub, attrs.Width())
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code < v })
	case GreaterThan:
		v := truncateToWidth(ub, attrs.Width())
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code >= v })
	case GreaterThanOrEqual:
		v := truncateToWidth(lb, attrs.Width())
		emitCodesWhere(attrs, chunkID, posList, func(code uint32) bool { return code >= v })
	default:
		d.Panic("unknown predicate %d", pred)
	}
}

// truncateToWidth converts V into w's native width the way the attribute
// vector itself would store it, so INVALID_VALUE_ID (0xFFFFFFFF) becomes
// w's own maximum code rather than comparing as a huge out-of-range
// uint32.
func truncateToWidth(v uint32, w attrvec.Width) uint32 {
	switch w {
	case attrvec.Width1:
		return uint32(uint8(v))
	case attrvec.Width2:
		return uint32(uint16(v))
	default:
		return v
	}
}

func emitCodesWhere(attrs attrvec.Vector, chunkID uint32, posList *segment.PosList, keep func(code uint32) bool) {
	for offset := 0; offset < attrs.Size(); offset++ {
		if keep(attrs.Get(offset)) {
			*posList = append(*posList, segment.RowID{ChunkID: chunkID, Offset: uint32(offset)})
		}
	}
}

// buildOutputTable assembles the scan's result: a fresh table with the
// input's schema and a single chunk of ReferenceSegments, one per column,
// all sharing posList and pointing at baseTable (the ultimate,
// non-reference base table; reference-over-reference already collapsed
// by scanColumn).
func buildOutputTable(inputSchema *storage.Table, baseTable segment.Table, posList segment.PosList) (*storage.Table, error) {
	columnCount := inputSchema.ColumnCount()
	chunkSize := len(posList)
	if chunkSize == 0 {
		chunkSize = 1
	}
	out, err := storage.NewTable(chunkSize)
	if err != nil {
		return nil, err
	}

	kinds := make([]types.Kind, columnCount)
	for i := 0; i < columnCount; i++ {
		name, err := inputSchema.ColumnName(i)
		if err != nil {
			return nil, err
		}
		kind, err := inputSchema.ColumnType(i)
		if err != nil {
			return nil, err
		}
		kinds[i] = kind
		if err := out.AddColumn(name, kind.String()); err != nil {
			return nil, err
		}
	}

	chunk := storage.NewChunk()
	shared := posList
	for i := 0; i < columnCount; i++ {
		chunk.AddSegment(segment.NewReferenceSegment(kinds[i], baseTable, i, &shared))
	}
	if err := out.EmplaceChunk(chunk); err != nil {
		return nil, err
	}
	return out, nil
}
