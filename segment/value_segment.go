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

// ValueSegment is the uncompressed, append-only encoding: a typed vector
// with no indirection. It is the only encoding rows are ever appended to
// directly; DictionarySegment and ReferenceSegment are built, not grown.
type ValueSegment[T types.Element] struct {
	kind types.Kind
	data []T
}

// NewValueSegmentTyped constructs an empty ValueSegment[T]. Prefer
// NewValueSegment when the element type is only known as a types.Kind at
// the call site (e.g. building a column from its schema type name).
func NewValueSegmentTyped[T types.Element]() *ValueSegment[T] {
	return &ValueSegment[T]{kind: types.KindOf[T]()}
}

// NewValueSegment is the type-dispatch factory bridging a runtime Kind to
// the compile-time-specialized ValueSegment[T] matching it.
func NewValueSegment(kind types.Kind) (Segment, error) {
	return types.Dispatch(kind, types.Family[Segment]{
		Int:    func() Segment { return NewValueSegmentTyped[int32]() },
		Long:   func() Segment { return NewValueSegmentTyped[int64]() },
		Float:  func() Segment { return NewValueSegmentTyped[float32]() },
		Double: func() Segment { return NewValueSegmentTyped[float64]() },
		String: func() Segment { return NewValueSegmentTyped[string]() },
	})
}

func (s *ValueSegment[T]) Size() int       { return len(s.data) }
func (s *ValueSegment[T]) Kind() types.Kind { return s.kind }

func (s *ValueSegment[T]) At(offset int) (v types.Value, err error) {
	err = d.Try(func() {
		d.PanicIfFalse(offset >= 0 && offset < len(s.data), "row offset %d out of range [0,%d)", offset, len(s.data))
		v = types.FromElement(s.data[offset])
	})
	return v, err
}

// Append converts val to T (fatal if unconvertible) and pushes it onto
// the vector.
func (s *ValueSegment[T]) Append(val types.Value) error {
	converted, err := types.ConvertTo[T](val)
	if err != nil {
		return err
	}
	s.data = append(s.data, converted)
	return nil
}

// Values returns an immutable view of the underlying typed vector.
// Callers must not mutate the returned slice; it may be shared with the
// segment's internal storage.
func (s *ValueSegment[T]) Values() []T {
	return s.data
}
