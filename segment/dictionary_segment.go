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
	"sort"

	"github.com/dyod/chunkstore/attrvec"
	"github.com/dyod/chunkstore/internal/d"
	"github.com/dyod/chunkstore/types"
)

// DictionarySegment is the immutable, dictionary-compressed encoding: a
// sorted vector of unique element values (the dictionary) plus a
// width-fitted AttributeVector of indices into it. Construction runs
// once, from a ValueSegment; after that the segment never changes, which
// is what lets the scan operator prune directly in value-id space.
type DictionarySegment[T types.Element] struct {
	kind  types.Kind
	dict  []T
	attrs attrvec.Vector
}

// NewDictionarySegment compresses vs into a dictionary segment: collect
// the distinct values, sort them (the dictionary's order is T's natural
// order), pick the narrowest attribute-vector width that can index the
// result, and map every original value to its dictionary index.
func NewDictionarySegment[T types.Element](vs *ValueSegment[T]) *DictionarySegment[T] {
	values := vs.Values()

	dict := make([]T, len(values))
	copy(dict, values)
	sort.Slice(dict, func(i, j int) bool { return dict[i] < dict[j] })
	dict = compact(dict)

	width := attrvec.WidthFor(len(dict))
	attrs := attrvec.New(width, len(values))
	for i, v := range values {
		idx := sort.Search(len(dict), func(j int) bool { return !(dict[j] < v) })
		d.PanicIfFalse(idx < len(dict) && dict[idx] == v, "value %v missing from its own dictionary", v)
		attrs.Set(i, uint32(idx))
	}

	return &DictionarySegment[T]{kind: vs.Kind(), dict: dict, attrs: attrs}
}

// compact removes adjacent duplicates from a sorted slice in place.
func compact[T comparable](sorted []T) []T {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func (d2 *DictionarySegment[T]) Size() int        { return d2.attrs.Size() }
func (d2 *DictionarySegment[T]) Kind() types.Kind  { return d2.kind }

func (d2 *DictionarySegment[T]) At(offset int) (v types.Value, err error) {
	err = d.Try(func() {
		d.PanicIfFalse(offset >= 0 && offset < d2.attrs.Size(), "row offset %d out of range [0,%d)", offset, d2.attrs.Size())
		id := d2.attrs.Get(offset)
		v = types.FromElement(d2.dict[id])
	})
	return v, err
}

// Append always fails: dictionary segments are immutable once built.
func (d2 *DictionarySegment[T]) Append(types.Value) error {
	return d.Try(func() {
		d.Panic("cannot append to an immutable dictionary segment")
	})
}

// Dictionary returns a read-only view of the sorted, unique dictionary
// entries. Callers must not mutate the returned slice.
func (d2 *DictionarySegment[T]) Dictionary() []T { return d2.dict }

// AttributeVector returns the segment's fitted attribute vector.
func (d2 *DictionarySegment[T]) AttributeVector() attrvec.Vector { return d2.attrs }

// UniqueValuesCount is the number of distinct values in the dictionary.
func (d2 *DictionarySegment[T]) UniqueValuesCount() int { return len(d2.dict) }

// ValueByValueID resolves a dictionary index back to its element value.
// Fatal abort on attrvec.InvalidValueID or an out-of-range id.
func (d2 *DictionarySegment[T]) ValueByValueID(id uint32) (v T, err error) {
	err = d.Try(func() {
		d.PanicIfTrue(id == attrvec.InvalidValueID, "value id is INVALID_VALUE_ID")
		d.PanicIfFalse(int(id) < len(d2.dict), "value id %d out of range [0,%d)", id, len(d2.dict))
		v = d2.dict[id]
	})
	return v, err
}

// LowerBound returns the index of the first dictionary entry >= v, or
// attrvec.InvalidValueID if every entry is smaller.
func (d2 *DictionarySegment[T]) LowerBound(v T) uint32 {
	idx := sort.Search(len(d2.dict), func(i int) bool { return !(d2.dict[i] < v) })
	if idx == len(d2.dict) {
		return attrvec.InvalidValueID
	}
	return uint32(idx)
}

// UpperBound returns the index of the first dictionary entry > v, or
// attrvec.InvalidValueID if no entry is larger.
func (d2 *DictionarySegment[T]) UpperBound(v T) uint32 {
	idx := sort.Search(len(d2.dict), func(i int) bool { return v < d2.dict[i] })
	if idx == len(d2.dict) {
		return attrvec.InvalidValueID
	}
	return uint32(idx)
}
