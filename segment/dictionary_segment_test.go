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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyod/chunkstore/attrvec"
	"github.com/dyod/chunkstore/types"
)

func namesSegment(t *testing.T, names ...string) *ValueSegment[string] {
	t.Helper()
	vs := NewValueSegmentTyped[string]()
	for _, n := range names {
		require.NoError(t, vs.Append(types.StringValue(n)))
	}
	return vs
}

// Compressing a string column sorts and dedupes its values into the
// dictionary, then rewrites every original value as its dictionary code.
func TestDictionaryCompressionOfStringColumn(t *testing.T) {
	vs := namesSegment(t, "Bill", "Steve", "Alexander", "Steve", "Hasso", "Bill")
	ds := NewDictionarySegment(vs)

	assert.Equal(t, 6, ds.Size())
	assert.Equal(t, 4, ds.UniqueValuesCount())
	assert.Equal(t, []string{"Alexander", "Bill", "Hasso", "Steve"}, ds.Dictionary())
	assert.Equal(t, attrvec.Width1, ds.AttributeVector().Width())

	var codes []uint32
	for i := 0; i < ds.Size(); i++ {
		codes = append(codes, ds.AttributeVector().Get(i))
	}
	assert.Equal(t, []uint32{1, 3, 0, 3, 2, 1}, codes)
}

// LowerBound/UpperBound on an int column's dictionary locate both values
// present in the dictionary and values that fall between its entries.
func TestDictionaryBoundsOnIntColumn(t *testing.T) {
	vs := NewValueSegmentTyped[int32]()
	for _, n := range []int32{0, 2, 4, 6, 8, 10} {
		require.NoError(t, vs.Append(types.IntValue(n)))
	}
	ds := NewDictionarySegment(vs)

	assert.Equal(t, uint32(2), ds.LowerBound(4))
	assert.Equal(t, uint32(3), ds.UpperBound(4))
	assert.Equal(t, uint32(3), ds.LowerBound(5))
	assert.Equal(t, uint32(3), ds.UpperBound(5))
	assert.Equal(t, attrvec.InvalidValueID, ds.LowerBound(15))
	assert.Equal(t, attrvec.InvalidValueID, ds.UpperBound(15))
}

func TestDictionarySegmentRoundTripsValueSegment(t *testing.T) {
	vs := NewValueSegmentTyped[int32]()
	for _, n := range []int32{5, 1, 5, 9, 1, 3} {
		require.NoError(t, vs.Append(types.IntValue(n)))
	}
	ds := NewDictionarySegment(vs)

	for i := 0; i < vs.Size(); i++ {
		want, err := vs.At(i)
		require.NoError(t, err)
		got, err := ds.At(i)
		require.NoError(t, err)
		wantN, _ := want.AsInt32()
		gotN, _ := got.AsInt32()
		assert.Equal(t, wantN, gotN)
	}
}

func TestDictionarySegmentImmutable(t *testing.T) {
	vs := namesSegment(t, "a", "b")
	ds := NewDictionarySegment(vs)
	err := ds.Append(types.StringValue("c"))
	assert.Error(t, err)
	assert.Equal(t, 2, ds.Size())
}

func TestValueByValueID(t *testing.T) {
	vs := namesSegment(t, "b", "a", "c")
	ds := NewDictionarySegment(vs)

	v, err := ds.ValueByValueID(0)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, err = ds.ValueByValueID(attrvec.InvalidValueID)
	assert.Error(t, err)

	_, err = ds.ValueByValueID(999)
	assert.Error(t, err)
}
