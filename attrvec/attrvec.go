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

// Package attrvec implements the width-fitted attribute vector backing a
// DictionarySegment: a sequence of unsigned dictionary-index codes stored
// at the narrowest of {1,2,4} bytes per code that can represent every
// index the dictionary needs.
package attrvec

import (
	"math"

	"github.com/dyod/chunkstore/internal/d"
)

// Width is the byte width of one code in a Vector.
type Width int

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
)

// InvalidValueID is the sentinel meaning "no such dictionary entry". It is
// defined at the widest supported width; Width.Max returns the value this
// sentinel downcasts to for a narrower width, which is always that
// width's maximum representable code (truncation of 0xFFFFFFFF to 8 or
// 16 bits naturally lands on 0xFF / 0xFFFF).
const InvalidValueID uint32 = math.MaxUint32

// WidthFor returns the narrowest Width able to index uniqueCount distinct
// dictionary entries: <=255 -> 1 byte, <=65535 -> 2 bytes, otherwise 4
// bytes. uniqueCount must fit in a uint32 (the dictionary's size limit).
func WidthFor(uniqueCount int) Width {
	switch {
	case uniqueCount <= 255:
		return Width1
	case uniqueCount <= 65535:
		return Width2
	default:
		return Width4
	}
}

// Max returns the sentinel value of INVALID_VALUE_ID truncated to w's
// width, i.e. w's maximum representable code.
func (w Width) Max() uint32 {
	switch w {
	case Width1:
		return uint32(uint8(InvalidValueID))
	case Width2:
		return uint32(uint16(InvalidValueID))
	default:
		return InvalidValueID
	}
}

// Vector is a fixed-width, fixed-size array of dictionary-index codes.
type Vector interface {
	// Get returns the code at offset.
	Get(offset int) uint32
	// Set stores id at offset. Fatal abort if id does not fit Width() or
	// offset is out of range.
	Set(offset int, id uint32)
	// Size is the number of codes in the vector.
	Size() int
	// Width is the fixed byte width of one code.
	Width() Width
}

// New allocates a Vector of the given width holding size codes,
// initialized to zero.
func New(width Width, size int) Vector {
	switch width {
	case Width1:
		return &vector1{data: make([]uint8, size)}
	case Width2:
		return &vector2{data: make([]uint16, size)}
	case Width4:
		return &vector4{data: make([]uint32, size)}
	default:
		d.Panic("unsupported attribute vector width %d", width)
		return nil
	}
}

type vector1 struct{ data []uint8 }

func (v *vector1) Size() int    { return len(v.data) }
func (v *vector1) Width() Width { return Width1 }
func (v *vector1) Get(offset int) uint32 {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	return uint32(v.data[offset])
}
func (v *vector1) Set(offset int, id uint32) {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	d.PanicIfTrue(id > uint32(math.MaxUint8), "value id %d does not fit in a 1-byte attribute vector", id)
	v.data[offset] = uint8(id)
}

type vector2 struct{ data []uint16 }

func (v *vector2) Size() int    { return len(v.data) }
func (v *vector2) Width() Width { return Width2 }
func (v *vector2) Get(offset int) uint32 {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	return uint32(v.data[offset])
}
func (v *vector2) Set(offset int, id uint32) {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	d.PanicIfTrue(id > uint32(math.MaxUint16), "value id %d does not fit in a 2-byte attribute vector", id)
	v.data[offset] = uint16(id)
}

type vector4 struct{ data []uint32 }

func (v *vector4) Size() int    { return len(v.data) }
func (v *vector4) Width() Width { return Width4 }
func (v *vector4) Get(offset int) uint32 {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	return v.data[offset]
}
func (v *vector4) Set(offset int, id uint32) {
	d.PanicIfFalse(offset >= 0 && offset < len(v.data), "attribute vector offset %d out of range [0,%d)", offset, len(v.data))
	v.data[offset] = id
}
