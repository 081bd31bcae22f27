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

package types

import (
	"strconv"
	"strings"

	"github.com/dyod/chunkstore/internal/d"
)

// Value is a tagged union holding exactly one inhabitant of the closed
// element-type set. It is the slow, boxed representation used at
// generic-erasure boundaries: row literals passed to Table.Append, scan
// search values, and Segment.At's per-offset return.
type Value struct {
	kind Kind
	i32  int32
	i64  int64
	f32  float32
	f64  float64
	str  string
}

func IntValue(v int32) Value    { return Value{kind: IntKind, i32: v} }
func LongValue(v int64) Value   { return Value{kind: LongKind, i64: v} }
func FloatValue(v float32) Value { return Value{kind: FloatKind, f32: v} }
func DoubleValue(v float64) Value { return Value{kind: DoubleKind, f64: v} }
func StringValue(v string) Value { return Value{kind: StringKind, str: v} }

// Kind reports which inhabitant of the element-type set this value holds.
func (v Value) Kind() Kind { return v.kind }

// AsInt32 converts v to int32, truncating wider numeric types and parsing
// strings. Unparsable strings fail.
func (v Value) AsInt32() (n int32, err error) {
	err = d.Try(func() {
		switch v.kind {
		case IntKind:
			n = v.i32
		case LongKind:
			n = int32(v.i64)
		case FloatKind:
			n = int32(v.f32)
		case DoubleKind:
			n = int32(v.f64)
		case StringKind:
			parsed, perr := strconv.ParseInt(strings.TrimSpace(v.str), 10, 32)
			d.PanicIfTrue(perr != nil, "cannot convert %q to int: %s", v.str, perr)
			n = int32(parsed)
		default:
			d.Panic("unknown element kind %d", v.kind)
		}
	})
	return n, err
}

// AsInt64 converts v to int64 the same way AsInt32 does, at the wider
// width.
func (v Value) AsInt64() (n int64, err error) {
	err = d.Try(func() {
		switch v.kind {
		case IntKind:
			n = int64(v.i32)
		case LongKind:
			n = v.i64
		case FloatKind:
			n = int64(v.f32)
		case DoubleKind:
			n = int64(v.f64)
		case StringKind:
			parsed, perr := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
			d.PanicIfTrue(perr != nil, "cannot convert %q to long: %s", v.str, perr)
			n = parsed
		default:
			d.Panic("unknown element kind %d", v.kind)
		}
	})
	return n, err
}

// AsFloat32 converts v to float32.
func (v Value) AsFloat32() (f float32, err error) {
	err = d.Try(func() {
		switch v.kind {
		case IntKind:
			f = float32(v.i32)
		case LongKind:
			f = float32(v.i64)
		case FloatKind:
			f = v.f32
		case DoubleKind:
			f = float32(v.f64)
		case StringKind:
			parsed, perr := strconv.ParseFloat(strings.TrimSpace(v.str), 32)
			d.PanicIfTrue(perr != nil, "cannot convert %q to float: %s", v.str, perr)
			f = float32(parsed)
		default:
			d.Panic("unknown element kind %d", v.kind)
		}
	})
	return f, err
}

// AsFloat64 converts v to float64.
func (v Value) AsFloat64() (f float64, err error) {
	err = d.Try(func() {
		switch v.kind {
		case IntKind:
			f = float64(v.i32)
		case LongKind:
			f = float64(v.i64)
		case FloatKind:
			f = float64(v.f32)
		case DoubleKind:
			f = v.f64
		case StringKind:
			parsed, perr := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
			d.PanicIfTrue(perr != nil, "cannot convert %q to double: %s", v.str, perr)
			f = parsed
		default:
			d.Panic("unknown element kind %d", v.kind)
		}
	})
	return f, err
}

// AsString formats v as a string. Numeric kinds use their natural decimal
// representation; this direction never fails.
func (v Value) AsString() (s string, err error) {
	err = d.Try(func() {
		switch v.kind {
		case IntKind:
			s = strconv.FormatInt(int64(v.i32), 10)
		case LongKind:
			s = strconv.FormatInt(v.i64, 10)
		case FloatKind:
			s = strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
		case DoubleKind:
			s = strconv.FormatFloat(v.f64, 'g', -1, 64)
		case StringKind:
			s = v.str
		default:
			d.Panic("unknown element kind %d", v.kind)
		}
	})
	return s, err
}

// ConvertTo converts v to the compile-time element type T, the single
// generic entry point ValueSegment.Append and the scan's search-value
// conversion both funnel through.
func ConvertTo[T Element](v Value) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		n, err := v.AsInt32()
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	case int64:
		n, err := v.AsInt64()
		if err != nil {
			return zero, err
		}
		return any(n).(T), nil
	case float32:
		f, err := v.AsFloat32()
		if err != nil {
			return zero, err
		}
		return any(f).(T), nil
	case float64:
		f, err := v.AsFloat64()
		if err != nil {
			return zero, err
		}
		return any(f).(T), nil
	case string:
		s, err := v.AsString()
		if err != nil {
			return zero, err
		}
		return any(s).(T), nil
	default:
		panic("unreachable: Element type set is closed")
	}
}

// FromElement boxes a concrete element value back into a Value, tagged
// with its Kind. Used by segments' At() slow path.
func FromElement[T Element](v T) Value {
	switch x := any(v).(type) {
	case int32:
		return IntValue(x)
	case int64:
		return LongValue(x)
	case float32:
		return FloatValue(x)
	case float64:
		return DoubleValue(x)
	case string:
		return StringValue(x)
	default:
		panic("unreachable: Element type set is closed")
	}
}
