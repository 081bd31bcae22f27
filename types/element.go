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

import "golang.org/x/exp/constraints"

// Element is the closed set of column element types chunkstore supports.
// Every generic segment and dictionary type is parameterized over
// Element so that comparisons (dictionary sort order, bounds pruning)
// compile to a native ordered comparison instead of going through the
// Value variant's slow path.
type Element interface {
	constraints.Ordered
	int32 | int64 | float32 | float64 | string
}

// KindOf returns the Kind corresponding to the compile-time type
// parameter T. It is the inverse of Dispatch: given a concrete type, find
// its runtime tag (used when a generic constructor needs to stamp the
// Kind onto the value it builds, e.g. NewValueSegmentTyped[T]).
func KindOf[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return IntKind
	case int64:
		return LongKind
	case float32:
		return FloatKind
	case float64:
		return DoubleKind
	case string:
		return StringKind
	default:
		panic("unreachable: Element type set is closed")
	}
}
