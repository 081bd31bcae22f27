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

import "github.com/dyod/chunkstore/internal/d"

// Family is the type-dispatch contract: one constructor per element kind,
// producing a value of the same result type R but specialized, at each
// call site, to the compile-time type parameter that constructor closes
// over (e.g. a *ValueSegment[int32] vs a *ValueSegment[string], both
// returned as the Segment interface). Dispatch is the single place that
// turns a runtime Kind back into one of these five compile-time paths;
// every other polymorphic site in chunkstore takes a Kind or a type
// parameter, never a string.
type Family[R any] struct {
	Int    func() R
	Long   func() R
	Float  func() R
	Double func() R
	String func() R
}

// Dispatch selects and invokes the Family member matching kind. An
// unrecognized kind is a fatal configuration error (it can only happen if
// a Kind value was constructed outside KindFromName/the Kind constants).
func Dispatch[R any](kind Kind, f Family[R]) (result R, err error) {
	err = d.Try(func() {
		switch kind {
		case IntKind:
			result = f.Int()
		case LongKind:
			result = f.Long()
		case FloatKind:
			result = f.Float()
		case DoubleKind:
			result = f.Double()
		case StringKind:
			result = f.String()
		default:
			d.Panic("unknown element kind %d", kind)
		}
	})
	return result, err
}
