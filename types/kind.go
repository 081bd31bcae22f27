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

// Package types holds the closed element-type enumeration, the
// runtime-name-to-compile-time-type dispatch bridge, and the tagged
// variant value used at every generic boundary of chunkstore (search
// values, row cells, dictionary entries).
package types

import "github.com/dyod/chunkstore/internal/d"

// Kind identifies one of the five supported column element types. It is
// the discriminator half of the TypeName <-> element-type bijection;
// the textual half lives in kindNames/namesToKind below.
type Kind uint8

const (
	IntKind Kind = iota
	LongKind
	FloatKind
	DoubleKind
	StringKind
)

var kindNames = [...]string{
	IntKind:    "int",
	LongKind:   "long",
	FloatKind:  "float",
	DoubleKind: "double",
	StringKind: "string",
}

var namesToKind = map[string]Kind{
	"int":    IntKind,
	"long":   LongKind,
	"float":  FloatKind,
	"double": DoubleKind,
	"string": StringKind,
}

// String returns the canonical type name for k. Panics if k is not one of
// the closed set of kinds, since that is a programming error, not a
// configuration one: every Kind in the system is supposed to have
// been produced by KindFromName or a Kind constant.
func (k Kind) String() string {
	d.PanicIfFalse(int(k) < len(kindNames), "unknown element kind %d", k)
	return kindNames[k]
}

// KindFromName is the one place in chunkstore that maps a schema's
// textual type name to the compile-time element type it selects. An
// unrecognized name is a fatal configuration error.
func KindFromName(name string) (kind Kind, err error) {
	err = d.Try(func() {
		var ok bool
		kind, ok = namesToKind[name]
		d.PanicIfFalse(ok, "unknown type name %q (want one of int, long, float, double, string)", name)
	})
	return kind, err
}
