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

import "github.com/dyod/chunkstore/internal/d"

// Predicate is one of the six comparisons a Scan can test a column
// against a search value with.
type Predicate int

const (
	Equals Predicate = iota
	NotEquals
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

var predicateSymbols = map[string]Predicate{
	"=":  Equals,
	"!=": NotEquals,
	"<>": NotEquals,
	"<":  LessThan,
	"<=": LessThanOrEqual,
	">":  GreaterThan,
	">=": GreaterThanOrEqual,
}

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		d.Panic("unknown predicate %d", p)
		return ""
	}
}

// PredicateFromSymbol parses one of "=", "!="/"<>", "<", "<=", ">", ">="
// into a Predicate. Any other symbol is a fatal configuration error.
func PredicateFromSymbol(symbol string) (p Predicate, err error) {
	err = d.Try(func() {
		got, ok := predicateSymbols[symbol]
		d.PanicIfFalse(ok, "unknown predicate symbol %q", symbol)
		p = got
	})
	return p, err
}

// evalOrdered applies p to the ordering of a against b: negative means
// a<b, zero means a==b, positive means a>b, the same contract as
// cmp.Compare, so the same switch drives both the ValueSegment scan and
// the ReferenceSegment scan (element comparisons); DictionarySegment takes
// the value-id rewrite instead, see scan.go.
func evalOrdered(p Predicate, cmp int) bool {
	switch p {
	case Equals:
		return cmp == 0
	case NotEquals:
		return cmp != 0
	case LessThan:
		return cmp < 0
	case LessThanOrEqual:
		return cmp <= 0
	case GreaterThan:
		return cmp > 0
	case GreaterThanOrEqual:
		return cmp >= 0
	default:
		d.Panic("unknown predicate %d", p)
		return false
	}
}
