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

// Package d implements the fatal-abort idiom used throughout chunkstore:
// invariant checks panic where they are detected, and a small number of
// public entry points recover that panic back into an ordinary error via
// Try/TryCatch. Nothing here is meant to be recovered from deeper in the
// call stack; it exists so internal code can fail fast without threading
// an error return through every helper, while external callers still see
// normal Go errors.
package d

import (
	"fmt"

	"github.com/pkg/errors"
)

// Panic raises a fatal abort with a formatted message.
func Panic(format string, args ...interface{}) {
	if len(args) == 0 {
		panic(errors.New(format))
	}
	panic(errors.New(fmt.Sprintf(format, args...)))
}

// PanicIfError raises a fatal abort if err is non-nil.
func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfTrue raises a fatal abort if cond is true.
func PanicIfTrue(cond bool, format string, args ...interface{}) {
	if cond {
		Panic(format, args...)
	}
}

// PanicIfFalse raises a fatal abort if cond is false.
func PanicIfFalse(cond bool, format string, args ...interface{}) {
	if !cond {
		Panic(format, args...)
	}
}

// PanicIfNotType panics unless v's concrete type matches one of types. It
// returns v so it can be used inline at an assignment site.
func PanicIfNotType(v interface{}, types ...interface{}) interface{} {
	vt := fmt.Sprintf("%T", v)
	for _, t := range types {
		if fmt.Sprintf("%T", t) == vt {
			return v
		}
	}
	Panic("unexpected type %T", v)
	return nil
}

type wrappedError struct {
	msg   string
	cause error
	stack error
}

func (w wrappedError) Error() string { return w.msg }
func (w wrappedError) Cause() error  { return w.cause }

// StackTrace exposes the github.com/pkg/errors stack captured at Wrap time,
// for logging at the point the fatal abort is ultimately reported.
func (w wrappedError) StackTrace() errors.StackTrace {
	type stackTracer interface{ StackTrace() errors.StackTrace }
	if st, ok := w.stack.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Wrap annotates err with a stack trace (via github.com/pkg/errors), while
// Cause() keeps returning the original, unwrapped error. Wrapping a nil
// error is a no-op; wrapping an already-wrapped error returns it unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if w, ok := err.(wrappedError); ok {
		return w
	}
	return wrappedError{msg: err.Error(), cause: err, stack: errors.WithStack(err)}
}

// Unwrap returns the original error beneath a value produced by Wrap, or
// err itself if it was not wrapped.
func Unwrap(err error) error {
	if w, ok := err.(wrappedError); ok {
		return w.cause
	}
	return err
}

func causeInTypes(err error, types ...interface{}) bool {
	if len(types) == 0 {
		return false
	}
	cause := Unwrap(err)
	causeType := fmt.Sprintf("%T", cause)
	for _, t := range types {
		if fmt.Sprintf("%T", t) == causeType {
			return true
		}
	}
	return false
}

// Try runs f, converting any panic whose value is an error into a returned
// error. That covers the fatal aborts raised via this package, and also
// any other error-valued panic, such as a Go runtime error. If f panics
// with a value that is not an error, the panic is re-raised.
func Try(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	f()
	return nil
}

// TryCatch runs f, and if f panics with an error whose cause matches one
// handled by catch, replaces the panic with catch's returned error
// (wrapped as a panic so the caller composes with an outer Try). catch is
// expected to re-panic via Panic/PanicIfError for errors it does not
// handle.
func TryCatch(f func(), catch func(err error) error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			if handled := catch(e); handled != nil {
				panic(handled)
			}
		}
	}()
	f()
}
