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

import "errors"

// errNotExecuted is returned by Output() when Execute() has not yet run.
// Unlike the fatal-abort errors raised deep in scan's predicate
// evaluation, this is an ordinary precondition error a caller can check
// for directly.
var errNotExecuted = errors.New("operator: Output called before Execute")
