/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package lazy builds Deferred computations.
package lazy

import (
	"sync"

	"dirpx.dev/rspy/apis"
)

// New returns a Deferred that runs fn on first call and memoizes its
// result and error. Later calls return the memoized pair without running
// fn again. If fn panics, every call re-panics with the same value.
func New(fn func() (any, error)) apis.Deferred {
	return apis.Deferred(sync.OnceValues(fn))
}

// Value returns a Deferred that always yields v.
func Value(v any) apis.Deferred {
	return func() (any, error) { return v, nil }
}

// Force evaluates d, treating a nil Deferred as yielding nothing.
func Force(d apis.Deferred) (any, error) {
	if d == nil {
		return nil, nil
	}
	return d()
}
