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

package observe

import (
	"sync"

	"dirpx.dev/rspy/apis"
)

// Call is one recorded interception.
type Call struct {
	// Target is the proxied target.
	Target apis.Reflectable
	// Query describes the operation.
	Query apis.Query
	// Result is the underlying (not the overridden) result.
	Result any
	// Err is the error the underlying computation returned.
	Err error
}

// OverrideFunc decides the final result of an operation from its query and
// underlying result.
type OverrideFunc func(q apis.Query, result any) (any, error)

// Recorder is an observer that always evaluates the underlying result,
// records it, and returns it (or the override's answer). It is safe for
// concurrent use.
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	override OverrideFunc
}

// NewRecorder returns a recorder. override may be nil, in which case the
// underlying result is returned unchanged. Errors from the underlying
// computation are recorded and returned without consulting override.
func NewRecorder(override OverrideFunc) *Recorder {
	return &Recorder{override: override}
}

// Observe implements apis.Observer.
func (r *Recorder) Observe(target apis.Reflectable, q apis.Query, deferred apis.Deferred) (any, error) {
	v, err := deferred()

	r.mu.Lock()
	r.calls = append(r.calls, Call{Target: target, Query: q, Result: v, Err: err})
	r.mu.Unlock()

	if err != nil || r.override == nil {
		return v, err
	}
	return r.override(q, v)
}

// Calls returns a snapshot of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
