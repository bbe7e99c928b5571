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

// Package observe provides ready-made observers and decorators that wrap
// an observer with logging, metrics or tracing.
package observe

import (
	"dirpx.dev/rspy/apis"
)

// Decorator wraps an observer with extra behavior.
type Decorator func(next apis.Observer) apis.Observer

// Passthrough evaluates the deferred result and returns it unchanged.
func Passthrough(_ apis.Reflectable, _ apis.Query, deferred apis.Deferred) (any, error) {
	return deferred()
}

// Chain wraps next with decorators. The first decorator is the outermost.
func Chain(next apis.Observer, decorators ...Decorator) apis.Observer {
	for i := len(decorators) - 1; i >= 0; i-- {
		next = decorators[i](next)
	}
	return next
}
