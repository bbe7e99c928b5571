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

package apis

// Deferred is a zero-argument computation of what an operation would
// return without interception. It may never be called.
type Deferred func() (any, error)

// Observer receives every intercepted operation. It is called exactly once
// per operation with the proxied target, the operation's Query and the
// Deferred computing the underlying result. Whatever it returns becomes
// the result of the operation.
type Observer func(target Reflectable, q Query, deferred Deferred) (any, error)

// Operation enumerates the instrumented reflective operations.
type Operation uint8

const (
	// OpGet is a property read.
	OpGet Operation = iota + 1
	// OpApply is a function call.
	OpApply
	// OpGetOwnPropertyDescriptor is a read through an own-property descriptor.
	OpGetOwnPropertyDescriptor
	// OpGetPrototypeOf is a prototype read.
	OpGetPrototypeOf
)

// String returns the trap name of op.
func (op Operation) String() string {
	switch op {
	case OpGet:
		return "get"
	case OpApply:
		return "apply"
	case OpGetOwnPropertyDescriptor:
		return "getOwnPropertyDescriptor"
	case OpGetPrototypeOf:
		return "getPrototypeOf"
	default:
		return "unknown"
	}
}

// Member selects which part of a descriptor a descriptor read goes through.
type Member uint8

const (
	// MemberNone is used by operations that are not descriptor reads.
	MemberNone Member = iota
	// MemberValue is a read of a data descriptor's value.
	MemberValue
	// MemberGet is a call of an accessor descriptor's getter.
	MemberGet
)

// Query describes one intercepted operation. It is immutable and built
// fresh for every operation.
type Query struct {
	// Op is the operation being performed.
	Op Operation
	// Key is the property key for get and descriptor reads.
	Key Key
	// Member is set for descriptor reads.
	Member Member
	// Text is the rendered form, e.g. `get("a")` or `apply()`.
	Text string
}

// String returns the rendered form of q.
func (q Query) String() string { return q.Text }
