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

// Handler is an operation table installed on a proxy. Every field is
// optional: a nil trap means "not provided" and the proxy falls back to the
// default reflective behavior for that operation.
//
// Handler is a plain struct so that layering is a copy: a handler built on
// top of another starts from *base and replaces only the traps it owns.
type Handler struct {
	// Instrumented operations.

	Get                      func(target Reflectable, key Key, receiver any) (any, error)
	Apply                    func(target Reflectable, this any, args []any) (any, error)
	GetOwnPropertyDescriptor func(target Reflectable, key Key) (*PropertyDescriptor, error)
	GetPrototypeOf           func(target Reflectable) (Reflectable, error)

	// Pass-through operations.

	Set               func(target Reflectable, key Key, value any, receiver any) (bool, error)
	Has               func(target Reflectable, key Key) (bool, error)
	DeleteProperty    func(target Reflectable, key Key) (bool, error)
	DefineProperty    func(target Reflectable, key Key, desc PropertyDescriptor) (bool, error)
	OwnKeys           func(target Reflectable) ([]Key, error)
	SetPrototypeOf    func(target Reflectable, proto Reflectable) (bool, error)
	IsExtensible      func(target Reflectable) (bool, error)
	PreventExtensions func(target Reflectable) (bool, error)
}

// Clone returns a shallow copy of h. A nil h yields an empty handler.
func (h *Handler) Clone() *Handler {
	if h == nil {
		return &Handler{}
	}
	c := *h
	return &c
}
