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

// Reflectable is the meta-object contract every proxied target implements.
// It is the Go rendition of the host's reflection primitives: generic
// property read, call, own-descriptor lookup and prototype lookup.
type Reflectable interface {
	// GetProperty reads key, walking the prototype chain. Getters run with
	// receiver as their this value. A missing property yields (nil, nil).
	GetProperty(key Key, receiver any) (any, error)

	// Invoke calls the target as a function.
	Invoke(this any, args []any) (any, error)

	// GetOwnPropertyDescriptor returns the descriptor of the own property
	// key, or nil if there is none.
	GetOwnPropertyDescriptor(key Key) (*PropertyDescriptor, error)

	// GetPrototype returns the prototype, or nil at the end of the chain.
	GetPrototype() (Reflectable, error)
}

// Mutable is implemented by targets whose properties can be written.
type Mutable interface {
	SetProperty(key Key, value any, receiver any) (bool, error)
	DeleteProperty(key Key) (bool, error)
	DefineProperty(key Key, desc PropertyDescriptor) (bool, error)
}

// Enumerable is implemented by targets that can list and test properties.
type Enumerable interface {
	HasProperty(key Key) (bool, error)
	OwnKeys() ([]Key, error)
}

// Extensible is implemented by targets with a mutable prototype link and
// an extensibility flag.
type Extensible interface {
	SetPrototype(proto Reflectable) (bool, error)
	IsExtensible() (bool, error)
	PreventExtensions() (bool, error)
}
