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

package naming

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrNilType is returned when a nil reflect.Type is registered.
	ErrNilType = errors.New("rspy(naming): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is registered.
	ErrEmptyName = errors.New("rspy(naming): empty name provided")
	// ErrNotNamed is returned when a type has no named type to attach to.
	ErrNotNamed = errors.New("rspy(naming): type has no nearest named type")
	// ErrConflictingRegistration indicates an attempt to re-register a type
	// with a different name.
	ErrConflictingRegistration = errors.New("rspy(naming): conflicting type registration")
)

// Entry is one registered type and its entity name.
type Entry struct {
	Type reflect.Type
	Name string
}

// Registry maps target types to explicit entity names. Registrations win
// over derived "pkg.Type" names. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	m     sync.Map // map[reflect.Type]string
	count int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register associates the nearest named type of t with name. It is
// idempotent for the same (type, name) pair.
func (r *Registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	b := normalize(t)
	if b == nil {
		return ErrNotNamed
	}

	if old, ok := r.m.Load(b); ok {
		return sameName(old.(string), name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return sameName(old.(string), name)
	}
	r.m.Store(b, name)
	r.count++
	return nil
}

func sameName(old, name string) error {
	if old == name {
		return nil
	}
	return ErrConflictingRegistration
}

// Lookup returns the name registered for the nearest named type of t.
func (r *Registry) Lookup(t reflect.Type) (string, bool) {
	b := normalize(t)
	if b == nil {
		return "", false
	}
	if v, ok := r.m.Load(b); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot of the registrations in unspecified order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, r.Count())
	r.m.Range(func(k, v any) bool {
		out = append(out, Entry{Type: k.(reflect.Type), Name: v.(string)})
		return true
	})
	return out
}

// Count returns the number of registrations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset removes every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Range(func(k, _ any) bool {
		r.m.Delete(k)
		return true
	})
	r.count = 0
}

// defaultRegistry is consulted by Entity.
var defaultRegistry = NewRegistry()

// Register records name as the entity name of t in the registry consulted
// by Entity.
func Register(t reflect.Type, name string) error {
	return defaultRegistry.Register(t, name)
}

// Default returns the registry consulted by Entity.
func Default() *Registry { return defaultRegistry }
