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

// Package object provides an in-memory apis.Reflectable: an ordered bag of
// data and accessor properties with a prototype link and optional call
// behavior. It is the reference target for proxies built in pure Go.
package object

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/dispatch"
)

var (
	// ErrNotCallable is returned when Invoke is used on an object without
	// call behavior.
	ErrNotCallable = errors.New("rspy(object): object is not callable")
	// ErrNotExtensible is returned when a property is added to an object
	// after PreventExtensions.
	ErrNotExtensible = errors.New("rspy(object): object is not extensible")
	// ErrPrototypeCycle is returned when SetPrototype would create a cycle.
	ErrPrototypeCycle = errors.New("rspy(object): cyclic prototype chain")
)

// CallFunc is the call behavior of a function object.
type CallFunc func(this any, args []any) (any, error)

// Object is a reflective object. The zero value is not usable; use New,
// Func or FromMap. Object is safe for concurrent use; getters, setters and
// call behavior run without the object's lock held.
type Object struct {
	mu         sync.RWMutex
	props      map[apis.Key]*apis.PropertyDescriptor
	order      []apis.Key
	proto      apis.Reflectable
	call       CallFunc
	frozenExts bool
}

// Ensure Object implements the full capability set.
var (
	_ apis.Reflectable = (*Object)(nil)
	_ apis.Mutable     = (*Object)(nil)
	_ apis.Enumerable  = (*Object)(nil)
	_ apis.Extensible  = (*Object)(nil)
)

// New returns an empty object whose prototype is proto (nil for none).
func New(proto apis.Reflectable) *Object {
	return &Object{
		props: make(map[apis.Key]*apis.PropertyDescriptor),
		proto: proto,
	}
}

// Func returns a callable object with no prototype.
func Func(fn CallFunc) *Object {
	o := New(nil)
	o.call = fn
	return o
}

// FromMap returns an object with one data property per map entry. Keys
// are added in sorted order so OwnKeys is deterministic.
func FromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := New(nil)
	for _, k := range keys {
		o.Put(apis.StringKey(k), m[k])
	}
	return o
}

// Put defines a writable, enumerable, configurable data property and
// returns o for chaining. It bypasses extensibility checks.
func (o *Object) Put(key apis.Key, v any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.store(key, apis.NewDataDescriptor(v))
	return o
}

// PutAccessor defines an enumerable, configurable accessor property and
// returns o for chaining. Either get or set may be nil.
func (o *Object) PutAccessor(key apis.Key, get apis.Getter, set apis.Setter) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.store(key, apis.NewAccessorDescriptor(get, set))
	return o
}

// GetProperty implements apis.Reflectable.
func (o *Object) GetProperty(key apis.Key, receiver any) (any, error) {
	if receiver == nil {
		receiver = o
	}

	o.mu.RLock()
	d, ok := o.props[key]
	proto := o.proto
	o.mu.RUnlock()

	if !ok {
		if proto == nil {
			return nil, nil
		}
		return proto.GetProperty(key, receiver)
	}
	if d.Value != nil {
		return d.Value()
	}
	if d.Get == nil {
		return nil, nil
	}
	return d.Get(receiver)
}

// Invoke implements apis.Reflectable.
func (o *Object) Invoke(this any, args []any) (any, error) {
	if o.call == nil {
		return nil, ErrNotCallable
	}
	return o.call(this, args)
}

// GetOwnPropertyDescriptor implements apis.Reflectable. The returned
// descriptor is a copy; changing it does not affect o.
func (o *Object) GetOwnPropertyDescriptor(key apis.Key) (*apis.PropertyDescriptor, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.props[key].Clone(), nil
}

// GetPrototype implements apis.Reflectable.
func (o *Object) GetPrototype() (apis.Reflectable, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.proto, nil
}

// SetProperty implements apis.Mutable. Own writable data properties are
// overwritten, own setters are called with receiver, inherited setters are
// honored, and anything else defines a new own data property.
func (o *Object) SetProperty(key apis.Key, value any, receiver any) (bool, error) {
	if receiver == nil {
		receiver = o
	}

	o.mu.Lock()
	d, ok := o.props[key]
	if ok && d.Value != nil {
		if !d.Writable {
			o.mu.Unlock()
			return false, nil
		}
		nd := *d
		nd.Value = func() (any, error) { return value, nil }
		o.props[key] = &nd
		o.mu.Unlock()
		return true, nil
	}
	proto := o.proto
	o.mu.Unlock()

	if ok {
		if d.Set == nil {
			return false, nil
		}
		return true, d.Set(receiver, value)
	}

	// Inherited accessors intercept the write.
	for p := proto; p != nil; {
		pd, err := p.GetOwnPropertyDescriptor(key)
		if err != nil {
			return false, err
		}
		if pd != nil {
			if pd.IsAccessor() {
				if pd.Set == nil {
					return false, nil
				}
				return true, pd.Set(receiver, value)
			}
			if !pd.Writable {
				return false, nil
			}
			break
		}
		if p, err = p.GetPrototype(); err != nil {
			return false, err
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozenExts {
		return false, nil
	}
	o.store(key, apis.NewDataDescriptor(value))
	return true, nil
}

// DeleteProperty implements apis.Mutable. Deleting a missing property
// succeeds; deleting a non-configurable one fails.
func (o *Object) DeleteProperty(key apis.Key) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	d, ok := o.props[key]
	if !ok {
		return true, nil
	}
	if !d.Configurable {
		return false, nil
	}
	delete(o.props, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// DefineProperty implements apis.Mutable. A data descriptor's value is
// read once, at definition time.
func (o *Object) DefineProperty(key apis.Key, desc apis.PropertyDescriptor) (bool, error) {
	nd := desc
	if desc.Value != nil {
		v, err := desc.Value()
		if err != nil {
			return false, err
		}
		nd.Value = func() (any, error) { return v, nil }
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	old, ok := o.props[key]
	if !ok && o.frozenExts {
		return false, fmt.Errorf("%w: define %s", ErrNotExtensible, key)
	}
	if ok && !old.Configurable {
		return false, nil
	}
	o.store(key, &nd)
	return true, nil
}

// HasProperty implements apis.Enumerable.
func (o *Object) HasProperty(key apis.Key) (bool, error) {
	o.mu.RLock()
	_, ok := o.props[key]
	proto := o.proto
	o.mu.RUnlock()

	if ok {
		return true, nil
	}
	if proto == nil {
		return false, nil
	}
	return dispatch.Has(proto, key)
}

// OwnKeys implements apis.Enumerable. String keys come before symbol keys,
// each in insertion order.
func (o *Object) OwnKeys() ([]apis.Key, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]apis.Key, 0, len(o.order))
	for _, k := range o.order {
		if !k.IsSymbol() {
			out = append(out, k)
		}
	}
	for _, k := range o.order {
		if k.IsSymbol() {
			out = append(out, k)
		}
	}
	return out, nil
}

// SetPrototype implements apis.Extensible.
func (o *Object) SetPrototype(proto apis.Reflectable) (bool, error) {
	for p := proto; p != nil; {
		if p == apis.Reflectable(o) {
			return false, ErrPrototypeCycle
		}
		var err error
		if p, err = p.GetPrototype(); err != nil {
			return false, err
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.frozenExts {
		return o.proto == proto, nil
	}
	o.proto = proto
	return true, nil
}

// IsExtensible implements apis.Extensible.
func (o *Object) IsExtensible() (bool, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return !o.frozenExts, nil
}

// PreventExtensions implements apis.Extensible.
func (o *Object) PreventExtensions() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frozenExts = true
	return true, nil
}

// store must be called with o.mu held for writing.
func (o *Object) store(key apis.Key, d *apis.PropertyDescriptor) {
	if _, ok := o.props[key]; !ok {
		o.order = append(o.order, key)
	}
	o.props[key] = d
}
