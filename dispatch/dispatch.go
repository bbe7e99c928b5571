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

// Package dispatch holds the default reflective behavior for every
// operation a proxy can trap. It plays the part the host's Reflect object
// plays for native proxies: each default forwards to the target's own
// primitive.
package dispatch

import (
	"errors"
	"fmt"

	"dirpx.dev/rspy/apis"
)

// ErrUnsupported is returned when a target lacks the capability an
// operation needs (e.g. setting a property on a target that is not
// apis.Mutable).
var ErrUnsupported = errors.New("rspy(dispatch): operation not supported by target")

// Defaults returns a handler with every trap set to the default behavior.
// Each call returns a fresh handler that callers may modify.
func Defaults() *apis.Handler {
	return &apis.Handler{
		Get:                      Get,
		Apply:                    Apply,
		GetOwnPropertyDescriptor: GetOwnPropertyDescriptor,
		GetPrototypeOf:           GetPrototypeOf,
		Set:                      Set,
		Has:                      Has,
		DeleteProperty:           DeleteProperty,
		DefineProperty:           DefineProperty,
		OwnKeys:                  OwnKeys,
		SetPrototypeOf:           SetPrototypeOf,
		IsExtensible:             IsExtensible,
		PreventExtensions:        PreventExtensions,
	}
}

// Resolve returns a copy of h in which every nil trap is filled from
// defaults. A nil defaults uses Defaults().
func Resolve(h, defaults *apis.Handler) *apis.Handler {
	if defaults == nil {
		defaults = Defaults()
	}
	out := h.Clone()
	if out.Get == nil {
		out.Get = defaults.Get
	}
	if out.Apply == nil {
		out.Apply = defaults.Apply
	}
	if out.GetOwnPropertyDescriptor == nil {
		out.GetOwnPropertyDescriptor = defaults.GetOwnPropertyDescriptor
	}
	if out.GetPrototypeOf == nil {
		out.GetPrototypeOf = defaults.GetPrototypeOf
	}
	if out.Set == nil {
		out.Set = defaults.Set
	}
	if out.Has == nil {
		out.Has = defaults.Has
	}
	if out.DeleteProperty == nil {
		out.DeleteProperty = defaults.DeleteProperty
	}
	if out.DefineProperty == nil {
		out.DefineProperty = defaults.DefineProperty
	}
	if out.OwnKeys == nil {
		out.OwnKeys = defaults.OwnKeys
	}
	if out.SetPrototypeOf == nil {
		out.SetPrototypeOf = defaults.SetPrototypeOf
	}
	if out.IsExtensible == nil {
		out.IsExtensible = defaults.IsExtensible
	}
	if out.PreventExtensions == nil {
		out.PreventExtensions = defaults.PreventExtensions
	}
	return out
}

// Get reads key from target with the given receiver.
func Get(target apis.Reflectable, key apis.Key, receiver any) (any, error) {
	return target.GetProperty(key, receiver)
}

// Apply calls target.
func Apply(target apis.Reflectable, this any, args []any) (any, error) {
	return target.Invoke(this, args)
}

// GetOwnPropertyDescriptor returns target's own descriptor for key.
func GetOwnPropertyDescriptor(target apis.Reflectable, key apis.Key) (*apis.PropertyDescriptor, error) {
	return target.GetOwnPropertyDescriptor(key)
}

// GetPrototypeOf returns target's prototype.
func GetPrototypeOf(target apis.Reflectable) (apis.Reflectable, error) {
	return target.GetPrototype()
}

// Set writes key on target.
func Set(target apis.Reflectable, key apis.Key, value any, receiver any) (bool, error) {
	m, ok := target.(apis.Mutable)
	if !ok {
		return false, unsupported("set", target)
	}
	return m.SetProperty(key, value, receiver)
}

// Has reports whether key is reachable on target.
func Has(target apis.Reflectable, key apis.Key) (bool, error) {
	if e, ok := target.(apis.Enumerable); ok {
		return e.HasProperty(key)
	}
	// Without enumeration support fall back to walking descriptors.
	for t := target; t != nil; {
		d, err := t.GetOwnPropertyDescriptor(key)
		if err != nil {
			return false, err
		}
		if d != nil {
			return true, nil
		}
		if t, err = t.GetPrototype(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// DeleteProperty removes the own property key from target.
func DeleteProperty(target apis.Reflectable, key apis.Key) (bool, error) {
	m, ok := target.(apis.Mutable)
	if !ok {
		return false, unsupported("deleteProperty", target)
	}
	return m.DeleteProperty(key)
}

// DefineProperty defines or redefines the own property key on target.
func DefineProperty(target apis.Reflectable, key apis.Key, desc apis.PropertyDescriptor) (bool, error) {
	m, ok := target.(apis.Mutable)
	if !ok {
		return false, unsupported("defineProperty", target)
	}
	return m.DefineProperty(key, desc)
}

// OwnKeys lists target's own keys.
func OwnKeys(target apis.Reflectable) ([]apis.Key, error) {
	e, ok := target.(apis.Enumerable)
	if !ok {
		return nil, unsupported("ownKeys", target)
	}
	return e.OwnKeys()
}

// SetPrototypeOf replaces target's prototype.
func SetPrototypeOf(target apis.Reflectable, proto apis.Reflectable) (bool, error) {
	e, ok := target.(apis.Extensible)
	if !ok {
		return false, unsupported("setPrototypeOf", target)
	}
	return e.SetPrototype(proto)
}

// IsExtensible reports whether new properties can be added to target.
// Targets without the capability are treated as extensible.
func IsExtensible(target apis.Reflectable) (bool, error) {
	e, ok := target.(apis.Extensible)
	if !ok {
		return true, nil
	}
	return e.IsExtensible()
}

// PreventExtensions forbids adding new properties to target.
func PreventExtensions(target apis.Reflectable) (bool, error) {
	e, ok := target.(apis.Extensible)
	if !ok {
		return false, unsupported("preventExtensions", target)
	}
	return e.PreventExtensions()
}

func unsupported(op string, target apis.Reflectable) error {
	return fmt.Errorf("%w: %s on %T", ErrUnsupported, op, target)
}
