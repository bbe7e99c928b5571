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

// Package gojahost adapts JavaScript values of a goja runtime to the apis
// contracts, so that interception handlers built by package intercept can
// observe real JavaScript objects through real JavaScript proxies.
//
// The runtime's own Reflect object supplies the default behavior; nothing
// of the JavaScript object model is reimplemented here.
package gojahost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"dirpx.dev/rspy/apis"
)

var (
	// ErrMissingBuiltin is returned when the runtime lacks a builtin the
	// host needs (Reflect, Proxy, Symbol).
	ErrMissingBuiltin = errors.New("rspy(gojahost): runtime is missing a builtin")
	// ErrNotFunction is returned when a non-function is invoked.
	ErrNotFunction = errors.New("rspy(gojahost): value is not a function")
)

// Host binds the apis contracts to one goja runtime. A Host is not safe
// for concurrent use, like the runtime it wraps.
type Host struct {
	vm *goja.Runtime

	proxyCtor goja.Value
	reflect   struct {
		get, apply, getOwnPropertyDescriptor, getPrototypeOf goja.Callable
	}
	typeOf    goja.Callable
	newSymbol goja.Callable

	mu      sync.Mutex
	symbols map[goja.Value]*apis.Symbol
	jsSyms  map[*apis.Symbol]goja.Value
}

// New returns a host for vm.
func New(vm *goja.Runtime) (*Host, error) {
	h := &Host{
		vm:      vm,
		symbols: make(map[goja.Value]*apis.Symbol),
		jsSyms:  make(map[*apis.Symbol]goja.Value),
	}

	r := vm.Get("Reflect")
	if r == nil || goja.IsUndefined(r) {
		return nil, fmt.Errorf("%w: Reflect", ErrMissingBuiltin)
	}
	robj := r.ToObject(vm)
	for name, dst := range map[string]*goja.Callable{
		"get":                      &h.reflect.get,
		"apply":                    &h.reflect.apply,
		"getOwnPropertyDescriptor": &h.reflect.getOwnPropertyDescriptor,
		"getPrototypeOf":           &h.reflect.getPrototypeOf,
	} {
		fn, ok := goja.AssertFunction(robj.Get(name))
		if !ok {
			return nil, fmt.Errorf("%w: Reflect.%s", ErrMissingBuiltin, name)
		}
		*dst = fn
	}

	h.proxyCtor = vm.Get("Proxy")
	if h.proxyCtor == nil || goja.IsUndefined(h.proxyCtor) {
		return nil, fmt.Errorf("%w: Proxy", ErrMissingBuiltin)
	}

	sym, ok := goja.AssertFunction(vm.Get("Symbol"))
	if !ok {
		return nil, fmt.Errorf("%w: Symbol", ErrMissingBuiltin)
	}
	h.newSymbol = sym

	typeOf, err := vm.RunString("(function (v) { return typeof v; })")
	if err != nil {
		return nil, err
	}
	h.typeOf, _ = goja.AssertFunction(typeOf)
	return h, nil
}

// Runtime returns the runtime h is bound to.
func (h *Host) Runtime() *goja.Runtime { return h.vm }

// Wrap returns o as an apis.Reflectable. A nil o yields nil.
func (h *Host) Wrap(o *goja.Object) *Object {
	if o == nil {
		return nil
	}
	return &Object{host: h, obj: o}
}

// ToValue converts a Go value produced by handlers or observers back into
// a JavaScript value. nil becomes undefined, wrapped objects are
// unwrapped, symbols map to their JavaScript twins.
func (h *Host) ToValue(v any) goja.Value {
	switch v := v.(type) {
	case nil:
		return goja.Undefined()
	case *Object:
		if v == nil {
			return goja.Null()
		}
		return v.obj
	case goja.Value:
		return v
	case *apis.Symbol:
		s, err := h.jsSymbol(v)
		if err != nil {
			panic(h.vm.NewGoError(err))
		}
		return s
	default:
		return h.vm.ToValue(v)
	}
}

// fromValue converts a JavaScript value for use on the Go side: undefined
// becomes nil, everything else stays a goja.Value.
func (h *Host) fromValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	return v
}

// Key converts a JavaScript property key into an apis.Key.
func (h *Host) Key(v goja.Value) (apis.Key, error) {
	isSym, err := h.isSymbol(v)
	if err != nil {
		return apis.Key{}, err
	}
	if !isSym {
		return apis.StringKey(v.String()), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.symbols[v]; ok {
		return apis.SymbolKey(s), nil
	}
	desc := ""
	if d := v.ToObject(h.vm).Get("description"); d != nil && !goja.IsUndefined(d) {
		desc = d.String()
	}
	s := apis.NewSymbol(desc)
	h.symbols[v] = s
	h.jsSyms[s] = v
	return apis.SymbolKey(s), nil
}

// keyValue converts an apis.Key into a JavaScript property key.
func (h *Host) keyValue(k apis.Key) (goja.Value, error) {
	if !k.IsSymbol() {
		return h.vm.ToValue(k.Name()), nil
	}
	return h.jsSymbol(k.Symbol())
}

// jsSymbol returns the JavaScript symbol paired with s, creating one for
// symbols that originate on the Go side.
func (h *Host) jsSymbol(s *apis.Symbol) (goja.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.jsSyms[s]; ok {
		return v, nil
	}
	v, err := h.newSymbol(goja.Undefined(), h.vm.ToValue(s.Description()))
	if err != nil {
		return nil, err
	}
	h.jsSyms[s] = v
	h.symbols[v] = s
	return v, nil
}

func (h *Host) isSymbol(v goja.Value) (bool, error) {
	t, err := h.typeOf(goja.Undefined(), v)
	if err != nil {
		return false, err
	}
	return t.String() == "symbol", nil
}

// throw raises err as a JavaScript exception. JavaScript exceptions that
// travelled through Go are rethrown as they are.
func (h *Host) throw(err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		panic(ex)
	}
	panic(h.vm.NewGoError(err))
}
