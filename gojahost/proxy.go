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

package gojahost

import (
	"strconv"

	"github.com/dop251/goja"

	"dirpx.dev/rspy/apis"
)

// NewProxy creates a JavaScript Proxy for target whose traps are the
// non-nil traps of handler. Traps left nil keep the runtime's default
// behavior. The target handed to every trap is the same wrapped Object.
func (h *Host) NewProxy(target *goja.Object, handler *apis.Handler) (*goja.Object, error) {
	if handler == nil {
		handler = &apis.Handler{}
	}
	t := h.Wrap(target)
	traps := h.vm.NewObject()

	set := func(name string, fn func(call goja.FunctionCall) goja.Value) {
		_ = traps.Set(name, fn)
	}

	if handler.Get != nil {
		set("get", func(call goja.FunctionCall) goja.Value {
			key := h.mustKey(call.Argument(1))
			v, err := handler.Get(t, key, h.fromValue(call.Argument(2)))
			if err != nil {
				h.throw(err)
			}
			return h.ToValue(v)
		})
	}
	if handler.Apply != nil {
		set("apply", func(call goja.FunctionCall) goja.Value {
			v, err := handler.Apply(t, h.fromValue(call.Argument(1)), h.arguments(call.Argument(2)))
			if err != nil {
				h.throw(err)
			}
			return h.ToValue(v)
		})
	}
	if handler.GetOwnPropertyDescriptor != nil {
		set("getOwnPropertyDescriptor", func(call goja.FunctionCall) goja.Value {
			key := h.mustKey(call.Argument(1))
			d, err := handler.GetOwnPropertyDescriptor(t, key)
			if err != nil {
				h.throw(err)
			}
			if d == nil {
				return goja.Undefined()
			}
			return h.descriptorToJS(d)
		})
	}
	if handler.GetPrototypeOf != nil {
		set("getPrototypeOf", func(call goja.FunctionCall) goja.Value {
			p, err := handler.GetPrototypeOf(t)
			if err != nil {
				h.throw(err)
			}
			if p == nil {
				return goja.Null()
			}
			return h.ToValue(p)
		})
	}
	if handler.Set != nil {
		set("set", func(call goja.FunctionCall) goja.Value {
			key := h.mustKey(call.Argument(1))
			ok, err := handler.Set(t, key, h.fromValue(call.Argument(2)), h.fromValue(call.Argument(3)))
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.Has != nil {
		set("has", func(call goja.FunctionCall) goja.Value {
			ok, err := handler.Has(t, h.mustKey(call.Argument(1)))
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.DeleteProperty != nil {
		set("deleteProperty", func(call goja.FunctionCall) goja.Value {
			ok, err := handler.DeleteProperty(t, h.mustKey(call.Argument(1)))
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.DefineProperty != nil {
		set("defineProperty", func(call goja.FunctionCall) goja.Value {
			key := h.mustKey(call.Argument(1))
			d := h.descriptorFromJS(call.Argument(2).ToObject(h.vm))
			ok, err := handler.DefineProperty(t, key, *d)
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.OwnKeys != nil {
		set("ownKeys", func(call goja.FunctionCall) goja.Value {
			keys, err := handler.OwnKeys(t)
			if err != nil {
				h.throw(err)
			}
			items := make([]interface{}, len(keys))
			for i, k := range keys {
				v, err := h.keyValue(k)
				if err != nil {
					h.throw(err)
				}
				items[i] = v
			}
			return h.vm.NewArray(items...)
		})
	}
	if handler.SetPrototypeOf != nil {
		set("setPrototypeOf", func(call goja.FunctionCall) goja.Value {
			var proto apis.Reflectable
			if p := call.Argument(1); !goja.IsNull(p) && !goja.IsUndefined(p) {
				proto = h.Wrap(p.ToObject(h.vm))
			}
			ok, err := handler.SetPrototypeOf(t, proto)
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.IsExtensible != nil {
		set("isExtensible", func(call goja.FunctionCall) goja.Value {
			ok, err := handler.IsExtensible(t)
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}
	if handler.PreventExtensions != nil {
		set("preventExtensions", func(call goja.FunctionCall) goja.Value {
			ok, err := handler.PreventExtensions(t)
			if err != nil {
				h.throw(err)
			}
			return h.vm.ToValue(ok)
		})
	}

	return h.vm.New(h.proxyCtor, target, traps)
}

func (h *Host) mustKey(v goja.Value) apis.Key {
	k, err := h.Key(v)
	if err != nil {
		h.throw(err)
	}
	return k
}

// arguments unpacks the argumentsList of an apply trap.
func (h *Host) arguments(list goja.Value) []any {
	if list == nil || goja.IsUndefined(list) || goja.IsNull(list) {
		return nil
	}
	obj := list.ToObject(h.vm)
	n := int(obj.Get("length").ToInteger())
	args := make([]any, n)
	for i := 0; i < n; i++ {
		args[i] = h.fromValue(obj.Get(strconv.Itoa(i)))
	}
	return args
}
