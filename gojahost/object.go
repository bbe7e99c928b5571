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
	"github.com/dop251/goja"

	"dirpx.dev/rspy/apis"
)

// Object is a JavaScript object seen through apis.Reflectable. Every
// primitive forwards to the runtime's Reflect builtins.
type Object struct {
	host *Host
	obj  *goja.Object
}

// Ensure Object implements apis.Reflectable.
var _ apis.Reflectable = (*Object)(nil)

// Unwrap returns the underlying JavaScript object.
func (o *Object) Unwrap() *goja.Object { return o.obj }

// GetProperty implements apis.Reflectable via Reflect.get. A nil receiver
// means the object itself. Undefined results come back as nil.
func (o *Object) GetProperty(key apis.Key, receiver any) (any, error) {
	k, err := o.host.keyValue(key)
	if err != nil {
		return nil, err
	}
	recv := goja.Value(o.obj)
	if receiver != nil {
		recv = o.host.ToValue(receiver)
	}
	v, err := o.host.reflect.get(goja.Undefined(), o.obj, k, recv)
	if err != nil {
		return nil, err
	}
	return o.host.fromValue(v), nil
}

// Invoke implements apis.Reflectable.
func (o *Object) Invoke(this any, args []any) (any, error) {
	fn, ok := goja.AssertFunction(o.obj)
	if !ok {
		return nil, ErrNotFunction
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = o.host.ToValue(a)
	}
	v, err := fn(o.host.ToValue(this), vals...)
	if err != nil {
		return nil, err
	}
	return o.host.fromValue(v), nil
}

// GetOwnPropertyDescriptor implements apis.Reflectable via
// Reflect.getOwnPropertyDescriptor.
func (o *Object) GetOwnPropertyDescriptor(key apis.Key) (*apis.PropertyDescriptor, error) {
	k, err := o.host.keyValue(key)
	if err != nil {
		return nil, err
	}
	v, err := o.host.reflect.getOwnPropertyDescriptor(goja.Undefined(), o.obj, k)
	if err != nil {
		return nil, err
	}
	if goja.IsUndefined(v) {
		return nil, nil
	}
	return o.host.descriptorFromJS(v.ToObject(o.host.vm)), nil
}

// GetPrototype implements apis.Reflectable via Reflect.getPrototypeOf.
func (o *Object) GetPrototype() (apis.Reflectable, error) {
	v, err := o.host.reflect.getPrototypeOf(goja.Undefined(), o.obj)
	if err != nil {
		return nil, err
	}
	if goja.IsNull(v) || goja.IsUndefined(v) {
		return nil, nil
	}
	return o.host.Wrap(v.ToObject(o.host.vm)), nil
}

// descriptorFromJS converts a JavaScript descriptor object. A present
// "value" makes it a data descriptor.
func (h *Host) descriptorFromJS(d *goja.Object) *apis.PropertyDescriptor {
	out := &apis.PropertyDescriptor{
		Writable:     h.flag(d, "writable"),
		Enumerable:   h.flag(d, "enumerable"),
		Configurable: h.flag(d, "configurable"),
	}
	if v := d.Get("value"); v != nil {
		stored := h.fromValue(v)
		out.Value = func() (any, error) { return stored, nil }
		return out
	}
	if fn, ok := goja.AssertFunction(d.Get("get")); ok {
		out.Get = func(this any) (any, error) {
			v, err := fn(h.ToValue(this))
			if err != nil {
				return nil, err
			}
			return h.fromValue(v), nil
		}
	}
	if fn, ok := goja.AssertFunction(d.Get("set")); ok {
		out.Set = func(this any, value any) error {
			_, err := fn(h.ToValue(this), h.ToValue(value))
			return err
		}
	}
	return out
}

// descriptorToJS builds the JavaScript descriptor object handed back from
// a getOwnPropertyDescriptor trap. A data descriptor's "value" is an
// accessor, so reading it runs d.Value at that moment; "get" calls d.Get.
func (h *Host) descriptorToJS(d *apis.PropertyDescriptor) *goja.Object {
	vm := h.vm
	out := vm.NewObject()
	_ = out.Set("enumerable", d.Enumerable)
	_ = out.Set("configurable", d.Configurable)

	if d.Value != nil {
		read := d.Value
		getter := vm.ToValue(func(goja.FunctionCall) goja.Value {
			v, err := read()
			if err != nil {
				h.throw(err)
			}
			return h.ToValue(v)
		})
		_ = out.DefineAccessorProperty("value", getter, nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
		_ = out.Set("writable", d.Writable)
		return out
	}
	if d.Get != nil {
		get := d.Get
		_ = out.Set("get", func(call goja.FunctionCall) goja.Value {
			v, err := get(h.fromValue(call.This))
			if err != nil {
				h.throw(err)
			}
			return h.ToValue(v)
		})
	}
	if d.Set != nil {
		set := d.Set
		_ = out.Set("set", func(call goja.FunctionCall) goja.Value {
			if err := set(h.fromValue(call.This), h.fromValue(call.Argument(0))); err != nil {
				h.throw(err)
			}
			return goja.Undefined()
		})
	}
	return out
}

func (h *Host) flag(d *goja.Object, name string) bool {
	v := d.Get(name)
	return v != nil && v.ToBoolean()
}
