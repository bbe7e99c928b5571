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

// Package proxy is the meta-object mechanism for Go targets: a Proxy
// routes every reflective operation through a handler trap, falling back
// to the default behavior when the handler leaves the trap nil.
package proxy

import (
	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/dispatch"
)

// Proxy stands in for a target. It implements the full capability set so
// it can itself be the target of another proxy.
type Proxy struct {
	target   apis.Reflectable
	handler  *apis.Handler
	resolved *apis.Handler
}

// Ensure Proxy implements the full capability set.
var (
	_ apis.Reflectable = (*Proxy)(nil)
	_ apis.Mutable     = (*Proxy)(nil)
	_ apis.Enumerable  = (*Proxy)(nil)
	_ apis.Extensible  = (*Proxy)(nil)
)

// New returns a proxy for target governed by handler. A nil handler makes
// the proxy fully transparent.
func New(target apis.Reflectable, handler *apis.Handler) *Proxy {
	return &Proxy{
		target:   target,
		handler:  handler,
		resolved: dispatch.Resolve(handler, nil),
	}
}

// Target returns the proxied target.
func (p *Proxy) Target() apis.Reflectable { return p.target }

// Handler returns the handler the proxy was created with.
func (p *Proxy) Handler() *apis.Handler { return p.handler }

// GetProperty implements apis.Reflectable. A nil receiver means the proxy.
func (p *Proxy) GetProperty(key apis.Key, receiver any) (any, error) {
	if receiver == nil {
		receiver = p
	}
	return p.resolved.Get(p.target, key, receiver)
}

// Invoke implements apis.Reflectable.
func (p *Proxy) Invoke(this any, args []any) (any, error) {
	return p.resolved.Apply(p.target, this, args)
}

// GetOwnPropertyDescriptor implements apis.Reflectable.
func (p *Proxy) GetOwnPropertyDescriptor(key apis.Key) (*apis.PropertyDescriptor, error) {
	return p.resolved.GetOwnPropertyDescriptor(p.target, key)
}

// GetPrototype implements apis.Reflectable.
func (p *Proxy) GetPrototype() (apis.Reflectable, error) {
	return p.resolved.GetPrototypeOf(p.target)
}

// SetProperty implements apis.Mutable. A nil receiver means the proxy.
func (p *Proxy) SetProperty(key apis.Key, value any, receiver any) (bool, error) {
	if receiver == nil {
		receiver = p
	}
	return p.resolved.Set(p.target, key, value, receiver)
}

// DeleteProperty implements apis.Mutable.
func (p *Proxy) DeleteProperty(key apis.Key) (bool, error) {
	return p.resolved.DeleteProperty(p.target, key)
}

// DefineProperty implements apis.Mutable.
func (p *Proxy) DefineProperty(key apis.Key, desc apis.PropertyDescriptor) (bool, error) {
	return p.resolved.DefineProperty(p.target, key, desc)
}

// HasProperty implements apis.Enumerable.
func (p *Proxy) HasProperty(key apis.Key) (bool, error) {
	return p.resolved.Has(p.target, key)
}

// OwnKeys implements apis.Enumerable.
func (p *Proxy) OwnKeys() ([]apis.Key, error) {
	return p.resolved.OwnKeys(p.target)
}

// SetPrototype implements apis.Extensible.
func (p *Proxy) SetPrototype(proto apis.Reflectable) (bool, error) {
	return p.resolved.SetPrototypeOf(p.target, proto)
}

// IsExtensible implements apis.Extensible.
func (p *Proxy) IsExtensible() (bool, error) {
	return p.resolved.IsExtensible(p.target)
}

// PreventExtensions implements apis.Extensible.
func (p *Proxy) PreventExtensions() (bool, error) {
	return p.resolved.PreventExtensions(p.target)
}
