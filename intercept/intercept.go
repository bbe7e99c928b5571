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

// Package intercept builds handlers that let an observer watch, and
// optionally override, the four instrumented reflective operations:
// property read, call, own-descriptor read and prototype read.
//
// The handler produced by New is a copy of the base handler with those four
// traps replaced. Every other trap of the base passes through untouched.
// Each instrumented trap computes the would-be result lazily (the base trap
// if present, the default otherwise) and hands it to the observer, whose
// return value becomes the result of the operation. Because the would-be
// result of a wrapped handler is the observed result of the handler below
// it, interception layers compose.
package intercept

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/config"
	"dirpx.dev/rspy/dispatch"
	"dirpx.dev/rspy/lazy"
	"dirpx.dev/rspy/query"
)

// ErrResultType is returned when an observer yields a value whose type does
// not fit the operation, e.g. a non-Reflectable prototype.
var ErrResultType = errors.New("rspy(intercept): observer result has wrong type")

// Option configures New.
type Option func(*options)

type options struct {
	cfg      apis.Config
	logger   *zap.Logger
	defaults *apis.Handler
}

// WithConfig sets the formatting configuration for queries.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger used for debug tracing of interceptions.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithDefaults replaces the default behavior table consulted when the base
// handler lacks a trap. Nil traps in defaults fall back to dispatch.Defaults.
func WithDefaults(defaults *apis.Handler) Option {
	return func(o *options) { o.defaults = dispatch.Resolve(defaults, nil) }
}

// New returns a handler that reports every instrumented operation to
// observer. base may be nil.
//
// observer is not validated: a nil observer panics on first use.
func New(observer apis.Observer, base *apis.Handler, opts ...Option) *apis.Handler {
	o := options{
		cfg:      config.DefaultConfig(),
		logger:   zap.NewNop(),
		defaults: dispatch.Defaults(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	i := &interceptor{
		observer: observer,
		base:     dispatch.Resolve(base, o.defaults),
		cfg:      o.cfg,
		log:      o.logger,
	}

	h := base.Clone()
	h.Get = i.get
	h.Apply = i.apply
	h.GetOwnPropertyDescriptor = i.getOwnPropertyDescriptor
	h.GetPrototypeOf = i.getPrototypeOf
	return h
}

// interceptor holds the state shared by the traps of one handler. It is
// immutable after New.
type interceptor struct {
	observer apis.Observer
	// base has every trap resolved: the caller's trap if given, the default
	// otherwise.
	base *apis.Handler
	cfg  apis.Config
	log  *zap.Logger
}

func (i *interceptor) get(target apis.Reflectable, key apis.Key, receiver any) (any, error) {
	q := query.Get(key, i.cfg)
	return i.observe(target, q, func() (any, error) {
		return i.base.Get(target, key, receiver)
	})
}

func (i *interceptor) apply(target apis.Reflectable, this any, args []any) (any, error) {
	q := query.Apply()
	return i.observe(target, q, func() (any, error) {
		return i.base.Apply(target, this, args)
	})
}

func (i *interceptor) getPrototypeOf(target apis.Reflectable) (apis.Reflectable, error) {
	q := query.GetPrototypeOf()
	v, err := i.observe(target, q, func() (any, error) {
		p, err := i.base.GetPrototypeOf(target)
		if p == nil {
			// Avoid handing the observer a typed nil wrapped in any.
			return nil, err
		}
		return p, err
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	p, ok := v.(apis.Reflectable)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %T", ErrResultType, q, v)
	}
	return p, nil
}

// getOwnPropertyDescriptor resolves the raw descriptor right away: its
// shape decides which member gets instrumented. Reading the member is what
// the observer sees, each read in a cycle of its own.
func (i *interceptor) getOwnPropertyDescriptor(target apis.Reflectable, key apis.Key) (*apis.PropertyDescriptor, error) {
	d, err := i.base.GetOwnPropertyDescriptor(target, key)
	if err != nil {
		return nil, err
	}

	switch {
	case d == nil:
		return nil, nil

	case d.Value != nil:
		stored := d.Value
		out := d.Clone()
		out.Value = func() (any, error) {
			return i.observe(target, query.DescriptorValue(key, i.cfg), stored)
		}
		return out, nil

	case d.Get != nil:
		getter := d.Get
		out := d.Clone()
		out.Get = func(this any) (any, error) {
			return i.observe(target, query.DescriptorGet(key, i.cfg), func() (any, error) {
				return getter(this)
			})
		}
		return out, nil

	default:
		// Setter-only accessor: nothing readable to instrument.
		return d, nil
	}
}

// observe runs one observer cycle with a fresh, memoized deferred.
func (i *interceptor) observe(target apis.Reflectable, q apis.Query, compute func() (any, error)) (any, error) {
	if ce := i.log.Check(zap.DebugLevel, "intercepted operation"); ce != nil {
		ce.Write(
			zap.Stringer("query", q),
			zap.Stringer("op", q.Op),
			zap.String("target", fmt.Sprintf("%T", target)),
		)
	}
	return i.observer(target, q, lazy.New(compute))
}
