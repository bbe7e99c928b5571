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

// Package rspy is an observation layer for reflective operations.
//
// Given any target, rspy produces a proxy that behaves exactly like the
// target for every operation, except that four of them are reported to an
// observer that may inspect, and optionally replace, their result:
//
//   - reading a property                  get("<key>")
//   - calling the target as a function    apply()
//   - reading through an own descriptor   getOwnPropertyDescriptor("<key>").value
//     or calling its getter               getOwnPropertyDescriptor("<key>").get()
//   - reading the prototype               getPrototypeOf()
//
// # Design
//
// Go has no built-in object interception, so the host meta-object protocol
// is an explicit contract, apis.Reflectable, implemented by targets
// (object.Object for in-memory targets, gojahost.Object for JavaScript
// values). A proxy.Proxy routes every operation through an apis.Handler,
// a struct of optional traps; nil traps fall back to the defaults in
// package dispatch.
//
// The interception factory, intercept.New, turns an observer and an
// optional base handler into a handler:
//
//	h := intercept.New(observer, base)
//	p := proxy.New(target, h)
//
// For each instrumented operation the handler builds a query and a
// deferred computation of what the base handler (or the default) would
// return, then calls
//
//	observer(target, query, deferred)
//
// and returns whatever the observer returns. The deferred result is only
// computed if the observer calls it, and at most once.
//
// # Composition
//
// Every trap the base handler defines besides the four instrumented ones
// is copied to the result unchanged. The four instrumented traps wrap the
// base's version, so wrapping an intercepting handler with another one
// makes the outer observer see the inner observer's result:
//
//	inner := intercept.New(o1, nil)
//	outer := intercept.New(o2, inner) // o2's deferred yields o1's answer
//
// # Descriptors
//
// A descriptor query resolves the raw descriptor immediately, since its
// shape decides what can be instrumented, but defers the interesting part:
// the returned descriptor's Value (or Get) runs a fresh observer cycle on
// every read. Missing properties and setter-only accessors come back
// unmodified.
//
// # Global API
//
// The package keeps a lock-free snapshot of the configuration and logger
// used by the convenience helpers:
//
//	p := rspy.Wrap(target, observer, nil)
//	rspy.SetConfig(config.NewConfig(config.WithSymbolStyle(apis.SymbolStyleDescription)))
//	rspy.SetLogger(logger)
//
// # Concurrency model
//
// The core keeps no state between operations: each one builds a fresh
// query and deferred. A proxy is as safe for concurrent use as its target,
// base handler and observer are.
package rspy
