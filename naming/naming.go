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

// Package naming derives stable, human-readable names for proxy targets,
// used to label log entries, spans and recorded calls.
package naming

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/rspy/apis"
)

// Namer lets a target choose its own entity name.
type Namer interface {
	// EntityName returns the canonical, type-level name of the entity.
	EntityName() string
}

// Unwrapper is implemented by wrappers (such as proxies) that stand in for
// another target. Entity names the innermost target.
type Unwrapper interface {
	Target() apis.Reflectable
}

// maxUnwrap bounds both pointer/container unwrapping and wrapper chains.
const maxUnwrap = 8

// typeNameCache caches resolved names by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// Entity returns a name for v: v.EntityName() when v implements Namer,
// then a name registered for its type, otherwise "pkg.Type" of the nearest
// named type. Returns "" for nil and
// for values with no named type (anonymous structs, closures, ...).
func Entity(v any) string {
	for i := 0; i < maxUnwrap && v != nil; i++ {
		if n, ok := v.(Namer); ok {
			return n.EntityName()
		}
		u, ok := v.(Unwrapper)
		if !ok {
			break
		}
		t := u.Target()
		if t == nil {
			return ""
		}
		v = t
	}
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	if name, ok := defaultRegistry.Lookup(t); ok {
		return name
	}
	return EntityType(t)
}

// EntityType returns "pkg.Type" for the nearest named type of t.
func EntityType(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	name := ""
	if base := normalize(t); base != nil {
		name = stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	}
	typeNameCache.Store(t, name)
	return name
}

// normalize unwraps ptr/slice/array/chan/map (element side) until it finds
// a named type, giving up after maxUnwrap steps.
func normalize(t reflect.Type) reflect.Type {
	for i := 0; t != nil && i < maxUnwrap; i++ {
		if t.Name() != "" {
			return t
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			t = t.Elem()
		default:
			return nil
		}
	}
	if t != nil && t.Name() != "" {
		return t
	}
	return nil
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
