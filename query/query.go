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

// Package query renders the operation descriptors handed to observers.
package query

import (
	"strconv"

	"dirpx.dev/rspy/apis"
)

// Get describes a property read of key: get("<key>").
func Get(key apis.Key, cfg apis.Config) apis.Query {
	return apis.Query{
		Op:   apis.OpGet,
		Key:  key,
		Text: "get(" + quote(key, cfg) + ")",
	}
}

// Apply describes a function call: apply().
func Apply() apis.Query {
	return apis.Query{Op: apis.OpApply, Text: "apply()"}
}

// DescriptorValue describes a read of the value of key's own data
// descriptor: getOwnPropertyDescriptor("<key>").value.
func DescriptorValue(key apis.Key, cfg apis.Config) apis.Query {
	return apis.Query{
		Op:     apis.OpGetOwnPropertyDescriptor,
		Key:    key,
		Member: apis.MemberValue,
		Text:   "getOwnPropertyDescriptor(" + quote(key, cfg) + ").value",
	}
}

// DescriptorGet describes a call of the getter of key's own accessor
// descriptor: getOwnPropertyDescriptor("<key>").get().
func DescriptorGet(key apis.Key, cfg apis.Config) apis.Query {
	return apis.Query{
		Op:     apis.OpGetOwnPropertyDescriptor,
		Key:    key,
		Member: apis.MemberGet,
		Text:   "getOwnPropertyDescriptor(" + quote(key, cfg) + ").get()",
	}
}

// GetPrototypeOf describes a prototype read: getPrototypeOf().
func GetPrototypeOf() apis.Query {
	return apis.Query{Op: apis.OpGetPrototypeOf, Text: "getPrototypeOf()"}
}

// KeyString returns the canonical string form of key under cfg.
func KeyString(key apis.Key, cfg apis.Config) string {
	if key.IsSymbol() && cfg.SymbolStyle == apis.SymbolStyleDescription {
		return key.Symbol().Description()
	}
	return key.String()
}

func quote(key apis.Key, cfg apis.Config) string {
	s := KeyString(key, cfg)
	if cfg.EscapeKeys {
		return strconv.Quote(s)
	}
	return `"` + s + `"`
}
