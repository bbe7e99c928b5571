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

package apis

// Symbol is a unique, non-string property identifier. Two symbols are the
// same key only if they are the same pointer, regardless of description.
type Symbol struct {
	description string
}

// NewSymbol returns a fresh symbol carrying desc as its description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{description: desc}
}

// Description returns the description the symbol was created with.
func (s *Symbol) Description() string {
	if s == nil {
		return ""
	}
	return s.description
}

// String returns the display name of the symbol, e.g. "Symbol(iterator)".
func (s *Symbol) String() string {
	return "Symbol(" + s.Description() + ")"
}

// Key identifies a property. It is either a string name or a symbol.
// Key is comparable and can be used as a map key.
type Key struct {
	name string
	sym  *Symbol
}

// StringKey returns a Key for the property called name.
func StringKey(name string) Key {
	return Key{name: name}
}

// SymbolKey returns a Key for the symbol s.
func SymbolKey(s *Symbol) Key {
	return Key{sym: s}
}

// IsSymbol reports whether k is symbol-keyed.
func (k Key) IsSymbol() bool { return k.sym != nil }

// Name returns the string name of k, or "" for symbol keys.
func (k Key) Name() string { return k.name }

// Symbol returns the symbol of k, or nil for string keys.
func (k Key) Symbol() *Symbol { return k.sym }

// String returns the display form of k: the name itself for string keys
// and the symbol's display name for symbol keys.
func (k Key) String() string {
	if k.sym != nil {
		return k.sym.String()
	}
	return k.name
}
