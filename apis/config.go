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

// SymbolStyle selects how symbol keys are rendered inside a Query.
type SymbolStyle uint8

const (
	// SymbolStyleDisplay renders symbols by display name: Symbol(desc).
	SymbolStyleDisplay SymbolStyle = iota
	// SymbolStyleDescription renders symbols by bare description: desc.
	SymbolStyleDescription
)

// Config carries read-only formatting knobs for operation queries.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// SymbolStyle controls how symbol keys are rendered.
	SymbolStyle SymbolStyle

	// EscapeKeys renders keys with Go quoting rules instead of placing the
	// raw key between double quotes. Keys containing quotes or control
	// characters then stay unambiguous.
	EscapeKeys bool
}
