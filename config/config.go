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

package config

import (
	"dirpx.dev/rspy/apis"
)

const (
	// DefaultSymbolStyle represents the default for SymbolStyle.
	// Symbols render by display name, e.g. Symbol(iterator).
	DefaultSymbolStyle = apis.SymbolStyleDisplay
	// DefaultEscapeKeys represents the default for EscapeKeys.
	// When false, keys are placed between double quotes verbatim.
	DefaultEscapeKeys = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure SymbolStyle is a known style.
	if cfg.SymbolStyle > apis.SymbolStyleDescription {
		cfg.SymbolStyle = DefaultSymbolStyle
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		SymbolStyle: DefaultSymbolStyle,
		EscapeKeys:  DefaultEscapeKeys,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithSymbolStyle sets the SymbolStyle option.
func WithSymbolStyle(style apis.SymbolStyle) Option {
	return func(c *apis.Config) {
		c.SymbolStyle = style
	}
}

// WithEscapeKeys sets the EscapeKeys option.
func WithEscapeKeys(escape bool) Option {
	return func(c *apis.Config) {
		c.EscapeKeys = escape
	}
}
