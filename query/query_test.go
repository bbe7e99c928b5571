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

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/config"
	"dirpx.dev/rspy/query"
)

func TestQueryText(t *testing.T) {
	cfg := config.DefaultConfig()
	a := apis.StringKey("a")

	tests := []struct {
		name string
		q    apis.Query
		want string
		op   apis.Operation
	}{
		{"get", query.Get(a, cfg), `get("a")`, apis.OpGet},
		{"apply", query.Apply(), `apply()`, apis.OpApply},
		{"descriptor value", query.DescriptorValue(a, cfg), `getOwnPropertyDescriptor("a").value`, apis.OpGetOwnPropertyDescriptor},
		{"descriptor get", query.DescriptorGet(a, cfg), `getOwnPropertyDescriptor("a").get()`, apis.OpGetOwnPropertyDescriptor},
		{"prototype", query.GetPrototypeOf(), `getPrototypeOf()`, apis.OpGetPrototypeOf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())
			assert.Equal(t, tt.op, tt.q.Op)
		})
	}
}

func TestQueryMember(t *testing.T) {
	cfg := config.DefaultConfig()
	k := apis.StringKey("b")

	assert.Equal(t, apis.MemberNone, query.Get(k, cfg).Member)
	assert.Equal(t, apis.MemberValue, query.DescriptorValue(k, cfg).Member)
	assert.Equal(t, apis.MemberGet, query.DescriptorGet(k, cfg).Member)
	assert.Equal(t, k, query.DescriptorGet(k, cfg).Key)
}

func TestSymbolKeys(t *testing.T) {
	sym := apis.NewSymbol("secret")
	k := apis.SymbolKey(sym)

	display := query.Get(k, config.DefaultConfig())
	assert.Equal(t, `get("Symbol(secret)")`, display.String())

	desc := query.Get(k, config.NewConfig(config.WithSymbolStyle(apis.SymbolStyleDescription)))
	assert.Equal(t, `get("secret")`, desc.String())

	assert.Equal(t, `getOwnPropertyDescriptor("Symbol(secret)").value`,
		query.DescriptorValue(k, config.DefaultConfig()).String())
}

func TestSymbolWithoutDescription(t *testing.T) {
	k := apis.SymbolKey(apis.NewSymbol(""))
	assert.Equal(t, `get("Symbol()")`, query.Get(k, config.DefaultConfig()).String())
}

func TestEscapeKeys(t *testing.T) {
	k := apis.StringKey(`say "hi"`)

	raw := query.Get(k, config.DefaultConfig())
	assert.Equal(t, `get("say "hi"")`, raw.String())

	escaped := query.Get(k, config.NewConfig(config.WithEscapeKeys(true)))
	assert.Equal(t, `get("say \"hi\"")`, escaped.String())
}

func TestEmptyKey(t *testing.T) {
	assert.Equal(t, `get("")`, query.Get(apis.StringKey(""), config.DefaultConfig()).String())
}
