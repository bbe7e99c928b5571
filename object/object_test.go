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

package object_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/object"
)

var (
	keyA = apis.StringKey("a")
	keyB = apis.StringKey("b")
)

func TestGetProperty_OwnAndInherited(t *testing.T) {
	proto := object.New(nil).Put(apis.StringKey("foo"), "bar")
	o := object.New(proto).Put(keyA, 42)

	v, err := o.GetProperty(keyA, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = o.GetProperty(apis.StringKey("foo"), nil)
	require.NoError(t, err)
	assert.Equal(t, "bar", v)

	v, err = o.GetProperty(apis.StringKey("missing"), nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGetProperty_GetterSeesReceiver(t *testing.T) {
	var seen any
	proto := object.New(nil).PutAccessor(keyB, func(this any) (any, error) {
		seen = this
		return 10, nil
	}, nil)
	o := object.New(proto)

	v, err := o.GetProperty(keyB, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Same(t, o, seen)

	other := object.New(nil)
	_, err = o.GetProperty(keyB, other)
	require.NoError(t, err)
	assert.Same(t, other, seen)
}

func TestInvoke(t *testing.T) {
	f := object.Func(func(this any, args []any) (any, error) {
		return len(args), nil
	})
	v, err := f.Invoke(nil, []any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = object.New(nil).Invoke(nil, nil)
	assert.ErrorIs(t, err, object.ErrNotCallable)
}

func TestGetOwnPropertyDescriptor(t *testing.T) {
	o := object.New(nil).
		Put(keyA, 42).
		PutAccessor(keyB, func(any) (any, error) { return 10, nil }, nil)

	da, err := o.GetOwnPropertyDescriptor(keyA)
	require.NoError(t, err)
	require.True(t, da.IsData())
	v, err := da.Value()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, da.Writable)

	db, err := o.GetOwnPropertyDescriptor(keyB)
	require.NoError(t, err)
	require.True(t, db.IsAccessor())
	v, err = db.Get(o)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	none, err := o.GetOwnPropertyDescriptor(apis.StringKey("zzz"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSetProperty(t *testing.T) {
	o := object.New(nil).Put(keyA, 1)

	ok, err := o.SetProperty(keyA, 2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	v, _ := o.GetProperty(keyA, nil)
	assert.Equal(t, 2, v)

	ok, err = o.SetProperty(keyB, 3, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	keys, _ := o.OwnKeys()
	assert.Equal(t, []apis.Key{keyA, keyB}, keys)
}

func TestSetProperty_InheritedSetter(t *testing.T) {
	var got any
	proto := object.New(nil).PutAccessor(keyA, nil, func(this any, v any) error {
		got = v
		return nil
	})
	o := object.New(proto)

	ok, err := o.SetProperty(keyA, "x", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	own, _ := o.GetOwnPropertyDescriptor(keyA)
	assert.Nil(t, own)
}

func TestSetProperty_SetterError(t *testing.T) {
	boom := errors.New("boom")
	o := object.New(nil).PutAccessor(keyA, nil, func(any, any) error { return boom })
	_, err := o.SetProperty(keyA, 1, nil)
	assert.ErrorIs(t, err, boom)
}

func TestDefineAndDelete(t *testing.T) {
	o := object.New(nil)
	ok, err := o.DefineProperty(keyA, apis.PropertyDescriptor{
		Value: func() (any, error) { return 7, nil },
	})
	require.NoError(t, err)
	assert.True(t, ok)

	// Not configurable: neither redefine nor delete.
	ok, err = o.DefineProperty(keyA, *apis.NewDataDescriptor(8))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = o.DeleteProperty(keyA)
	require.NoError(t, err)
	assert.False(t, ok)

	// Not writable either.
	ok, err = o.SetProperty(keyA, 9, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	o.Put(keyB, 1)
	ok, err = o.DeleteProperty(keyB)
	require.NoError(t, err)
	assert.True(t, ok)
	has, _ := o.HasProperty(keyB)
	assert.False(t, has)
}

func TestOwnKeys_StringsBeforeSymbols(t *testing.T) {
	sym := apis.SymbolKey(apis.NewSymbol("s"))
	o := object.New(nil).Put(sym, 1).Put(keyB, 2).Put(keyA, 3)

	keys, err := o.OwnKeys()
	require.NoError(t, err)
	assert.Equal(t, []apis.Key{keyB, keyA, sym}, keys)
}

func TestFromMap_SortedKeys(t *testing.T) {
	o := object.FromMap(map[string]any{"b": 41, "a": 42})
	keys, err := o.OwnKeys()
	require.NoError(t, err)
	assert.Equal(t, []apis.Key{keyA, keyB}, keys)
}

func TestExtensibility(t *testing.T) {
	o := object.New(nil)
	ok, err := o.PreventExtensions()
	require.NoError(t, err)
	assert.True(t, ok)

	ext, _ := o.IsExtensible()
	assert.False(t, ext)

	ok, err = o.SetProperty(keyA, 1, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = o.DefineProperty(keyA, *apis.NewDataDescriptor(1))
	assert.ErrorIs(t, err, object.ErrNotExtensible)
}

func TestSetPrototype_RejectsCycle(t *testing.T) {
	a := object.New(nil)
	b := object.New(a)

	_, err := a.SetPrototype(b)
	assert.ErrorIs(t, err, object.ErrPrototypeCycle)

	ok, err := a.SetPrototype(object.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasProperty_WalksChain(t *testing.T) {
	proto := object.New(nil).Put(keyA, 1)
	o := object.New(proto)

	has, err := o.HasProperty(keyA)
	require.NoError(t, err)
	assert.True(t, has)
}
