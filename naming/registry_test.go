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

package naming_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rspy/naming"
	"dirpx.dev/rspy/object"
	"dirpx.dev/rspy/proxy"
)

type (
	T0 struct{}
	T1 struct{}
	T2 struct{}
	T3 struct{}
	T4 struct{}
)

type ledger struct{ *object.Object }

func TestRegistry_Register(t *testing.T) {
	r := naming.NewRegistry()

	require.NoError(t, r.Register(reflect.TypeOf(T0{}), "zero"))
	require.NoError(t, r.Register(reflect.TypeOf(&T0{}), "zero"), "same name is idempotent")
	assert.ErrorIs(t, r.Register(reflect.TypeOf(T0{}), "other"), naming.ErrConflictingRegistration)
	assert.ErrorIs(t, r.Register(nil, "x"), naming.ErrNilType)
	assert.ErrorIs(t, r.Register(reflect.TypeOf(T1{}), ""), naming.ErrEmptyName)
	assert.ErrorIs(t, r.Register(reflect.TypeOf(struct{}{}), "anon"), naming.ErrNotNamed)

	name, ok := r.Lookup(reflect.TypeOf([]*T0{}))
	assert.True(t, ok)
	assert.Equal(t, "zero", name)
	_, ok = r.Lookup(reflect.TypeOf(T1{}))
	assert.False(t, ok)
	_, ok = r.Lookup(nil)
	assert.False(t, ok)

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []naming.Entry{{Type: reflect.TypeOf(T0{}), Name: "zero"}}, r.Entries())

	r.Reset()
	assert.Zero(t, r.Count())
	assert.Empty(t, r.Entries())
}

func TestEntity_PrefersRegisteredName(t *testing.T) {
	t.Cleanup(naming.Default().Reset)
	require.NoError(t, naming.Register(reflect.TypeOf(ledger{}), "bank.ledger"))

	target := ledger{object.New(nil)}
	assert.Equal(t, "bank.ledger", naming.Entity(target))
	assert.Equal(t, "bank.ledger", naming.Entity(proxy.New(target, nil)))
}

// TestRegistry_Concurrent verifies that Register, Lookup, Entries and Count
// are race-free and consistent under concurrent use.
func TestRegistry_Concurrent(t *testing.T) {
	r := naming.NewRegistry()
	types := []reflect.Type{
		reflect.TypeOf(T0{}), reflect.TypeOf(T1{}), reflect.TypeOf(T2{}),
		reflect.TypeOf(T3{}), reflect.TypeOf(T4{}),
	}
	names := []string{"t0", "t1", "t2", "t3", "t4"}
	for i, tt := range types {
		require.NoError(t, r.Register(tt, names[i]))
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := types[i%len(types)]
				if got, ok := r.Lookup(tt); !ok || got == "" {
					t.Errorf("lookup failed for %v: ok=%v got=%q", tt, ok, got)
					return
				}
				_ = r.Count()
				_ = r.Entries()
			}
		}()
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				j := (i + id) % len(types)
				if err := r.Register(types[j], names[j]); err != nil {
					t.Errorf("re-register %v: %v", types[j], err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	assert.Equal(t, len(types), r.Count())
	got := map[reflect.Type]string{}
	for _, e := range r.Entries() {
		got[e.Type] = e.Name
	}
	for i, tt := range types {
		assert.Equal(t, names[i], got[tt])
	}
}
