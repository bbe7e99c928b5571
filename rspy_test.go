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

package rspy

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/config"
	"dirpx.dev/rspy/object"
	"dirpx.dev/rspy/observe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// restore puts the global state back after a test that changes it.
func restore(tb testing.TB) {
	tb.Helper()
	cfg, log := Config(), Logger()
	tb.Cleanup(func() {
		SetConfig(cfg)
		SetLogger(log)
	})
}

func TestWrap_OverridesAndRecords(t *testing.T) {
	target := object.FromMap(map[string]any{"a": 42, "b": 41})
	rec := observe.NewRecorder(func(_ apis.Query, v any) (any, error) {
		if v == 41 {
			return 21, nil
		}
		return v, nil
	})
	spy := Wrap(target, rec.Observe, nil)

	a, err := spy.GetProperty(apis.StringKey("a"), nil)
	require.NoError(t, err)
	assert.Equal(t, 42, a)
	b, err := spy.GetProperty(apis.StringKey("b"), nil)
	require.NoError(t, err)
	assert.Equal(t, 21, b)

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Same(t, target, calls[0].Target)
	assert.Equal(t, `get("a")`, calls[0].Query.String())
	assert.Equal(t, `get("b")`, calls[1].Query.String())
	assert.Equal(t, 41, calls[1].Result)
}

func TestWrap_Apply(t *testing.T) {
	fn := object.Func(func(any, []any) (any, error) { return 42, nil })
	rec := observe.NewRecorder(func(apis.Query, any) (any, error) { return 41, nil })

	v, err := Wrap(fn, rec.Observe, nil).Invoke(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 41, v)
	require.Equal(t, 1, rec.Len())
	assert.Equal(t, "apply()", rec.Calls()[0].Query.String())
	assert.Equal(t, 42, rec.Calls()[0].Result)
}

func TestHandler_UsesGlobalConfig(t *testing.T) {
	restore(t)
	SetConfig(config.NewConfig(config.WithEscapeKeys(true)))

	rec := observe.NewRecorder(nil)
	spy := Wrap(object.New(nil), rec.Observe, nil)
	_, err := spy.GetProperty(apis.StringKey(`say "hi"`), nil)
	require.NoError(t, err)
	assert.Equal(t, `get("say \"hi\"")`, rec.Calls()[0].Query.String())

	// Handlers built before a change keep their configuration.
	SetConfig(config.DefaultConfig())
	_, err = spy.GetProperty(apis.StringKey(`x"y`), nil)
	require.NoError(t, err)
	assert.Equal(t, `get("x\"y")`, rec.Calls()[1].Query.String())

	rec.Reset()
	_, err = Wrap(object.New(nil), rec.Observe, nil).GetProperty(apis.StringKey(`x"y`), nil)
	require.NoError(t, err)
	assert.Equal(t, `get("x"y")`, rec.Calls()[0].Query.String())
}

func TestHandler_UsesGlobalLogger(t *testing.T) {
	restore(t)
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	spy := Wrap(object.FromMap(map[string]any{"a": 1}), observe.Passthrough, nil)
	_, err := spy.GetProperty(apis.StringKey("a"), nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("intercepted operation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, `get("a")`, entries[0].ContextMap()["query"])
}

func TestSetLogger_NilDisables(t *testing.T) {
	restore(t)
	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Core().Enabled(zap.DebugLevel))
}

func TestSetConfig_Snapshot(t *testing.T) {
	restore(t)
	cfg := config.NewConfig(config.WithSymbolStyle(apis.SymbolStyleDescription))
	SetConfig(cfg)
	assert.Equal(t, cfg, Config())

	// Setting the logger keeps the configuration.
	SetLogger(zap.NewNop())
	assert.Equal(t, cfg, Config())
}

// TestConcurrentWrapAndSet checks that building and using proxies races
// cleanly with global setters.
func TestConcurrentWrapAndSet(t *testing.T) {
	restore(t)
	target := object.FromMap(map[string]any{"a": 1})

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			rec := observe.NewRecorder(nil)
			for i := 0; i < 500; i++ {
				v, err := Wrap(target, rec.Observe, nil).GetProperty(apis.StringKey("a"), nil)
				if err != nil || v != 1 {
					t.Errorf("get: v=%v err=%v", v, err)
					return
				}
			}
			if rec.Len() != 500 {
				t.Errorf("recorded %d calls, want 500", rec.Len())
			}
		}()
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				SetConfig(config.NewConfig(config.WithEscapeKeys((i+id)%2 == 0)))
				SetLogger(zap.NewNop())
				_ = Config()
			}
		}(w)
	}

	wg.Wait()
}
