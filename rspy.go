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
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/config"
	"dirpx.dev/rspy/intercept"
	"dirpx.dev/rspy/proxy"
)

// init initializes the global state.
func init() {
	st.Store(&state{cfg: config.DefaultConfig(), log: zap.NewNop()})
}

// Handler returns an intercepting handler for observer layered over base,
// using the global configuration and logger.
// This is a convenience wrapper around intercept.New.
func Handler(observer apis.Observer, base *apis.Handler) *apis.Handler {
	s := st.Load()
	return intercept.New(observer, base,
		intercept.WithConfig(s.cfg),
		intercept.WithLogger(s.log),
	)
}

// Wrap returns a proxy for target whose instrumented operations are
// reported to observer. base may be nil.
// This is a convenience wrapper around proxy.New and Handler.
func Wrap(target apis.Reflectable, observer apis.Observer, base *apis.Handler) *proxy.Proxy {
	return proxy.New(target, Handler(observer, base))
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration. Handlers built earlier keep the
// configuration they were built with.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, log: old.log})
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	return st.Load().log
}

// SetLogger sets the global logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, log: l})
}

// buildMu serializes writers so concurrent setters never lose an update.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// log is the global logger.
	log *zap.Logger
}
