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

package observe

import (
	"time"

	"go.uber.org/zap"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/naming"
)

// Logged logs every operation passing through next. Successful operations
// are logged at debug level, failed ones at warn. Whether the underlying
// result was evaluated is reported as "evaluated".
func Logged(logger *zap.Logger) Decorator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next apis.Observer) apis.Observer {
		return func(target apis.Reflectable, q apis.Query, deferred apis.Deferred) (any, error) {
			evaluated := false
			tracked := func() (any, error) {
				evaluated = true
				return deferred()
			}

			start := time.Now()
			v, err := next(target, q, tracked)
			fields := []zap.Field{
				zap.Stringer("query", q),
				zap.String("entity", naming.Entity(target)),
				zap.Bool("evaluated", evaluated),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				logger.Warn("reflective operation failed", append(fields, zap.Error(err))...)
				return v, err
			}
			logger.Debug("reflective operation", fields...)
			return v, nil
		}
	}
}
