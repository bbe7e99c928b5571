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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/rspy/apis"
	"dirpx.dev/rspy/naming"
)

// Traced records a span per operation passing through next. Operations
// have no context of their own, so spans are children of whatever span ctx
// carries.
func Traced(ctx context.Context, tracer trace.Tracer) Decorator {
	return func(next apis.Observer) apis.Observer {
		return func(target apis.Reflectable, q apis.Query, deferred apis.Deferred) (any, error) {
			_, span := tracer.Start(ctx, "rspy."+q.Op.String(), trace.WithAttributes(
				attribute.String("rspy.query", q.String()),
				attribute.String("rspy.entity", naming.Entity(target)),
			))
			defer span.End()

			evaluating := func() (any, error) {
				span.AddEvent("evaluate")
				return deferred()
			}

			v, err := next(target, q, evaluating)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return v, err
		}
	}
}
