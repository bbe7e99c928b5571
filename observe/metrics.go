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
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/rspy/apis"
)

// Metrics holds the Prometheus collectors fed by Counted.
type Metrics struct {
	// Operations counts intercepted operations by op and outcome.
	Operations *prometheus.CounterVec
	// Evaluations counts operations whose underlying result was computed.
	Evaluations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rspy",
				Name:      "operations_total",
				Help:      "Intercepted reflective operations by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rspy",
				Name:      "evaluations_total",
				Help:      "Intercepted operations whose underlying result was computed.",
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Evaluations)
	}
	return m
}

// Counted counts every operation passing through next.
func Counted(m *Metrics) Decorator {
	return func(next apis.Observer) apis.Observer {
		return func(target apis.Reflectable, q apis.Query, deferred apis.Deferred) (any, error) {
			op := q.Op.String()
			counting := func() (any, error) {
				m.Evaluations.WithLabelValues(op).Inc()
				return deferred()
			}

			v, err := next(target, q, counting)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.Operations.WithLabelValues(op, outcome).Inc()
			return v, err
		}
	}
}
