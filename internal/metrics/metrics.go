/*
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

// Package metrics defines the prometheus series emitted by the placement
// and handover loops.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const Namespace = "leosched"

// DurationBuckets mirrors the teacher's default histogram buckets for
// sub-second to multi-minute control-loop operations.
func DurationBuckets() []float64 {
	return []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900}
}

var (
	PlacementDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "placement",
		Name:      "decisions_total",
		Help:      "Count of placement decisions made, partitioned by outcome",
	}, []string{"outcome"})

	PlacementLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "placement",
		Name:      "decision_duration_seconds",
		Help:      "Time to filter, score, and bind one pending workload",
		Buckets:   DurationBuckets(),
	})

	HandoversTriggered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "handover",
		Name:      "triggered_total",
		Help:      "Count of handover tasks spawned by the controller tick loop",
	})

	HandoverOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "handover",
		Name:      "outcomes_total",
		Help:      "Count of handover task outcomes, partitioned by outcome",
	}, []string{"outcome"})

	CutoverReadinessWait = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "handover",
		Name:      "cutover_readiness_wait_seconds",
		Help:      "Time spent polling the successor workload for readiness during cutover",
		Buckets:   DurationBuckets(),
	})

	TrackedWorkloads = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "handover",
		Name:      "tracked_workloads",
		Help:      "Current size of the monotonic tracked-workloads set",
	})
)

// MustRegister registers every series declared in this package against reg.
// Called once from cmd/leosched's main with prometheus.DefaultRegisterer.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		PlacementDecisions,
		PlacementLatency,
		HandoversTriggered,
		HandoverOutcomes,
		CutoverReadinessWait,
		TrackedWorkloads,
	)
}
