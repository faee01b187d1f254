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

// Package placement is the Placement Decider (spec.md §4.6): consumes
// newly created workloads awaiting assignment and binds each to one
// feasible node, one shot per workload, modeled on the teacher's
// Provisioner (sigs.k8s.io/karpenter's pkg/controllers/provisioning):
// a long-running loop driven by an external watch stream that logs and
// drops per-item failures rather than ever crashing the batch.
package placement

import (
	"context"
	"time"

	retry "github.com/avast/retry-go"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/geometry"
	"github.com/aws/leo-workload-scheduler/internal/metrics"
	"github.com/aws/leo-workload-scheduler/internal/scoring"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

// Decider implements the Initial Placement Decider.
type Decider struct {
	Adapter clusteradapter.Adapter
	Filter  *zonefilter.Filter
	Oracle  *ephemeris.Oracle
	Clock   clock.Clock
	Logger  *zap.SugaredLogger

	// DecisionTimeout bounds the context passed to the filter/score/bind
	// sequence for one workload (options.Options.PlacementTickTimeout). A
	// slow cluster-adapter call for one workload can therefore never stall
	// the serial decision loop past this bound; zero disables the timeout.
	DecisionTimeout time.Duration
}

func (d *Decider) logger() *zap.SugaredLogger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop().Sugar()
}

func (d *Decider) clock() clock.Clock {
	if d.Clock != nil {
		return d.Clock
	}
	return clock.RealClock{}
}

// Run consumes the pending-workload watch stream in arrival order,
// serially, deciding one workload at a time (spec.md §4.6). It returns
// when events is closed or ctx is canceled.
func (d *Decider) Run(ctx context.Context, events <-chan clusteradapter.PendingEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			d.Decide(ctx, ev.Workload)
		}
	}
}

// Decide makes one placement decision for workload w, per spec.md §4.6:
//  1. An already-assigned node is honored idempotently.
//  2. Otherwise filter -> score (krios mode only) -> bind.
//  3. Any failure is logged and dropped; it never blocks other workloads.
func (d *Decider) Decide(ctx context.Context, w apis.Workload) {
	start := d.clock().Now()
	defer func() {
		metrics.PlacementLatency.Observe(d.clock().Now().Sub(start).Seconds())
	}()

	if d.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.DecisionTimeout)
		defer cancel()
	}

	logger := d.logger().With("workload", w.Name, "namespace", w.Namespace)

	if !w.Pending() {
		if err := d.bind(ctx, w, w.AssignedNodeName); err != nil {
			logger.Errorw("failed to honor pre-assigned binding", "node", w.AssignedNodeName, "error", err)
			metrics.PlacementDecisions.WithLabelValues("bind_error").Inc()
			return
		}
		metrics.PlacementDecisions.WithLabelValues("pre_assigned").Inc()
		return
	}

	now := d.clock().Now()
	candidates, err := d.Filter.ZoneNodes(ctx, w, now)
	if err != nil {
		logger.Errorw("zone filter failed", "error", err)
		metrics.PlacementDecisions.WithLabelValues("filter_error").Inc()
		return
	}

	zone, err := w.Zone()
	if err != nil {
		logger.Errorw("workload missing zone", "error", err)
		metrics.PlacementDecisions.WithLabelValues("missing_zone").Inc()
		return
	}
	center := geometry.ToCartesian(zone.LatDeg, zone.LonDeg, zonefilter.AltitudeKM*1000)

	node, err := scoring.Select(scoring.ModeKrios, candidates, center, d.logger())
	if err != nil {
		logger.Infow("no feasible node for workload", "error", err)
		metrics.PlacementDecisions.WithLabelValues("no_candidate").Inc()
		return
	}

	if err := d.bind(ctx, w, node.Name); err != nil {
		logger.Errorw("cluster API bind failed", "node", node.Name, "error", err)
		metrics.PlacementDecisions.WithLabelValues("bind_error").Inc()
		return
	}
	logger.Infow("workload bound", "node", node.Name)
	metrics.PlacementDecisions.WithLabelValues("bound").Inc()
}

// bind issues the binding with a small bounded retry around transient
// adapter errors (spec.md §7: bind failures are logged and dropped for
// this workload, not retried indefinitely by the core — the orchestrator's
// own reconciliation provides any further retry).
func (d *Decider) bind(ctx context.Context, w apis.Workload, nodeName string) error {
	return retry.Do(
		func() error {
			return d.Adapter.BindWorkload(ctx, w.Namespace, w.Name, nodeName)
		},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}
