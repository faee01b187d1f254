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

package handover

import (
	"context"
	"time"

	"github.com/google/uuid"
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

// task is one scheduled handover, spawned by the controller's tick loop
// and run to completion independently of later ticks (spec.md §4.7,
// §5: tasks never touch the tracked set and are not canceled by later
// ticks finding the same workload already tracked).
type task struct {
	adapter clusteradapter.Adapter
	filter  *zonefilter.Filter
	oracle  *ephemeris.Oracle
	clock   clock.Clock
	logger  *zap.SugaredLogger

	successorMode scoring.Mode

	workload    apis.Workload
	currentNode apis.Node
	departure   time.Time
	wakeAt      time.Time
}

// run sleeps until wakeAt (or skips the sleep if it has already
// passed), then scores the zone at the handover instant and either
// cuts over to the winning successor or logs that no successor exists
// (spec.md §4.7).
func (t *task) run(ctx context.Context) {
	traceID := uuid.NewString()
	logger := t.logger.With("workload", t.workload.Name, "trace_id", traceID)
	metrics.HandoversTriggered.Inc()

	if d := t.wakeAt.Sub(t.clock.Now()); d > 0 {
		select {
		case <-ctx.Done():
			return
		case <-t.clock.After(d):
		}
	}

	candidates, err := t.filter.ZoneNodes(ctx, t.workload, t.departure)
	if err != nil {
		logger.Errorw("handover zone filter failed", "error", err)
		metrics.HandoverOutcomes.WithLabelValues("filter_error").Inc()
		return
	}

	zone, err := t.workload.Zone()
	if err != nil {
		logger.Errorw("handover workload missing zone", "error", err)
		metrics.HandoverOutcomes.WithLabelValues("missing_zone").Inc()
		return
	}
	center := geometry.ToCartesian(zone.LatDeg, zone.LonDeg, zonefilter.AltitudeKM*1000)

	successor, err := scoring.Select(t.successorMode, candidates, center, t.logger)
	if err != nil {
		logger.Infow("no successor available at handover instant, workload stays put", "error", err)
		metrics.HandoverOutcomes.WithLabelValues("no_candidate").Inc()
		return
	}

	if err := cutover(ctx, t.adapter, t.clock, logger, t.workload, t.currentNode.Name, successor.Name); err != nil {
		logger.Errorw("cutover failed", "successor", successor.Name, "error", err)
		metrics.HandoverOutcomes.WithLabelValues("cutover_error").Inc()
		return
	}
	logger.Infow("handover complete", "successor_node", successor.Name)
	metrics.HandoverOutcomes.WithLabelValues("handed_over").Inc()
}
