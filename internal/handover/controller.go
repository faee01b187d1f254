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

// Package handover is the Handover Controller (spec.md §4.7, §4.9): a
// tick loop that, once per workload per lifetime, predicts when its
// current node will leave the zone and schedules a cutover far enough
// ahead to land before departure.
package handover

import (
	"context"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/departure"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/leadmargin"
	"github.com/aws/leo-workload-scheduler/internal/metrics"
	"github.com/aws/leo-workload-scheduler/internal/scoring"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

// DefaultTickInterval is the controller's polling cadence (spec.md §4.7:
// "The controller runs a single outer loop on a 1-second tick").
const DefaultTickInterval = 1 * time.Second

// Controller runs the handover tick loop. The tracked set it owns is
// confined to the goroutine running Run; no other goroutine may touch it
// (spec.md §5).
type Controller struct {
	Adapter    clusteradapter.Adapter
	Filter     *zonefilter.Filter
	Oracle     *ephemeris.Oracle
	Clock      clock.Clock
	LeadMargin leadmargin.Model
	Logger     *zap.SugaredLogger

	// TickInterval overrides DefaultTickInterval when non-zero. Exposed as
	// a knob (options.Options.HandoverTickInterval) for test and
	// non-default-constellation tuning; production use is the spec's 1s.
	TickInterval time.Duration

	// SuccessorMode selects the Successor Scorer policy a handover task
	// uses at cutover time (spec.md §4.4, §6); the zero value behaves as
	// scoring.ModeKrios, matching spec.md §4.7's default.
	SuccessorMode scoring.Mode

	tracked TrackedSet
}

func (c *Controller) tickInterval() time.Duration {
	if c.TickInterval > 0 {
		return c.TickInterval
	}
	return DefaultTickInterval
}

func (c *Controller) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop().Sugar()
}

func (c *Controller) clock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.RealClock{}
}

// Run drives the tick loop until ctx is canceled. Ticks are driven by a
// monotonic tick counter rather than wall-clock resync (spec.md §3): after
// a slow tick, the following ticks run back to back without sleeping
// until the schedule is again ahead of the clock.
func (c *Controller) Run(ctx context.Context) {
	if c.tracked == nil {
		c.tracked = NewTrackedSet()
	}

	var tt int64
	start := c.clock().Now().Unix()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.Tick(ctx)
		metrics.TrackedWorkloads.Set(float64(len(c.tracked)))

		tt++
		interval := c.tickInterval()
		nextAt := start + tt*int64(interval/time.Second)
		sleep := time.Duration(nextAt-c.clock().Now().Unix()) * time.Second
		if sleep <= 0 {
			// Behind schedule: run the next tick immediately, without
			// sleeping, until the counter catches up with the clock.
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-c.clock().After(sleep):
		}
	}
}

// Tick examines every workload once and schedules a handover task for
// each ready, bound, not-yet-tracked workload (spec.md §4.7, invariant 2
// in spec.md §8).
func (c *Controller) Tick(ctx context.Context) {
	workloads, err := c.Adapter.ListWorkloads(ctx)
	if err != nil {
		c.logger().Errorw("handover tick: list workloads failed", "error", err)
		return
	}
	nodes, err := c.Adapter.ListFollowerNodes(ctx)
	if err != nil {
		c.logger().Errorw("handover tick: list nodes failed", "error", err)
		return
	}
	nodesByName := make(map[string]apis.Node, len(nodes))
	for _, n := range nodes {
		nodesByName[n.Name] = n
	}

	now := c.clock().Now()
	for _, w := range workloads {
		if w.Pending() || !w.Ready || c.tracked.Contains(w.Name) {
			continue
		}
		node, ok := nodesByName[w.AssignedNodeName]
		if !ok {
			c.logger().Debugw("handover tick: assigned node not a known follower, skipping",
				"workload", w.Name, "node", w.AssignedNodeName)
			continue
		}

		satID, err := node.SatID()
		if err != nil {
			c.logger().Debugw("handover tick: node missing sat_id, skipping", "node", node.Name, "error", err)
			continue
		}
		sample, err := c.Oracle.Propagate(satID, now)
		if err != nil {
			c.logger().Debugw("handover tick: propagation failed, skipping", "node", node.Name, "error", err)
			continue
		}

		dep, err := departure.NodeLeavesZone(c.Oracle, now, w, node)
		if err != nil {
			c.logger().Errorw("handover tick: departure prediction failed", "workload", w.Name, "error", err)
			continue
		}

		delta := c.LeadMargin.Delta(sample.Position)
		wakeAt := dep.Add(-delta)

		c.tracked.Add(w.Name)
		c.logger().Infow("scheduling handover", "workload", w.Name, "node", node.Name,
			"departure", dep, "wake_at", wakeAt)

		t := &task{
			adapter:       c.Adapter,
			filter:        c.Filter,
			oracle:        c.Oracle,
			clock:         c.clock(),
			logger:        c.logger(),
			successorMode: c.SuccessorMode,
			workload:      w,
			currentNode:   node,
			departure:     dep,
			wakeAt:        wakeAt,
		}
		go t.run(ctx)
	}
}
