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

// Package zonefilter is the Zone Filter (spec.md §4.3): given a workload
// and an instant, return every follower node currently visible from the
// workload's zone, excluding the workload's current host.
package zonefilter

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/cache"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/geometry"
)

const (
	AltitudeKM        = 550.0
	ElevationAngleDeg = 25.0
)

// ElevationAngleRad is ElevationAngleDeg in radians, the form the
// Geometry Kernel consumes.
var ElevationAngleRad = ElevationAngleDeg * 3.141592653589793 / 180.0

// Candidate pairs a visible node with the ephemeris sample the filter
// computed for it, so the Successor Scorer doesn't have to re-propagate.
type Candidate struct {
	Node     apis.Node
	Sample   ephemeris.Sample
	Distance float64
}

// Filter evaluates zone_nodes(workload, instant) per spec.md §4.3.
type Filter struct {
	Adapter clusteradapter.Adapter
	Oracle  *ephemeris.Oracle
	Logger  *zap.SugaredLogger

	// Unknown, if set, throttles repeated warning-level logs for the same
	// unresolvable satellite ID across ticks; every lookup still happens,
	// this only affects whether it's logged loudly again.
	Unknown *cache.UnknownSatellites
}

// ZoneNodes returns every follower node strictly inside the workload's
// zone at instant, excluding the workload's currently assigned node
// (spec.md §4.3, invariant 1 in spec.md §8). Ordering follows the
// adapter's iteration order; callers must not depend on a specific order.
func (f *Filter) ZoneNodes(ctx context.Context, w apis.Workload, instant time.Time) ([]Candidate, error) {
	nodes, err := f.Adapter.ListFollowerNodes(ctx)
	if err != nil {
		return nil, err
	}
	zone, err := w.Zone()
	if err != nil {
		return nil, err
	}
	center := geometry.ToCartesian(zone.LatDeg, zone.LonDeg, AltitudeKM*1000)
	allowable := geometry.AllowableDistance(w.ZoneRadiusKM, AltitudeKM, ElevationAngleRad)

	var candidates []Candidate
	var errs error
	for _, n := range nodes {
		if n.Name == w.AssignedNodeName {
			continue
		}
		satID, err := n.SatID()
		if err != nil {
			f.logger().Debugw("skipping node with no sat_id label", "node", n.Name, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		sample, err := f.Oracle.Propagate(satID, instant)
		if err != nil {
			if f.Unknown != nil && f.Unknown.SeenRecently(satID) {
				f.logger().Debugw("skipping node: propagation failed (already reported recently)", "node", n.Name, "sat_id", satID)
			} else {
				f.logger().Warnw("skipping node: propagation failed", "node", n.Name, "sat_id", satID, "error", err)
			}
			errs = multierr.Append(errs, err)
			continue
		}
		dist := geometry.Distance(sample.Position, center)
		f.logger().Debugw("zone filter candidate",
			"workload", w.Name, "node", n.Name, "sat_id", satID,
			"distance_km", dist, "allowable_km", allowable)
		if dist < allowable {
			candidates = append(candidates, Candidate{Node: n, Sample: sample, Distance: dist})
		}
	}
	// Per-node failures (missing label, unknown satellite) never fail the
	// whole filter pass (spec.md §7); the aggregate is only for observability.
	if errs != nil {
		f.logger().Debugw("zone filter: some nodes skipped", "workload", w.Name, "errors", errs)
	}
	return candidates, nil
}

func (f *Filter) logger() *zap.SugaredLogger {
	if f.Logger != nil {
		return f.Logger
	}
	return zap.NewNop().Sugar()
}

// InZone reports whether node n is within workload w's zone at instant,
// the predicate the Departure Predictor inverts via search (spec.md §4.5).
// It recomputes center/allowable itself so it can be called in a tight
// bisection loop against a single node without re-fetching the follower
// set each probe.
func InZone(oracle *ephemeris.Oracle, n apis.Node, w apis.Workload, instant time.Time) (bool, float64, error) {
	satID, err := n.SatID()
	if err != nil {
		return false, 0, err
	}
	sample, err := oracle.Propagate(satID, instant)
	if err != nil {
		return false, 0, err
	}
	zone, err := w.Zone()
	if err != nil {
		return false, 0, err
	}
	center := geometry.ToCartesian(zone.LatDeg, zone.LonDeg, AltitudeKM*1000)
	allowable := geometry.AllowableDistance(w.ZoneRadiusKM, AltitudeKM, ElevationAngleRad)
	dist := geometry.Distance(sample.Position, center)
	return dist < allowable, dist, nil
}
