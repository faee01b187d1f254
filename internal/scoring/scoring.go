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

// Package scoring is the Successor Scorer (spec.md §4.4): ranks a
// non-empty set of zone-filtered candidates and picks one, under one of
// three selection policies.
package scoring

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/geometry"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

// Mode selects the candidate-ranking policy (spec.md §4.4).
type Mode string

const (
	ModeKrios   Mode = "krios"
	ModeClosest Mode = "closest"
	ModeRandom  Mode = "random"
)

// ErrNoCandidate is returned when the candidate set is empty.
var ErrNoCandidate = fmt.Errorf("no candidate node in zone")

// KriosMetric is the dot product of a candidate's velocity with the
// vector from the candidate to the zone center: positive values mean the
// node is approaching, larger is better (spec.md §4.4).
func KriosMetric(c zonefilter.Candidate, center geometry.Vector3) float64 {
	toCenter := geometry.Sub(center, c.Sample.Position)
	return geometry.Dot(c.Sample.Velocity, toCenter)
}

// Select picks one candidate from a non-empty set under mode
// (spec.md §4.4, invariant 4 in spec.md §8). Ties within a mode are
// resolved by input order, since lo.MaxBy/lo.MinBy keep the first
// maximal/minimal element they see.
func Select(mode Mode, candidates []zonefilter.Candidate, zoneCenter geometry.Vector3, logger *zap.SugaredLogger) (apis.Node, error) {
	if len(candidates) == 0 {
		return apis.Node{}, ErrNoCandidate
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	for _, c := range candidates {
		logger.Debugw("scoring candidate",
			"node", c.Node.Name, "distance_km", c.Distance, "krios_metric", KriosMetric(c, zoneCenter))
	}
	switch mode {
	case ModeClosest:
		best := lo.MinBy(candidates, func(a, b zonefilter.Candidate) bool { return a.Distance < b.Distance })
		return best.Node, nil
	case ModeRandom:
		return candidates[rand.Intn(len(candidates))].Node, nil
	case ModeKrios, "":
		best := lo.MaxBy(candidates, func(a, b zonefilter.Candidate) bool {
			return KriosMetric(a, zoneCenter) > KriosMetric(b, zoneCenter)
		})
		return best.Node, nil
	default:
		return apis.Node{}, fmt.Errorf("unknown successor selection mode %q", mode)
	}
}
