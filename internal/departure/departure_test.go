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

package departure

import (
	"fmt"
	"testing"
	"time"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/geometry"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

// linearRecedingPropagator simulates a satellite that starts directly
// over the zone center and drifts away at a constant rate, so the
// departure instant is analytically known: it leaves zone once the
// elapsed time * rate exceeds the allowable distance.
type linearRecedingPropagator struct {
	start        time.Time
	rateKMPerSec float64
}

func (p *linearRecedingPropagator) Propagate(_ ephemeris.TLE, instant time.Time) (ephemeris.Sample, error) {
	elapsed := instant.Sub(p.start).Seconds()
	offsetKM := elapsed * p.rateKMPerSec
	return ephemeris.Sample{
		Position: geometry.Vector3{X: geometry.EarthRadiusKM + zonefilter.AltitudeKM, Y: 0, Z: offsetKM},
		Velocity: geometry.Vector3{X: 0, Y: 0, Z: p.rateKMPerSec},
	}, nil
}

func TestNodeLeavesZoneFindsDepartureWithinTolerance(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	const rate = 0.05 // km/s
	propagator := &linearRecedingPropagator{start: now, rateKMPerSec: rate}
	catalog := ephemeris.NewCatalog(map[int]ephemeris.TLE{42: {Line1: "x", Line2: "y"}})
	oracle := ephemeris.NewOracle(catalog, propagator)

	center := &apis.GeoPoint{LatDeg: 0, LonDeg: 0}
	w := apis.NewWorkload("w1", "default", "host", true, center, 100)
	node := apis.Node{Name: "host", Role: apis.RoleFollower, Labels: map[string]string{"sat_id": "42"}}

	allowable := geometry.AllowableDistance(w.ZoneRadiusKM, zonefilter.AltitudeKM, zonefilter.ElevationAngleRad)
	wantDepartureSeconds := allowable / rate

	departed, err := NodeLeavesZone(oracle, now, w, node)
	if err != nil {
		t.Fatalf("NodeLeavesZone returned error: %v", err)
	}
	gotSeconds := departed.Sub(now).Seconds()
	if diff := gotSeconds - wantDepartureSeconds; diff > float64(BisectionTolerance/time.Second) || diff < -float64(BisectionTolerance/time.Second) {
		t.Errorf("departure at %.2fs, want close to %.2fs (tolerance %v)", gotSeconds, wantDepartureSeconds, BisectionTolerance)
	}

	// The returned instant must still be in zone, and two tolerance steps
	// later must not be (spec.md §8 invariant 5).
	inZone, _, err := zonefilter.InZone(oracle, node, w, departed)
	if err != nil || !inZone {
		t.Errorf("expected returned instant to still be in zone, inZone=%v err=%v", inZone, err)
	}
	outOfZone, _, err := zonefilter.InZone(oracle, node, w, departed.Add(2*BisectionTolerance))
	if err != nil || outOfZone {
		t.Errorf("expected an instant after the tolerance window to be out of zone, inZone=%v err=%v", outOfZone, err)
	}
}

func TestNodeLeavesZonePropagationErrorPropagates(t *testing.T) {
	now := time.Unix(0, 0)
	catalog := ephemeris.NewCatalog(map[int]ephemeris.TLE{})
	oracle := ephemeris.NewOracle(catalog, &linearRecedingPropagator{start: now, rateKMPerSec: 1})
	center := &apis.GeoPoint{LatDeg: 0, LonDeg: 0}
	w := apis.NewWorkload("w1", "default", "host", true, center, 100)
	node := apis.Node{Name: "host", Role: apis.RoleFollower, Labels: map[string]string{"sat_id": "999"}}

	_, err := NodeLeavesZone(oracle, now, w, node)
	if err == nil {
		t.Fatal("expected unknown-satellite error to propagate")
	}
	if got := fmt.Sprintf("%v", err); got == "" {
		t.Fatal("expected a non-empty error message")
	}
}
