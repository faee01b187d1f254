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

package zonefilter_test

import (
	"fmt"
	"time"

	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/geometry"
)

// fixedPropagator returns a pre-arranged sample for each sat ID regardless
// of the requested instant, which is enough to exercise the filter's
// distance comparison deterministically without a real SGP4 propagation.
type fixedPropagator struct {
	bySatID map[int]ephemeris.Sample
}

var _ ephemeris.Propagator = (*fixedPropagator)(nil)

func (p *fixedPropagator) Propagate(tle ephemeris.TLE, _ time.Time) (ephemeris.Sample, error) {
	satID, err := satIDFromTestTLE(tle)
	if err != nil {
		return ephemeris.Sample{}, err
	}
	s, ok := p.bySatID[satID]
	if !ok {
		return ephemeris.Sample{}, fmt.Errorf("no fixed sample for sat %d", satID)
	}
	return s, nil
}

// satIDFromTestTLE decodes the sat ID this test suite encodes into a TLE's
// Line1 field, since fixedPropagator never parses a real element set.
func satIDFromTestTLE(tle ephemeris.TLE) (int, error) {
	var id int
	if _, err := fmt.Sscanf(tle.Line1, "SATID-%d", &id); err != nil {
		return 0, err
	}
	return id, nil
}

func testTLE(satID int) ephemeris.TLE {
	return ephemeris.TLE{Line1: fmt.Sprintf("SATID-%d", satID), Line2: ""}
}

func atDistance(km float64) ephemeris.Sample {
	return ephemeris.Sample{
		Position: geometry.Vector3{X: geometry.EarthRadiusKM + 550, Y: 0, Z: km},
		Velocity: geometry.Vector3{X: 1, Y: 0, Z: 0},
	}
}
