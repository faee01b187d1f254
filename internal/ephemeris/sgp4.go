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

package ephemeris

import (
	"fmt"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/aws/leo-workload-scheduler/internal/geometry"
)

// SGP4Propagator is the default production Propagator, wrapping
// github.com/joshuaferrara/go-satellite. satellite.TLEToSat parses the
// element set once per call (spec.md §4.2: "instantiate a propagator")
// and satellite.Propagate advances it to the requested instant; the
// WGS72 gravity model matches what the original krios scripts' sgp4
// library used by default.
//
// Propagation errors are reported through satrec.Error rather than a Go
// error return from the underlying library. A nonzero code is returned as
// an error alongside the sample, and callers handle it like any other
// propagation failure: the Zone Filter skips the node and the Departure
// Predictor fails; the code is not ignored by the core's control flow.
type SGP4Propagator struct{}

var _ Propagator = SGP4Propagator{}

func (SGP4Propagator) Propagate(tle TLE, instant time.Time) (Sample, error) {
	satrec := satellite.TLEToSat(tle.Line1, tle.Line2, "wgs72")
	utc := instant.UTC()
	pos, vel := satellite.Propagate(
		satrec,
		utc.Year(), int(utc.Month()), utc.Day(),
		utc.Hour(), utc.Minute(), utc.Second(),
	)
	sample := Sample{
		Position: geometry.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Velocity: geometry.Vector3{X: vel.X, Y: vel.Y, Z: vel.Z},
	}
	if satrec.Error != 0 {
		return sample, fmt.Errorf("sgp4 propagation error code %d", satrec.Error)
	}
	return sample, nil
}
