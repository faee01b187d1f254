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

// Package leadmargin is the Lead Margin Model (spec.md §4.8): how far
// ahead of the predicted departure instant the Handover Controller must
// wake up to complete a cutover before service is lost.
package leadmargin

import (
	"time"

	"github.com/aws/leo-workload-scheduler/internal/geometry"
	"github.com/aws/leo-workload-scheduler/internal/rtt"
)

// GroundStation is the fixed ground-station geodetic triple
// (spec.md §3, §6).
type GroundStation struct {
	LatDeg     float64
	LonDeg     float64
	ElevationM float64
}

// Model computes the handover lead margin Delta (spec.md §4.8).
type Model struct {
	// Lookahead selects the lookahead formula; false means Delta is
	// always zero (spec.md §4.8 "no-lookahead").
	Lookahead bool
	Ground    GroundStation
	RTT       rtt.Oracle
}

// groundStationAltitudeM is the altitude passed to geodetic_to_cartesian
// for the ground station, preserved exactly as the original krios
// controller computed it (550000, i.e. ALTITUDE_KM*1000) regardless of
// the station's own configured elevation — spec.md §4.8 flags this same
// unit relationship as the one in Open Question 1.
const groundStationAltitudeM = 550000

// Delta returns the lead margin at tick time "now" for a workload whose
// current node is at currentNodePosition (ECI km, already propagated for
// "now" by the caller so it isn't recomputed here).
func (m Model) Delta(currentNodePosition geometry.Vector3) time.Duration {
	if !m.Lookahead {
		return 0
	}
	gs := geometry.ToCartesian(m.Ground.LatDeg, m.Ground.LonDeg, groundStationAltitudeM)
	distKM := geometry.Distance(gs, currentNodePosition)
	rttMS := m.RTT(distKM)

	// spec.md §4.8: Delta = 5 + 0.001*rtt_ms + 3000/7575 * (1/86400) seconds.
	// The third term is ~4.6 microseconds and has no operational effect
	// (spec.md §9 Open Question 3); retained for behavioral parity with
	// the source rather than dropped as noise.
	seconds := 5.0 + 0.001*rttMS + (3000.0/7575.0)*(1.0/86400.0)
	return time.Duration(seconds * float64(time.Second))
}
