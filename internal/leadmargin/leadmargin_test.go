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

package leadmargin

import (
	"testing"
	"time"

	"github.com/aws/leo-workload-scheduler/internal/geometry"
	"github.com/aws/leo-workload-scheduler/internal/rtt"
)

func TestDeltaZeroWithoutLookahead(t *testing.T) {
	m := Model{Lookahead: false, RTT: rtt.SpeedOfLightModel(10)}
	if got := m.Delta(geometry.Vector3{}); got != 0 {
		t.Errorf("Delta() = %v, want 0 when Lookahead is false", got)
	}
}

func TestDeltaAtLeastFiveSecondsWithLookahead(t *testing.T) {
	m := Model{
		Lookahead: true,
		Ground:    GroundStation{LatDeg: 0, LonDeg: 0, ElevationM: 0},
		RTT:       rtt.SpeedOfLightModel(0),
	}
	node := geometry.ToCartesian(0, 0, 550000)
	got := m.Delta(node)
	if got < 5*time.Second {
		t.Errorf("Delta() = %v, want at least 5s (the formula's constant term)", got)
	}
}
