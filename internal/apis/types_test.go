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

package apis

import (
	"errors"
	"testing"
)

func TestNodeSatIDPrefersSatID1(t *testing.T) {
	n := Node{Labels: map[string]string{"sat_id": "1", "sat_id1": "2"}}
	got, err := n.SatID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("SatID() = %d, want 2 (sat_id1 takes precedence)", got)
	}
}

func TestNodeSatIDFallsBackToSatID(t *testing.T) {
	n := Node{Labels: map[string]string{"sat_id": "5"}}
	got, err := n.SatID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("SatID() = %d, want 5", got)
	}
}

func TestNodeSatIDMissing(t *testing.T) {
	n := Node{Name: "bare"}
	if _, err := n.SatID(); !errors.Is(err, ErrMissingSatID) {
		t.Fatalf("SatID() error = %v, want ErrMissingSatID", err)
	}
}

func TestWorkloadZoneAndPending(t *testing.T) {
	pending := NewWorkload("w", "ns", "", false, nil, 0)
	if !pending.Pending() {
		t.Error("workload with no assigned node should be Pending")
	}
	if _, err := pending.Zone(); !errors.Is(err, ErrMissingZoneLabel) {
		t.Fatalf("Zone() error = %v, want ErrMissingZoneLabel", err)
	}

	center := GeoPoint{LatDeg: 12, LonDeg: 34}
	bound := NewWorkload("w", "ns", "node-a", true, &center, 0)
	if bound.Pending() {
		t.Error("workload with an assigned node should not be Pending")
	}
	got, err := bound.Zone()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != center {
		t.Errorf("Zone() = %+v, want %+v", got, center)
	}
	if bound.ZoneRadiusKM != DefaultZoneRadiusKM {
		t.Errorf("ZoneRadiusKM = %v, want default %v", bound.ZoneRadiusKM, DefaultZoneRadiusKM)
	}
}
