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

// Package departure is the Departure Predictor (spec.md §4.5): finds the
// last instant at or after now that a given node is still inside a
// workload's zone, by a coarse forward probe followed by bisection.
package departure

import (
	"time"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

// ForwardStride is the coarse probe step (spec.md §4.5): small enough
// that the in-zone predicate does not toggle twice within one stride for
// a typical LEO pass over a ~100km zone at 550km altitude.
const ForwardStride = 100 * time.Second

// BisectionTolerance is the resolution of the returned departure instant.
const BisectionTolerance = 1 * time.Second

// safetyCeiling is the initial outOfBounds value. The forward probe loop
// only exits after setting outOfBounds to the first out-of-zone probe, so
// this value is always overwritten before bisection starts.
const safetyCeiling = 1000 * time.Second

// NodeLeavesZone returns the last instant t >= now such that node is
// still inside workload's zone (spec.md §4.5, invariant 5 in spec.md §8).
func NodeLeavesZone(oracle *ephemeris.Oracle, now time.Time, w apis.Workload, node apis.Node) (time.Time, error) {
	lastVisible := now
	outOfBounds := now.Add(safetyCeiling)

	probe := now.Add(ForwardStride)
	for {
		inZone, _, err := zonefilter.InZone(oracle, node, w, probe)
		if err != nil {
			return time.Time{}, err
		}
		if !inZone {
			outOfBounds = probe
			break
		}
		lastVisible = probe
		probe = probe.Add(ForwardStride)
	}

	for outOfBounds.Sub(lastVisible) > BisectionTolerance {
		mid := lastVisible.Add(outOfBounds.Sub(lastVisible) / 2)
		inZone, _, err := zonefilter.InZone(oracle, node, w, mid)
		if err != nil {
			return time.Time{}, err
		}
		if inZone {
			lastVisible = mid
		} else {
			outOfBounds = mid
		}
	}
	return lastVisible, nil
}
