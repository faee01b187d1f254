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

package handover

// TrackedSet is the process-wide, monotonic mapping from workload name to
// "a handover task has been scheduled" (spec.md §3). Names are only ever
// added, never removed: once a workload's handover fires, the successor
// workload has a different name (spec.md §4.9) and is what gets tracked
// next.
//
// Single-writer discipline: only the Handover Controller's outer tick
// loop reads or writes a TrackedSet. Spawned handover tasks never touch
// it (spec.md §5), so no synchronization is needed here — introducing a
// mutex would suggest a concurrent-access pattern this type intentionally
// does not have.
type TrackedSet map[string]struct{}

// NewTrackedSet returns an empty set.
func NewTrackedSet() TrackedSet {
	return make(TrackedSet)
}

// Contains reports whether name has already been tracked.
func (s TrackedSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Add marks name as tracked. Invariant (spec.md §8 #2): once added, a
// name is never removed during the process lifetime.
func (s TrackedSet) Add(name string) {
	s[name] = struct{}{}
}
