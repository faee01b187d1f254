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

// Package ephemeris is the Ephemeris Oracle (spec.md §4.2): an immutable
// TLE catalog keyed by satellite ID, and propagation of any catalog entry
// to a position/velocity sample at an arbitrary UTC instant. The SGP4
// propagator itself is an injected black box (spec.md §1); TLE text
// parsing is likewise external (spec.md §1) — this package accepts
// already-split TLE line pairs.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/aws/leo-workload-scheduler/internal/geometry"
)

// TLE is the immutable two-line element pair for one catalog entry
// (spec.md §3).
type TLE struct {
	Line1 string
	Line2 string
}

// Sample is an ephemeris sample at one instant: an ECI position (km) and
// velocity (km/s). Never cached beyond a single decision (spec.md §3).
type Sample struct {
	Position geometry.Vector3
	Velocity geometry.Vector3
}

// ErrUnknownSatellite is returned when a sat_id has no catalog entry.
// Per spec.md §7 this is fatal to the caller (a misconfigured label).
var ErrUnknownSatellite = fmt.Errorf("unknown satellite id")

// Propagator maps a TLE and a UTC instant to an ECI position/velocity
// sample. Implementations must be safe for concurrent use (spec.md §4.2).
// The production default is SGP4Propagator; tests substitute a
// deterministic fake.
type Propagator interface {
	Propagate(tle TLE, instant time.Time) (Sample, error)
}

// Catalog is the read-only, process-lifetime TLE registry (spec.md §3).
// Safe for concurrent unsynchronized reads once loaded: it is never
// mutated after construction.
type Catalog struct {
	entries map[int]TLE
}

// NewCatalog builds a Catalog from a satID->TLE map, typically produced by
// an external TLE-file parser (spec.md §1, §6).
func NewCatalog(entries map[int]TLE) *Catalog {
	cp := make(map[int]TLE, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &Catalog{entries: cp}
}

// Lookup returns the TLE for satID, or ErrUnknownSatellite.
func (c *Catalog) Lookup(satID int) (TLE, error) {
	tle, ok := c.entries[satID]
	if !ok {
		return TLE{}, fmt.Errorf("sat_id %d: %w", satID, ErrUnknownSatellite)
	}
	return tle, nil
}

// Oracle couples a Catalog to a Propagator to answer "where is this
// satellite at this instant" (spec.md §4.2). Safe for concurrent use
// across handover tasks since both the Catalog and Propagator contracts
// require it.
type Oracle struct {
	catalog    *Catalog
	propagator Propagator
}

// NewOracle constructs an Oracle over catalog using propagator.
func NewOracle(catalog *Catalog, propagator Propagator) *Oracle {
	return &Oracle{catalog: catalog, propagator: propagator}
}

// Propagate resolves satID's TLE and propagates it to instant.
func (o *Oracle) Propagate(satID int, instant time.Time) (Sample, error) {
	tle, err := o.catalog.Lookup(satID)
	if err != nil {
		return Sample{}, err
	}
	return o.propagator.Propagate(tle, instant)
}
