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
	"errors"
	"testing"
	"time"

	"github.com/aws/leo-workload-scheduler/internal/geometry"
)

type constantPropagator struct {
	sample Sample
}

func (c constantPropagator) Propagate(TLE, time.Time) (Sample, error) {
	return c.sample, nil
}

func TestCatalogLookupUnknownSatellite(t *testing.T) {
	c := NewCatalog(map[int]TLE{1: {Line1: "a", Line2: "b"}})
	if _, err := c.Lookup(2); !errors.Is(err, ErrUnknownSatellite) {
		t.Fatalf("Lookup(2) error = %v, want ErrUnknownSatellite", err)
	}
}

func TestCatalogIsDefensivelyCopied(t *testing.T) {
	entries := map[int]TLE{1: {Line1: "a", Line2: "b"}}
	c := NewCatalog(entries)
	entries[1] = TLE{Line1: "mutated", Line2: "mutated"}

	got, err := c.Lookup(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Line1 != "a" {
		t.Errorf("catalog entry was mutated via the caller's map: got %q, want %q", got.Line1, "a")
	}
}

func TestOraclePropagateUnknownSatellite(t *testing.T) {
	o := NewOracle(NewCatalog(nil), constantPropagator{})
	if _, err := o.Propagate(42, time.Now()); !errors.Is(err, ErrUnknownSatellite) {
		t.Fatalf("Propagate error = %v, want ErrUnknownSatellite", err)
	}
}

func TestOraclePropagateDelegatesToPropagator(t *testing.T) {
	want := Sample{Position: geometry.Vector3{X: 1, Y: 2, Z: 3}}
	o := NewOracle(NewCatalog(map[int]TLE{7: {Line1: "a", Line2: "b"}}), constantPropagator{sample: want})
	got, err := o.Propagate(7, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Propagate = %+v, want %+v", got, want)
	}
}
