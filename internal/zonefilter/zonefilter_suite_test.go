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
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aws/leo-workload-scheduler/internal/apis"
	"github.com/aws/leo-workload-scheduler/internal/clusteradapter"
	"github.com/aws/leo-workload-scheduler/internal/ephemeris"
	"github.com/aws/leo-workload-scheduler/internal/zonefilter"
)

var _ = Describe("ZoneNodes", func() {
	var (
		adapter  *clusteradapter.Fake
		oracle   *ephemeris.Oracle
		filter   *zonefilter.Filter
		workload apis.Workload
		now      time.Time
	)

	BeforeEach(func() {
		adapter = clusteradapter.NewFake()
		catalog := ephemeris.NewCatalog(map[int]ephemeris.TLE{
			1: testTLE(1),
			2: testTLE(2),
			3: testTLE(3),
		})
		oracle = ephemeris.NewOracle(catalog, &fixedPropagator{bySatID: map[int]ephemeris.Sample{
			1: atDistance(10),  // well inside the zone
			2: atDistance(3000), // well outside
			3: atDistance(20),  // inside, but this is the workload's current host
		}})
		filter = &zonefilter.Filter{Adapter: adapter, Oracle: oracle}

		adapter.AddNode(apis.Node{Name: "near", Role: apis.RoleFollower, Labels: map[string]string{"sat_id": "1"}})
		adapter.AddNode(apis.Node{Name: "far", Role: apis.RoleFollower, Labels: map[string]string{"sat_id": "2"}})
		adapter.AddNode(apis.Node{Name: "current-host", Role: apis.RoleFollower, Labels: map[string]string{"sat_id": "3"}})
		adapter.AddNode(apis.Node{Name: "no-satid-label", Role: apis.RoleFollower})

		center := &apis.GeoPoint{LatDeg: 0, LonDeg: 0}
		workload = apis.NewWorkload("w1", "default", "current-host", true, center, 100)
		now = time.Unix(0, 0)
	})

	It("excludes the workload's currently assigned node", func() {
		candidates, err := filter.ZoneNodes(context.Background(), workload, now)
		Expect(err).NotTo(HaveOccurred())
		names := []string{}
		for _, c := range candidates {
			names = append(names, c.Node.Name)
		}
		Expect(names).NotTo(ContainElement("current-host"))
	})

	It("excludes nodes outside the allowable distance", func() {
		candidates, err := filter.ZoneNodes(context.Background(), workload, now)
		Expect(err).NotTo(HaveOccurred())
		names := []string{}
		for _, c := range candidates {
			names = append(names, c.Node.Name)
		}
		Expect(names).To(ContainElement("near"))
		Expect(names).NotTo(ContainElement("far"))
	})

	It("skips nodes with no sat_id label instead of failing the whole pass", func() {
		candidates, err := filter.ZoneNodes(context.Background(), workload, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).NotTo(BeEmpty())
	})

	It("returns ErrMissingZoneLabel when the workload has no zone center", func() {
		pendingNoZone := apis.NewWorkload("w2", "default", "current-host", true, nil, 0)
		_, err := filter.ZoneNodes(context.Background(), pendingNoZone, now)
		Expect(err).To(MatchError(apis.ErrMissingZoneLabel))
	})
})
