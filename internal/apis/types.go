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

// Package apis defines the typed external-record wrappers the core reads
// from the cluster orchestrator: Node and Workload (spec.md §3). These
// replace the original's dynamic label/attribute lookups with explicit
// getters that fail with a tagged error on absence (spec.md §9).
package apis

import (
	"fmt"
)

// NodeRole distinguishes schedulable follower nodes from everything else
// the orchestrator may report.
type NodeRole string

const (
	RoleFollower NodeRole = "follower"
	RoleOther    NodeRole = "other"
)

// Node is an opaque handle on a compute node with the attributes the core
// needs: spec.md §3.
type Node struct {
	Name   string
	Role   NodeRole
	Labels map[string]string
}

// ErrMissingSatID is returned by SatID when neither label is present.
var ErrMissingSatID = fmt.Errorf("node missing sat_id label")

// SatID resolves the node's satellite catalog key, preferring label
// "sat_id1" over "sat_id" per spec.md §3.
func (n Node) SatID() (int, error) {
	if v, ok := n.Labels["sat_id1"]; ok && v != "" {
		return parseInt(v)
	}
	if v, ok := n.Labels["sat_id"]; ok && v != "" {
		return parseInt(v)
	}
	return 0, fmt.Errorf("node %q: %w", n.Name, ErrMissingSatID)
}

func parseInt(s string) (int, error) {
	var n int
	var neg bool
	i := 0
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		i = 1
	}
	if i == len(s) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid integer %q", s)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// GeoPoint is a geodetic latitude/longitude pair in degrees.
type GeoPoint struct {
	LatDeg float64
	LonDeg float64
}

// DefaultZoneRadiusKM is the fallback zone radius (spec.md §3).
const DefaultZoneRadiusKM = 100.0

// ErrMissingZoneLabel is returned when a workload lacks its zone-center label.
var ErrMissingZoneLabel = fmt.Errorf("workload missing leozone label")

// Workload is an opaque handle on a scheduled unit of work with the
// attributes the core needs: spec.md §3.
type Workload struct {
	Name             string
	Namespace        string
	AssignedNodeName string
	Ready            bool
	ZoneCenter       GeoPoint
	ZoneRadiusKM     float64
	hasZoneCenter    bool
}

// NewWorkload constructs a Workload with its zone center resolved, mirroring
// the "leozone"/"radius" label parsing in spec.md §6. zoneCenter is supplied
// pre-parsed because parsing the "leozone" label's text format is the
// external helper's job (spec.md §1's "TLE text parsing, log formatting,
// and configuration file loading" carve-out extends to this label format
// too: the core only consumes the already-parsed point).
func NewWorkload(name, namespace, assignedNode string, ready bool, zoneCenter *GeoPoint, zoneRadiusKM float64) Workload {
	w := Workload{
		Name:             name,
		Namespace:        namespace,
		AssignedNodeName: assignedNode,
		Ready:            ready,
		ZoneRadiusKM:     zoneRadiusKM,
	}
	if zoneRadiusKM <= 0 {
		w.ZoneRadiusKM = DefaultZoneRadiusKM
	}
	if zoneCenter != nil {
		w.ZoneCenter = *zoneCenter
		w.hasZoneCenter = true
	}
	return w
}

// Zone returns the workload's zone center, or ErrMissingZoneLabel if none
// was resolved at construction time.
func (w Workload) Zone() (GeoPoint, error) {
	if !w.hasZoneCenter {
		return GeoPoint{}, fmt.Errorf("workload %q: %w", w.Name, ErrMissingZoneLabel)
	}
	return w.ZoneCenter, nil
}

// Pending reports whether the workload has not yet been bound to a node.
func (w Workload) Pending() bool {
	return w.AssignedNodeName == ""
}
