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

// Package cache holds short-TTL bookkeeping the core keeps around
// decisions, distinct from ephemeris samples themselves (spec.md §3
// forbids caching those beyond a single decision). Grounded on
// pkg/cache/unavailableofferings.go's pattern of a patrickmn/go-cache
// instance used purely as a recency window; entries expire by TTL alone
// and no eviction callback is registered.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	unknownSatelliteTTL             = 10 * time.Minute
	unknownSatelliteCleanupInterval = time.Minute
)

// UnknownSatellites remembers satellite IDs that recently failed catalog
// lookup or propagation, so repeated misconfigured-node log spam can be
// throttled by a caller without re-deriving "have I already logged this
// sat_id recently". It does not change control flow: every lookup still
// happens, this only tracks recency for logging decisions.
type UnknownSatellites struct {
	c *gocache.Cache
}

func NewUnknownSatellites() *UnknownSatellites {
	return &UnknownSatellites{c: gocache.New(unknownSatelliteTTL, unknownSatelliteCleanupInterval)}
}

// SeenRecently reports whether satID was marked within the TTL window,
// and marks it as seen now regardless of the prior state.
func (u *UnknownSatellites) SeenRecently(satID int) bool {
	key := fmt.Sprintf("%d", satID)
	_, found := u.c.Get(key)
	u.c.SetDefault(key, struct{}{})
	return found
}
