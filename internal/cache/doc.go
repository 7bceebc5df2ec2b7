// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

/*
Package cache provides a thread-safe, generic in-memory cache with TTL support.

The recommendation engine memoizes successful mobile and broadband outcomes
here, keyed by GenerateKey over the normalized query. Catalogs and model
artifacts never change after startup, so an entry only goes stale through its
TTL.

# Behavior

  - Lazy expiration on Get, plus a background sweep every DefaultCleanupInterval
  - Optional MaxEntries bound; the entry nearest expiry is evicted first
  - Hit, miss and eviction counters via GetStats and HitRate

# Usage Example

	results := cache.NewWithOptions[*recommend.MobileResult](5*time.Minute, cache.Options{MaxEntries: 10000})
	defer results.Close()

	key := cache.GenerateKey("mobile", query)
	if r, ok := results.Get(key); ok {
	    return r
	}
	r := compute(query)
	results.Set(key, r)

# Thread Safety

All methods are safe for concurrent use. Stats use a separate lock so that
counter updates never contend with the entry map.
*/
package cache
