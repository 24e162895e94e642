// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

The recommendation engine keeps each user's daily result in an LRU keyed by
the feature snapshot size, the batch range, the sorted favorites and the
result limit. A repeated request is served from memory; a changed favorites
set or a grown feature store misses.

	c := cache.NewLRU[[]int](1000, time.Hour)
	c.Add("120@100-119|1,42|5", ids)
	if ids, ok := c.Get("120@100-119|1,42|5"); ok {
	    // use ids
	}

Entries expire lazily on Get; CleanupExpired drops them in bulk.
*/
package cache
