// Package cache provides a small generic TTL cache with in-memory and
// Redis backends, plus [GetOrSet] for stampede-free memoization.
//
// The dashboard stats use it: with REDIS_URL set, every replica shares one
// cached aggregate; without it each process keeps its own copy.
//
//	stats, err := cache.GetOrSet(ctx, c, "dashboard", 30*time.Second,
//	    func(ctx context.Context) (Stats, error) { return store.aggregate(ctx) })
package cache
