// Package cache provides a bounded in-memory LRU cache and a memoizer that
// computes every missing key at most once at a time.
//
// The signature service derives a filtered configuration per audience (the
// caller's e-mail domain and roles). The underlying configuration never
// changes after load, so results are kept until evicted:
//
//	memo := cache.NewMemo(cache.NewMemory[*access.ClientConfig](cache.WithMaxEntries(512)))
//	cc, err := memo.Get(ctx, id.Audience(), func(ctx context.Context) (*access.ClientConfig, error) {
//	    return access.Filter(cfg, tpls, pronouns.Default, id)
//	})
//
// Concurrent misses for the same key share one call of the compute function.
// Errors are returned to every waiter and never cached.
package cache
