// Package resourcecache is the freshness-and-coalescing primitive behind
// every asynchronously fetched resource family (venues, ratings, profile).
//
// A Cache keeps entries in memory, hydrates misses from the durable store
// when one is attached, and coalesces concurrent fetches for the same key
// into a single call. A failed fetch degrades to the last good value when
// one exists; durable-store failures are logged and never surface.
package resourcecache
