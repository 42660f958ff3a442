// Package identity establishes the stable anonymous actor id for this
// process, exactly once.
//
// Bootstrap is a small state machine: Uninitialized, Resolving,
// Established, Unavailable. Concurrent callers share one resolution, so the
// identity-creation endpoint is hit at most once no matter how many callers
// race. Exhausting every attempt resolves to Unavailable, a valid degraded
// terminal state rather than an error.
package identity
