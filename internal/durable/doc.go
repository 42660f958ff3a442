// Package durable is the client-side persistent key-value store backing the
// resource caches between runs.
//
// Unavailability is a value, not a crash: when the state directory cannot be
// locked or the database cannot be opened, Open still returns a usable Store
// whose every operation reports ErrUnavailable. Callers degrade to "no
// persistence this session" and carry on.
package durable
