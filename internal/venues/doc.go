// Package venues holds the domain records shared across marquee: local
// venues, multi-aspect ratings, and actor profiles, plus the validation
// rules enforced before anything is sent to the backing store.
package venues
