// Package backing is the HTTP client for the remote backing store: venues,
// ratings, actor profiles, and the anonymous session endpoints.
//
// Error shapes are decoded exactly once, here at the boundary. Every non-2xx
// response becomes an *Error tagged with a Kind and wrapping the matching
// sentinel, so call sites classify failures with errors.Is instead of
// matching on message text.
package backing
