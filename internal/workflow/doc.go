// Package workflow holds the creation call sequences that must tolerate
// races and uniqueness conflicts: submitting a rating (idempotent against
// the one-rating-per-actor-per-venue rule) and adding a venue discovered
// through the external directory (gated by the matcher, followed by
// best-effort background enrichment that can never fail the creation).
package workflow
