// Package match reconciles externally discovered candidates against venues
// already known locally, and interprets free-text search input.
//
// Matching is exact equality over normalized keys at three specificity
// levels (full, name-only, name-without-place); there is no fuzzy matching.
// The query side classifies input as a venue-name or place-name search and
// applies the required post-filter that compensates for the provider's
// permissive relevance ranking.
package match
