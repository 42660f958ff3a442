// Package directory is the HTTP client for the external place search
// provider. It returns raw candidates only; interpreting queries and
// filtering the provider's overly permissive relevance ranking is the job
// of internal/match.
package directory
