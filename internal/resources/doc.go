// Package resources is the read surface the presentation layer consumes:
// each cache-backed resource family is wrapped in a Resource that reports
// data, loading, and error state and supports explicit refetching.
package resources
