package match

import (
	"strings"

	"marquee/internal/directory"
	"marquee/internal/entitykey"
)

// QueryKind classifies free-text search input.
type QueryKind string

const (
	// QueryVenueName means the input names a venue; it is forwarded as-is.
	QueryVenueName QueryKind = "venue"
	// QueryPlaceName means the input names a city or neighborhood; the
	// provider query is rewritten to seek venues in that place.
	QueryPlaceName QueryKind = "place"
)

// venueKeywords are the venue-type words whose presence marks a query as a
// venue-name search.
var venueKeywords = map[string]struct{}{
	"hall": {}, "club": {}, "theater": {}, "theatre": {}, "bar": {},
	"lounge": {}, "arena": {}, "ballroom": {}, "stage": {}, "room": {},
	"house": {}, "cafe": {}, "tavern": {}, "venue": {}, "center": {},
	"centre": {}, "garden": {}, "pavilion": {},
}

// ClassifyQuery decides whether free-text input is a venue-name or
// place-name search. A multi-word query containing none of the venue-type
// keywords reads as a place name ("lower east side"), everything else as a
// venue name.
func ClassifyQuery(query string) QueryKind {
	words := strings.Fields(entitykey.Normalize(query))
	if len(words) < 2 {
		return QueryVenueName
	}
	for _, word := range words {
		if _, ok := venueKeywords[word]; ok {
			return QueryVenueName
		}
	}
	return QueryPlaceName
}

// ProviderQuery builds the query string forwarded to the external provider.
// Place searches prepend a generic venue-seeking phrase so the provider
// returns venues in the place instead of the place itself.
func ProviderQuery(query string, kind QueryKind) string {
	query = strings.TrimSpace(query)
	if kind == QueryPlaceName {
		return "live music venues in " + query
	}
	return query
}

// FilterResults applies the post-condition filter to provider results. The
// provider's relevance ranking is too permissive (a one-word query matches
// unrelated venues across many cities), so results that do not demonstrably
// relate to the query are dropped.
func FilterResults(query string, kind QueryKind, results []directory.Candidate) []directory.Candidate {
	normQuery := entitykey.Normalize(query)
	words := strings.Fields(normQuery)
	if normQuery == "" {
		return nil
	}

	kept := make([]directory.Candidate, 0, len(results))
	for _, candidate := range results {
		if matchesQuery(normQuery, words, kind, candidate) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func matchesQuery(normQuery string, words []string, kind QueryKind, candidate directory.Candidate) bool {
	place := entitykey.Normalize(candidate.Place)

	if kind == QueryPlaceName {
		return containsAllWords(place, words) || (place != "" && strings.Contains(normQuery, place))
	}

	haystack := entitykey.Normalize(candidate.Name + " " + candidate.Place + " " + candidate.Address)
	if strings.Contains(haystack, normQuery) {
		return true
	}
	if containsAllWords(haystack, words) {
		return true
	}
	// The query itself may be (or contain) the candidate's place.
	return place != "" && (normQuery == place || strings.Contains(normQuery, place))
}

func containsAllWords(haystack string, words []string) bool {
	if haystack == "" || len(words) == 0 {
		return false
	}
	for _, word := range words {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}
