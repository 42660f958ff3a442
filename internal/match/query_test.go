package match

import (
	"testing"

	"marquee/internal/directory"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		query string
		want  QueryKind
	}{
		{"fillmore", QueryVenueName},
		{"bowery ballroom", QueryVenueName},
		{"great american music hall", QueryVenueName},
		{"9:30 club", QueryVenueName},
		{"lower east side", QueryPlaceName},
		{"new york", QueryPlaceName},
		{"san francisco", QueryPlaceName},
	}
	for _, tt := range tests {
		if got := ClassifyQuery(tt.query); got != tt.want {
			t.Errorf("ClassifyQuery(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestProviderQuery(t *testing.T) {
	if got := ProviderQuery("bowery ballroom", QueryVenueName); got != "bowery ballroom" {
		t.Fatalf("venue query rewritten: %q", got)
	}
	if got := ProviderQuery("new york", QueryPlaceName); got != "live music venues in new york" {
		t.Fatalf("place query = %q", got)
	}
}

func TestFilterResultsPlaceSearch(t *testing.T) {
	results := []directory.Candidate{
		{Name: "Mercury Lounge", Place: "New York"},
		{Name: "Empty Bottle", Place: "Chicago"},
		{Name: "Rough Trade", Place: "New York, NY"},
	}
	kept := FilterResults("new york", QueryPlaceName, results)
	if len(kept) != 2 {
		t.Fatalf("kept %d results, want 2: %#v", len(kept), kept)
	}
	for _, c := range kept {
		if c.Place == "Chicago" {
			t.Fatal("Chicago result should have been filtered")
		}
	}
}

func TestFilterResultsPlaceSearchReverseContainment(t *testing.T) {
	// The query may be more specific than the provider's place field.
	results := []directory.Candidate{{Name: "Union Pool", Place: "Brooklyn"}}
	kept := FilterResults("brooklyn williamsburg", QueryPlaceName, results)
	if len(kept) != 1 {
		t.Fatalf("expected reverse containment to keep result, got %#v", kept)
	}
}

func TestFilterResultsVenueSearch(t *testing.T) {
	results := []directory.Candidate{
		{Name: "Bowery Ballroom", Place: "New York", Address: "6 Delancey St"},
		{Name: "Bowery Electric", Place: "New York"},
		{Name: "Some Ballroom", Place: "Des Moines"},
	}
	kept := FilterResults("bowery ballroom", QueryVenueName, results)
	if len(kept) != 1 || kept[0].Name != "Bowery Ballroom" {
		t.Fatalf("unexpected filter output: %#v", kept)
	}
}

func TestFilterResultsVenueSearchAllWordsAcrossFields(t *testing.T) {
	results := []directory.Candidate{
		{Name: "The Independent", Place: "San Francisco", Address: "628 Divisadero St"},
	}
	kept := FilterResults("independent san francisco", QueryVenueName, results)
	if len(kept) != 1 {
		t.Fatalf("expected all-words match across name+place, got %#v", kept)
	}
}

func TestFilterResultsVenueQueryEqualsPlace(t *testing.T) {
	// A one-word query that happens to be a place keeps venues in it.
	results := []directory.Candidate{{Name: "Exit/In", Place: "Nashville"}}
	kept := FilterResults("nashville", QueryVenueName, results)
	if len(kept) != 1 {
		t.Fatalf("expected place-equality match, got %#v", kept)
	}
}

func TestFilterResultsEmptyQuery(t *testing.T) {
	if kept := FilterResults("  ", QueryVenueName, []directory.Candidate{{Name: "X"}}); kept != nil {
		t.Fatalf("expected nil for empty query, got %#v", kept)
	}
}
