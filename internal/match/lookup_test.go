package match

import (
	"testing"

	"marquee/internal/directory"
	"marquee/internal/venues"
)

func localSet() []venues.Venue {
	return []venues.Venue{
		{ID: "v1", Name: "Bowery Ballroom", Place: "New York"},
		{ID: "v2", Name: "The Fillmore", Place: "San Francisco"},
	}
}

func TestResolveFullKey(t *testing.T) {
	lookup := BuildLookup(localSet())
	id, ok := lookup.Resolve(directory.Candidate{Name: "Bowery Ballroom", Place: "New York"})
	if !ok || id != "v1" {
		t.Fatalf("Resolve = (%q, %v), want (v1, true)", id, ok)
	}
}

func TestResolveNameOnlyFallback(t *testing.T) {
	lookup := BuildLookup(localSet())
	// Place metadata disagrees; the name-only key still hits.
	id, ok := lookup.Resolve(directory.Candidate{Name: "Bowery Ballroom", Place: "NYC"})
	if !ok || id != "v1" {
		t.Fatalf("Resolve = (%q, %v), want (v1, true)", id, ok)
	}
}

func TestResolveNameEmbedsPlace(t *testing.T) {
	lookup := BuildLookup(localSet())
	id, ok := lookup.Resolve(directory.Candidate{Name: "The Fillmore, San Francisco", Place: "San Francisco"})
	if !ok || id != "v2" {
		t.Fatalf("Resolve = (%q, %v), want (v2, true)", id, ok)
	}
}

func TestResolveNoMatch(t *testing.T) {
	lookup := BuildLookup(localSet())
	if id, ok := lookup.Resolve(directory.Candidate{Name: "Unrelated Club", Place: "Chicago"}); ok {
		t.Fatalf("expected no match, got %q", id)
	}
}

func TestFullKeysTakePriorityOverFallbacks(t *testing.T) {
	local := []venues.Venue{
		{ID: "ny", Name: "The Fillmore", Place: "New York"},
		{ID: "sf", Name: "The Fillmore", Place: "San Francisco"},
	}
	lookup := BuildLookup(local)

	// Both full keys survive even though the venues share a name.
	if id, ok := lookup.Resolve(directory.Candidate{Name: "The Fillmore", Place: "San Francisco"}); !ok || id != "sf" {
		t.Fatalf("full key got (%q, %v), want (sf, true)", id, ok)
	}
	if id, ok := lookup.Resolve(directory.Candidate{Name: "The Fillmore", Place: "New York"}); !ok || id != "ny" {
		t.Fatalf("full key got (%q, %v), want (ny, true)", id, ok)
	}

	// Ambiguous name-only lookups hit whichever venue claimed the slot
	// first; the important part is the full keys were not clobbered.
	if _, ok := lookup.Resolve(directory.Candidate{Name: "The Fillmore", Place: "Chicago"}); !ok {
		t.Fatal("name-only fallback should still resolve")
	}
}

func TestBuildLookupSkipsEmptyNames(t *testing.T) {
	lookup := BuildLookup([]venues.Venue{{ID: "x", Name: "  ", Place: "Boston"}})
	if len(lookup) != 0 {
		t.Fatalf("expected empty lookup, got %v", lookup)
	}
}
