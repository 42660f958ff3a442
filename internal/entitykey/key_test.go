package entitykey

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Bowery Ballroom", "bowery ballroom"},
		{"trims", "  The Fillmore  ", "the fillmore"},
		{"collapses whitespace", "Great  American\tMusic   Hall", "great american music hall"},
		{"strips punctuation", "St. Vitus Bar, Brooklyn!", "st vitus bar brooklyn"},
		{"apostrophes split words", "Toad's Place", "toad s place"},
		{"empty", "   ", ""},
		{"unicode case folds", "Café ÉLYSÉE", "café élysée"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	in := "The  9:30 Club -- Washington, D.C."
	first := Normalize(in)
	for i := 0; i < 5; i++ {
		if got := Normalize(in); got != first {
			t.Fatalf("normalization not stable: %q vs %q", got, first)
		}
	}
}

func TestFullKey(t *testing.T) {
	a := FullKey("Bowery Ballroom", "New York")
	b := FullKey("bowery  ballroom!", "new york")
	if a == "" || a != b {
		t.Fatalf("equivalent inputs produced different keys: %q vs %q", a, b)
	}

	c := FullKey("Bowery Ballroom", "NYC")
	if a == c {
		t.Fatal("different places must produce different full keys")
	}

	if FullKey("  ", "New York") != "" {
		t.Fatal("empty name must yield empty full key")
	}
}

func TestNameKeyIgnoresPlace(t *testing.T) {
	if NameKey("Bowery Ballroom") != NameKey("  BOWERY   BALLROOM ") {
		t.Fatal("name keys should agree after normalization")
	}
}

func TestNameWithoutPlaceKey(t *testing.T) {
	got := NameWithoutPlaceKey("Bowery Ballroom, New York", "New York")
	if got != "bowery ballroom" {
		t.Fatalf("NameWithoutPlaceKey = %q, want %q", got, "bowery ballroom")
	}

	if got := NameWithoutPlaceKey("Bowery Ballroom", "New York"); got != "" {
		t.Fatalf("expected empty key when place absent from name, got %q", got)
	}

	if got := NameWithoutPlaceKey("New York", "New York"); got != "" {
		t.Fatalf("expected empty key when removal leaves nothing, got %q", got)
	}

	if got := NameWithoutPlaceKey("Bowery Ballroom, New York", ""); got != "" {
		t.Fatalf("expected empty key with empty place, got %q", got)
	}
}
