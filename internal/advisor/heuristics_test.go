package advisor

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsPotentialTransposition(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want bool
	}{
		{"whole unit swap", 54.00, 45.00, true},
		{"hundreds swap", 5400.00, 4500.00, true},
		{"cents swap", 10.54, 10.45, true},
		{"identical amounts", 54.00, 54.00, false},
		{"difference not multiple of nine", 5200.00, 5044.00, false},
		{"multiple of nine but not anagram", 27.00, 18.00, false},
		{"scaling pair is not transposition", 1000.00, 100.00, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := isPotentialTransposition(decimal.NewFromFloat(c.a), decimal.NewFromFloat(c.b))
			if got != c.want {
				t.Errorf("isPotentialTransposition(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestIsScalingError(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want bool
	}{
		{"ten times larger", 1000.00, 100.00, true},
		{"ten times smaller", 100.00, 1000.00, true},
		{"with cents", 12.30, 123.00, true},
		{"unrelated amounts", 1000.00, 120.00, false},
		{"hundred times larger", 10000.00, 100.00, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := isScalingError(decimal.NewFromFloat(c.a), decimal.NewFromFloat(c.b))
			if got != c.want {
				t.Errorf("isScalingError(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"395443", "395443", 0},
		{"395443", "395444", 1},
		{"395443", "", 6},
		{"INV-01", "INV-0l", 1},
		{"857576", "875576", 2}, // adjacent swap costs two single edits
		{"kitten", "sitting", 3},
	}

	for _, c := range cases {
		if got := levenshteinDistance(c.a, c.b); got != c.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestWithinDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return d
	}

	if !withinDays(day("2024-03-15"), day("2024-03-17"), 2) {
		t.Error("Expected two days apart to be within the window")
	}
	if !withinDays(day("2024-03-17"), day("2024-03-15"), 2) {
		t.Error("Expected the window to be symmetric")
	}
	if withinDays(day("2024-03-15"), day("2024-03-18"), 2) {
		t.Error("Expected three days apart to be outside the window")
	}
}
