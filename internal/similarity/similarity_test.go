package similarity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical", "office rent july", "office rent july", 1.0},
		{"disjoint", "office rent", "fuel diesel", 0.0},
		{"partial overlap", "office rent july", "office rent august", 0.5},
		{"both empty", "", "", 1.0},
		{"one empty", "office rent", "", 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Jaccard(textnorm.TokenSet(tc.a), textnorm.TokenSet(tc.b))
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestJaccardSymmetryAndBounds(t *testing.T) {
	pairs := [][2]string{
		{"office rent july", "office rent"},
		{"shell garage fuel", "fuel purchase shell"},
		{"", "salary payment"},
		{"a b c d", "c d e f"},
	}
	for _, p := range pairs {
		a := textnorm.TokenSet(p[0])
		b := textnorm.TokenSet(p[1])
		ab := Jaccard(a, b)
		ba := Jaccard(b, a)
		assert.Equal(t, ab, ba, "jaccard must be symmetric for %q/%q", p[0], p[1])
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestDaysBetween(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return d
	}

	assert.InDelta(t, 0, DaysBetween(day("2025-07-01"), day("2025-07-01")), 1e-9)
	assert.InDelta(t, 1, DaysBetween(day("2025-07-01"), day("2025-07-02")), 1e-9)
	// Order must not matter.
	assert.InDelta(t, 1, DaysBetween(day("2025-07-02"), day("2025-07-01")), 1e-9)
	assert.InDelta(t, 31, DaysBetween(day("2025-07-01"), day("2025-08-01")), 1e-9)
}

func TestSubstringContainment(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{"truncated description", "Office rent", "office rent july", true},
		{"expanded description", "office rent july payment", "Rent july", true},
		{"same tokens not contiguous", "office rent july payment", "rent payment office", false},
		{"contained after normalization", "OFFICE-RENT: July", "office rent july", true},
		{"unrelated", "fuel purchase", "office rent", false},
		{"empty side never contains", "", "office rent", false},
		{"both empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SubstringContainment(tc.a, tc.b))
			assert.Equal(t, tc.expected, SubstringContainment(tc.b, tc.a))
		})
	}
}

func TestAmountWithin(t *testing.T) {
	tolerance := decimal.NewFromFloat(0.01)
	amount := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	assert.True(t, AmountWithin(amount("500.00"), amount("500.00"), tolerance))
	assert.True(t, AmountWithin(amount("500.00"), amount("500.01"), tolerance))
	assert.True(t, AmountWithin(amount("500.01"), amount("500.00"), tolerance))
	assert.False(t, AmountWithin(amount("500.00"), amount("500.02"), tolerance))
	assert.False(t, AmountWithin(amount("500.00"), amount("700.00"), tolerance))
}
