// Package similarity implements the pairwise comparison primitives used by
// duplicate detection: token-set overlap, date distance, amount distance and
// substring containment.
package similarity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

// Jaccard returns |A∩B| / |A∪B| for two token sets. Two empty sets compare
// as identical (1.0), which also avoids a zero division.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// DaysBetween returns the absolute difference between two dates in calendar
// days.
func DaysBetween(d1, d2 time.Time) float64 {
	diff := d1.Sub(d2).Hours() / 24
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// SubstringContainment reports whether the normalized form of either string
// fully contains the other. This catches descriptions where one side is a
// truncated or expanded version of the other.
func SubstringContainment(a, b string) bool {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// AmountWithin reports whether two amounts differ by no more than the given
// tolerance.
func AmountWithin(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
