// Package dedupe flags incoming transactions that are likely duplicates of
// previously posted ledger entries. The verdict is conjunctive on amount,
// date and description signals: precision is deliberately favoured over
// recall, because a false positive here silently drops a real transaction
// while a false negative is recoverable by audit.
package dedupe

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/similarity"
	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

// Thresholds holds the tunable parameters of duplicate detection. The
// defaults mirror the calibration the review workflow was tuned against;
// they are parameters, not constants.
type Thresholds struct {
	// AmountTolerance absorbs currency rounding between sources.
	AmountTolerance decimal.Decimal
	// DateWindowDays captures bank posting-date lag.
	DateWindowDays float64
	// JaccardThreshold is the minimum token overlap for descriptions to
	// count as similar.
	JaccardThreshold float64
	// AmountWeight, DateWeight and DescWeight rank candidates among
	// matches; they do not influence the boolean verdict.
	AmountWeight float64
	DateWeight   float64
	DescWeight   float64
}

// DefaultThresholds returns the calibrated default parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AmountTolerance:  decimal.NewFromFloat(0.01),
		DateWindowDays:   2,
		JaccardThreshold: 0.55,
		AmountWeight:     0.5,
		DateWeight:       0.2,
		DescWeight:       0.3,
	}
}

// Detector finds likely duplicates of an incoming transaction among existing
// ledger entries.
type Detector struct {
	thresholds Thresholds
	logger     logging.Logger
}

// NewDetector creates a Detector with the given thresholds.
func NewDetector(thresholds Thresholds, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Detector{thresholds: thresholds, logger: logger}
}

// Detect compares one incoming transaction against every existing ledger
// entry. It returns the duplicate verdict and all matching candidates,
// sorted by score descending; ties keep encounter order. An empty existing
// list yields no matches, not an error.
func (d *Detector) Detect(tx models.IncomingTransaction, existing []models.ExistingTransaction) (bool, []models.DuplicateCandidate) {
	txTokens := textnorm.TokenSet(tx.Description)

	var matches []models.DuplicateCandidate
	for _, e := range existing {
		amountMatch := similarity.AmountWithin(tx.Amount, e.Amount, d.thresholds.AmountTolerance)
		dateClose := similarity.DaysBetween(tx.Date, e.Date) <= d.thresholds.DateWindowDays
		descSimilar := similarity.Jaccard(txTokens, textnorm.TokenSet(e.Description)) >= d.thresholds.JaccardThreshold ||
			similarity.SubstringContainment(tx.Description, e.Description)

		// All three signals must agree for a duplicate verdict.
		if !(amountMatch && dateClose && descSimilar) {
			continue
		}

		matches = append(matches, models.DuplicateCandidate{
			TransactionID: e.ID,
			Amount:        e.Amount,
			Date:          e.Date,
			Description:   e.Description,
			Score:         d.score(amountMatch, dateClose, descSimilar),
		})
	}

	// Stable: equal scores keep the order the ledger entries arrived in.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > 0 {
		d.logger.WithFields(
			logging.Field{Key: "description", Value: tx.Description},
			logging.Field{Key: "matches", Value: len(matches)},
		).Debug("Flagged likely duplicate")
	}

	return len(matches) > 0, matches
}

// score combines the three signals into a ranking weight in [0,1].
func (d *Detector) score(amountMatch, dateClose, descSimilar bool) float64 {
	score := 0.0
	if amountMatch {
		score += d.thresholds.AmountWeight
	}
	if dateClose {
		score += d.thresholds.DateWeight
	}
	if descSimilar {
		score += d.thresholds.DescWeight
	}
	return score
}
