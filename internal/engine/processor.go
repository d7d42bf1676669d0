// Package engine orchestrates one batch annotation run: account
// classification and duplicate detection applied independently to every
// incoming record. The engine only attaches annotations; it never reorders,
// merges or drops input records.
package engine

import (
	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/dedupe"
	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

// Processor runs batch annotation.
type Processor struct {
	detector *dedupe.Detector
	logger   logging.Logger
}

// NewProcessor creates a Processor around the given duplicate detector.
func NewProcessor(detector *dedupe.Detector, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Processor{detector: detector, logger: logger}
}

// Process annotates every record of the batch with an account suggestion
// (via the supplied strategy) and a duplicate verdict (against the existing
// ledger window). The two annotations do not influence one another, batch
// order is preserved, and every record defaults to included: a flagged
// duplicate is surfaced to the reviewer, never auto-rejected.
func (p *Processor) Process(
	batch []models.IncomingTransaction,
	existing []models.ExistingTransaction,
	accounts []models.Account,
	strategy classify.Strategy,
) []models.AnnotatedTransaction {
	annotated := make([]models.AnnotatedTransaction, 0, len(batch))

	for _, tx := range batch {
		suggestion := strategy.Classify(tx, accounts)
		flag, matches := p.detector.Detect(tx, existing)
		if matches == nil {
			matches = []models.DuplicateCandidate{}
		}

		annotated = append(annotated, models.AnnotatedTransaction{
			IncomingTransaction: tx,
			AccountID:           suggestion.AccountID,
			Confidence:          suggestion.Confidence,
			DuplicateFlag:       flag,
			DuplicateMatches:    matches,
			IncludeInImport:     true,
		})
	}

	p.logger.WithFields(
		logging.Field{Key: "strategy", Value: strategy.Name()},
		logging.Field{Key: "records", Value: len(annotated)},
	).Info("Annotated import batch")

	return annotated
}
