// Package classify suggests a ledger account for each incoming transaction.
// Two calibrated strategies share one contract: a keyword-priority cascade
// for structured receipt/PDF extraction, and a contextual weighted scorer
// for freeform natural-language text. Both are pure functions of the
// transaction and the account catalog.
package classify

import (
	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

// Suggestion is the outcome of classifying one transaction. An empty
// AccountID with zero confidence means "no suggestion"; it is a data
// condition, never an error.
type Suggestion struct {
	// AccountID is always drawn from the supplied catalog.
	AccountID string
	// Confidence is a heuristic score in [0,100], not a calibrated
	// probability.
	Confidence int
}

// Strategy is the shared classification contract. Implementations must be
// deterministic, side-effect-free, and total: an empty catalog yields a zero
// Suggestion, never a panic or error.
type Strategy interface {
	// Classify suggests an account for the transaction from the catalog.
	Classify(tx models.IncomingTransaction, accounts []models.Account) Suggestion

	// Name returns the strategy name for logging and debugging.
	Name() string
}

// Options bundles the tunables used when building strategies.
type Options struct {
	// Rules overrides the built-in structured cascade when non-empty.
	Rules []Rule
	// PhraseRules overrides the built-in contextual affinities when
	// non-empty.
	PhraseRules []PhraseRule
	// FreeformScoreThreshold is the minimum cumulative score before the
	// freeform strategy trusts its top-ranked account. Zero means the
	// calibrated default.
	FreeformScoreThreshold int
	Logger                 logging.Logger
}

// ForProvenance selects the strategy matching where a record was extracted
// from: the structured cascade for receipt/PDF records, the freeform scorer
// for typed or transcribed text.
func ForProvenance(p models.Provenance, opts Options) Strategy {
	if p == models.ProvenanceFreeform {
		return NewFreeformStrategy(opts.PhraseRules, opts.FreeformScoreThreshold, opts.Logger)
	}
	return NewStructuredStrategy(opts.Rules, opts.Logger)
}
