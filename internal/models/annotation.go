package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateCandidate references one existing transaction that plausibly
// represents the same real-world event as an incoming record. Score is the
// weighted signal strength in [0,1], used for ranking only.
type DuplicateCandidate struct {
	TransactionID string          `json:"id" yaml:"id"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Date          time.Time       `json:"date" yaml:"date"`
	Description   string          `json:"description" yaml:"description"`
	Score         float64         `json:"score" yaml:"score"`
}

// AnnotatedTransaction is an incoming record plus the fields the engine
// attaches during a batch run. A flagged duplicate is never auto-excluded:
// IncludeInImport always defaults to true and the call on whether to drop a
// record stays with the human reviewer.
type AnnotatedTransaction struct {
	IncomingTransaction

	// AccountID is the suggested ledger account, always drawn from the
	// supplied catalog. Empty means no suggestion could be made.
	AccountID        string               `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	Confidence       int                  `json:"confidenceScore" yaml:"confidence_score"`
	DuplicateFlag    bool                 `json:"duplicateFlag" yaml:"duplicate_flag"`
	DuplicateMatches []DuplicateCandidate `json:"duplicateMatches" yaml:"duplicate_matches"`
	IncludeInImport  bool                 `json:"includeInImport" yaml:"include_in_import"`
}
