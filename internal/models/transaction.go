package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the calendar-day format used across all external interfaces.
const DayLayout = "2006-01-02"

// ParseDay parses a calendar day with no time component. Unparseable dates
// are a loud error: silently defaulting a date could mask duplicates.
func ParseDay(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", raw, err)
	}
	return t, nil
}

// ExistingTransaction is a previously posted ledger entry, read-only input
// to duplicate detection.
type ExistingTransaction struct {
	ID          string          `json:"id" yaml:"id"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Type        TransactionType `json:"type" yaml:"type"`
	AccountID   string          `json:"account_id" yaml:"account_id"`
}

// IncomingTransaction is one record produced by the upstream extraction
// service. The engine never mutates these fields; it only attaches an
// Annotation alongside them.
type IncomingTransaction struct {
	Type         TransactionType `json:"type" yaml:"type"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Description  string          `json:"description" yaml:"description"`
	Date         time.Time       `json:"date" yaml:"date"`
	Category     string          `json:"category" yaml:"category"`
	OriginalText string          `json:"original_text,omitempty" yaml:"original_text,omitempty"`
}
