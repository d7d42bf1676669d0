package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

// annotatedOut is the wire shape for one annotated record. Dates go out as
// plain YYYY-MM-DD days, matching the input format.
type annotatedOut struct {
	Type         string         `json:"type"`
	Amount       string         `json:"amount"`
	Description  string         `json:"description"`
	Date         string         `json:"date"`
	Category     string         `json:"category,omitempty"`
	OriginalText string         `json:"original_text,omitempty"`
	AccountID    string         `json:"account_id,omitempty"`
	Confidence   int            `json:"confidenceScore"`
	Duplicate    bool           `json:"duplicateFlag"`
	Matches      []candidateOut `json:"duplicateMatches"`
	Include      bool           `json:"includeInImport"`
}

type candidateOut struct {
	TransactionID string  `json:"id"`
	Amount        string  `json:"amount"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Score         float64 `json:"score"`
}

// SaveAnnotated writes the annotated batch as JSON, preserving batch order.
func (s *Store) SaveAnnotated(path string, annotated []models.AnnotatedTransaction) error {
	out := make([]annotatedOut, 0, len(annotated))
	for _, record := range annotated {
		matches := make([]candidateOut, 0, len(record.DuplicateMatches))
		for _, m := range record.DuplicateMatches {
			matches = append(matches, candidateOut{
				TransactionID: m.TransactionID,
				Amount:        m.Amount.StringFixed(2),
				Date:          m.Date.Format(models.DayLayout),
				Description:   m.Description,
				Score:         m.Score,
			})
		}
		out = append(out, annotatedOut{
			Type:         string(record.Type),
			Amount:       record.Amount.StringFixed(2),
			Description:  record.Description,
			Date:         record.Date.Format(models.DayLayout),
			Category:     record.Category,
			OriginalText: record.OriginalText,
			AccountID:    record.AccountID,
			Confidence:   record.Confidence,
			Duplicate:    record.DuplicateFlag,
			Matches:      matches,
			Include:      record.IncludeInImport,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal annotated batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write annotated batch to %s: %w", path, err)
	}

	s.logger.WithField("count", len(out)).Debug("Wrote annotated batch")
	return nil
}

// ReviewRow is one line of the reviewer CSV: the record, the suggestion and
// a compact summary of duplicate evidence.
type ReviewRow struct {
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	AccountID   string `csv:"Suggested Account"`
	Confidence  int    `csv:"Confidence"`
	Duplicate   string `csv:"Duplicate"`
	Matches     string `csv:"Matched Transactions"`
	Include     string `csv:"Include"`
}

// WriteReviewCSV writes the annotated batch as a spreadsheet for manual
// review. Duplicate matches collapse to "id (score)" pairs so the reviewer
// can chase them in the ledger.
func (s *Store) WriteReviewCSV(path string, annotated []models.AnnotatedTransaction) error {
	rows := make([]ReviewRow, 0, len(annotated))
	for _, record := range annotated {
		refs := make([]string, 0, len(record.DuplicateMatches))
		for _, m := range record.DuplicateMatches {
			refs = append(refs, fmt.Sprintf("%s (%.2f)", m.TransactionID, m.Score))
		}
		rows = append(rows, ReviewRow{
			Date:        record.Date.Format(models.DayLayout),
			Type:        string(record.Type),
			Amount:      record.Amount.StringFixed(2),
			Description: record.Description,
			Category:    record.Category,
			AccountID:   record.AccountID,
			Confidence:  record.Confidence,
			Duplicate:   strconv.FormatBool(record.DuplicateFlag),
			Matches:     strings.Join(refs, "; "),
			Include:     strconv.FormatBool(record.IncludeInImport),
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create review file %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write review CSV: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(rows)},
		logging.Field{Key: "file", Value: path},
	).Debug("Wrote review CSV")
	return nil
}
