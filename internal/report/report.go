// Package report summarizes one annotation run for humans and for the
// import audit trail: how many records came in, how many were flagged as
// duplicates, how well the classifier covered the batch and where the
// suggestions landed.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

// AccountTally counts suggestions pointing at one account.
type AccountTally struct {
	AccountID string `json:"account_id"`
	Count     int    `json:"count"`
}

// Summary is the outcome of one annotation run.
type Summary struct {
	RunID          string         `json:"run_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Strategy       string         `json:"strategy"`
	Records        int            `json:"records"`
	Duplicates     int            `json:"duplicates"`
	Suggested      int            `json:"suggested"`
	MeanConfidence float64        `json:"mean_confidence"`
	ByAccount      []AccountTally `json:"by_account"`
}

// Generator builds run summaries.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// Summarize computes the summary for an annotated batch. Each run gets a
// fresh UUID so downstream audit entries can reference it.
func (g *Generator) Summarize(strategy string, annotated []models.AnnotatedTransaction) Summary {
	summary := Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Strategy:    strategy,
		Records:     len(annotated),
	}

	confidenceTotal := 0
	tally := make(map[string]int)
	for _, record := range annotated {
		if record.DuplicateFlag {
			summary.Duplicates++
		}
		if record.AccountID != "" {
			summary.Suggested++
			tally[record.AccountID]++
		}
		confidenceTotal += record.Confidence
	}
	if summary.Records > 0 {
		summary.MeanConfidence = float64(confidenceTotal) / float64(summary.Records)
	}

	for accountID, count := range tally {
		summary.ByAccount = append(summary.ByAccount, AccountTally{AccountID: accountID, Count: count})
	}
	sort.Slice(summary.ByAccount, func(i, j int) bool {
		if summary.ByAccount[i].Count != summary.ByAccount[j].Count {
			return summary.ByAccount[i].Count > summary.ByAccount[j].Count
		}
		return summary.ByAccount[i].AccountID < summary.ByAccount[j].AccountID
	})

	g.logger.WithFields(
		logging.Field{Key: "run_id", Value: summary.RunID},
		logging.Field{Key: "records", Value: summary.Records},
		logging.Field{Key: "duplicates", Value: summary.Duplicates},
	).Info("Generated run summary")
	return summary
}

// Render formats the summary for terminal output.
func (g *Generator) Render(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s)\n", summary.RunID, summary.Strategy)
	fmt.Fprintf(&b, "  Records:          %d\n", summary.Records)
	fmt.Fprintf(&b, "  Flagged duplicates: %d\n", summary.Duplicates)
	fmt.Fprintf(&b, "  With suggestion:  %d\n", summary.Suggested)
	fmt.Fprintf(&b, "  Mean confidence:  %.1f\n", summary.MeanConfidence)
	if len(summary.ByAccount) > 0 {
		b.WriteString("  Suggestions by account:\n")
		for _, tally := range summary.ByAccount {
			fmt.Fprintf(&b, "    %-20s %d\n", tally.AccountID, tally.Count)
		}
	}
	return b.String()
}

// Save writes the summary as JSON for the audit trail.
func (g *Generator) Save(path string, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write run summary to %s: %w", path, err)
	}
	return nil
}
