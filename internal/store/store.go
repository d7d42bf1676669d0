// Package store adapts the engine's pure inputs and outputs to files: the
// account catalog and existing-transaction window arrive as JSON from the
// ledger service, incoming batches as JSON from the extraction service, and
// annotated results leave as JSON plus an optional reviewer CSV. All input
// validation lives here — malformed type tags, dates or amounts are loud
// errors at this boundary, never silent defaults inside the engine.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

// Store loads and saves the engine's boundary files.
type Store struct {
	logger logging.Logger
}

// NewStore creates a Store.
func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{logger: logger}
}

// rawAccount mirrors the ledger service's catalog JSON.
type rawAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Code string `json:"code"`
}

// LoadAccounts reads the account catalog. Unknown account types are
// rejected; the catalog order is preserved because classification
// tie-breaks depend on it.
func (s *Store) LoadAccounts(path string) ([]models.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var raw []rawAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file %s: %w", path, err)
	}

	accounts := make([]models.Account, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("account %d: missing id", i)
		}
		accountType, err := models.ParseAccountType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", r.ID, err)
		}
		accounts = append(accounts, models.Account{ID: r.ID, Name: r.Name, Type: accountType, Code: r.Code})
	}

	s.logger.WithField("count", len(accounts)).Debug("Loaded account catalog")
	return accounts, nil
}

// rawExisting mirrors the ledger service's transaction JSON.
type rawExisting struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	AccountID   string          `json:"account_id"`
}

// LoadExistingWindow reads previously posted transactions and restricts
// them to the duplicate-detection window: entries dated within windowDays
// before asOf, newest first, capped at maxRecords.
func (s *Store) LoadExistingWindow(path string, asOf time.Time, windowDays, maxRecords int) ([]models.ExistingTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing transactions file: %w", err)
	}

	var raw []rawExisting
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse existing transactions file %s: %w", path, err)
	}

	cutoff := asOf.AddDate(0, 0, -windowDays)
	existing := make([]models.ExistingTransaction, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("existing transaction %d: missing id", i)
		}
		txType, err := models.ParseTransactionType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("existing transaction %s: %w", r.ID, err)
		}
		date, err := models.ParseDay(r.Date)
		if err != nil {
			return nil, fmt.Errorf("existing transaction %s: %w", r.ID, err)
		}
		if date.Before(cutoff) {
			continue
		}
		existing = append(existing, models.ExistingTransaction{
			ID:          r.ID,
			Amount:      r.Amount,
			Date:        date,
			Description: r.Description,
			Type:        txType,
			AccountID:   r.AccountID,
		})
	}

	// Newest entries are the likeliest duplicate sources; keep them when
	// the cap bites.
	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].Date.After(existing[j].Date)
	})
	if len(existing) > maxRecords {
		existing = existing[:maxRecords]
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(existing)},
		logging.Field{Key: "window_days", Value: windowDays},
	).Debug("Loaded existing transaction window")
	return existing, nil
}

// rawIncoming mirrors the extraction service's record JSON.
type rawIncoming struct {
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	Category     string          `json:"category"`
	OriginalText string          `json:"original_text"`
}

// rawBatch is the on-disk batch shape: the provenance of the whole batch
// plus its records.
type rawBatch struct {
	Provenance   string        `json:"provenance"`
	Transactions []rawIncoming `json:"transactions"`
}

// LoadBatch reads one incoming batch. A record with an unknown type tag or
// an unparseable date rejects the whole file: silently defaulting a field
// could mask duplicates or misclassifications downstream.
func (s *Store) LoadBatch(path string) ([]models.IncomingTransaction, models.Provenance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read batch file: %w", err)
	}

	var raw rawBatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, "", fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}

	provenance, err := models.ParseProvenance(raw.Provenance)
	if err != nil {
		return nil, "", fmt.Errorf("batch file %s: %w", path, err)
	}

	batch := make([]models.IncomingTransaction, 0, len(raw.Transactions))
	for i, r := range raw.Transactions {
		txType, err := models.ParseTransactionType(r.Type)
		if err != nil {
			return nil, "", fmt.Errorf("batch record %d: %w", i, err)
		}
		date, err := models.ParseDay(r.Date)
		if err != nil {
			return nil, "", fmt.Errorf("batch record %d: %w", i, err)
		}
		batch = append(batch, models.IncomingTransaction{
			Type:         txType,
			Amount:       r.Amount,
			Description:  r.Description,
			Date:         date,
			Category:     r.Category,
			OriginalText: r.OriginalText,
		})
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(batch)},
		logging.Field{Key: "provenance", Value: string(provenance)},
	).Debug("Loaded incoming batch")
	return batch, provenance, nil
}

// RulesConfig is the YAML override for the classification rule tables.
type RulesConfig struct {
	StructuredRules []classify.Rule       `yaml:"structured_rules"`
	PhraseRules     []classify.PhraseRule `yaml:"phrase_rules"`
}

// LoadRules reads a YAML rule override file. Either table may be empty, in
// which case the built-in defaults stay in effect.
func (s *Store) LoadRules(path string) (*RulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules RulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	for i, rule := range rules.StructuredRules {
		if _, err := models.ParseAccountType(string(rule.AccountType)); err != nil {
			return nil, fmt.Errorf("structured rule %d: %w", i, err)
		}
		if rule.Confidence < 0 || rule.Confidence > 100 {
			return nil, fmt.Errorf("structured rule %d: confidence must be in [0,100], got %d", i, rule.Confidence)
		}
	}
	for i, rule := range rules.PhraseRules {
		if _, err := models.ParseAccountType(string(rule.AccountType)); err != nil {
			return nil, fmt.Errorf("phrase rule %d: %w", i, err)
		}
	}

	s.logger.WithFields(
		logging.Field{Key: "structured", Value: len(rules.StructuredRules)},
		logging.Field{Key: "phrases", Value: len(rules.PhraseRules)},
	).Debug("Loaded rule overrides")
	return &rules, nil
}
