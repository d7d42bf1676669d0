package classify

import (
	"strings"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

// StructuredStrategy classifies records extracted from receipts and PDFs,
// where the category label is relatively clean. It walks an ordered keyword
// cascade; the first rule that matches the text and resolves to a catalog
// account wins outright.
type StructuredStrategy struct {
	rules  []Rule
	logger logging.Logger
}

// Confidence levels of the structured fallback cascade.
var structuredFallback = fallbackConfidences{typeMatch: 60, bankCash: 40, firstAccount: 20}

// NewStructuredStrategy creates the structured-source strategy. A nil or
// empty rule set selects the built-in cascade.
func NewStructuredStrategy(rules []Rule, logger logging.Logger) *StructuredStrategy {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &StructuredStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *StructuredStrategy) Name() string {
	return "Structured"
}

// Classify evaluates the rule cascade in priority order. A rule whose text
// predicate matches but whose target account is absent from the catalog is
// skipped so the cascade stays total. With no rule hit it falls back to
// type-match, then bank/cash, then the first account.
func (s *StructuredStrategy) Classify(tx models.IncomingTransaction, accounts []models.Account) Suggestion {
	if len(accounts) == 0 {
		return Suggestion{}
	}

	category := textnorm.Normalize(tx.Category)
	description := textnorm.Normalize(tx.Description)

	for _, rule := range s.rules {
		if !ruleMatchesText(rule, category, description) {
			continue
		}
		account, ok := resolveRuleAccount(rule, accounts)
		if !ok {
			continue
		}
		s.logger.WithFields(
			logging.Field{Key: "strategy", Value: s.Name()},
			logging.Field{Key: "account", Value: account.Name},
			logging.Field{Key: "account_keyword", Value: rule.AccountKeyword},
		).Debug("Transaction classified by rule cascade")
		return Suggestion{AccountID: account.ID, Confidence: rule.Confidence}
	}

	return fallback(tx, accounts, structuredFallback)
}

// ruleMatchesText reports whether any category keyword appears in the
// category label or any description keyword appears in the description.
// Matching is plain containment on normalized text.
func ruleMatchesText(rule Rule, category, description string) bool {
	for _, kw := range rule.CategoryKeywords {
		k := textnorm.Normalize(kw)
		if k != "" && category != "" && strings.Contains(category, k) {
			return true
		}
	}
	for _, kw := range rule.DescriptionKeywords {
		k := textnorm.Normalize(kw)
		if k != "" && description != "" && strings.Contains(description, k) {
			return true
		}
	}
	return false
}

// resolveRuleAccount finds the first catalog account carrying the rule's
// expected type whose name contains the rule's account keyword.
func resolveRuleAccount(rule Rule, accounts []models.Account) (models.Account, bool) {
	for _, a := range accounts {
		if a.Type == rule.AccountType && accountNameContains(a, rule.AccountKeyword) {
			return a, true
		}
	}
	return models.Account{}, false
}
