package classify

import (
	"strings"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

// Freeform scoring weights. Additive, so adding evidence can never lower an
// account's score.
const (
	scoreNameInDescription = 100
	scoreNameInCategory    = 80
	scorePhraseRule        = 70
	scoreKeywordInDesc     = 10
	scoreKeywordInCategory = 8
	scoreTypeExpectation   = 15
	scoreBankCashNudge     = 5

	// minNameLength guards the full-name match against trivially short
	// account names.
	minNameLength = 3

	// minKeywordLength filters out connective fragments when splitting
	// account names into keywords.
	minKeywordLength = 2

	// defaultFreeformScoreThreshold is the minimum winning score before
	// the strategy trusts its ranking over the fallback cascade.
	defaultFreeformScoreThreshold = 60
)

// Confidence levels of the freeform fallback cascade. Lower than the
// structured ones: freeform fallbacks fire only after weighted scoring
// already failed to find signal.
var freeformFallback = fallbackConfidences{typeMatch: 40, bankCash: 20, firstAccount: 10}

// stopwords are account-name tokens too generic to count as evidence.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"account": {}, "general": {}, "other": {}, "misc": {},
}

// FreeformStrategy classifies records extracted from typed text or
// transcribed audio, where phrasing varies too much for a priority cascade.
// Every account is scored additively and the top account wins only when its
// score clears the threshold.
type FreeformStrategy struct {
	phraseRules []PhraseRule
	threshold   int
	logger      logging.Logger
}

// NewFreeformStrategy creates the freeform-text strategy. Empty phrase rules
// select the built-in affinity table; a non-positive threshold selects the
// calibrated default.
func NewFreeformStrategy(phraseRules []PhraseRule, threshold int, logger logging.Logger) *FreeformStrategy {
	if len(phraseRules) == 0 {
		phraseRules = DefaultPhraseRules()
	}
	if threshold <= 0 {
		threshold = defaultFreeformScoreThreshold
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FreeformStrategy{phraseRules: phraseRules, threshold: threshold, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *FreeformStrategy) Name() string {
	return "Freeform"
}

// Classify scores every catalog account against the transaction and returns
// the best one when its score clears the threshold, at confidence
// min(100, score). Ties resolve to the earliest account in catalog order.
// Below the threshold it falls back through the shared cascade.
func (s *FreeformStrategy) Classify(tx models.IncomingTransaction, accounts []models.Account) Suggestion {
	if len(accounts) == 0 {
		return Suggestion{}
	}

	description := textnorm.Normalize(tx.Description)
	category := textnorm.Normalize(tx.Category)
	descTokens := textnorm.TokenSet(tx.Description)
	categoryTokens := textnorm.TokenSet(tx.Category)

	best := -1
	bestScore := 0
	for i, a := range accounts {
		score := s.scoreAccount(tx, a, description, category, descTokens, categoryTokens)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best >= 0 && bestScore > s.threshold {
		confidence := bestScore
		if confidence > 100 {
			confidence = 100
		}
		s.logger.WithFields(
			logging.Field{Key: "strategy", Value: s.Name()},
			logging.Field{Key: "account", Value: accounts[best].Name},
			logging.Field{Key: "score", Value: bestScore},
		).Debug("Transaction classified by weighted scoring")
		return Suggestion{AccountID: accounts[best].ID, Confidence: confidence}
	}

	return fallback(tx, accounts, freeformFallback)
}

// scoreAccount accumulates every signal tying the transaction to one
// account.
func (s *FreeformStrategy) scoreAccount(
	tx models.IncomingTransaction,
	a models.Account,
	description, category string,
	descTokens, categoryTokens map[string]struct{},
) int {
	score := 0
	name := textnorm.Normalize(a.Name)

	// Full account name appearing verbatim is the strongest signal; the
	// length guard keeps short names from matching everywhere.
	if len(name) > minNameLength {
		if strings.Contains(description, name) {
			score += scoreNameInDescription
		}
		if strings.Contains(category, name) {
			score += scoreNameInCategory
		}
	}

	for _, rule := range s.phraseRules {
		if a.Type != rule.AccountType || !accountNameContains(a, rule.AccountKeyword) {
			continue
		}
		for _, phrase := range rule.Phrases {
			if containsPhrase(description, phrase) {
				score += scorePhraseRule
				break
			}
		}
	}

	for _, kw := range significantKeywords(name) {
		if _, ok := descTokens[kw]; ok {
			score += scoreKeywordInDesc
		}
		if _, ok := categoryTokens[kw]; ok {
			score += scoreKeywordInCategory
		}
	}

	if typeExpectationHolds(tx.Type, a, name) {
		score += scoreTypeExpectation
	}

	if isBankCash(a) {
		score += scoreBankCashNudge
	}

	return score
}

// typeExpectationHolds checks the transaction-type to account-type mapping,
// including the special cases: income may also land on a receivable asset
// and expense on a payable liability.
func typeExpectationHolds(txType models.TransactionType, a models.Account, normalizedName string) bool {
	expected, ok := txType.ExpectedAccountType()
	if !ok {
		return false
	}
	if a.Type == expected {
		return true
	}
	switch txType {
	case models.TransactionIncome:
		return a.Type == models.AccountTypeAsset && strings.Contains(normalizedName, "receivable")
	case models.TransactionExpense:
		return a.Type == models.AccountTypeLiability && strings.Contains(normalizedName, "payable")
	default:
		return false
	}
}

// significantKeywords splits a normalized account name into the tokens worth
// matching on: longer than two characters and not a stopword.
func significantKeywords(normalizedName string) []string {
	var keywords []string
	for _, tok := range strings.Fields(normalizedName) {
		if len(tok) <= minKeywordLength {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}
