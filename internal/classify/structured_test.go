package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

func smallBusinessCatalog() []models.Account {
	return []models.Account{
		{ID: "acc-bank", Name: "Business Bank Account", Type: models.AccountTypeAsset, Code: "1010"},
		{ID: "acc-fuel", Name: "Fuel Expense", Type: models.AccountTypeExpense, Code: "5020"},
		{ID: "acc-rent", Name: "Rent Expense", Type: models.AccountTypeExpense, Code: "5010"},
		{ID: "acc-sales", Name: "Sales Revenue", Type: models.AccountTypeIncome, Code: "4000"},
		{ID: "acc-loan", Name: "Bank Loan Payable", Type: models.AccountTypeLiability, Code: "2100"},
	}
}

func expenseTx(category, description string) models.IncomingTransaction {
	return models.IncomingTransaction{
		Type:        models.TransactionExpense,
		Amount:      decimal.NewFromInt(100),
		Category:    category,
		Description: description,
	}
}

func TestStructuredStrategyName(t *testing.T) {
	assert.Equal(t, "Structured", NewStructuredStrategy(nil, logging.NewMockLogger()).Name())
}

func TestStructuredClassify(t *testing.T) {
	tests := []struct {
		name            string
		tx              models.IncomingTransaction
		expectedAccount string
		expectedConf    int
	}{
		{
			name:            "fuel category hits fuel rule",
			tx:              expenseTx("fuel", "Shell garage"),
			expectedAccount: "acc-fuel",
			expectedConf:    90,
		},
		{
			name:            "fuel keyword in description alone",
			tx:              expenseTx("", "Diesel top-up at garage"),
			expectedAccount: "acc-fuel",
			expectedConf:    90,
		},
		{
			name:            "rent rule",
			tx:              expenseTx("rent", "Premises July"),
			expectedAccount: "acc-rent",
			expectedConf:    90,
		},
		{
			name: "sales rule on income",
			tx: models.IncomingTransaction{
				Type:        models.TransactionIncome,
				Category:    "sales",
				Description: "Customer payment invoice 1001",
			},
			expectedAccount: "acc-sales",
			expectedConf:    90,
		},
		{
			name:            "no rule hit falls back to type match at 60",
			tx:              expenseTx("sundries", "Miscellaneous purchase"),
			expectedAccount: "acc-fuel", // first expense account in catalog order
			expectedConf:    60,
		},
		{
			name: "debt type falls back to liability account",
			tx: models.IncomingTransaction{
				Type:        models.TransactionDebt,
				Category:    "sundries",
				Description: "Monthly instalment",
			},
			expectedAccount: "acc-loan",
			expectedConf:    60,
		},
	}

	strategy := NewStructuredStrategy(nil, logging.NewMockLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := strategy.Classify(tc.tx, smallBusinessCatalog())
			assert.Equal(t, tc.expectedAccount, got.AccountID)
			assert.Equal(t, tc.expectedConf, got.Confidence)
		})
	}
}

func TestStructuredFirstRuleWins(t *testing.T) {
	rules := []Rule{
		{CategoryKeywords: []string{"fuel"}, AccountKeyword: "fuel", AccountType: models.AccountTypeExpense, Confidence: 90},
		{CategoryKeywords: []string{"fuel"}, AccountKeyword: "rent", AccountType: models.AccountTypeExpense, Confidence: 95},
	}
	strategy := NewStructuredStrategy(rules, logging.NewMockLogger())

	got := strategy.Classify(expenseTx("fuel", ""), smallBusinessCatalog())
	assert.Equal(t, "acc-fuel", got.AccountID)
	assert.Equal(t, 90, got.Confidence)
}

func TestStructuredRuleWithoutResolvableAccountIsSkipped(t *testing.T) {
	rules := []Rule{
		{CategoryKeywords: []string{"fuel"}, AccountKeyword: "vehicle running costs", AccountType: models.AccountTypeExpense, Confidence: 90},
		{CategoryKeywords: []string{"fuel"}, AccountKeyword: "fuel", AccountType: models.AccountTypeExpense, Confidence: 85},
	}
	strategy := NewStructuredStrategy(rules, logging.NewMockLogger())

	got := strategy.Classify(expenseTx("fuel", ""), smallBusinessCatalog())
	assert.Equal(t, "acc-fuel", got.AccountID)
	assert.Equal(t, 85, got.Confidence)
}

func TestStructuredFallbackCascade(t *testing.T) {
	strategy := NewStructuredStrategy(nil, logging.NewMockLogger())
	tx := expenseTx("sundries", "Miscellaneous")

	// No expense account: bank/cash asset at 40.
	catalog := []models.Account{
		{ID: "acc-sales", Name: "Sales Revenue", Type: models.AccountTypeIncome},
		{ID: "acc-bank", Name: "Business Bank Account", Type: models.AccountTypeAsset},
	}
	got := strategy.Classify(tx, catalog)
	assert.Equal(t, "acc-bank", got.AccountID)
	assert.Equal(t, 40, got.Confidence)

	// No bank/cash either: first account at 20.
	catalog = []models.Account{
		{ID: "acc-sales", Name: "Sales Revenue", Type: models.AccountTypeIncome},
		{ID: "acc-equity", Name: "Owner Equity", Type: models.AccountTypeEquity},
	}
	got = strategy.Classify(tx, catalog)
	assert.Equal(t, "acc-sales", got.AccountID)
	assert.Equal(t, 20, got.Confidence)
}

func TestStructuredEmptyCatalogIsTotal(t *testing.T) {
	strategy := NewStructuredStrategy(nil, logging.NewMockLogger())

	assert.NotPanics(t, func() {
		got := strategy.Classify(expenseTx("fuel", "Shell garage"), nil)
		assert.Empty(t, got.AccountID)
		assert.Zero(t, got.Confidence)
	})
}

func TestStructuredDeterministic(t *testing.T) {
	strategy := NewStructuredStrategy(nil, logging.NewMockLogger())
	tx := expenseTx("fuel", "Shell garage")

	first := strategy.Classify(tx, smallBusinessCatalog())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, strategy.Classify(tx, smallBusinessCatalog()))
	}
}
