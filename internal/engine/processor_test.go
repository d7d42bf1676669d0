package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/dedupe"
	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDay(s)
	require.NoError(t, err)
	return d
}

func testCatalog() []models.Account {
	return []models.Account{
		{ID: "acc-bank", Name: "Business Bank Account", Type: models.AccountTypeAsset, Code: "1010"},
		{ID: "acc-fuel", Name: "Fuel Expense", Type: models.AccountTypeExpense, Code: "5020"},
		{ID: "acc-rent", Name: "Rent Expense", Type: models.AccountTypeExpense, Code: "5010"},
		{ID: "acc-sales", Name: "Sales Revenue", Type: models.AccountTypeIncome, Code: "4000"},
	}
}

func newTestProcessor() *Processor {
	logger := logging.NewMockLogger()
	return NewProcessor(dedupe.NewDetector(dedupe.DefaultThresholds(), logger), logger)
}

func TestProcessAnnotatesEachRecord(t *testing.T) {
	processor := newTestProcessor()

	batch := []models.IncomingTransaction{
		{
			Type:        models.TransactionExpense,
			Amount:      decimal.RequireFromString("500.00"),
			Date:        day(t, "2025-07-01"),
			Description: "Office rent July",
			Category:    "rent",
		},
		{
			Type:        models.TransactionExpense,
			Amount:      decimal.RequireFromString("450.00"),
			Date:        day(t, "2025-07-03"),
			Description: "Shell garage",
			Category:    "fuel",
		},
	}
	existing := []models.ExistingTransaction{
		{
			ID:          "tx-1",
			Amount:      decimal.RequireFromString("500.00"),
			Date:        day(t, "2025-07-02"),
			Description: "office rent july",
			Type:        models.TransactionExpense,
			AccountID:   "acc-rent",
		},
	}

	strategy := classify.NewStructuredStrategy(nil, logging.NewMockLogger())
	annotated := processor.Process(batch, existing, testCatalog(), strategy)
	require.Len(t, annotated, 2)

	// First record: rent rule plus a posting-lag duplicate.
	assert.Equal(t, "acc-rent", annotated[0].AccountID)
	assert.Equal(t, 90, annotated[0].Confidence)
	assert.True(t, annotated[0].DuplicateFlag)
	require.Len(t, annotated[0].DuplicateMatches, 1)
	assert.Equal(t, "tx-1", annotated[0].DuplicateMatches[0].TransactionID)
	assert.InDelta(t, 1.0, annotated[0].DuplicateMatches[0].Score, 1e-9)

	// Second record: fuel rule, no duplicate.
	assert.Equal(t, "acc-fuel", annotated[1].AccountID)
	assert.Equal(t, 90, annotated[1].Confidence)
	assert.False(t, annotated[1].DuplicateFlag)
	assert.Empty(t, annotated[1].DuplicateMatches)
}

func TestProcessDefaultInclusionInvariant(t *testing.T) {
	processor := newTestProcessor()

	batch := []models.IncomingTransaction{
		{Type: models.TransactionExpense, Amount: decimal.RequireFromString("500.00"), Date: day(t, "2025-07-01"), Description: "Office rent July"},
		{Type: models.TransactionExpense, Amount: decimal.RequireFromString("99.00"), Date: day(t, "2025-07-02"), Description: "Unrelated purchase"},
	}
	existing := []models.ExistingTransaction{
		{ID: "tx-1", Amount: decimal.RequireFromString("500.00"), Date: day(t, "2025-07-01"), Description: "Office rent July", Type: models.TransactionExpense},
	}

	strategy := classify.NewFreeformStrategy(nil, 0, logging.NewMockLogger())
	annotated := processor.Process(batch, existing, testCatalog(), strategy)

	// Every record is included by default, duplicate or not; exclusion is
	// the reviewer's call.
	require.Len(t, annotated, 2)
	assert.True(t, annotated[0].DuplicateFlag)
	for _, record := range annotated {
		assert.True(t, record.IncludeInImport)
	}
}

func TestProcessPreservesOrderAndSourceFields(t *testing.T) {
	processor := newTestProcessor()

	var batch []models.IncomingTransaction
	descriptions := []string{"first", "second", "third", "fourth"}
	for i, desc := range descriptions {
		batch = append(batch, models.IncomingTransaction{
			Type:        models.TransactionExpense,
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Date:        day(t, "2025-07-01"),
			Description: desc,
		})
	}

	strategy := classify.NewStructuredStrategy(nil, logging.NewMockLogger())
	annotated := processor.Process(batch, nil, testCatalog(), strategy)

	require.Len(t, annotated, len(batch))
	for i, record := range annotated {
		assert.Equal(t, descriptions[i], record.Description)
		assert.True(t, record.Amount.Equal(batch[i].Amount))
	}
}

func TestProcessEmptyInputs(t *testing.T) {
	processor := newTestProcessor()
	strategy := classify.NewStructuredStrategy(nil, logging.NewMockLogger())

	// Empty batch yields an empty annotated batch.
	assert.Empty(t, processor.Process(nil, nil, testCatalog(), strategy))

	// Empty catalog: no suggestion, zero confidence, still annotated.
	batch := []models.IncomingTransaction{
		{Type: models.TransactionExpense, Amount: decimal.NewFromInt(10), Date: day(t, "2025-07-01"), Description: "anything"},
	}
	annotated := processor.Process(batch, nil, nil, strategy)
	require.Len(t, annotated, 1)
	assert.Empty(t, annotated[0].AccountID)
	assert.Zero(t, annotated[0].Confidence)
	assert.True(t, annotated[0].IncludeInImport)
}

func TestProcessItemIndependence(t *testing.T) {
	processor := newTestProcessor()
	strategy := classify.NewStructuredStrategy(nil, logging.NewMockLogger())

	target := models.IncomingTransaction{
		Type:        models.TransactionExpense,
		Amount:      decimal.RequireFromString("450.00"),
		Date:        day(t, "2025-07-03"),
		Description: "Shell garage",
		Category:    "fuel",
	}
	noise := models.IncomingTransaction{
		Type:        models.TransactionIncome,
		Amount:      decimal.RequireFromString("9999.00"),
		Date:        day(t, "2025-07-04"),
		Description: "Customer payment invoice 77",
		Category:    "sales",
	}

	alone := processor.Process([]models.IncomingTransaction{target}, nil, testCatalog(), strategy)
	together := processor.Process([]models.IncomingTransaction{noise, target}, nil, testCatalog(), strategy)

	// Unrelated records in the same batch must not change the outcome.
	require.Len(t, alone, 1)
	require.Len(t, together, 2)
	assert.Equal(t, alone[0].AccountID, together[1].AccountID)
	assert.Equal(t, alone[0].Confidence, together[1].Confidence)
	assert.Equal(t, alone[0].DuplicateFlag, together[1].DuplicateFlag)
}
