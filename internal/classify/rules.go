package classify

import "github.com/shumbamhinii/quantfront-import/internal/models"

// Rule is one entry of the structured classification cascade. Rules are
// evaluated in order and the first one that matches the transaction text and
// resolves to a catalog account wins; there is no score accumulation.
type Rule struct {
	// CategoryKeywords match against the normalized category label.
	CategoryKeywords []string `yaml:"category_keywords"`
	// DescriptionKeywords match against the normalized description.
	DescriptionKeywords []string `yaml:"description_keywords"`
	// AccountKeyword must appear in the normalized name of the target
	// account.
	AccountKeyword string `yaml:"account_keyword"`
	// AccountType the target account must carry.
	AccountType models.AccountType `yaml:"account_type"`
	// Confidence reported when this rule wins.
	Confidence int `yaml:"confidence"`
}

// PhraseRule is a contextual phrase-to-account affinity used by the freeform
// strategy: domain idioms that point at an account even when the account
// name never appears verbatim.
type PhraseRule struct {
	// Phrases match as whole words/phrases in the normalized description.
	Phrases []string `yaml:"phrases"`
	// AccountKeyword must appear in the normalized target account name.
	AccountKeyword string `yaml:"account_keyword"`
	// AccountType the target account must carry.
	AccountType models.AccountType `yaml:"account_type"`
}

// DefaultRules is the built-in structured cascade, ordered most specific
// first. Matching is containment on normalized text, so keyword casing and
// punctuation never matter.
func DefaultRules() []Rule {
	return []Rule{
		{
			CategoryKeywords:    []string{"fuel", "petrol", "diesel"},
			DescriptionKeywords: []string{"fuel", "petrol", "diesel", "garage"},
			AccountKeyword:      "fuel",
			AccountType:         models.AccountTypeExpense,
			Confidence:          90,
		},
		{
			CategoryKeywords:    []string{"rent"},
			DescriptionKeywords: []string{"rent", "rental", "lease"},
			AccountKeyword:      "rent",
			AccountType:         models.AccountTypeExpense,
			Confidence:          90,
		},
		{
			CategoryKeywords:    []string{"salary", "salaries", "wages", "payroll"},
			DescriptionKeywords: []string{"salary", "salaries", "wages", "payroll"},
			AccountKeyword:      "salar",
			AccountType:         models.AccountTypeExpense,
			Confidence:          90,
		},
		{
			CategoryKeywords:    []string{"sales", "revenue", "invoice"},
			DescriptionKeywords: []string{"invoice", "customer payment", "sale of"},
			AccountKeyword:      "sales",
			AccountType:         models.AccountTypeIncome,
			Confidence:          90,
		},
		{
			CategoryKeywords:    []string{"bank charges", "bank fees"},
			DescriptionKeywords: []string{"bank charge", "service fee", "account fee"},
			AccountKeyword:      "bank charge",
			AccountType:         models.AccountTypeExpense,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"electricity", "utilities", "water"},
			DescriptionKeywords: []string{"electricity", "municipal", "water and lights", "prepaid power"},
			AccountKeyword:      "utilit",
			AccountType:         models.AccountTypeExpense,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"telephone", "airtime", "internet", "data"},
			DescriptionKeywords: []string{"airtime", "data bundle", "internet", "wifi"},
			AccountKeyword:      "telephone",
			AccountType:         models.AccountTypeExpense,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"insurance"},
			DescriptionKeywords: []string{"insurance", "premium"},
			AccountKeyword:      "insurance",
			AccountType:         models.AccountTypeExpense,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"stationery", "office supplies"},
			DescriptionKeywords: []string{"stationery", "printer paper", "office supplies"},
			AccountKeyword:      "stationery",
			AccountType:         models.AccountTypeExpense,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"advertising", "marketing"},
			DescriptionKeywords: []string{"advertising", "marketing", "promotion"},
			AccountKeyword:      "advertis",
			AccountType:         models.AccountTypeExpense,
			Confidence:          80,
		},
		{
			CategoryKeywords:    []string{"transport", "travel"},
			DescriptionKeywords: []string{"taxi", "uber", "bus fare", "transport"},
			AccountKeyword:      "transport",
			AccountType:         models.AccountTypeExpense,
			Confidence:          80,
		},
		{
			CategoryKeywords:    []string{"repairs", "maintenance"},
			DescriptionKeywords: []string{"repair", "maintenance", "servicing"},
			AccountKeyword:      "repair",
			AccountType:         models.AccountTypeExpense,
			Confidence:          80,
		},
		{
			CategoryKeywords:    []string{"loan", "debt"},
			DescriptionKeywords: []string{"loan", "repayment", "borrowed"},
			AccountKeyword:      "loan",
			AccountType:         models.AccountTypeLiability,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"vat", "tax"},
			DescriptionKeywords: []string{"vat payment", "sars"},
			AccountKeyword:      "vat",
			AccountType:         models.AccountTypeLiability,
			Confidence:          85,
		},
		{
			CategoryKeywords:    []string{"interest"},
			DescriptionKeywords: []string{"interest received", "interest earned"},
			AccountKeyword:      "interest",
			AccountType:         models.AccountTypeIncome,
			Confidence:          85,
		},
	}
}

// DefaultPhraseRules is the built-in contextual affinity table for the
// freeform strategy.
func DefaultPhraseRules() []PhraseRule {
	return []PhraseRule{
		{Phrases: []string{"rent", "rental", "lease"}, AccountKeyword: "rent", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"bank loan", "loan repayment", "borrowed"}, AccountKeyword: "loan", AccountType: models.AccountTypeLiability},
		{Phrases: []string{"salary", "salaries", "wages", "staff pay"}, AccountKeyword: "salar", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"electricity", "municipal", "water and lights"}, AccountKeyword: "utilit", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"sold", "sale of", "customer payment", "invoice"}, AccountKeyword: "sales", AccountType: models.AccountTypeIncome},
		{Phrases: []string{"fuel", "petrol", "diesel"}, AccountKeyword: "fuel", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"airtime", "data bundle", "internet", "wifi"}, AccountKeyword: "telephone", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"insurance", "premium"}, AccountKeyword: "insurance", AccountType: models.AccountTypeExpense},
		{Phrases: []string{"bank charges", "service fee"}, AccountKeyword: "bank charge", AccountType: models.AccountTypeExpense},
	}
}
