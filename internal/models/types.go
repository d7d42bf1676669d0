// Package models defines the domain types shared across the import engine:
// accounts, transactions and the annotations attached during a batch run.
package models

import "fmt"

// AccountType is the accounting class of a ledger account. The set is
// closed; unknown values are rejected at the input boundary.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// ParseAccountType validates a raw account type tag. Matching is exact:
// upstream systems emit lowercase tags and anything else signals a schema
// drift worth failing on.
func ParseAccountType(raw string) (AccountType, error) {
	switch AccountType(raw) {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return AccountType(raw), nil
	}
	return "", fmt.Errorf("unknown account type %q", raw)
}

// TransactionType is the direction tag carried by every transaction record.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	TransactionDebt    TransactionType = "debt"
)

// ParseTransactionType validates a raw transaction type tag.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionIncome, TransactionExpense, TransactionDebt:
		return TransactionType(raw), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", raw)
}

// ExpectedAccountType returns the account class a transaction of this type
// usually posts against. The second return is false for unknown types.
func (t TransactionType) ExpectedAccountType() (AccountType, bool) {
	switch t {
	case TransactionIncome:
		return AccountTypeIncome, true
	case TransactionExpense:
		return AccountTypeExpense, true
	case TransactionDebt:
		return AccountTypeLiability, true
	}
	return "", false
}

// Provenance records where a batch was extracted from. It selects the
// classification strategy: structured extraction keeps reliable category
// labels, freeform text does not.
type Provenance string

const (
	ProvenanceStructured Provenance = "structured"
	ProvenanceFreeform   Provenance = "freeform"
)

// ParseProvenance validates a raw provenance tag.
func ParseProvenance(raw string) (Provenance, error) {
	switch Provenance(raw) {
	case ProvenanceStructured, ProvenanceFreeform:
		return Provenance(raw), nil
	}
	return "", fmt.Errorf("unknown provenance %q", raw)
}
