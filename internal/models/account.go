package models

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Account is one entry of the business's chart of accounts.
type Account struct {
	ID   string      `json:"id" yaml:"id"`
	Name string      `json:"name" yaml:"name"`
	Type AccountType `json:"type" yaml:"type"`
	Code string      `json:"code" yaml:"code"`
}

// Catalog wraps the chart of accounts with lookup helpers. The underlying
// slice order is preserved; classification tie-breaks depend on it.
type Catalog struct {
	accounts []Account
	byID     map[string]Account
}

// NewCatalog builds a Catalog from the accounts in their given order.
func NewCatalog(accounts []Account) *Catalog {
	byID := make(map[string]Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}
	return &Catalog{accounts: accounts, byID: byID}
}

// Accounts returns the catalog in its original order.
func (c *Catalog) Accounts() []Account {
	return c.accounts
}

// ByID looks up an account by its identifier.
func (c *Catalog) ByID(id string) (Account, bool) {
	account, ok := c.byID[id]
	return account, ok
}

// ClosestByName resolves a human-typed account name to a catalog entry,
// tolerating up to maxDistance edits. An exact case-insensitive match wins
// immediately; otherwise the nearest name within the distance budget is
// returned. Reviewers type account names by hand, so small typos are
// expected.
func (c *Catalog) ClosestByName(name string, maxDistance int) (Account, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Account{}, false
	}

	best := Account{}
	bestDist := maxDistance + 1
	for _, account := range c.accounts {
		candidate := strings.ToLower(account.Name)
		if candidate == query {
			return account, true
		}
		if dist := levenshtein.ComputeDistance(query, candidate); dist < bestDist {
			best = account
			bestDist = dist
		}
	}

	if bestDist > maxDistance {
		return Account{}, false
	}
	return best, true
}
