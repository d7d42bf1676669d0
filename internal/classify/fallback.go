package classify

import (
	"strings"

	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/textnorm"
)

// fallbackConfidences parameterizes the shared fallback cascade. The two
// strategies walk the same steps but report different confidence levels.
type fallbackConfidences struct {
	typeMatch    int
	bankCash     int
	firstAccount int
}

// fallback walks the total cascade every classification bottoms out in:
// first account matching the transaction's expected account type, then a
// bank/cash asset account, then the first catalog account, then nothing.
// Every step is a defined low-confidence output; "I don't know" is not an
// error.
func fallback(tx models.IncomingTransaction, accounts []models.Account, levels fallbackConfidences) Suggestion {
	if len(accounts) == 0 {
		return Suggestion{}
	}

	if expected, ok := tx.Type.ExpectedAccountType(); ok {
		for _, a := range accounts {
			if a.Type == expected {
				return Suggestion{AccountID: a.ID, Confidence: levels.typeMatch}
			}
		}
	}

	for _, a := range accounts {
		if isBankCash(a) {
			return Suggestion{AccountID: a.ID, Confidence: levels.bankCash}
		}
	}

	return Suggestion{AccountID: accounts[0].ID, Confidence: levels.firstAccount}
}

// isBankCash reports whether an account is a bank or cash asset account.
func isBankCash(a models.Account) bool {
	if a.Type != models.AccountTypeAsset {
		return false
	}
	name := textnorm.Normalize(a.Name)
	return strings.Contains(name, "bank") || strings.Contains(name, "cash")
}

// accountNameContains reports whether the account's normalized name contains
// the normalized keyword.
func accountNameContains(a models.Account, keyword string) bool {
	kw := textnorm.Normalize(keyword)
	if kw == "" {
		return false
	}
	return strings.Contains(textnorm.Normalize(a.Name), kw)
}

// containsPhrase reports whether the normalized phrase occurs in the
// normalized text on word boundaries, so "rent" never matches inside
// "parents".
func containsPhrase(normalizedText, phrase string) bool {
	p := textnorm.Normalize(phrase)
	if p == "" || normalizedText == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+p+" ")
}
