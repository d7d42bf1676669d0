// Package classify handles the single-transaction classification command.
package classify

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shumbamhinii/quantfront-import/cmd/root"
	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/store"
)

// maxNameDistance is the edit budget when resolving a reviewer-typed
// account name against the catalog.
const maxNameDistance = 2

// Cmd represents the classify command.
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single transaction from the command line",
	Long: `Classify suggests a ledger account for one transaction described by flags.
Useful for spot-checking the rule cascade against a catalog without
running a whole batch.`,
	Run: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.TxType, "type", "y", "expense", "Transaction type: income, expense or debt")
	Cmd.Flags().StringVarP(&root.TxAmount, "amount", "a", "0.00", "Transaction amount")
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description (required)")
	Cmd.Flags().StringVarP(&root.TxCategory, "category", "g", "", "Category label from structured extraction")
	Cmd.Flags().StringVarP(&root.Provenance, "provenance", "p", "structured", "Batch provenance: structured or freeform")
	Cmd.Flags().StringVarP(&root.AccountName, "account", "n", "", "Resolve a typed account name instead of classifying")
	Cmd.MarkFlagRequired("description")
}

func classifyFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Classify command called")

	s := store.NewStore(root.Log)
	accounts, err := s.LoadAccounts(root.AccountsFile)
	if err != nil {
		fatal(err, "Failed to load account catalog")
	}
	catalog := models.NewCatalog(accounts)

	// Resolution mode: map a reviewer-typed name onto the catalog.
	if root.AccountName != "" {
		account, ok := catalog.ClosestByName(root.AccountName, maxNameDistance)
		if !ok {
			root.Log.WithField("name", root.AccountName).Error("No catalog account close to that name")
			os.Exit(1)
		}
		fmt.Printf("%s  %s (%s)\n", account.ID, account.Name, account.Type)
		return
	}

	txType, err := models.ParseTransactionType(root.TxType)
	if err != nil {
		fatal(err, "Invalid --type")
	}
	amount, err := decimal.NewFromString(root.TxAmount)
	if err != nil {
		fatal(err, "Invalid --amount")
	}
	provenance, err := models.ParseProvenance(root.Provenance)
	if err != nil {
		fatal(err, "Invalid --provenance")
	}

	opts, err := root.StrategyOptions(s)
	if err != nil {
		fatal(err, "Failed to load rule overrides")
	}
	strategy := classify.ForProvenance(provenance, opts)

	tx := models.IncomingTransaction{
		Type:        txType,
		Amount:      amount,
		Description: root.Description,
		Category:    root.TxCategory,
	}
	suggestion := strategy.Classify(tx, accounts)

	if suggestion.AccountID == "" {
		fmt.Println("No suggestion")
		return
	}
	account, _ := catalog.ByID(suggestion.AccountID)
	fmt.Printf("%s  %s (confidence %d)\n", suggestion.AccountID, account.Name, suggestion.Confidence)
}

func fatal(err error, msg string) {
	root.Log.WithError(err).Error(msg)
	os.Exit(1)
}
