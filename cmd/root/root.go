// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/config"
	"github.com/shumbamhinii/quantfront-import/internal/dedupe"
	"github.com/shumbamhinii/quantfront-import/internal/logging"
	"github.com/shumbamhinii/quantfront-import/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.GetLogger()

	// Cfg holds the resolved configuration after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "qfimport",
		Short: "Annotate imported transactions with account suggestions and duplicate flags.",
		Long: `qfimport takes extracted transaction batches, suggests a ledger account for
each record and flags likely duplicates against previously posted
transactions. It only annotates: every record stays in the batch and the
final include/exclude call belongs to the human reviewer.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to qfimport!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(logrus.StandardLogger())

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Error("Failed to load configuration")
				os.Exit(1)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
		},
	}

	// Annotate command flags.
	BatchFile    string
	AccountsFile string
	ExistingFile string
	OutputFile   string
	ReviewFile   string
	SummaryFile  string
	AsOf         string

	// Classify command flags.
	TxType      string
	TxAmount    string
	TxCategory  string
	Description string
	Provenance  string
	AccountName string
)

// Init registers persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&AccountsFile, "accounts", "c", "accounts.json", "Account catalog file")
}

// Thresholds maps the resolved configuration onto duplicate-detection
// parameters.
func Thresholds() dedupe.Thresholds {
	return dedupe.Thresholds{
		AmountTolerance:  decimal.NewFromFloat(Cfg.Dedupe.AmountTolerance),
		DateWindowDays:   Cfg.Dedupe.DateWindowDays,
		JaccardThreshold: Cfg.Dedupe.JaccardThreshold,
		AmountWeight:     Cfg.Dedupe.AmountWeight,
		DateWeight:       Cfg.Dedupe.DateWeight,
		DescWeight:       Cfg.Dedupe.DescWeight,
	}
}

// StrategyOptions builds classification options from the resolved
// configuration, loading the rule override file when one is configured.
func StrategyOptions(s *store.Store) (classify.Options, error) {
	opts := classify.Options{
		FreeformScoreThreshold: Cfg.Classify.FreeformScoreThreshold,
		Logger:                 Log,
	}
	if Cfg.Classify.RulesFile == "" {
		return opts, nil
	}

	rules, err := s.LoadRules(Cfg.Classify.RulesFile)
	if err != nil {
		return opts, err
	}
	opts.Rules = rules.StructuredRules
	opts.PhraseRules = rules.PhraseRules
	return opts, nil
}
