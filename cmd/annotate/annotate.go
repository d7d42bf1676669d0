// Package annotate handles the batch annotation command.
package annotate

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shumbamhinii/quantfront-import/cmd/root"
	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/dedupe"
	"github.com/shumbamhinii/quantfront-import/internal/engine"
	"github.com/shumbamhinii/quantfront-import/internal/models"
	"github.com/shumbamhinii/quantfront-import/internal/report"
	"github.com/shumbamhinii/quantfront-import/internal/store"
)

// Cmd represents the annotate command.
var Cmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate an extracted batch with account suggestions and duplicate flags",
	Long: `Annotate reads one extracted transaction batch, suggests a ledger account
for each record and flags likely duplicates against the existing
transaction window. Every record is written back annotated; none are
dropped.`,
	Run: annotateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.BatchFile, "batch", "b", "", "Extracted batch file (required)")
	Cmd.Flags().StringVarP(&root.ExistingFile, "existing", "e", "", "Existing transactions file (required)")
	Cmd.Flags().StringVarP(&root.OutputFile, "output", "o", "annotated.json", "Annotated output file")
	Cmd.Flags().StringVarP(&root.ReviewFile, "review", "r", "", "Optional review CSV file")
	Cmd.Flags().StringVarP(&root.SummaryFile, "summary", "s", "", "Optional run summary JSON file")
	Cmd.Flags().StringVarP(&root.AsOf, "as-of", "t", "", "Window reference day, YYYY-MM-DD (default today)")
	Cmd.MarkFlagRequired("batch")
	Cmd.MarkFlagRequired("existing")
}

func annotateFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Annotate command called")

	asOf := time.Now().UTC()
	if root.AsOf != "" {
		day, err := models.ParseDay(root.AsOf)
		if err != nil {
			fatal(err, "Invalid --as-of day")
		}
		asOf = day
	}

	s := store.NewStore(root.Log)

	accounts, err := s.LoadAccounts(root.AccountsFile)
	if err != nil {
		fatal(err, "Failed to load account catalog")
	}
	existing, err := s.LoadExistingWindow(root.ExistingFile, asOf, root.Cfg.Ledger.WindowDays, root.Cfg.Ledger.MaxRecords)
	if err != nil {
		fatal(err, "Failed to load existing transactions")
	}
	batch, provenance, err := s.LoadBatch(root.BatchFile)
	if err != nil {
		fatal(err, "Failed to load batch")
	}

	opts, err := root.StrategyOptions(s)
	if err != nil {
		fatal(err, "Failed to load rule overrides")
	}
	strategy := classify.ForProvenance(provenance, opts)

	processor := engine.NewProcessor(dedupe.NewDetector(root.Thresholds(), root.Log), root.Log)
	annotated := processor.Process(batch, existing, accounts, strategy)

	if err := s.SaveAnnotated(root.OutputFile, annotated); err != nil {
		fatal(err, "Failed to write annotated batch")
	}
	if root.ReviewFile != "" {
		if err := s.WriteReviewCSV(root.ReviewFile, annotated); err != nil {
			fatal(err, "Failed to write review CSV")
		}
	}

	generator := report.NewGenerator(root.Log)
	summary := generator.Summarize(strategy.Name(), annotated)
	fmt.Print(generator.Render(summary))
	if root.SummaryFile != "" {
		if err := generator.Save(root.SummaryFile, summary); err != nil {
			fatal(err, "Failed to write run summary")
		}
	}

	root.Log.WithField("output", root.OutputFile).Info("Batch annotation completed")
}

func fatal(err error, msg string) {
	root.Log.WithError(err).Error(msg)
	os.Exit(1)
}
