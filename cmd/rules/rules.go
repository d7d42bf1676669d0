// Package rules handles the rule inspection command.
package rules

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shumbamhinii/quantfront-import/cmd/root"
	"github.com/shumbamhinii/quantfront-import/internal/classify"
	"github.com/shumbamhinii/quantfront-import/internal/store"
)

// Cmd represents the rules command.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective classification rule tables",
	Long: `Rules prints the structured cascade and contextual phrase affinities the
classifier will apply, after any configured override file. The output is
valid YAML and can be saved, edited and pointed back at via
classify.rules_file.`,
	Run: rulesFunc,
}

func rulesFunc(cmd *cobra.Command, args []string) {
	effective := store.RulesConfig{
		StructuredRules: classify.DefaultRules(),
		PhraseRules:     classify.DefaultPhraseRules(),
	}

	if root.Cfg.Classify.RulesFile != "" {
		s := store.NewStore(root.Log)
		loaded, err := s.LoadRules(root.Cfg.Classify.RulesFile)
		if err != nil {
			root.Log.WithError(err).Error("Failed to load rule overrides")
			os.Exit(1)
		}
		if len(loaded.StructuredRules) > 0 {
			effective.StructuredRules = loaded.StructuredRules
		}
		if len(loaded.PhraseRules) > 0 {
			effective.PhraseRules = loaded.PhraseRules
		}
	}

	out, err := yaml.Marshal(effective)
	if err != nil {
		root.Log.WithError(err).Error("Failed to render rule tables")
		os.Exit(1)
	}
	fmt.Print(string(out))
}
