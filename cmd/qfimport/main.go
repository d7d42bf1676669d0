// Package main provides the entry point for the qfimport CLI application.
package main

import (
	"os"

	"github.com/shumbamhinii/quantfront-import/cmd/annotate"
	"github.com/shumbamhinii/quantfront-import/cmd/classify"
	"github.com/shumbamhinii/quantfront-import/cmd/root"
	"github.com/shumbamhinii/quantfront-import/cmd/rules"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(annotate.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
