/*
Copyright © 2025 Wrangler Contributors

Wrangler is a CLI tool for evaluating data-cleaning transformations.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wrangler",
	Short: "Wrangler - Data Cleaning Transformation Pipeline CLI",
	Long: `Wrangler profiles tabular datasets and evaluates data-cleaning
transformations against them.

A run profiles the input, generates transformation candidates (missing-value
fills, normalization, categorical encoding, outlier handling, duplicate
removal, type casts), executes and validates each candidate, scores the
quality impact and ranks the survivors. The best transformation is applied
to produce the output dataset.

State is checkpointed after every step, so interrupted runs can be resumed
with 'wrangler resume'.

Example:
  wrangler run data.csv --name nightly --output cleaned.csv
  wrangler status nightly
  wrangler resume data.csv --name nightly
  wrangler checkpoint list

For more information, visit: https://github.com/AbhijeetP21/multi-agent-data-wrangler`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, lib.ClassifyError(err).UserMessage())
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./wrangler.yaml, ~/.config/wrangler/wrangler.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Add version template
	rootCmd.SetVersionTemplate("Wrangler version {{.Version}}\n")
}
