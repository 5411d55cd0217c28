// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-engine/internal/extract"
	"github.com/pdiddy/extract-engine/internal/finder"
	"github.com/pdiddy/extract-engine/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a query over every document in a corpus",
	Long: `Batch runs the query against every .txt and .html document in the corpus
directory and writes one [docID]-measurements.yaml per document to the
results directory. Documents whose results are newer than the source
are skipped, so re-runs only process changed files.

The feature label tags every measurement from this run; the store's
logic operations join runs on it.`,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := batchConfigFromFlags(cmd)
	feature, _ := cmd.Flags().GetString("feature")
	if feature == "" {
		feature, _ = cmd.Flags().GetString("terms")
	}

	engine := extract.New(engineConfigFromFlags(cmd), finder.Defaults())

	summary, err := engine.ExtractAll(context.Background(), queryFromFlags(cmd), feature, cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nextracted: %d, skipped: %d, failed: %d\n",
		summary.Extracted, summary.Skipped, summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

func batchConfigFromFlags(cmd *cobra.Command) types.BatchConfig {
	cfg := types.BatchConfig{
		CorpusDir:  viper.GetString("batch.corpus_dir"),
		ResultsDir: viper.GetString("batch.results_dir"),
	}
	if v, _ := cmd.Flags().GetString("corpus-dir"); v != "" {
		cfg.CorpusDir = v
	}
	if v, _ := cmd.Flags().GetString("results-dir"); v != "" {
		cfg.ResultsDir = v
	}
	if cfg.CorpusDir == "" {
		cfg.CorpusDir = "corpus"
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}
	return cfg
}

func init() {
	addQueryFlags(batchCmd)
	batchCmd.Flags().String("feature", "", "feature label for this run (default: the terms string)")
	batchCmd.Flags().String("corpus-dir", "", "corpus directory (default: corpus)")
	batchCmd.Flags().String("results-dir", "", "results directory (default: results)")

	rootCmd.AddCommand(batchCmd)
}
