// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-engine/internal/store"
	"github.com/pdiddy/extract-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the measurement store (ingest, retrieve, export, logic)",
	Long: `Store manages a local SQLite database built from batch extraction
results. Use subcommands to ingest result files, query measurements,
export the database, or combine extraction runs with boolean logic.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest batch results into the measurement store",
	Long: `Ingest reads [docID]-measurements.yaml files from the results directory,
loads them into a SQLite database with FTS5 indexing, and writes an
export file. Unchanged result files are skipped on subsequent runs.`,
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d result file(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [text query]",
	Short: "Query stored measurements with filters and full-text search",
	Long: `Retrieve searches the measurement store using structured filters
(document, feature, term, condition, value range), FTS5 full-text
search over matched text, or a combination of both.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := retrieveOptsFromFlags(cmd, args)
	if opts == (store.QueryOptions{}) {
		return fmt.Errorf("query or filter required: provide a text query, --doc, --feature, --term, or --condition")
	}

	results, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatMeasurements(results, jsonOutput)
}

func retrieveOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	text, _ := cmd.Flags().GetString("query")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}

	docID, _ := cmd.Flags().GetString("doc")
	feature, _ := cmd.Flags().GetString("feature")
	term, _ := cmd.Flags().GetString("term")
	condition, _ := cmd.Flags().GetString("condition")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Text:       text,
		DocID:      docID,
		Feature:    feature,
		Term:       term,
		Condition:  condition,
		MaxResults: limit,
	}
	if cmd.Flags().Changed("min-x") {
		v, _ := cmd.Flags().GetFloat64("min-x")
		opts.MinX = &v
	}
	if cmd.Flags().Changed("max-x") {
		v, _ := cmd.Flags().GetFloat64("max-x")
		opts.MaxX = &v
	}
	return opts
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the measurement store to YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ExportYAML(context.Background()); err != nil {
			return err
		}
		indexDir, _ := storeDirs(cmd)
		fmt.Printf("Exported to %s/export.yaml\n", indexDir)
		return nil
	},
}

// --- logic subcommand ---

var storeLogicCmd = &cobra.Command{
	Use:   "logic <and|or|a-not-b|not-a> [features...]",
	Short: "Combine extraction runs with boolean set logic",
	Long: `Logic joins extraction runs on the document. Each run is identified by
its feature label.

  and A B [C...]  measurements from documents carrying all features
  or A [B...]     measurements from documents carrying any feature
  a-not-b A B     measurements for A from documents without B
  not-a A         IDs of documents carrying no A measurement`,
	Args: cobra.MinimumNArgs(2),
	RunE: runStoreLogic,
}

func runStoreLogic(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	op, features := args[0], args[1:]
	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	switch op {
	case "and":
		results, err := s.And(ctx, features...)
		if err != nil {
			return err
		}
		return formatMeasurements(results, jsonOutput)
	case "or":
		results, err := s.Or(ctx, features...)
		if err != nil {
			return err
		}
		return formatMeasurements(results, jsonOutput)
	case "a-not-b":
		if len(features) != 2 {
			return fmt.Errorf("a-not-b takes exactly two features")
		}
		results, err := s.ANotB(ctx, features[0], features[1])
		if err != nil {
			return err
		}
		return formatMeasurements(results, jsonOutput)
	case "not-a":
		if len(features) != 1 {
			return fmt.Errorf("not-a takes exactly one feature")
		}
		ids, err := s.NotA(ctx, features[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ids)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		fmt.Printf("\n%d documents\n", len(ids))
		return nil
	default:
		return fmt.Errorf("unknown operation %q: use and, or, a-not-b, or not-a", op)
	}
}

// --- shared helpers ---

func storeDirs(cmd *cobra.Command) (indexDir, resultsDir string) {
	indexDir = viper.GetString("store.index_dir")
	resultsDir = viper.GetString("store.results_dir")
	if v, _ := cmd.Flags().GetString("index-dir"); v != "" {
		indexDir = v
	}
	if v, _ := cmd.Flags().GetString("results-dir"); v != "" {
		resultsDir = v
	}
	if indexDir == "" {
		indexDir = "index"
	}
	if resultsDir == "" {
		resultsDir = "results"
	}
	return indexDir, resultsDir
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	indexDir, resultsDir := storeDirs(cmd)
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return store.NewStore(types.StoreConfig{
		ResultsDir: resultsDir,
		IndexDir:   indexDir,
		MaxResults: maxResults,
	})
}

func formatMeasurements(results []types.StoredMeasurement, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-15s  %-10s  %-30s  %-8s  %s\n",
		"Doc", "Feature", "Term", "Text", "Cond", "X")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range results {
		doc := truncate(r.DocID, 20)
		feature := truncate(r.Feature, 15)
		term := truncate(r.MatchingTerm, 10)
		text := truncate(r.Text, 30)
		x := "-"
		if r.X != nil {
			x = fmt.Sprintf("%g", *r.X)
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-15s  %-10s  %-30s  %-8s  %s\n",
			doc, feature, term, text, string(r.Condition), x)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("index-dir", "", "index directory for the database and exports (default: index)")
	storeCmd.PersistentFlags().String("results-dir", "", "batch results directory to ingest from (default: results)")
	storeCmd.PersistentFlags().Int("max-results", 20, "default maximum number of query results")

	// Retrieve flags.
	storeRetrieveCmd.Flags().String("query", "", "full-text search over matched text and terms")
	storeRetrieveCmd.Flags().String("doc", "", "filter by document ID")
	storeRetrieveCmd.Flags().String("feature", "", "filter by feature label")
	storeRetrieveCmd.Flags().String("term", "", "filter by matching term")
	storeRetrieveCmd.Flags().String("condition", "", "filter by condition: EQUAL, RANGE, APPROX, ...")
	storeRetrieveCmd.Flags().Float64("min-x", 0, "minimum primary value")
	storeRetrieveCmd.Flags().Float64("max-x", 0, "maximum primary value")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	storeLogicCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeLogicCmd)

	rootCmd.AddCommand(storeCmd)
}
