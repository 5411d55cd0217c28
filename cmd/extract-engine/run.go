// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-engine/internal/extract"
	"github.com/pdiddy/extract-engine/internal/finder"
	"github.com/pdiddy/extract-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [sentence]",
	Short: "Extract values for query terms from one sentence",
	Long: `Run searches a sentence for the comma-separated query terms and prints
the extracted measurements as JSON. Values may be plain numbers, ranges,
fractions, or, with --enum, entities from an enumerated filter list.

Examples:
  extract-engine run --terms "temp,bp" "BP 120/80 HR 60 temp 98.6"
  extract-engine run --terms fvc --min 1000 --max 4000 "the fvc is 1500 ml"
  extract-engine run --terms positive --enum "flu,rsv" "tested positive for flu"`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	engine := extract.New(engineConfigFromFlags(cmd), finder.Defaults())

	result, err := engine.Run(queryFromFlags(cmd), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// queryFromFlags assembles one extraction query from the shared query
// flag set.
func queryFromFlags(cmd *cobra.Command) extract.Query {
	terms, _ := cmd.Flags().GetString("terms")
	minVal, _ := cmd.Flags().GetString("min")
	maxVal, _ := cmd.Flags().GetString("max")
	enumTerms, _ := cmd.Flags().GetString("enum")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	denomOnly, _ := cmd.Flags().GetBool("denom-only")

	return extract.Query{
		Terms:         terms,
		MinVal:        minVal,
		MaxVal:        maxVal,
		EnumTerms:     enumTerms,
		CaseSensitive: caseSensitive,
		DenomOnly:     denomOnly,
	}
}

// engineConfigFromFlags merges the config file with command-line flags.
// Flags win.
func engineConfigFromFlags(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		CaseSensitive:      viper.GetBool("engine.case_sensitive"),
		DenomOnly:          viper.GetBool("engine.denom_only"),
		HypotheticalWindow: viper.GetInt("engine.hypothetical_window"),
	}
	if cmd.Flags().Changed("window") {
		cfg.HypotheticalWindow, _ = cmd.Flags().GetInt("window")
	}
	return cfg
}

// addQueryFlags registers the shared query flag set on a command.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("terms", "", "comma-separated query terms (required)")
	cmd.Flags().String("min", "", "minimum acceptable value (number or fraction)")
	cmd.Flags().String("max", "", "maximum acceptable value (number or fraction)")
	cmd.Flags().String("enum", "", "comma-separated filter list; switches to text-extraction mode")
	cmd.Flags().Bool("case-sensitive", false, "preserve case when matching terms")
	cmd.Flags().Bool("denom-only", false, "return fraction denominators instead of numerators")
	cmd.Flags().Int("window", 0, "hypothetical suppression window in words (0 = default)")

	if err := cmd.MarkFlagRequired("terms"); err != nil {
		panic(fmt.Sprintf("marking terms flag required: %v", err))
	}
}

func init() {
	addQueryFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
