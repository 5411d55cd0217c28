// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-engine/internal/casecount"
	"github.com/pdiddy/extract-engine/internal/corpus"
	"github.com/pdiddy/extract-engine/internal/finder"
)

var casesCmd = &cobra.Command{
	Use:   "cases [sentence]",
	Short: "Find reported case, hospitalization, and death counts",
	Long: `Cases extracts counts of reported cases, hospitalizations, and deaths
from report text. With a sentence argument it processes that sentence;
with --file it processes every sentence of a text or HTML document;
with --stdin it processes one sentence per input line. Results print
as JSON, one report array per sentence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCases,
}

func runCases(cmd *cobra.Command, args []string) error {
	useStdin, _ := cmd.Flags().GetBool("stdin")
	file, _ := cmd.Flags().GetString("file")
	if !useStdin && file == "" && len(args) == 0 {
		return fmt.Errorf("a sentence argument, --file, or --stdin is required")
	}

	f := casecount.NewFinder(finder.Defaults())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if file != "" {
		doc, err := corpus.LoadFile(file)
		if err != nil {
			return err
		}
		for _, sentence := range doc.Sentences {
			reports := f.Run(sentence)
			if len(reports) == 0 {
				continue
			}
			if err := enc.Encode(reports); err != nil {
				return err
			}
		}
		return nil
	}

	if !useStdin {
		return enc.Encode(f.Run(args[0]))
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := enc.Encode(f.Run(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func init() {
	casesCmd.Flags().Bool("stdin", false, "read sentences from standard input, one per line")
	casesCmd.Flags().String("file", "", "read sentences from a .txt or .html document")

	rootCmd.AddCommand(casesCmd)
}
