// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extract-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the extract-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "extract-engine",
	Short: "Rule-based extraction of quantitative facts from text",
	Long: `extract-engine extracts numeric values and entities associated with query
terms from natural-language sentences. It handles plain values, ranges,
fractions, relational conditions (greater than, approximately, between),
and reported case counts in scraped report text.

Each pipeline stage is a subcommand: run extracts from one sentence,
batch runs a query over a document corpus, cases finds reported counts,
and store manages the measurement database built from batch results.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./extract-engine.yaml or ~/.config/extract-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("extract-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "extract-engine"))
		}
	}

	viper.SetEnvPrefix("EXTRACT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
