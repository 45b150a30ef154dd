// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the trivia-engine CLI.
// The root command scrapes fandom wikis and/or collects manually entered
// questions and writes them as the JSON question set read by the game.
// Subcommands archive question sets, serve them for preview, and print the version.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the trivia-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "trivia-engine",
	Short: "Generate trivia questions from fandom wikis",
	Long: `trivia-engine builds the question set for Tri-Force Trivia Quest.

With --scrape it downloads wiki pages for each selected universe, extracts
factual sentences, and turns them into true/false or multiple-choice
questions. With --manual it prompts for questions on the terminal. Both modes
may be combined; the collected questions are written to --output.

Running without --scrape or --manual prints this help and does nothing.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./trivia-engine.yaml or ~/.config/trivia-engine/trivia-engine.yaml)")
	pf.BoolP("verbose", "v", false, "print debug output")

	f := rootCmd.Flags()
	f.Bool("scrape", false, "scrape wikis for facts")
	f.Bool("manual", false, "enter questions interactively")
	f.String("universe", "all", "universe to scrape: disney, marvel, starwars, or all")
	f.StringArray("pages", nil, "wiki page to scrape instead of each universe's configured pages (repeatable; commas are kept)")
	f.String("output", types.DefaultOutputPath, "output JSON file")
	f.Bool("split-levels", false, "also write questions_level1..5.json next to the output file")
	f.Bool("echo", false, "print manual-entry prompts even when stdin is not a terminal")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("output.path", f.Lookup("output"))
	viper.BindPFlag("output.split_levels", f.Lookup("split-levels"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("scrape.timeout", types.DefaultTimeout)
	viper.SetDefault("scrape.user_agent", types.DefaultUserAgent)
	viper.SetDefault("scrape.request_delay", types.DefaultRequestDelay)
	viper.SetDefault("scrape.max_retries", 0)
	viper.SetDefault("output.path", types.DefaultOutputPath)
	viper.SetDefault("output.split_levels", false)
	viper.SetDefault("archive.path", types.DefaultArchivePath)
	viper.SetDefault("archive.max_results", 20)
	viper.SetDefault("serve.addr", types.DefaultServeAddr)
	viper.SetDefault("serve.allowed_origins", []string{"http://localhost:5173"})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("trivia-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "trivia-engine"))
		}
	}

	viper.SetEnvPrefix("TRIVIA_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment, file, and default settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
