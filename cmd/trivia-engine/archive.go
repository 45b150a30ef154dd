// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trivia-engine/internal/archive"
	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep generated question sets in a searchable SQLite archive",
	Long: `Archive stores question sets produced by earlier runs in a local SQLite
database. Use subcommands to import question files, search them, export
a filtered set, or print counts.`,
}

// --- import subcommand ---

var archiveImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import question JSON files into the archive",
	Long: `Import reads question files written by trivia-engine and stores each as
a run. Unchanged files are skipped; a changed file replaces its previous run.
Without arguments the configured output file is imported.`,
	RunE: runArchiveImport,
}

func runArchiveImport(cmd *cobra.Command, args []string) error {
	a, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		args = []string{viper.GetString("output.path")}
	}

	failed := 0
	for _, path := range args {
		if _, err := a.ImportFile(context.Background(), path, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "failed:  %s (%v)\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to import", failed)
	}
	return nil
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived questions by text and filters",
	Long: `Search matches archived question text case-insensitively, optionally
narrowed by universe, question type, maximum tier, or run.`,
	RunE: runArchiveSearch,
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	a, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	results, err := a.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []archive.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-14s  %-8s  %-4s  %-50s  %s\n",
		"Rank", "Type", "Universe", "Tier", "Question", "Answer")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-14s  %-8s  %-4d  %-50s  %s\n",
			i+1, r.QuestionType, r.Universe, r.DifficultyTier,
			truncate(r.QuestionText, 50), truncate(r.CorrectAnswer, 24))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived questions to JSON or YAML",
	Long: `Export writes every archived question matching the filters to --out in
the same format the game reads (json) or as YAML.`,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	a, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	var n int
	switch format {
	case "json", "":
		if out == "" {
			out = "data/export.json"
		}
		n, err = a.ExportJSON(context.Background(), opts, out)
	case "yaml":
		if out == "" {
			out = "data/export.yaml"
		}
		n, err = a.ExportYAML(context.Background(), opts, out)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s\n", n, out)
	return nil
}

// --- stats subcommand ---

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print archived question counts per universe, type, and tier",
	RunE:  runArchiveStats,
}

func runArchiveStats(cmd *cobra.Command, args []string) error {
	a, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	runs, err := a.Runs(ctx)
	if err != nil {
		return err
	}
	st, err := a.Stats(ctx, archive.QueryOptions{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Runs:      %d\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(w, "  %s  %s  %4d  %s\n", r.ID, r.ImportedAt, r.QuestionCount, r.Source)
	}
	printStats(w, st)
	return nil
}

func printStats(w io.Writer, st store.Stats) {
	fmt.Fprintf(w, "Questions: %d\n", st.Total)
	for _, u := range types.Universes {
		fmt.Fprintf(w, "  %-14s %d\n", u, st.ByUniverse[u])
	}
	for _, t := range []types.QuestionType{types.TrueFalse, types.MultipleChoice} {
		fmt.Fprintf(w, "  %-14s %d\n", t, st.ByType[t])
	}
	tiers := make([]int, 0, len(st.ByTier))
	for tier := range st.ByTier {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)
	for _, tier := range tiers {
		fmt.Fprintf(w, "  tier %-9d %d\n", tier, st.ByTier[tier])
	}
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.Archive.Path = path
	}
	return archive.NewStore(cfg.Archive)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (archive.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	universe, _ := cmd.Flags().GetString("universe")
	qType, _ := cmd.Flags().GetString("type")
	maxTier, _ := cmd.Flags().GetInt("max-tier")
	runID, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := archive.QueryOptions{
		Query:      queryText,
		Type:       types.QuestionType(qType),
		MaxTier:    maxTier,
		RunID:      runID,
		MaxResults: limit,
	}
	if universe != "" {
		u, err := types.ParseUniverse(universe)
		if err != nil {
			return opts, err
		}
		opts.Universe = u
	}
	switch opts.Type {
	case "", types.TrueFalse, types.MultipleChoice:
	default:
		return opts, fmt.Errorf("unknown question type %q: use TrueFalse or MultipleChoice", qType)
	}
	return opts, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "substring of the question text")
	cmd.Flags().String("universe", "", "filter by universe: disney, marvel, or starwars")
	cmd.Flags().String("type", "", "filter by question type: TrueFalse or MultipleChoice")
	cmd.Flags().Int("max-tier", 0, "filter to this difficulty tier and below")
	cmd.Flags().String("run", "", "filter by run ID")
}

func init() {
	archiveCmd.PersistentFlags().String("db", "", "archive database (default: archive.path from config)")

	addFilterFlags(archiveSearchCmd)
	archiveSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use archive.max_results, negative = all)")
	archiveSearchCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(archiveExportCmd)
	archiveExportCmd.Flags().String("format", "json", "export format: json or yaml")
	archiveExportCmd.Flags().String("out", "", "export file (default data/export.json or data/export.yaml)")

	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveStatsCmd)

	rootCmd.AddCommand(archiveCmd)
}
