// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/trivia-engine/internal/fetch"
	"github.com/pdiddy/trivia-engine/internal/generate"
	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/internal/manual"
	"github.com/pdiddy/trivia-engine/internal/question"
	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

func runRoot(cmd *cobra.Command, args []string) error {
	scrape, _ := cmd.Flags().GetBool("scrape")
	manualMode, _ := cmd.Flags().GetBool("manual")
	if !scrape && !manualMode {
		return cmd.Help()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("universe")
	universes, err := types.SelectUniverses(filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	builder := question.NewBuilder(nil)
	set := store.NewSet()

	if scrape {
		pages, _ := cmd.Flags().GetStringArray("pages")
		set.Extend(scrapeQuestions(cmd.Context(), cfg, universes, pages, generate.New(builder), out))
	}

	if manualMode {
		echo, _ := cmd.Flags().GetBool("echo")
		qs, err := enterQuestions(cmd.InOrStdin(), out, echo, builder)
		set.Extend(qs)
		switch {
		case errors.Is(err, manual.ErrAborted):
			logger.Warn("%v; keeping %d entered question(s)", err, len(qs))
		case err != nil:
			return err
		}
	}

	return saveQuestions(set, cfg.Output, out)
}

// scrapeQuestions harvests facts for each universe in turn and converts
// them into questions. Page failures are reported and skipped.
func scrapeQuestions(ctx context.Context, cfg types.Config, universes []types.Universe, pages []string, gen *generate.Generator, w io.Writer) []types.Question {
	f := fetch.New(&http.Client{Timeout: cfg.Scrape.Timeout}, cfg.Scrape)

	var out []types.Question
	for _, u := range universes {
		src := cfg.Source(u)
		if len(pages) > 0 {
			src.Pages = pages
		}

		harvest := f.Harvest(ctx, u, src, w)
		qs, summary := gen.FromFacts(harvest.Facts, u, w)
		logger.Info("%s: %d multiple choice, %d true/false, %d dropped",
			u, summary.MultipleChoice, summary.TrueFalse, summary.Dropped)
		out = append(out, qs...)
	}
	return out
}

// enterQuestions runs a manual entry session on in. Prompts go to out only
// when in is a terminal or echo is set.
func enterQuestions(in io.Reader, out io.Writer, echo bool, b *question.Builder) ([]types.Question, error) {
	if !echo && !isTerminal(in) {
		out = io.Discard
	}
	return manual.NewSession(manual.NewPrompter(in, out), b).Run()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func saveQuestions(set *store.Set, cfg types.OutputConfig, w io.Writer) error {
	if set.Len() == 0 {
		fmt.Fprintln(w, "No questions generated.")
		return nil
	}
	if err := set.WriteJSON(cfg.Path); err != nil {
		return fmt.Errorf("saving questions: %w", err)
	}
	fmt.Fprintf(w, "Successfully saved %d questions to %s\n", set.Len(), cfg.Path)

	if cfg.SplitLevels {
		paths, err := set.WriteLevels(cfg.Path)
		if err != nil {
			return fmt.Errorf("saving level files: %w", err)
		}
		for _, p := range paths {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	return nil
}
