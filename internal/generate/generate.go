// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns extracted facts into questions. Each fact is
// classified once; multiple-choice drafts get static placeholder
// distractors and every question gets a random difficulty tier.
package generate

import (
	"fmt"
	"io"

	"github.com/pdiddy/trivia-engine/internal/classify"
	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/internal/question"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// WrongAnswers are the distractors used for every generated multiple-choice question.
var WrongAnswers = []string{"Alternative 1", "Alternative 2", "Alternative 3"}

// Summary holds counts from one generation run.
type Summary struct {
	MultipleChoice int
	TrueFalse      int
	Negated        int
	Dropped        int
	Invalid        int
}

// Total returns the number of facts processed.
func (s Summary) Total() int {
	return s.MultipleChoice + s.TrueFalse + s.Dropped + s.Invalid
}

// Generator converts facts into questions.
type Generator struct {
	builder *question.Builder

	// Negator, when set, turns true/false facts it can negate into
	// statements whose answer is "False".
	Negator question.Negator
}

// New returns a Generator that builds questions with b.
func New(b *question.Builder) *Generator {
	return &Generator{builder: b}
}

// FromFacts generates questions for universe from facts in order, printing
// a header line to w. Facts too long for true/false without a definition
// match are dropped.
func (g *Generator) FromFacts(facts []string, universe types.Universe, w io.Writer) ([]types.Question, Summary) {
	fmt.Fprintf(w, "Generating questions for %d facts from %s universe\n", len(facts), universe)

	var (
		out     []types.Question
		summary Summary
	)
	for _, fact := range facts {
		draft, ok := classify.Classify(fact)
		if !ok {
			logger.Debug("dropped fact (%d chars, no definition match)", len(fact))
			summary.Dropped++
			continue
		}

		q, err := g.build(draft, universe, &summary)
		if err != nil {
			logger.Warn("skipping fact: %v", err)
			summary.Invalid++
			continue
		}
		if q.QuestionType == types.MultipleChoice {
			summary.MultipleChoice++
		} else {
			summary.TrueFalse++
		}
		out = append(out, q)
	}
	return out, summary
}

func (g *Generator) build(d types.Draft, universe types.Universe, summary *Summary) (types.Question, error) {
	difficulty := g.builder.Difficulty()
	if d.Kind == types.MultipleChoice {
		return g.builder.BuildMultipleChoice(d.QuestionText, d.Predicate, WrongAnswers, universe, difficulty)
	}
	if g.Negator != nil {
		if statement, ok := g.Negator.Negate(d.QuestionText); ok {
			summary.Negated++
			return g.builder.BuildTrueFalseAnswer(statement, false, universe, difficulty)
		}
	}
	return g.builder.BuildTrueFalse(d.QuestionText, universe, difficulty)
}
