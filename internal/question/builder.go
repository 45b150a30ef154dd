// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package question constructs normalized Question records and enforces
// their structural invariants.
package question

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pdiddy/trivia-engine/internal/logger"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// WrongAnswerCount is the number of distractors on a multiple-choice question.
const WrongAnswerCount = types.OptionCount - 1

// Placeholder fills wrong-answer slots that were not supplied.
const Placeholder = "Unknown"

// Builder creates questions. Its random source drives option shuffling
// and difficulty draws so tests can seed it.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder returns a Builder using rng. A nil rng is replaced by a
// time-seeded PCG source.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	return &Builder{rng: rng}
}

// Difficulty draws a tier uniformly from [1,5].
func (b *Builder) Difficulty() int {
	return types.MinDifficulty + b.rng.IntN(types.MaxDifficulty-types.MinDifficulty+1)
}

// BuildTrueFalse asks fact as a true/false statement. The source text is
// taken as ground truth, so the answer is always "True".
func (b *Builder) BuildTrueFalse(fact string, universe types.Universe, difficulty int) (types.Question, error) {
	return b.BuildTrueFalseAnswer(fact, true, universe, difficulty)
}

// BuildTrueFalseAnswer asks statement as a true/false question with the given answer.
func (b *Builder) BuildTrueFalseAnswer(statement string, answer bool, universe types.Universe, difficulty int) (types.Question, error) {
	correct := types.AnswerFalse
	if answer {
		correct = types.AnswerTrue
	}
	return finish(types.Question{
		QuestionText:   statement,
		QuestionType:   types.TrueFalse,
		CorrectAnswer:  correct,
		Universe:       universe,
		DifficultyTier: difficulty,
	})
}

// BuildMultipleChoice asks questionText with correct and exactly three wrong
// answers: missing ones are padded with Placeholder, extras are dropped.
// The four options are shuffled uniformly.
func (b *Builder) BuildMultipleChoice(questionText, correct string, wrong []string, universe types.Universe, difficulty int) (types.Question, error) {
	if n := len(wrong); n < WrongAnswerCount {
		logger.Warn("only %d wrong answers for %q, padding with %q", n, questionText, Placeholder)
	}
	options := make([]string, 0, types.OptionCount)
	options = append(options, correct)
	for i := 0; i < WrongAnswerCount; i++ {
		if i < len(wrong) {
			options = append(options, wrong[i])
		} else {
			options = append(options, Placeholder)
		}
	}
	b.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return finish(types.Question{
		QuestionText:   questionText,
		QuestionType:   types.MultipleChoice,
		Options:        options,
		CorrectAnswer:  correct,
		Universe:       universe,
		DifficultyTier: difficulty,
	})
}

// BuildManualMultipleChoice keeps options in the order entered and marks
// options[correctIndex-1] as the answer. correctIndex is 1-based.
func (b *Builder) BuildManualMultipleChoice(questionText string, options []string, correctIndex int, universe types.Universe, difficulty int) (types.Question, error) {
	if len(options) != types.OptionCount {
		return types.Question{}, fmt.Errorf("need %d options, got %d", types.OptionCount, len(options))
	}
	if correctIndex < 1 || correctIndex > len(options) {
		return types.Question{}, fmt.Errorf("correct option %d outside [1,%d]", correctIndex, len(options))
	}
	return finish(types.Question{
		QuestionText:   questionText,
		QuestionType:   types.MultipleChoice,
		Options:        append([]string(nil), options...),
		CorrectAnswer:  options[correctIndex-1],
		Universe:       universe,
		DifficultyTier: difficulty,
	})
}

func finish(q types.Question) (types.Question, error) {
	if err := q.Validate(); err != nil {
		return types.Question{}, fmt.Errorf("invalid question: %w", err)
	}
	return q, nil
}
