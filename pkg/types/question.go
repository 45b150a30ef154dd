// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the trivia-engine pipeline.
// Facts flow from extraction through classification into Question records
// that are persisted as a JSON array consumed by the game frontend.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Universe tags every question with the content domain it belongs to.
type Universe string

const (
	UniverseDisney   Universe = "Disney"
	UniverseMarvel   Universe = "Marvel"
	UniverseStarWars Universe = "StarWars"
)

// Universes lists every universe in menu order (1=Disney, 2=Marvel, 3=StarWars).
var Universes = []Universe{UniverseDisney, UniverseMarvel, UniverseStarWars}

// ErrInvalidUniverse is returned when a universe name cannot be resolved.
var ErrInvalidUniverse = errors.New("invalid universe")

// Key returns the lowercase CLI/config key for the universe (e.g. "starwars").
func (u Universe) Key() string {
	return strings.ToLower(string(u))
}

// ParseUniverse resolves a case-insensitive universe key or name.
func ParseUniverse(s string) (Universe, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	for _, u := range Universes {
		if u.Key() == key {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUniverse, s)
}

// SelectUniverses expands a CLI filter (disney, marvel, starwars, or all)
// into the universes to process, in menu order.
func SelectUniverses(filter string) ([]Universe, error) {
	if f := strings.ToLower(strings.TrimSpace(filter)); f == "" || f == "all" {
		out := make([]Universe, len(Universes))
		copy(out, Universes)
		return out, nil
	}
	u, err := ParseUniverse(filter)
	if err != nil {
		return nil, err
	}
	return []Universe{u}, nil
}

// QuestionType distinguishes true/false from multiple-choice questions.
type QuestionType string

const (
	TrueFalse      QuestionType = "TrueFalse"
	MultipleChoice QuestionType = "MultipleChoice"
)

const (
	// MinDifficulty and MaxDifficulty bound Question.DifficultyTier.
	MinDifficulty = 1
	MaxDifficulty = 5

	// OptionCount is the number of options on every multiple-choice question.
	OptionCount = 4

	AnswerTrue  = "True"
	AnswerFalse = "False"
)

// Question is the persisted quiz record. Field names and order match the
// JSON schema read by the game frontend.
type Question struct {
	QuestionText   string       `json:"questionText" yaml:"questionText"`
	QuestionType   QuestionType `json:"questionType" yaml:"questionType"`
	Options        []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer  string       `json:"correctAnswer" yaml:"correctAnswer"`
	Universe       Universe     `json:"universe" yaml:"universe"`
	DifficultyTier int          `json:"difficultyTier" yaml:"difficultyTier"`
}

// Validate checks the structural invariants of a question: non-empty text,
// a tier within [1,5], exactly four options containing the correct answer for
// multiple choice, and no options for true/false.
func (q Question) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return errors.New("question text is empty")
	}
	if q.DifficultyTier < MinDifficulty || q.DifficultyTier > MaxDifficulty {
		return fmt.Errorf("difficulty tier %d outside [%d,%d]", q.DifficultyTier, MinDifficulty, MaxDifficulty)
	}
	switch q.QuestionType {
	case TrueFalse:
		if len(q.Options) != 0 {
			return errors.New("true/false question carries options")
		}
		if q.CorrectAnswer != AnswerTrue && q.CorrectAnswer != AnswerFalse {
			return fmt.Errorf("true/false answer %q is neither True nor False", q.CorrectAnswer)
		}
	case MultipleChoice:
		if len(q.Options) != OptionCount {
			return fmt.Errorf("multiple choice has %d options, want %d", len(q.Options), OptionCount)
		}
		found := false
		for _, o := range q.Options {
			if o == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("correct answer %q not among options", q.CorrectAnswer)
		}
	default:
		return fmt.Errorf("unknown question type %q", q.QuestionType)
	}
	return nil
}

// Draft is the intermediate classification result for one fact. It is
// consumed immediately by the question builder and never persisted.
type Draft struct {
	QuestionText string
	Kind         QuestionType

	// Subject and Predicate are set only for MultipleChoice drafts.
	Subject   string
	Predicate string
}
