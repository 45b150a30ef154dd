// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manual implements interactive question entry. Entered questions
// bypass fact extraction and classification but go through the same
// builder, so they satisfy the same structural invariants.
package manual

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/trivia-engine/internal/question"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// ErrAborted is returned when input ends in the middle of a question.
var ErrAborted = errors.New("input ended before the question was complete")

var (
	typeChoices = map[string]types.QuestionType{
		"1": types.TrueFalse,
		"2": types.MultipleChoice,
	}
	universeChoices = map[string]types.Universe{
		"1": types.UniverseDisney,
		"2": types.UniverseMarvel,
		"3": types.UniverseStarWars,
	}
	answerChoices = map[string]bool{
		"1": true,
		"2": false,
	}
)

// Session collects questions from a Prompter until an empty question text.
type Session struct {
	p       *Prompter
	builder *question.Builder
}

// NewSession returns a Session reading answers through p.
func NewSession(p *Prompter, b *question.Builder) *Session {
	return &Session{p: p, builder: b}
}

// Run prompts for questions until the user enters an empty question text or
// input ends. Completed questions are returned even when err is ErrAborted.
func (s *Session) Run() ([]types.Question, error) {
	var out []types.Question
	s.p.Println("\n=== Manual Question Entry ===")

	for {
		s.p.Println("\nEnter a new question (or press Enter to finish):")
		text, err := s.p.Line("Question text: ")
		if errors.Is(err, io.EOF) || (err == nil && text == "") {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		q, err := s.entry(text)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, ErrAborted
			}
			return out, err
		}
		out = append(out, q)
		s.p.Println("Question added!")
	}
}

func (s *Session) entry(text string) (types.Question, error) {
	kind, err := Ask(s.p, "Type (1 for True/False, 2 for Multiple Choice): ", "", OneOf(typeChoices))
	if err != nil {
		return types.Question{}, err
	}
	universe, err := Ask(s.p, "Universe (1 for Disney, 2 for Marvel, 3 for Star Wars): ", "", OneOf(universeChoices))
	if err != nil {
		return types.Question{}, err
	}
	difficulty, err := Ask(s.p, "Difficulty (1-5): ",
		fmt.Sprintf("Please enter a number between %d and %d", types.MinDifficulty, types.MaxDifficulty),
		IntIn(types.MinDifficulty, types.MaxDifficulty))
	if err != nil {
		return types.Question{}, err
	}

	if kind == types.TrueFalse {
		answer, err := Ask(s.p, "Correct answer (1 for True, 2 for False): ", "", OneOf(answerChoices))
		if err != nil {
			return types.Question{}, err
		}
		return s.builder.BuildTrueFalseAnswer(text, answer, universe, difficulty)
	}

	s.p.Println(fmt.Sprintf("Enter %d options:", types.OptionCount))
	options := make([]string, types.OptionCount)
	for i := range options {
		opt, err := s.p.Line(fmt.Sprintf("Option %d: ", i+1))
		if err != nil {
			return types.Question{}, err
		}
		options[i] = opt
	}
	correct, err := Ask(s.p, fmt.Sprintf("Which option is correct (1-%d): ", types.OptionCount),
		fmt.Sprintf("Please enter a number between 1 and %d", types.OptionCount),
		IntIn(1, types.OptionCount))
	if err != nil {
		return types.Question{}, err
	}
	return s.builder.BuildManualMultipleChoice(text, options, correct, universe, difficulty)
}
