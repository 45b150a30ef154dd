// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store holds the ordered question set of a run and persists it as
// the JSON array read by the game frontend.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/trivia-engine/pkg/types"
)

// Set is an append-only, ordered collection of questions.
type Set struct {
	questions []types.Question
}

// NewSet returns a set holding qs in order.
func NewSet(qs ...types.Question) *Set {
	s := &Set{}
	s.Extend(qs)
	return s
}

// Append adds q to the end of the set.
func (s *Set) Append(q types.Question) {
	s.questions = append(s.questions, q)
}

// Extend adds qs to the end of the set, preserving their order.
func (s *Set) Extend(qs []types.Question) {
	s.questions = append(s.questions, qs...)
}

// Len returns the number of questions.
func (s *Set) Len() int {
	return len(s.questions)
}

// Questions returns a deep copy of the questions in order. Callers may
// modify the result, options included, without affecting the set.
func (s *Set) Questions() []types.Question {
	out := make([]types.Question, len(s.questions))
	for i, q := range s.questions {
		if q.Options != nil {
			q.Options = append([]string(nil), q.Options...)
		}
		out[i] = q
	}
	return out
}

// Encode renders qs as a 2-space indented JSON array without HTML escaping.
func Encode(qs []types.Question) ([]byte, error) {
	if qs == nil {
		qs = []types.Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return nil, fmt.Errorf("marshaling questions: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the set to path, creating parent directories and
// replacing any existing file. An empty set is written as "[]". A failed
// write may leave the file truncated.
func (s *Set) WriteJSON(path string) error {
	return writeFile(path, s.questions, Encode)
}

// WriteYAML writes the set to path as a YAML sequence.
func (s *Set) WriteYAML(path string) error {
	return writeFile(path, s.questions, func(qs []types.Question) ([]byte, error) {
		if qs == nil {
			qs = []types.Question{}
		}
		data, err := yaml.Marshal(qs)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	})
}

// LevelPath returns the per-tier file name next to path,
// e.g. data/questions_level3.json.
func LevelPath(path string, tier int) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("questions_level%d.json", tier))
}

// WriteLevels writes one file per difficulty tier next to path, each holding
// the questions of exactly that tier in set order. Tiers with no questions
// get an empty array. It returns the paths written.
func (s *Set) WriteLevels(path string) ([]string, error) {
	var written []string
	for tier := types.MinDifficulty; tier <= types.MaxDifficulty; tier++ {
		p := LevelPath(path, tier)
		qs := Filter(s.questions, Criteria{Tier: tier})
		if err := writeFile(p, qs, Encode); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

// ReadJSON loads a persisted question array from path.
func ReadJSON(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question file: %w", err)
	}
	var qs []types.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parsing question file %s: %w", path, err)
	}
	return NewSet(qs...), nil
}

func writeFile(path string, qs []types.Question, encode func([]types.Question) ([]byte, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving output path %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := encode(qs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
