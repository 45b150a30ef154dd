package store

import "github.com/pdiddy/trivia-engine/pkg/types"

// Criteria selects questions. Zero-valued fields match everything.
type Criteria struct {
	Universe types.Universe
	Type     types.QuestionType

	// Tier matches an exact difficulty tier.
	Tier int

	// MaxTier matches the tier and every easier one.
	MaxTier int
}

// Match reports whether q satisfies c.
func (c Criteria) Match(q types.Question) bool {
	if c.Universe != "" && q.Universe != c.Universe {
		return false
	}
	if c.Type != "" && q.QuestionType != c.Type {
		return false
	}
	if c.Tier != 0 && q.DifficultyTier != c.Tier {
		return false
	}
	if c.MaxTier != 0 && q.DifficultyTier > c.MaxTier {
		return false
	}
	return true
}

// Filter returns the questions matching c, in order. The result is never nil.
func Filter(qs []types.Question, c Criteria) []types.Question {
	out := []types.Question{}
	for _, q := range qs {
		if c.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

// Stats counts questions per universe, type, and tier.
type Stats struct {
	Total      int                        `json:"total" yaml:"total"`
	ByUniverse map[types.Universe]int     `json:"byUniverse" yaml:"byUniverse"`
	ByType     map[types.QuestionType]int `json:"byType" yaml:"byType"`
	ByTier     map[int]int                `json:"byTier" yaml:"byTier"`
}

// Summarize computes Stats for qs.
func Summarize(qs []types.Question) Stats {
	st := Stats{
		Total:      len(qs),
		ByUniverse: map[types.Universe]int{},
		ByType:     map[types.QuestionType]int{},
		ByTier:     map[int]int{},
	}
	for _, q := range qs {
		st.ByUniverse[q.Universe]++
		st.ByType[q.QuestionType]++
		st.ByTier[q.DifficultyTier]++
	}
	return st
}
