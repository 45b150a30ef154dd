// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"

	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// Questions returns every archived question matching opts, ignoring the
// result cap.
func (s *Store) Questions(ctx context.Context, opts QueryOptions) ([]types.Question, error) {
	opts.MaxResults = -1
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	qs := make([]types.Question, len(results))
	for i, r := range results {
		qs[i] = r.Question
	}
	return qs, nil
}

// ExportJSON writes the matching questions to path in the frontend's JSON format.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) (int, error) {
	qs, err := s.Questions(ctx, opts)
	if err != nil {
		return 0, err
	}
	return len(qs), store.NewSet(qs...).WriteJSON(path)
}

// ExportYAML writes the matching questions to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) (int, error) {
	qs, err := s.Questions(ctx, opts)
	if err != nil {
		return 0, err
	}
	return len(qs), store.NewSet(qs...).WriteYAML(path)
}

// Stats summarizes the matching questions.
func (s *Store) Stats(ctx context.Context, opts QueryOptions) (store.Stats, error) {
	qs, err := s.Questions(ctx, opts)
	if err != nil {
		return store.Stats{}, err
	}
	return store.Summarize(qs), nil
}
