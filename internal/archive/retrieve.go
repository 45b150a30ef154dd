// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/trivia-engine/pkg/types"
)

// QueryOptions filters archived questions. Zero values match everything.
type QueryOptions struct {
	// Query is a case-insensitive substring of the question text.
	Query    string
	Universe types.Universe
	Type     types.QuestionType
	MaxTier  int
	RunID    string

	// MaxResults caps the result count; 0 uses the store default and a
	// negative value returns every match.
	MaxResults int
}

// QueryResult is an archived question with its provenance.
type QueryResult struct {
	types.Question `yaml:",inline"`

	RunID    string `json:"runId" yaml:"runId"`
	Position int    `json:"position" yaml:"position"`
}

// Retrieve returns archived questions matching opts in import order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	limit := opts.MaxResults
	if limit == 0 {
		limit = s.maxResults
	}

	var (
		where []string
		args  []any
	)
	if opts.Query != "" {
		where = append(where, `question_text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.Universe != "" {
		where = append(where, `universe = ?`)
		args = append(args, string(opts.Universe))
	}
	if opts.Type != "" {
		where = append(where, `question_type = ?`)
		args = append(args, string(opts.Type))
	}
	if opts.MaxTier > 0 {
		where = append(where, `difficulty_tier <= ?`)
		args = append(args, opts.MaxTier)
	}
	if opts.RunID != "" {
		where = append(where, `run_id = ?`)
		args = append(args, opts.RunID)
	}

	query := `SELECT run_id, position, question_text, question_type, options, correct_answer, universe, difficulty_tier FROM questions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			r       QueryResult
			qType   string
			uni     string
			options sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.Position, &r.QuestionText, &qType, &options,
			&r.CorrectAnswer, &uni, &r.DifficultyTier); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		r.QuestionType = types.QuestionType(qType)
		r.Universe = types.Universe(uni)
		if options.Valid {
			if err := json.Unmarshal([]byte(options.String), &r.Options); err != nil {
				return nil, fmt.Errorf("decoding options: %w", err)
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Run describes one imported question file.
type Run struct {
	ID            string `json:"id" yaml:"id"`
	Source        string `json:"source" yaml:"source"`
	ImportedAt    string `json:"importedAt" yaml:"importedAt"`
	QuestionCount int    `json:"questionCount" yaml:"questionCount"`
}

// Runs lists imported runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, imported_at, question_count FROM runs ORDER BY imported_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.ImportedAt, &r.QuestionCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
