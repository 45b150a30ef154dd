// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps generated question sets in a SQLite database so
// runs can be searched, compared, and re-exported.
//
// Each imported question file becomes a run. Re-importing an unchanged file
// is a no-op; re-importing a changed file replaces that file's previous run.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// Store manages the archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at cfg.Path, creating
// its directory and schema when missing.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			question_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			question_text TEXT NOT NULL,
			question_type TEXT NOT NULL,
			options TEXT,
			correct_answer TEXT NOT NULL,
			universe TEXT NOT NULL,
			difficulty_tier INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_run_id ON questions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_universe ON questions(universe)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_tier ON questions(difficulty_tier)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			run_id TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary describes the outcome of importing one question file.
type ImportSummary struct {
	RunID    string
	Source   string
	Imported int
	Replaced bool
	Skipped  bool
}

// ImportFile loads the question file at path into a new run. Unchanged
// files (same modification time as the last import) are skipped.
func (s *Store) ImportFile(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)
	summary := ImportSummary{Source: abs}

	var storedModTime, previousRun string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time, run_id FROM import_status WHERE source = ?`, abs,
	).Scan(&storedModTime, &previousRun)
	switch {
	case err == nil && storedModTime == modTime:
		fmt.Fprintf(w, "skipped %s (unchanged)\n", path)
		summary.RunID = previousRun
		summary.Skipped = true
		return summary, nil
	case err != nil && err != sql.ErrNoRows:
		return summary, fmt.Errorf("checking import status: %w", err)
	}

	set, err := store.ReadJSON(abs)
	if err != nil {
		return summary, err
	}

	summary.RunID = uuid.NewString()
	summary.Replaced = previousRun != ""
	if err := s.importRun(ctx, summary.RunID, abs, previousRun, modTime, set.Questions()); err != nil {
		return summary, err
	}
	summary.Imported = set.Len()

	verb := "imported"
	if summary.Replaced {
		verb = "replaced"
	}
	fmt.Fprintf(w, "%s %s (%d questions, run %s)\n", verb, path, summary.Imported, summary.RunID)
	return summary, nil
}

func (s *Store) importRun(ctx context.Context, runID, source, previousRun, modTime string, qs []types.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if previousRun != "" {
		if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE run_id = ?`, previousRun); err != nil {
			return fmt.Errorf("deleting previous questions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, previousRun); err != nil {
			return fmt.Errorf("deleting previous run: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, imported_at, question_count) VALUES (?, ?, ?, ?)`,
		runID, source, time.Now().UTC().Format(time.RFC3339), len(qs),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (run_id, position, question_text, question_type, options, correct_answer, universe, difficulty_tier)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range qs {
		var options sql.NullString
		if q.Options != nil {
			data, _ := json.Marshal(q.Options)
			options = sql.NullString{String: string(data), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			runID, i, q.QuestionText, string(q.QuestionType), options,
			q.CorrectAnswer, string(q.Universe), q.DifficultyTier,
		)
		if err != nil {
			return fmt.Errorf("inserting question %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (source, file_mod_time, run_id) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time=excluded.file_mod_time, run_id=excluded.run_id`,
		source, modTime, runID,
	)
	if err != nil {
		return fmt.Errorf("updating import status: %w", err)
	}

	return tx.Commit()
}
