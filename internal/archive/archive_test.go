package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trivia-engine/internal/store"
	"github.com/pdiddy/trivia-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	s, err := NewStore(types.ArchiveConfig{
		Path:       filepath.Join(tmpDir, "archive", "questions.db"),
		MaxResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, tmpDir
}

func writeQuestions(t *testing.T, path string, qs ...types.Question) {
	t.Helper()
	require.NoError(t, store.NewSet(qs...).WriteJSON(path))
}

func mc(text, answer string, u types.Universe, tier int) types.Question {
	return types.Question{
		QuestionText:   text,
		QuestionType:   types.MultipleChoice,
		Options:        []string{"Alternative 1", answer, "Alternative 2", "Alternative 3"},
		CorrectAnswer:  answer,
		Universe:       u,
		DifficultyTier: tier,
	}
}

func tf(text string, u types.Universe, tier int) types.Question {
	return types.Question{
		QuestionText:   text,
		QuestionType:   types.TrueFalse,
		CorrectAnswer:  types.AnswerTrue,
		Universe:       u,
		DifficultyTier: tier,
	}
}

func sample() []types.Question {
	return []types.Question{
		mc("What is Mickey Mouse?", "cartoon character created by Walt Disney", types.UniverseDisney, 2),
		tf("Tony Stark built his first armor in a cave.", types.UniverseMarvel, 4),
		mc("What is Darth Vader?", "Sith Lord", types.UniverseStarWars, 5),
		tf("The Millennium Falcon made the Kessel Run in 12 parsecs.", types.UniverseStarWars, 1),
	}
}

// --- tests ---

func TestImportFile_RoundTrip(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)

	sum, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Imported)
	assert.False(t, sum.Skipped)
	assert.False(t, sum.Replaced)
	assert.NotEmpty(t, sum.RunID)

	got, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, sum.RunID, runs[0].ID)
	assert.Equal(t, 4, runs[0].QuestionCount)
}

func TestImportFile_SkipsUnchanged(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)

	first, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	var out strings.Builder
	second, err := s.ImportFile(ctx, path, &out)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Contains(t, out.String(), "unchanged")

	got, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestImportFile_ReplacesChanged(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)

	first, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	writeQuestions(t, path, tf("Luke Skywalker grew up on Tatooine.", types.UniverseStarWars, 3))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)
	assert.True(t, second.Replaced)
	assert.NotEqual(t, first.RunID, second.RunID)

	got, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Luke Skywalker grew up on Tatooine.", got[0].QuestionText)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestImportFile_SeparateSourcesAccumulate(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	writeQuestions(t, a, sample()[:2]...)
	writeQuestions(t, b, sample()[2:]...)

	_, err := s.ImportFile(ctx, a, io.Discard)
	require.NoError(t, err)
	sb, err := s.ImportFile(ctx, b, io.Discard)
	require.NoError(t, err)

	got, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	onlyB, err := s.Retrieve(ctx, QueryOptions{RunID: sb.RunID})
	require.NoError(t, err)
	require.Len(t, onlyB, 2)
	assert.Equal(t, 0, onlyB[0].Position)
	assert.Equal(t, 1, onlyB[1].Position)
}

func TestImportFile_Errors(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()

	_, err := s.ImportFile(ctx, filepath.Join(dir, "missing.json"), io.Discard)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = s.ImportFile(ctx, bad, io.Discard)
	assert.Error(t, err)
}

func TestRetrieve_Filters(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)
	_, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all", QueryOptions{}, []string{
			"What is Mickey Mouse?",
			"Tony Stark built his first armor in a cave.",
			"What is Darth Vader?",
			"The Millennium Falcon made the Kessel Run in 12 parsecs.",
		}},
		{"query case-insensitive", QueryOptions{Query: "vader"}, []string{"What is Darth Vader?"}},
		{"universe", QueryOptions{Universe: types.UniverseStarWars}, []string{
			"What is Darth Vader?",
			"The Millennium Falcon made the Kessel Run in 12 parsecs.",
		}},
		{"type", QueryOptions{Type: types.TrueFalse}, []string{
			"Tony Stark built his first armor in a cave.",
			"The Millennium Falcon made the Kessel Run in 12 parsecs.",
		}},
		{"max tier", QueryOptions{MaxTier: 2}, []string{
			"What is Mickey Mouse?",
			"The Millennium Falcon made the Kessel Run in 12 parsecs.",
		}},
		{"combined", QueryOptions{Query: "what", Universe: types.UniverseDisney}, []string{"What is Mickey Mouse?"}},
		{"max results", QueryOptions{MaxResults: 1}, []string{"What is Mickey Mouse?"}},
		{"like wildcards are literal", QueryOptions{Query: "%"}, nil},
		{"no match", QueryOptions{Query: "Groot"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.Retrieve(ctx, tt.opts)
			require.NoError(t, err)
			var texts []string
			for _, r := range results {
				texts = append(texts, r.QuestionText)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestRetrieve_DefaultLimit(t *testing.T) {
	tmpDir := t.TempDir()
	s, err := NewStore(types.ArchiveConfig{Path: filepath.Join(tmpDir, "q.db"), MaxResults: 2})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	path := filepath.Join(tmpDir, "questions.json")
	writeQuestions(t, path, sample()...)
	_, err = s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	results, err := s.Retrieve(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	all, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	unlimited, err := s.Retrieve(ctx, QueryOptions{MaxResults: -1})
	require.NoError(t, err)
	assert.Len(t, unlimited, 4)
}

func TestExport(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)
	_, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "out", "starwars.json")
	n, err := s.ExportJSON(ctx, QueryOptions{Universe: types.UniverseStarWars}, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	set, err := store.ReadJSON(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, sample()[2:], set.Questions())

	yamlPath := filepath.Join(dir, "out", "all.yaml")
	n, err = s.ExportYAML(ctx, QueryOptions{}, yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "questionText: What is Mickey Mouse?")

	nonePath := filepath.Join(dir, "none.json")
	n, err = s.ExportJSON(ctx, QueryOptions{Query: "Groot"}, nonePath)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	data, err = os.ReadFile(nonePath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestStats(t *testing.T) {
	s, dir := testSetup(t)
	ctx := context.Background()
	path := filepath.Join(dir, "questions.json")
	writeQuestions(t, path, sample()...)
	_, err := s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)

	st, err := s.Stats(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByUniverse[types.UniverseStarWars])
	assert.Equal(t, 2, st.ByType[types.TrueFalse])
	assert.Equal(t, 1, st.ByTier[5])
}

func TestNewStore_ReopensExisting(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := types.ArchiveConfig{Path: filepath.Join(tmpDir, "q.db")}
	ctx := context.Background()

	s, err := NewStore(cfg)
	require.NoError(t, err)
	path := filepath.Join(tmpDir, "questions.json")
	writeQuestions(t, path, sample()...)
	_, err = s.ImportFile(ctx, path, io.Discard)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(cfg)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Questions(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}
