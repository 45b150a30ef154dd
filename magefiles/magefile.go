//go:build mage

// Package main contains Mage build targets for trivia-engine developer tooling.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"data",
	"data/archive",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir     = "bin"
	binName    = "trivia-engine"
	cmdPkg     = "./cmd/trivia-engine"
	outputFile = "data/questions.json"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Scrape builds the CLI and scrapes every universe into data/questions.json,
// also writing the per-level files.
func Scrape() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "--scrape", "--split-levels", "--output", outputFile)
}

// Archive imports data/questions.json into the question archive.
func Archive() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "archive", "import", outputFile)
}

// Stats prints project metrics: Go production/test LOC and the question
// counts of data/questions.json when it exists.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	counts, err := countQuestions(outputFile)
	if err != nil {
		return err
	}
	if counts == nil {
		return nil
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("Questions (%s):\n", outputFile)
	for _, k := range keys {
		fmt.Printf("  %-26s %d\n", k, counts[k])
	}
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countQuestions tallies questions by universe/type and tier. A missing
// file yields nil counts.
func countQuestions(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var qs []struct {
		QuestionType   string `json:"questionType"`
		Universe       string `json:"universe"`
		DifficultyTier int    `json:"difficultyTier"`
	}
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	counts := map[string]int{"total": len(qs)}
	for _, q := range qs {
		counts[q.Universe+"/"+q.QuestionType]++
		counts[fmt.Sprintf("tier %d", q.DifficultyTier)]++
	}
	return counts, nil
}
