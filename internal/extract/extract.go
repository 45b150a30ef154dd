// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract identifies candidate facts within parsed wiki pages.
// Paragraphs are scanned first, then list items of ordered and unordered
// lists, each in document order.
package extract

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/trivia-engine/internal/normalize"
)

// MinFactLength is the minimum rune count of a block's trimmed text for it
// to count as a fact. The check runs before normalization, so a block can
// pass and still shrink below this length once reference markers are removed.
const MinFactLength = 21

// Facts returns the candidate facts of doc: the text of every <p>, followed
// by the text of every <li> found under each <ul> or <ol>. An item inside a
// nested list is visited once per enclosing list.
func Facts(doc *goquery.Document) []string {
	if doc == nil {
		return nil
	}
	var facts []string
	collect := func(_ int, s *goquery.Selection) {
		if fact, ok := candidate(s.Text()); ok {
			facts = append(facts, fact)
		}
	}

	doc.Find("p").Each(collect)
	doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		list.Find("li").Each(collect)
	})
	return facts
}

// FactsFromHTML parses an HTML document from r and returns its facts.
func FactsFromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Facts(doc), nil
}

// candidate applies the length filter to a block's flattened text and
// normalizes it. Blocks that normalize to nothing are dropped.
func candidate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinFactLength {
		return "", false
	}
	fact := normalize.Text(text)
	if fact == "" {
		return "", false
	}
	return fact, true
}
