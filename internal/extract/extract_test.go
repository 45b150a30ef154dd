// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const samplePage = `<html><body>
<ul><li>Steamboat Willie premiered in 1928 in New York.</li></ul>
<p>Mickey Mouse is a cartoon character created by Walt Disney.[1]</p>
<p>Too short.</p>
<ol><li>Minnie Mouse first appeared alongside Mickey.[2][3]</li><li>short item</li></ol>
<p>
  Walt Disney   co-founded
  the studio with his brother Roy.
</p>
</body></html>`

func TestFacts_ParagraphsBeforeLists(t *testing.T) {
	facts := Facts(parse(t, samplePage))

	assert.Equal(t, []string{
		"Mickey Mouse is a cartoon character created by Walt Disney.",
		"Walt Disney co-founded the studio with his brother Roy.",
		"Steamboat Willie premiered in 1928 in New York.",
		"Minnie Mouse first appeared alongside Mickey.",
	}, facts)
}

func TestFacts_LengthBoundary(t *testing.T) {
	nineteen := strings.Repeat("a", 19)
	twenty := strings.Repeat("b", 20)
	twentyOne := strings.Repeat("c", 21)
	html := "<p>" + nineteen + "</p><p>" + twenty + "</p><p>" + twentyOne + "</p>"

	facts := Facts(parse(t, html))

	assert.Equal(t, []string{twentyOne}, facts)
}

func TestFacts_LengthCheckedBeforeNormalization(t *testing.T) {
	// 21 raw runes, 11 after the reference marker is removed.
	html := "<p>Short fact.[12345678]</p>"

	facts := Facts(parse(t, html))

	require.Len(t, facts, 1)
	assert.Equal(t, "Short fact.", facts[0])
}

func TestFacts_SurroundingWhitespaceNotCounted(t *testing.T) {
	html := "<p>\n\n      nineteen chars here     \n\n</p>"

	assert.Empty(t, Facts(parse(t, html)))
}

func TestFacts_CountsRunesNotBytes(t *testing.T) {
	// 20 runes but more than 20 bytes.
	html := "<p>" + strings.Repeat("é", 20) + "</p>"

	assert.Empty(t, Facts(parse(t, html)))
}

func TestFacts_NestedListItemsRepeat(t *testing.T) {
	html := `<ul>
<li>Outer item with enough text in it
  <ul><li>Inner item with enough text in it</li></ul>
</li>
</ul>`

	facts := Facts(parse(t, html))

	assert.Equal(t, []string{
		"Outer item with enough text in it Inner item with enough text in it",
		"Inner item with enough text in it",
		"Inner item with enough text in it",
	}, facts)
}

func TestFacts_NilDocument(t *testing.T) {
	assert.Nil(t, Facts(nil))
}

func TestFactsFromHTML(t *testing.T) {
	facts, err := FactsFromHTML(strings.NewReader(samplePage))
	require.NoError(t, err)
	assert.Len(t, facts, 4)
}
