// Package normalize cleans raw text pulled from wiki pages.
package normalize

import (
	"regexp"
	"strings"
)

// refMarker matches bracketed numeric footnote markers such as "[12]".
var refMarker = regexp.MustCompile(`\[\d+\]`)

// Text removes reference markers, collapses every whitespace run (newlines,
// tabs, non-breaking spaces) into a single space, and trims the result.
// Empty input yields empty output.
func Text(raw string) string {
	s := refMarker.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(s), " ")
}
