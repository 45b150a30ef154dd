// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides which kind of question a fact can become.
//
// A fact shaped like "<subject> is|was a|an|the <predicate>" becomes a
// multiple-choice draft asking "What is <subject>?". Other facts become
// true/false drafts when they are short enough, and are dropped otherwise.
// The first match scanning left to right wins, so an embedded clause can
// be picked over the sentence's main relationship.
package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/trivia-engine/pkg/types"
)

// MaxTrueFalseLength is the rune count at which an unmatched fact is too
// long to ask as a true/false statement.
const MaxTrueFalseLength = 200

// definition captures subject (1), verb (2), article (3), and predicate (4).
// Subject and predicate are runs of ASCII letters and whitespace.
var definition = regexp.MustCompile(`([A-Za-z\s]+) (is|was) (a|an|the) ([A-Za-z\s]+)`)

// Match reports the trimmed subject and predicate of the first definition
// pattern in fact.
func Match(fact string) (subject, predicate string, ok bool) {
	m := definition.FindStringSubmatch(fact)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[4]), true
}

// Classify turns fact into a draft. The boolean is false when the fact
// yields no question.
func Classify(fact string) (types.Draft, bool) {
	if subject, predicate, ok := Match(fact); ok {
		return types.Draft{
			QuestionText: fmt.Sprintf("What is %s?", subject),
			Kind:         types.MultipleChoice,
			Subject:      subject,
			Predicate:    predicate,
		}, true
	}
	if utf8.RuneCountInString(fact) < MaxTrueFalseLength {
		return types.Draft{QuestionText: fact, Kind: types.TrueFalse}, true
	}
	return types.Draft{}, false
}
