// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manual

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads trimmed answers line by line, writing each prompt first.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from r and prompting on w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Line prints prompt and returns the next input line, trimmed. It returns
// io.EOF once input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Println writes a line of output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Ask prompts until parse accepts the answer. After each rejected answer
// hint is printed when non-empty. There is no retry limit; only the end of
// input stops the loop.
func Ask[T any](p *Prompter, prompt, hint string, parse func(string) (T, bool)) (T, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		if v, ok := parse(line); ok {
			return v, nil
		}
		if hint != "" {
			p.Println(hint)
		}
	}
}

// IntIn returns a parser accepting integers in [lo,hi].
func IntIn(lo, hi int) func(string) (int, bool) {
	return func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return 0, false
		}
		return n, true
	}
}

// OneOf returns a parser accepting only the keys of choices and yielding
// the mapped value.
func OneOf[T any](choices map[string]T) func(string) (T, bool) {
	return func(s string) (T, bool) {
		v, ok := choices[s]
		return v, ok
	}
}
