// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package normalize provides the text transforms used to ignore differences when comparing
// documents.
//
// All functions are pure and idempotent, f(f(x)) == f(x). They return the input unchanged (without
// allocating) if it's already normalized.
//
// The transforms are lossy and only meant to decide if two pieces of text are equivalent. They are
// never used to report positions, see [znkr.io/docdiff.ComputeDiff].
package normalize

import (
	"strings"

	"znkr.io/docdiff/internal/spans"
)

// Func is a text transform.
type Func func(string) string

// Chain returns a transform that applies fns in order. Nil functions are skipped.
func Chain(fns ...Func) Func {
	var chain []Func
	for _, fn := range fns {
		if fn != nil {
			chain = append(chain, fn)
		}
	}
	switch len(chain) {
	case 0:
		return func(s string) string { return s }
	case 1:
		return chain[0]
	}
	return func(s string) string {
		for _, fn := range chain {
			s = fn(s)
		}
		return s
	}
}

// Whitespace collapses runs of horizontal whitespace (spaces and tabs) into a single space and
// removes horizontal whitespace at the beginning and end of every line. Newlines are preserved.
func Whitespace(text string) string {
	if whitespaceNormalized(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		end := len(text)
		if j := strings.IndexByte(text[i:], '\n'); j >= 0 {
			end = i + j
		}
		writeCollapsed(&b, text[i:end])
		if end == len(text) {
			break
		}
		b.WriteByte('\n')
		i = end + 1
	}
	return b.String()
}

func isHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' }

func whitespaceNormalized(text string) bool {
	for i := range len(text) {
		switch text[i] {
		case '\t':
			return false
		case ' ':
			if i == 0 || text[i-1] == ' ' || text[i-1] == '\n' {
				return false
			}
			if i+1 == len(text) || text[i+1] == '\n' {
				return false
			}
		}
	}
	return true
}

// writeCollapsed writes line to b with normalized horizontal whitespace.
func writeCollapsed(b *strings.Builder, line string) {
	pending, wrote := false, false
	for i := range len(line) {
		c := line[i]
		if isHorizontalSpace(c) {
			pending = true
			continue
		}
		if pending && wrote {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteByte(c)
		wrote = true
	}
}

// PunctuationChars are the characters removed by [Punctuation].
const PunctuationChars = `.,;:!?'"`

// Punctuation removes all [PunctuationChars] from text.
func Punctuation(text string) string {
	if !strings.ContainsAny(text, PunctuationChars) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := range len(text) {
		if c := text[i]; strings.IndexByte(PunctuationChars, c) < 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Reflow joins the lines of every paragraph in text into a single line.
//
// Paragraphs are separated by one or more blank lines. The lines of a paragraph are trimmed and
// joined with a single space. The resulting paragraphs are separated by exactly one empty line.
// Leading and trailing blank lines are dropped.
//
// Reflow changes the line structure of text. It's only meaningful when applied to both sides of a
// comparison.
func Reflow(text string) string {
	if strings.IndexByte(text, '\n') < 0 {
		return Paragraph(text)
	}
	paras := spans.Paragraphs(text)
	if len(paras) == 1 && paras[0].Span == (spans.Span{Start: 0, End: len(text)}) {
		return Paragraph(text)
	}
	var b strings.Builder
	b.Grow(len(text))
	for i, p := range paras {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(Paragraph(p.Text(text)))
	}
	if b.Len() == len(text) && b.String() == text {
		return text
	}
	return b.String()
}

// Paragraph joins the lines of a single paragraph with a single space after trimming each line.
// Blank lines are dropped.
func Paragraph(p string) string {
	if strings.IndexByte(p, '\n') < 0 {
		return strings.Trim(p, spans.BlankChars)
	}
	var b strings.Builder
	b.Grow(len(p))
	for line := range strings.SplitSeq(p, "\n") {
		line = strings.Trim(line, spans.BlankChars)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return b.String()
}
