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

// Package spans splits text into the units the diff engine compares (lines or paragraphs) without
// copying. Every unit remembers where it lives in the original text, which is what the hunks
// report back to the caller.
package spans

import "strings"

// Span is a half-open byte range [Start, End) into a text.
type Span struct {
	Start, End int
}

// Unit is a piece of text compared as a whole.
//
// Span never includes the newline terminating the unit. Line0 and Line1 are the half-open range
// of line indices the unit covers.
type Unit struct {
	Span
	Line0, Line1 int
}

// Text returns the unit's text in s. s must be the text the unit was split from.
func (u Unit) Text(s string) string { return s[u.Start:u.End] }

// CountLines returns the number of lines in text. An empty text has zero lines, otherwise there's
// one more line than there are newline characters. In particular, a text ending in a newline
// has an empty last line.
func CountLines(text string) int {
	if len(text) == 0 {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

// Lines splits text on '\n' and returns one unit per line.
func Lines(text string) []Unit {
	n := CountLines(text)
	if n == 0 {
		return nil
	}
	units := make([]Unit, n)
	pos := 0
	for i := range n - 1 {
		m := pos + strings.IndexByte(text[pos:], '\n')
		units[i] = Unit{Span{pos, m}, i, i + 1}
		pos = m + 1
	}
	units[n-1] = Unit{Span{pos, len(text)}, n - 1, n}
	return units
}

// Paragraphs splits text into paragraphs. Paragraphs are separated by one or more blank lines,
// see [IsBlank]. A paragraph spans from the start of its first line to the end of its last line.
// Blank lines don't belong to any paragraph.
func Paragraphs(text string) []Unit {
	lines := Lines(text)
	var units []Unit
	open := false
	for _, l := range lines {
		if IsBlank(l.Text(text)) {
			open = false
			continue
		}
		if !open {
			units = append(units, l)
			open = true
			continue
		}
		p := &units[len(units)-1]
		p.End = l.End
		p.Line1 = l.Line1
	}
	return units
}

// BlankChars are the characters that may appear on a blank line.
const BlankChars = " \t\r\f"

// IsBlank reports whether line consists only of [BlankChars].
func IsBlank(line string) bool {
	for i := range len(line) {
		if strings.IndexByte(BlankChars, line[i]) < 0 {
			return false
		}
	}
	return true
}

// Next returns the position in text and the line index directly after units[i]. That is the start
// of the next unit or, if units[i] is the last unit, the end of text and the total number of lines.
// For i == -1, Next returns the position of the first unit.
func Next(text string, units []Unit, i int) (pos, line int) {
	if i+1 < len(units) {
		return units[i+1].Start, units[i+1].Line0
	}
	return len(text), CountLines(text)
}
