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

// Package render presents the hunks computed by [znkr.io/docdiff.ComputeDiff].
//
// All renderers take the original texts and the hunks computed for them. They never compare the
// texts themselves, so the output reflects whatever flags and options were used to compute the
// hunks.
package render

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
	"znkr.io/docdiff/internal/config"
	"znkr.io/docdiff/internal/spans"
	"znkr.io/docdiff/render/color"
)

// Option configures a renderer.
type Option func(*settings)

type settings struct {
	width    int // total width of a side-by-side view
	context  int // number of unchanged lines around changes in a unified view
	tabWidth int
	colors   config.ColorConfig
	cond     *runewidth.Condition
}

func newSettings(opts []Option) settings {
	s := settings{
		width:    80,
		context:  3,
		tabWidth: 4,
		colors:   config.NoColors,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.cond = runewidth.NewCondition()
	s.cond.EastAsianWidth = false
	s.cond.StrictEmojiNeutral = true
	return s
}

// Width sets the total width of a side-by-side view in terminal columns. The default is 80.
func Width(n int) Option {
	return func(s *settings) {
		s.width = max(7, n)
	}
}

// Context sets the number of unchanged lines shown before and after changes in a unified view.
// The default is 3.
func Context(n int) Option {
	return func(s *settings) {
		s.context = max(0, n)
	}
}

// TabWidth sets the number of columns a tab expands to. The default is 4.
func TabWidth(n int) Option {
	return func(s *settings) {
		s.tabWidth = max(1, n)
	}
}

// TerminalColors enables colored output using ANSI escape sequences. Without options, added text
// is green, deleted text is red and modified text is yellow.
func TerminalColors(opts ...color.Option) Option {
	return func(s *settings) {
		s.colors = config.DefaultColors
		for _, opt := range opts {
			opt(&s.colors)
		}
	}
}

// lines returns the lines of text for display. Trailing carriage returns are dropped.
func lines(text string) []string {
	units := spans.Lines(text)
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = strings.TrimSuffix(u.Text(text), "\r")
	}
	return out
}

// paint wraps text in the color code, unless either is empty.
func (s *settings) paint(code, text string) string {
	if code == "" || text == "" {
		return text
	}
	return code + text + s.colors.Reset
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func (s *settings) expandTabs(line string) string {
	if strings.IndexByte(line, '\t') < 0 {
		return line
	}
	var sb strings.Builder
	col := 0
	iter := graphemes.FromString(line)
	for iter.Next() {
		g := iter.Value()
		if g == "\t" {
			n := s.tabWidth - col%s.tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteString(g)
		col += s.cond.StringWidth(g)
	}
	return sb.String()
}

// fit truncates line to at most width columns and returns it with its width. Truncated lines end
// in an ellipsis. Lines are only cut at grapheme cluster boundaries.
func (s *settings) fit(line string, width int) (string, int) {
	line = s.expandTabs(line)
	w := s.cond.StringWidth(line)
	if w <= width {
		return line, w
	}
	const ellipsis = "…"
	limit := width - 1
	col := 0
	end := 0
	iter := graphemes.FromString(line)
	for iter.Next() {
		gw := s.cond.StringWidth(iter.Value())
		if col+gw > limit {
			break
		}
		col += gw
		end = iter.End()
	}
	return line[:end] + ellipsis, col + 1
}
