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

package docdiff

import (
	"znkr.io/docdiff/internal/config"
	"znkr.io/docdiff/internal/rvecs"
	"znkr.io/docdiff/internal/spans"
	"znkr.io/docdiff/normalize"
)

// document is a text split into the units that are compared.
type document struct {
	text  string
	units []spans.Unit
	keys  []string // keys[i] is the comparison key of units[i]
}

func split(text string, cfg config.Config) document {
	var (
		units []spans.Unit
		fns   []normalize.Func
	)
	if cfg.IgnoreReflow {
		units = spans.Paragraphs(text)
		fns = append(fns, normalize.Paragraph)
	} else {
		units = spans.Lines(text)
	}
	if cfg.IgnorePunctuation {
		fns = append(fns, normalize.Punctuation)
	}
	if cfg.IgnoreWhitespace {
		fns = append(fns, normalize.Whitespace)
	}
	key := normalize.Chain(fns...)

	keys := make([]string, len(units))
	for i, u := range units {
		keys[i] = key(u.Text(text))
	}
	return document{text, units, keys}
}

// cursor returns the byte and line position of units[i]. If i is past the last unit, that's the
// end of the text.
func (d *document) cursor(i int) (pos, line int) {
	return spans.Next(d.text, d.units, i-1)
}

// ranges returns the byte and line ranges covered by units[i0:i1]. If the range is empty, the
// returned ranges are empty and positioned at units[i0].
func (d *document) ranges(i0, i1 int) (bytes, lines Range) {
	if i0 == i1 {
		pos, line := d.cursor(i0)
		return Range{pos, pos}, Range{line, line}
	}
	first, last := d.units[i0], d.units[i1-1]
	return Range{first.Start, last.End}, Range{first.Line0, last.Line1}
}

func buildHunks(x, y document, rx, ry []bool, cfg config.Config) []Hunk {
	var out []Hunk
	add := func(kind Kind, s0, s1, t0, t1 int) {
		left, leftLines := x.ranges(s0, s1)
		right, rightLines := y.ranges(t0, t1)
		out = append(out, Hunk{
			Kind:       kind,
			Left:       left,
			Right:      right,
			LeftLines:  leftLines,
			RightLines: rightLines,
		})
	}

	for run := range rvecs.Runs(rx, ry) {
		if cfg.Granularity == config.GranularityBlock {
			add(kindOf(run.S1-run.S0, run.T1-run.T0), run.S0, run.S1, run.T0, run.T1)
			continue
		}

		// Pair deleted and inserted units, then emit the surplus on either side one by one.
		pairs := min(run.S1-run.S0, run.T1-run.T0)
		for k := range pairs {
			add(Modified, run.S0+k, run.S0+k+1, run.T0+k, run.T0+k+1)
		}
		for s := run.S0 + pairs; s < run.S1; s++ {
			add(Deleted, s, s+1, run.T1, run.T1)
		}
		for t := run.T0 + pairs; t < run.T1; t++ {
			add(Added, run.S1, run.S1, t, t+1)
		}
	}
	return out
}

func kindOf(deleted, inserted int) Kind {
	switch {
	case deleted > 0 && inserted > 0:
		return Modified
	case deleted > 0:
		return Deleted
	default:
		return Added
	}
}
