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

package render

import (
	"strings"

	"znkr.io/docdiff"
)

// Gutter markers between the two columns of a side-by-side view, following diff -y.
const (
	markUnchanged = "   "
	markModified  = " | "
	markDeleted   = " < "
	markAdded     = " > "
)

// SideBySide renders x and y in two columns. Rows are aligned so that unchanged lines are next to
// each other and changed lines are next to their counterpart.
//
// The following options are supported: [Width], [TabWidth], [TerminalColors]
func SideBySide(x, y string, hunks []docdiff.Hunk, opts ...Option) string {
	s := newSettings(opts)
	colw := (s.width - len(markUnchanged)) / 2
	xlines, ylines := lines(x), lines(y)

	var sb strings.Builder
	row := func(left, right, mark, leftColor, rightColor string) {
		l, w := s.fit(left, colw)
		sb.WriteString(s.paint(leftColor, l))
		if right == "" {
			// Avoid trailing whitespace.
			mark = strings.TrimRight(mark, " ")
		}
		if mark != "" {
			sb.WriteString(strings.Repeat(" ", colw-w))
			sb.WriteString(s.paint(s.colors.Gutter, mark))
		}
		if right != "" {
			r, _ := s.fit(right, colw)
			sb.WriteString(s.paint(rightColor, r))
		}
		sb.WriteByte('\n')
	}
	unchanged := func(s0, s1, t0, t1 int) {
		for i := range max(s1-s0, t1-t0) {
			var left, right string
			if s0+i < s1 {
				left = xlines[s0+i]
			}
			if t0+i < t1 {
				right = ylines[t0+i]
			}
			row(left, right, markUnchanged, "", "")
		}
	}

	s0, t0 := 0, 0
	for _, h := range hunks {
		unchanged(s0, h.LeftLines.Start, t0, h.RightLines.Start)

		leftColor, rightColor := s.colors.Modified, s.colors.Modified
		switch h.Kind {
		case docdiff.Deleted:
			leftColor = s.colors.Deleted
		case docdiff.Added:
			rightColor = s.colors.Added
		}
		nl, nr := h.LeftLines.Len(), h.RightLines.Len()
		for i := range max(nl, nr) {
			var left, right string
			mark := markModified
			switch {
			case i >= nr:
				left, mark = xlines[h.LeftLines.Start+i], markDeleted
			case i >= nl:
				right, mark = ylines[h.RightLines.Start+i], markAdded
			default:
				left, right = xlines[h.LeftLines.Start+i], ylines[h.RightLines.Start+i]
			}
			row(left, right, mark, leftColor, rightColor)
		}
		s0, t0 = h.LeftLines.End, h.RightLines.End
	}
	unchanged(s0, len(xlines), t0, len(ylines))
	return sb.String()
}
