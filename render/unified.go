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
	"fmt"
	"strings"

	"znkr.io/docdiff"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

// Unified renders the hunks similar to the unified format of diff -u. Hunks that are close to each
// other are merged into one section.
//
// Lines are the lines of the compared texts, including an empty last line if a text ends in a
// newline. Unchanged lines are taken from x. The output is meant to be read, it's not a patch.
//
// The following options are supported: [Context], [TerminalColors]
func Unified(x, y string, hunks []docdiff.Hunk, opts ...Option) string {
	s := newSettings(opts)
	xlines, ylines := lines(x), lines(y)

	var sb strings.Builder
	write := func(prefix, code string, lines []string) {
		for _, line := range lines {
			sb.WriteString(s.paint(code, prefix+line))
			sb.WriteByte('\n')
		}
	}

	for i := 0; i < len(hunks); {
		// Find all hunks that are close enough to be shown in the same section.
		j := i + 1
		for j < len(hunks) && hunks[j].LeftLines.Start-hunks[j-1].LeftLines.End <= 2*s.context {
			j++
		}
		first, last := hunks[i], hunks[j-1]

		before := min(s.context, first.LeftLines.Start, first.RightLines.Start)
		after := min(s.context, len(xlines)-last.LeftLines.End, len(ylines)-last.RightLines.End)
		s0, t0 := first.LeftLines.Start-before, first.RightLines.Start-before
		s1, t1 := last.LeftLines.End+after, last.RightLines.End+after

		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", s0+1, s1-s0, t0+1, t1-t0)
		sb.WriteString(s.paint(s.colors.Gutter, header))
		sb.WriteByte('\n')

		sx := s0
		for _, h := range hunks[i:j] {
			write(prefixMatch, "", xlines[sx:h.LeftLines.Start])
			write(prefixDelete, s.colors.Deleted, xlines[h.LeftLines.Start:h.LeftLines.End])
			write(prefixInsert, s.colors.Added, ylines[h.RightLines.Start:h.RightLines.End])
			sx = h.LeftLines.End
		}
		write(prefixMatch, "", xlines[sx:s1])
		i = j
	}
	return sb.String()
}
