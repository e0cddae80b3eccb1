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
	"znkr.io/docdiff/internal/config"
)

// Side selects one of the two compared texts.
type Side int

const (
	Left Side = iota
	Right
)

// Markers used by Inline when colors are disabled, following wdiff.
const (
	startDelete = "[-"
	stopDelete  = "-]"
	startInsert = "{+"
	stopInsert  = "+}"
)

// Inline renders one of the compared texts with the changed regions highlighted. text must be the
// text on the given side of the comparison that produced hunks.
//
// Without colors, changed regions are wrapped in [-...-] on the left side and {+...+} on the right
// side. Empty regions, like the position of an insertion on the left side, aren't marked.
//
// The following option is supported: [TerminalColors]
func Inline(text string, hunks []docdiff.Hunk, side Side, opts ...Option) string {
	s := newSettings(opts)
	colored := s.colors != config.NoColors

	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for _, h := range hunks {
		r, code, start, stop := h.Left, s.colors.Deleted, startDelete, stopDelete
		if side == Right {
			r, code, start, stop = h.Right, s.colors.Added, startInsert, stopInsert
		}
		if h.Kind == docdiff.Modified {
			code = s.colors.Modified
		}
		if r.Len() == 0 {
			continue
		}
		sb.WriteString(text[pos:r.Start])
		if colored {
			sb.WriteString(s.paint(code, text[r.Start:r.End]))
		} else {
			sb.WriteString(start)
			sb.WriteString(text[r.Start:r.End])
			sb.WriteString(stop)
		}
		pos = r.End
	}
	sb.WriteString(text[pos:])
	return sb.String()
}
