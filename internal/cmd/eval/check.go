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

package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"znkr.io/docdiff"
)

// check validates hunks computed for x and y. Bounds and ordering are checked for every flag
// combination. Without flags, the unchanged lines between hunks must also be identical.
func check(x, y string, flags docdiff.Flags, hunks []docdiff.Hunk) error {
	xl, yl := lines(x), lines(y)
	var prev docdiff.Hunk
	for i, h := range hunks {
		if err := checkHunk(h, len(x), len(y), len(xl), len(yl)); err != nil {
			return fmt.Errorf("hunk %d: %w", i, err)
		}
		if i > 0 && (h.Left.Start < prev.Left.End || h.Right.Start < prev.Right.End) {
			return fmt.Errorf("hunk %d overlaps hunk %d", i, i-1)
		}
		if i > 0 && (h.LeftLines.Start < prev.LeftLines.End || h.RightLines.Start < prev.RightLines.End) {
			return fmt.Errorf("hunk %d overlaps hunk %d in lines", i, i-1)
		}
		prev = h
	}

	if flags != (docdiff.Flags{}) {
		return nil
	}
	s, t := 0, 0
	gap := func(s1, t1 int) error {
		if !slices.Equal(xl[s:s1], yl[t:t1]) {
			return fmt.Errorf("unchanged lines [%d, %d) and [%d, %d) differ", s, s1, t, t1)
		}
		return nil
	}
	for _, h := range hunks {
		if err := gap(h.LeftLines.Start, h.RightLines.Start); err != nil {
			return err
		}
		s, t = h.LeftLines.End, h.RightLines.End
	}
	return gap(len(xl), len(yl))
}

func checkHunk(h docdiff.Hunk, nx, ny, lx, ly int) error {
	valid := func(r docdiff.Range, n int) bool { return 0 <= r.Start && r.Start <= r.End && r.End <= n }
	switch {
	case !valid(h.Left, nx):
		return fmt.Errorf("invalid left range %v", h.Left)
	case !valid(h.Right, ny):
		return fmt.Errorf("invalid right range %v", h.Right)
	case !valid(h.LeftLines, lx):
		return fmt.Errorf("invalid left line range %v", h.LeftLines)
	case !valid(h.RightLines, ly):
		return fmt.Errorf("invalid right line range %v", h.RightLines)
	}
	switch h.Kind {
	case docdiff.Added:
		if h.LeftLines.Len() != 0 || h.Left.Len() != 0 || h.RightLines.Len() == 0 {
			return fmt.Errorf("invalid added hunk %+v", h)
		}
	case docdiff.Deleted:
		if h.RightLines.Len() != 0 || h.Right.Len() != 0 || h.LeftLines.Len() == 0 {
			return fmt.Errorf("invalid deleted hunk %+v", h)
		}
	case docdiff.Modified:
		if h.LeftLines.Len() == 0 || h.RightLines.Len() == 0 {
			return fmt.Errorf("invalid modified hunk %+v", h)
		}
	default:
		return fmt.Errorf("unexpected kind %v", h.Kind)
	}
	return nil
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// diffMatchPatchChanges returns the number of changed lines in a line diff computed by
// diffmatchpatch.
func diffMatchPatchChanges(x, y string) int {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	a, b, _ := dmp.DiffLinesToRunes(terminate(x), terminate(y))
	n := 0
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			n += utf8.RuneCountInString(d.Text)
		}
	}
	return n
}

// terminate appends a newline to a non-empty text so that diffmatchpatch sees the same lines as
// docdiff, including an empty last line.
func terminate(s string) string {
	if s == "" {
		return s
	}
	return s + "\n"
}
