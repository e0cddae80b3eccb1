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
	"testing"

	"znkr.io/docdiff"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		x, y    string
		flags   docdiff.Flags
		hunks   []docdiff.Hunk
		wantErr bool
	}{
		{
			name: "identical",
			x:    "a\nb",
			y:    "a\nb",
		},
		{
			name: "modified",
			x:    "a\nb\nc",
			y:    "a\nB\nc",
			hunks: []docdiff.Hunk{{
				Kind:       docdiff.Modified,
				Left:       docdiff.Range{Start: 2, End: 3},
				Right:      docdiff.Range{Start: 2, End: 3},
				LeftLines:  docdiff.Range{Start: 1, End: 2},
				RightLines: docdiff.Range{Start: 1, End: 2},
			}},
		},
		{
			name:    "missing-hunk",
			x:       "a\nb\nc",
			y:       "a\nB\nc",
			wantErr: true,
		},
		{
			name:  "missing-hunk-ignored",
			x:     "a\nb\nc",
			y:     "a\nB\nc",
			flags: docdiff.Flags{IgnoreWhitespace: true},
		},
		{
			name: "out-of-bounds",
			x:    "a",
			y:    "b",
			hunks: []docdiff.Hunk{{
				Kind:       docdiff.Modified,
				Left:       docdiff.Range{Start: 0, End: 2},
				Right:      docdiff.Range{Start: 0, End: 1},
				LeftLines:  docdiff.Range{Start: 0, End: 1},
				RightLines: docdiff.Range{Start: 0, End: 1},
			}},
			wantErr: true,
		},
		{
			name: "added-with-left-lines",
			x:    "a",
			y:    "a\nb",
			hunks: []docdiff.Hunk{{
				Kind:       docdiff.Added,
				Left:       docdiff.Range{Start: 1, End: 1},
				Right:      docdiff.Range{Start: 2, End: 3},
				LeftLines:  docdiff.Range{Start: 0, End: 1},
				RightLines: docdiff.Range{Start: 1, End: 2},
			}},
			wantErr: true,
		},
		{
			name: "overlap",
			x:    "a\nb",
			y:    "c\nd",
			hunks: []docdiff.Hunk{
				{
					Kind:       docdiff.Modified,
					Left:       docdiff.Range{Start: 0, End: 3},
					Right:      docdiff.Range{Start: 0, End: 1},
					LeftLines:  docdiff.Range{Start: 0, End: 2},
					RightLines: docdiff.Range{Start: 0, End: 1},
				},
				{
					Kind:       docdiff.Modified,
					Left:       docdiff.Range{Start: 2, End: 3},
					Right:      docdiff.Range{Start: 2, End: 3},
					LeftLines:  docdiff.Range{Start: 1, End: 2},
					RightLines: docdiff.Range{Start: 1, End: 2},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.x, tt.y, tt.flags, tt.hunks)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("check() = %v, want error: %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckComputeDiff(t *testing.T) {
	x := "The quick brown fox\njumps over\nthe lazy dog.\n\nSecond paragraph.\n"
	y := "The quick brown fox\njumps  over\nthe lazy cat\n\nSecond paragraph\nand more.\n"
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			hunks := docdiff.ComputeDiff(x, y, v.flags, v.opts...)
			if err := check(x, y, v.flags, hunks); err != nil {
				t.Errorf("check() = %v", err)
			}
		})
	}
}

func TestDiffMatchPatchChanges(t *testing.T) {
	tests := []struct {
		x, y string
		want int
	}{
		{"", "", 0},
		{"a\nb", "a\nb", 0},
		{"a", "a\n", 1},
		{"a\nb\nc", "a\nB\nc", 2},
		{"", "a\nb", 2},
	}
	for _, tt := range tests {
		if got := diffMatchPatchChanges(tt.x, tt.y); got != tt.want {
			t.Errorf("diffMatchPatchChanges(%q, %q) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
