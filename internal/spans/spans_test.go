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

package spans

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Unit
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "newline-only",
			input: "\n",
			want: []Unit{
				{Span{0, 0}, 0, 1},
				{Span{1, 1}, 1, 2},
			},
		},
		{
			name:  "missing-newline",
			input: "foo\nbar",
			want: []Unit{
				{Span{0, 3}, 0, 1},
				{Span{4, 7}, 1, 2},
			},
		},
		{
			name:  "single-line",
			input: "foo",
			want: []Unit{
				{Span{0, 3}, 0, 1},
			},
		},
		{
			name:  "trailing-newline",
			input: "foo\nbar\n",
			want: []Unit{
				{Span{0, 3}, 0, 1},
				{Span{4, 7}, 1, 2},
				{Span{8, 8}, 2, 3},
			},
		},
		{
			name:  "empty-lines",
			input: "a\n\n\nb",
			want: []Unit{
				{Span{0, 1}, 0, 1},
				{Span{2, 2}, 1, 2},
				{Span{3, 3}, 2, 3},
				{Span{4, 5}, 3, 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines(%q) result difference [-want, +got]:\n%s", tt.input, diff)
			}
			if n := CountLines(tt.input); n != len(got) {
				t.Errorf("CountLines(%q) = %d, but Lines returned %d lines", tt.input, n, len(got))
			}
		})
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		lines [][2]int
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "blank-only",
			input: " \n\t\n",
		},
		{
			name:  "single",
			input: "one\ntwo",
			want:  []string{"one\ntwo"},
			lines: [][2]int{{0, 2}},
		},
		{
			name:  "two",
			input: "one\ntwo\n\nthree\n",
			want:  []string{"one\ntwo", "three"},
			lines: [][2]int{{0, 2}, {3, 4}},
		},
		{
			name:  "whitespace-separator",
			input: "  one\n \t \n\n  two  ",
			want:  []string{"  one", "  two  "},
			lines: [][2]int{{0, 1}, {3, 4}},
		},
		{
			name:  "crlf",
			input: "one\r\n\r\ntwo\r\n",
			want:  []string{"one\r", "two\r"},
			lines: [][2]int{{0, 1}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := Paragraphs(tt.input)
			var got []string
			var lines [][2]int
			for _, u := range units {
				got = append(got, u.Text(tt.input))
				lines = append(lines, [2]int{u.Line0, u.Line1})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paragraphs(%q) text difference [-want, +got]:\n%s", tt.input, diff)
			}
			if diff := cmp.Diff(tt.lines, lines); diff != "" {
				t.Errorf("Paragraphs(%q) line difference [-want, +got]:\n%s", tt.input, diff)
			}
		})
	}
}

func TestNext(t *testing.T) {
	text := "foo\nbar"
	units := Lines(text)

	tests := []struct {
		i         int
		pos, line int
	}{
		{-1, 0, 0},
		{0, 4, 1},
		{1, 7, 2},
	}
	for _, tt := range tests {
		pos, line := Next(text, units, tt.i)
		if pos != tt.pos || line != tt.line {
			t.Errorf("Next(%q, ..., %d) = %d, %d, want %d, %d", text, tt.i, pos, line, tt.pos, tt.line)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "\t", " \t\r\f "} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"a", " a ", "\u00a0"} {
		if IsBlank(s) {
			t.Errorf("IsBlank(%q) = true, want false", s)
		}
	}
}
