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
	"context"

	"znkr.io/docdiff/internal/config"
	"znkr.io/docdiff/internal/myers"
)

// Kind describes how a hunk differs between the two texts.
type Kind int

const (
	Unchanged Kind = iota // Identical on both sides, never reported by ComputeDiff
	Added                 // Only present on the right side
	Deleted               // Only present on the left side
	Modified              // Present on both sides with different content
)

// Range is a half-open range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the length of the range.
func (r Range) Len() int { return r.End - r.Start }

// Hunk describes a region that differs between two texts.
//
// Left and Right are byte ranges into the original left and right texts. For an [Added] hunk,
// Left is empty and marks the position where the text was inserted, for a [Deleted] hunk, Right is
// empty and marks the position where the text was removed. Newline characters that terminate the
// last line of a hunk are not part of the range.
//
// LeftLines and RightLines are the corresponding ranges of 0-based line indices. They are useful
// for presentation because an empty line has an empty byte range but still occupies one line. In
// particular, a removed (or added) final newline is reported as a deleted (or added) empty last
// line: its byte range is empty and positioned after the newline, only the line range shows it.
type Hunk struct {
	Kind                  Kind
	Left, Right           Range
	LeftLines, RightLines Range
}

// Flags select which differences are ignored when comparing lines. They only affect how lines are
// compared, the hunks always point into the original texts.
type Flags struct {
	// IgnoreWhitespace collapses runs of spaces and tabs and ignores leading and trailing spaces
	// and tabs, see [normalize.Whitespace].
	IgnoreWhitespace bool

	// IgnoreReflow compares paragraphs instead of lines, so that changes to where lines are
	// broken inside a paragraph are ignored, see [normalize.Reflow].
	IgnoreReflow bool

	// IgnorePunctuation ignores the characters . , ; : ! ? ' and ", see [normalize.Punctuation].
	IgnorePunctuation bool
}

// ComputeDiff compares x and y line by line and returns the regions that differ.
//
// Every deleted and every inserted line is reported on its own. Within a block of changes, the
// k-th deleted line and the k-th inserted line form a [Modified] hunk. If one side of the block has
// more lines than the other, every surplus line gets its own [Deleted] or [Added] hunk.
//
// The result is ordered by position and hunks don't overlap. Regions between hunks are identical
// (up to the normalization selected by flags). If x and y are identical, the result is empty.
//
// The following option is supported: [Blocks]
//
// ComputeDiff never fails, for any input. For very large and very different inputs, consider
// using [ComputeDiffContext] to bound the running time.
func ComputeDiff(x, y string, flags Flags, opts ...Option) []Hunk {
	hunks, err := ComputeDiffContext(context.Background(), x, y, flags, opts...)
	if err != nil {
		panic("never reached: " + err.Error())
	}
	return hunks
}

// ComputeDiffContext is like [ComputeDiff] but stops early if ctx is cancelled. In this case, it
// returns ctx.Err() and no hunks.
func ComputeDiffContext(ctx context.Context, x, y string, flags Flags, opts ...Option) ([]Hunk, error) {
	cfg := config.FromOptions(opts, config.Blocks)
	cfg.IgnoreWhitespace = flags.IgnoreWhitespace
	cfg.IgnoreReflow = flags.IgnoreReflow
	cfg.IgnorePunctuation = flags.IgnorePunctuation

	if x == y {
		return nil, ctx.Err()
	}

	left, right := split(x, cfg), split(y, cfg)
	rx, ry, err := myers.Diff(ctx, left.keys, right.keys)
	if err != nil {
		return nil, err
	}
	return buildHunks(left, right, rx, ry, cfg), nil
}
