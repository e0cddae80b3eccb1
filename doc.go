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

// Package docdiff compares two documents line by line and reports the differences as hunks that
// point into the original texts.
//
// The main function is [ComputeDiff]. It splits both texts into lines, optionally normalizes a
// copy of every line that's used for comparison (see [Flags]), aligns the two line sequences with
// Myers' algorithm and turns the resulting changes into [Hunk]s. Hunks use byte offsets into the
// original, un-normalized texts so a presentation layer can highlight them directly.
//
// [EditScript] exposes the alignment itself for arbitrary comparable slices.
//
// The diff is always minimal: there's no edit script with fewer insertions and deletions. If there
// are several minimal edit scripts, the result is still deterministic. Equal elements are matched
// as early as possible and within a block of changes, all deletions come before all insertions.
//
// Performance: Time complexity is O((N+M)·D) and space complexity is O(N+M), where N and M are the
// number of lines and D is the number of inserted and deleted lines. Use [ComputeDiffContext] to
// bound the time spent on very large and very different inputs.
//
// The packages [znkr.io/docdiff/normalize] and [znkr.io/docdiff/render] provide the
// normalization functions and a number of ways to present the hunks.
package docdiff
