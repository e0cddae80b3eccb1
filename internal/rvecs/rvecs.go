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

// Package rvecs contains functions to work with the result vectors, the internal representation
// that's used by the myers algorithm and is then translated to the user facing edit scripts and
// hunks.
//
// For inputs x and y, the result vectors rx and ry have one element more than x and y. If x[s] is
// deleted, rx[s] is true and if y[t] is inserted, ry[t] is true. Elements that are neither deleted
// nor inserted are matched in order. The extra element at the end is always false and allows
// loops to run past the end of one input without bounds checks.
package rvecs

import "iter"

// Make allocates result vectors for inputs with n and m elements.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// Run is a maximal sequence of consecutive changes. It deletes x[S0:S1] and inserts y[T0:T1]. At
// least one of the two ranges is non-empty.
type Run struct {
	S0, S1 int
	T0, T1 int
}

// Runs iterates over all maximal change runs in order. Matched elements separate runs.
func Runs(rx, ry []bool) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		n, m := len(rx)-1, len(ry)-1
		s, t := 0, 0
		for s < n || t < m {
			if !rx[s] && !ry[t] {
				s++
				t++
				continue
			}
			s0, t0 := s, t
			for s < n && rx[s] {
				s++
			}
			for t < m && ry[t] {
				t++
			}
			if !yield(Run{s0, s, t0, t}) {
				return
			}
		}
	}
}

// Op is a single edit operation.
type Op int

const (
	Match Op = iota
	Delete
	Insert
)

// Ops iterates over all edit operations in order. The yielded indices are the positions in x and
// y before the operation is applied. Within a run of changes, all deletions come before all
// insertions.
func Ops(rx, ry []bool) iter.Seq2[Op, [2]int] {
	return func(yield func(Op, [2]int) bool) {
		n, m := len(rx)-1, len(ry)-1
		s, t := 0, 0
		for s < n || t < m {
			switch {
			case rx[s]:
				if !yield(Delete, [2]int{s, t}) {
					return
				}
				s++
			case ry[t]:
				if !yield(Insert, [2]int{s, t}) {
					return
				}
				t++
			default:
				if !yield(Match, [2]int{s, t}) {
					return
				}
				s++
				t++
			}
		}
	}
}
