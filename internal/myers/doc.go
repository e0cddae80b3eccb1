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

// Package myers contains an implementation of Myers' algorithm for the comparison of two sequences
// of line IDs.
//
// The implementation uses the linear space variant described in section 4.2 of the paper. It
// always finds a minimal edit script, the runtime is O(ND) where N is the sum of the length of both
// inputs and D is the number of differences. There are no heuristics that trade optimality for
// speed. Instead, the search can be cancelled via a context, which is checked between recursion
// steps and periodically during the search for a middle diagonal.
//
// # Myers Algorithm
//
// The edit graph for x and y has a vertex (s, t) for every pair of prefixes x[:s] and y[:t]. A
// horizontal edge (s, t) -> (s+1, t) deletes x[s], a vertical edge (s, t) -> (s, t+1) inserts
// y[t], and a diagonal edge (s, t) -> (s+1, t+1) exists if x[s] == y[t] and represents a match.
// A minimal edit script is a path from (0, 0) to (N, M) with the fewest non-diagonal edges.
//
// Diagonals are numbered k = s - t. A d-path is a path with exactly d non-diagonal edges, it ends on
// one of the diagonals -d, -d+2, ..., d. The furthest reaching d-path on diagonal k is found
// greedily from the furthest reaching (d-1)-paths on diagonals k-1 and k+1, followed by one
// non-diagonal edge and as many diagonal edges as possible. Only the s-coordinate of the endpoint
// needs to be stored per diagonal (v-arrays), since t = s - k.
//
// To keep memory linear, the search runs forwards from (smin, tmin) and backwards from (smax, tmax)
// at the same time. As soon as the two searches overlap on a diagonal, the diagonal edges at the
// overlap (the middle diagonal) are part of a minimal path. The problem is then split in two at
// the middle diagonal and both halves are solved recursively.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// # Tie breaking
//
// There are usually many minimal edit scripts. The result of this package is deterministic:
//
//   - A common prefix and suffix are always matched, that is matches are placed as early (and as
//     late) as possible at the borders.
//   - When the forward search can reach a diagonal equally far with a horizontal or a vertical
//     edge, it prefers the horizontal edge (a deletion).
//   - Elements that only appear in one of the inputs are always deletions or insertions
//     respectively, they can never be part of a match.
package myers
