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

package myers

import (
	"context"

	"znkr.io/docdiff/internal/rvecs"
)

// Diff compares the contents of x and y and returns the changes necessary to convert from one to
// the other as result vectors (see package rvecs).
//
// If ctx is cancelled before the comparison is complete, Diff returns ctx.Err() and no result.
func Diff[T comparable](ctx context.Context, x, y []T) (rx, ry []bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rx, ry = rvecs.Make(len(x), len(y))

	smin, smax, tmin, tmax := findChangeBounds(x, y)
	if handleTrivialBounds(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry, nil
	}

	// Work on integer IDs instead of Ts and only on the elements that appear in both x and y.
	x0, y0, xidx, yidx := preprocess(rx, ry, smin, smax, tmin, tmax, x, y)

	var m myers
	m.xidx, m.yidx = xidx, yidx
	m.rx, m.ry = rx, ry
	m.done = ctx.Done()
	smin0, smax0, tmin0, tmax0 := m.init(x0, y0)
	m.compare(smin0, smax0, tmin0, tmax0)
	if m.cancelled {
		return nil, nil, ctx.Err()
	}
	return rx, ry, nil
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// handleTrivialBounds handles trivial bounds. It returns true if the bounds are trivial.
func handleTrivialBounds(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return true
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return true
	case smin == smax && tmin == tmax:
		return true
	default:
		return false
	}
}

// preprocess reduces the problem size and maps the inputs to integer IDs.
//
// Every element in x[smin:smax] and y[tmin:tmax] that appears on both sides gets an ID. Elements
// that appear only in x (or y) can never be matched, they are marked as deletions (or insertions)
// right away and dropped. Dropping them doesn't change the longest common subsequence, so the
// result stays minimal. In practice, documents that differ a lot have many lines unique to one
// side and this dramatically reduces the work left for Myers' algorithm.
//
// The results are the following slices:
//   - x0:   x[smin:smax] as IDs except for elements that appear only in x
//   - y0:   y[tmin:tmax] as IDs except for elements that appear only in y
//   - xidx: A mapping from x0 to x: x0[s] corresponds to x[xidx[s]]
//   - yidx: A mapping from y0 to y: y0[t] corresponds to y[yidx[t]]
func preprocess[T comparable](rx, ry []bool, smin, smax, tmin, tmax int, x, y []T) (x0, y0, xidx, yidx []int) {
	idx := make(map[T]int, smax-smin) // temporary map from element to ID
	buf := make([]int, 2*(smax-smin)+2*(tmax-tmin))
	x0, buf = buf[:0:smax-smin], buf[smax-smin:]
	xidx, buf = buf[:0:smax-smin], buf[smax-smin:]
	y0, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	yidx, buf = buf[:0:tmax-tmin], buf[tmax-tmin:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}
	inY := make([]bool, smax-smin) // inY[id] is true if the element with ID id appears in y

	// Step 1: Create an ID for every element in x[smin:smax].
	for _, e := range x[smin:smax] {
		id, ok := idx[e]
		if !ok {
			id = len(idx)
			idx[e] = id
		}
		x0 = append(x0, id)
	}
	// Step 2: Do the same for y, but ignore everything that's not in x, except for marking these
	// elements as insertions.
	for i, e := range y[tmin:tmax] {
		id, ok := idx[e]
		if !ok {
			ry[i+tmin] = true
			continue
		}
		inY[id] = true
		yidx = append(yidx, i+tmin)
		y0 = append(y0, id)
	}
	// Step 3: Filter out elements from x0 that are not in y.
	i := 0
	for j, id := range x0 {
		if inY[id] {
			xidx = append(xidx, j+smin)
			x0[i] = id
			i++
		} else {
			rx[j+smin] = true
		}
	}
	x0 = x0[:i]
	return
}
