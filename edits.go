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

	"znkr.io/docdiff/internal/myers"
	"znkr.io/docdiff/internal/rvecs"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op,Kind
type Op int

const (
	Equal  Op = iota // Two elements are equal
	Delete           // An element is deleted from the left side
	Insert           // An element is inserted from the right side
)

// EditOp describes a single edit of an edit script.
//
//   - For Equal, X and Y are the indices of the equal elements.
//   - For Delete, X is the index of the deleted element and Y is -1.
//   - For Insert, Y is the index of the inserted element and X is -1.
type EditOp struct {
	Op   Op
	X, Y int
}

// EditScript compares the contents of x and y and returns the edit operations necessary to
// convert from one to the other.
//
// EditScript returns one operation for every element of x and every element of y that are not
// equal, and one operation for every pair of equal elements. Applying the script to x (copying
// equal elements, skipping deleted ones and adding inserted ones) reproduces y. If x and y are
// identical, the script consists of Equal operations only.
func EditScript[T comparable](x, y []T) []EditOp {
	ops, err := EditScriptContext(context.Background(), x, y)
	if err != nil {
		panic("never reached: " + err.Error())
	}
	return ops
}

// EditScriptContext is like [EditScript] but stops early if ctx is cancelled. In this case, it
// returns ctx.Err() and no edit script.
func EditScriptContext[T comparable](ctx context.Context, x, y []T) ([]EditOp, error) {
	rx, ry, err := myers.Diff(ctx, x, y)
	if err != nil {
		return nil, err
	}
	return editOps(rx, ry), nil
}

func editOps(rx, ry []bool) []EditOp {
	// Compute the number of operations first, this is cheap and allows us to preallocate the
	// return value.
	nops := 0
	for range rvecs.Ops(rx, ry) {
		nops++
	}
	if nops == 0 {
		return nil
	}

	out := make([]EditOp, 0, nops)
	for op, st := range rvecs.Ops(rx, ry) {
		switch op {
		case rvecs.Match:
			out = append(out, EditOp{Equal, st[0], st[1]})
		case rvecs.Delete:
			out = append(out, EditOp{Delete, st[0], -1})
		case rvecs.Insert:
			out = append(out, EditOp{Insert, -1, st[1]})
		}
	}
	return out
}
