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

package rvecs

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parse turns a string of D(elete), I(nsert), and M(atch) operations into result vectors.
func parse(ops string) (rx, ry []bool) {
	n, m := 0, 0
	for _, op := range ops {
		switch op {
		case 'D':
			n++
		case 'I':
			m++
		case 'M':
			n++
			m++
		}
	}
	rx, ry = Make(n, m)
	s, t := 0, 0
	for _, op := range ops {
		switch op {
		case 'D':
			rx[s] = true
			s++
		case 'I':
			ry[t] = true
			t++
		case 'M':
			s++
			t++
		}
	}
	return rx, ry
}

func TestMake(t *testing.T) {
	rx, ry := Make(3, 5)
	if len(rx) != 4 || len(ry) != 6 {
		t.Errorf("Make(3, 5) returned vectors of length %d and %d, want 4 and 6", len(rx), len(ry))
	}
	// Appending to rx must not overwrite ry.
	_ = append(rx, true)
	if slices.Contains(ry, true) {
		t.Errorf("rx and ry share capacity")
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name string
		ops  string
		want []Run
	}{
		{"empty", "", nil},
		{"identical", "MMM", nil},
		{"delete-all", "DDD", []Run{{0, 3, 0, 0}}},
		{"insert-all", "III", []Run{{0, 0, 0, 3}}},
		{"replace-middle", "MDIM", []Run{{1, 2, 1, 2}}},
		{"uneven", "DDIMIMDD", []Run{{0, 2, 0, 1}, {3, 3, 2, 3}, {4, 6, 4, 4}}},
		{"ABCABBA_to_CBABAC", "DIMDMMDMI", []Run{{0, 1, 0, 1}, {2, 3, 2, 2}, {5, 6, 4, 4}, {7, 7, 5, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := parse(tt.ops)
			got := slices.Collect(Runs(rx, ry))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Runs(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRunsStop(t *testing.T) {
	rx, ry := parse("DMDMD")
	var got []Run
	for r := range Runs(rx, ry) {
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d runs, want 2", len(got))
	}
}

func TestOps(t *testing.T) {
	for _, ops := range []string{"", "MMM", "DDD", "III", "DIMDMMDMI", "DDIMIMDD"} {
		rx, ry := parse(ops)
		var got []byte
		for op := range Ops(rx, ry) {
			got = append(got, "MDI"[op])
		}
		if diff := cmp.Diff(ops, string(got)); diff != "" {
			t.Errorf("Ops(%q) differs [-want,+got]:\n%s", ops, diff)
		}
	}
}
