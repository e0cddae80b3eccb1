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

package render

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
	"znkr.io/docdiff"
)

type jsonRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonHunk struct {
	Kind       string    `json:"kind"`
	Left       jsonRange `json:"left"`
	Right      jsonRange `json:"right"`
	LeftLines  jsonRange `json:"leftLines"`
	RightLines jsonRange `json:"rightLines"`
}

type jsonDiff struct {
	Identical bool       `json:"identical"`
	Hunks     []jsonHunk `json:"hunks"`
}

// JSON renders the hunks as an indented JSON document of the form
//
//	{"identical": false, "hunks": [{"kind": "modified", "left": {"start": 2, "end": 3}, ...}]}
//
// Byte ranges are reported as "left" and "right", line ranges as "leftLines" and "rightLines".
func JSON(hunks []docdiff.Hunk) ([]byte, error) {
	out := jsonDiff{
		Identical: len(hunks) == 0,
		Hunks:     make([]jsonHunk, 0, len(hunks)),
	}
	for _, h := range hunks {
		out.Hunks = append(out.Hunks, jsonHunk{
			Kind:       strings.ToLower(h.Kind.String()),
			Left:       jsonRange(h.Left),
			Right:      jsonRange(h.Right),
			LeftLines:  jsonRange(h.LeftLines),
			RightLines: jsonRange(h.RightLines),
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(b, &pretty.Options{Width: 80, Indent: "  ", SortKeys: false}), nil
}
