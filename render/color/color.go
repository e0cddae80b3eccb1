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

// Package color configures the terminal colors used by the renderers in
// [znkr.io/docdiff/render].
package color

import (
	"fmt"
	"strings"

	"znkr.io/docdiff/internal/config"
)

// A Option makes it possible to configure custom colors in [render.TerminalColors].
//
// Every option takes SGR parameters, e.g. Added(1, 32) colors added text bold green.
//
// [render.TerminalColors]: https://pkg.go.dev/znkr.io/docdiff/render#TerminalColors
type Option func(*config.ColorConfig)

// Added colors text that's only present on the right side.
func Added(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Added = code
	}
}

// Deleted colors text that's only present on the left side.
func Deleted(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Deleted = code
	}
}

// Modified colors text that's present on both sides with different content.
func Modified(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Modified = code
	}
}

// Gutter colors the markers between the columns of a side-by-side view.
func Gutter(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Gutter = code
	}
}

func format(params []int) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}

var names = map[string]int{
	"black":   30,
	"red":     31,
	"green":   32,
	"yellow":  33,
	"blue":    34,
	"magenta": 35,
	"cyan":    36,
	"white":   37,
}

// Parse parses a color specification into SGR parameters. A specification is a color name,
// optionally prefixed with "bright", "bold", "dim" or "underline" modifiers separated by spaces,
// e.g. "bold brightred". The empty string and "none" disable coloring.
func Parse(spec string) ([]int, error) {
	var params []int
	for word := range strings.FieldsSeq(strings.ToLower(spec)) {
		switch word {
		case "none":
			continue
		case "bold":
			params = append(params, 1)
			continue
		case "dim":
			params = append(params, 2)
			continue
		case "underline":
			params = append(params, 4)
			continue
		}
		name, bright := strings.CutPrefix(word, "bright")
		code, ok := names[name]
		if !ok {
			return nil, fmt.Errorf("unknown color %q", word)
		}
		if bright {
			code += 60
		}
		params = append(params, code)
	}
	return params, nil
}
