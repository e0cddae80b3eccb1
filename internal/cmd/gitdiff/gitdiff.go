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

// gitdiff is a tool that can be used with git using GIT_EXTERNAL_DIFF. It shows the changes of a
// document with the docdiff renderers instead of git's own diff:
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff HEAD~1 -- notes.txt
//
// The view is selected with DOCDIFF_FORMAT (side, inline or unified, the default) and whitespace
// changes are ignored if DOCDIFF_IGNORE_WHITESPACE is set to a true value.
package main

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
	"znkr.io/docdiff"
	"znkr.io/docdiff/render"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 8 {
		return fmt.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}

	path, oldFile, oldHex, _, newFile, newHex, newMode := args[1], args[2], args[3], args[4], args[5], args[6], args[7]

	old, err := readFile(oldFile)
	if err != nil {
		return fmt.Errorf("reading old file: %w", err)
	}
	new, err := readFile(newFile)
	if err != nil {
		return fmt.Errorf("reading new file: %w", err)
	}

	var flags docdiff.Flags
	if v, ok := os.LookupEnv("DOCDIFF_IGNORE_WHITESPACE"); ok {
		flags.IgnoreWhitespace, err = strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DOCDIFF_IGNORE_WHITESPACE: %w", err)
		}
	}

	hunks := docdiff.ComputeDiff(old, new, flags)
	if len(hunks) == 0 {
		return nil
	}

	var opts []render.Option
	if term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, render.TerminalColors())
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			opts = append(opts, render.Width(w))
		}
	}

	fmt.Printf("diff --git a/%s b/%s\n", path, path)
	fmt.Printf("index %s..%s %s\n", short(oldHex), short(newHex), newMode)
	fmt.Printf("--- a/%s\n", path)
	fmt.Printf("+++ b/%s\n", path)
	switch format := os.Getenv("DOCDIFF_FORMAT"); format {
	case "side":
		fmt.Print(render.SideBySide(old, new, hunks, opts...))
	case "inline":
		fmt.Print(render.Inline(new, hunks, render.Right, opts...))
	case "", "unified":
		fmt.Print(render.Unified(old, new, hunks, opts...))
	default:
		return fmt.Errorf("unknown DOCDIFF_FORMAT %q", format)
	}
	return nil
}

func readFile(name string) (string, error) {
	if name == "/dev/null" {
		return "", nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func short(hex string) string {
	return hex[:min(10, len(hex))]
}
