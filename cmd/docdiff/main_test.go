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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"

	"znkr.io/docdiff/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sp(n int) string { return strings.Repeat(" ", n) }

func executeForTest(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\nb\nc\n")
	b := writeFile(t, dir, "b.txt", "a\nx\nc\n")
	spaced := writeFile(t, dir, "spaced.txt", "a\n  b \nc\n")
	block := writeFile(t, dir, "block.txt", "a\nb\nc\nend\n")
	shorter := writeFile(t, dir, "shorter.txt", "x\ny\nend\n")

	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string // substring
	}{
		{
			name:       "identical",
			args:       []string{"--format", "unified", a, a},
			wantCode:   exitIdentical,
			wantStdout: "",
		},
		{
			name:       "unified",
			args:       []string{"--format", "unified", "--color", "never", a, b},
			wantCode:   exitDifferent,
			wantStdout: "--- " + a + "\n+++ " + b + "\n@@ -1,4 +1,4 @@\n a\n-b\n+x\n c\n \n",
		},
		{
			name:       "unified-short-context",
			args:       []string{"-f", "unified", "-U", "0", a, b},
			wantCode:   exitDifferent,
			wantStdout: "--- " + a + "\n+++ " + b + "\n@@ -2,1 +2,1 @@\n-b\n+x\n",
		},
		{
			name:       "unified-lines",
			args:       []string{"--format", "unified", "--color", "never", block, shorter},
			wantCode:   exitDifferent,
			wantStdout: "--- " + block + "\n+++ " + shorter + "\n@@ -1,5 +1,4 @@\n-a\n+x\n-b\n+y\n-c\n end\n \n",
		},
		{
			name:       "unified-blocks",
			args:       []string{"--format", "unified", "--color", "never", "--blocks", block, shorter},
			wantCode:   exitDifferent,
			wantStdout: "--- " + block + "\n+++ " + shorter + "\n@@ -1,5 +1,4 @@\n-a\n-b\n-c\n+x\n+y\n end\n \n",
		},
		{
			name:       "inline",
			args:       []string{"--format", "inline", a, b},
			wantCode:   exitDifferent,
			wantStdout: "--- " + a + "\na\n[-b-]\nc\n+++ " + b + "\na\n{+x+}\nc\n",
		},
		{
			name:       "side-by-side",
			args:       []string{"--width", "23", a, b},
			wantCode:   exitDifferent,
			wantStdout: "a" + sp(12) + "a\n" + "b" + sp(9) + " | x\n" + "c" + sp(12) + "c\n" + "\n",
		},
		{
			name:       "ignore-whitespace",
			args:       []string{"--ignore-whitespace", a, spaced},
			wantCode:   exitIdentical,
			wantStdout: "a" + sp(12) + "a\n" + "b" + sp(12) + "  b \n" + "c" + sp(12) + "c\n" + "\n",
		},
		{
			name:       "stdin",
			stdin:      "a\nx\nc\n",
			args:       []string{"-f", "unified", "-U", "0", a, "-"},
			wantCode:   exitDifferent,
			wantStdout: "--- " + a + "\n+++ -\n@@ -2,1 +2,1 @@\n-b\n+x\n",
		},
		{
			name:       "missing-file",
			args:       []string{a, filepath.Join(dir, "missing.txt")},
			wantCode:   exitError,
			wantStderr: "failed to read",
		},
		{
			name:       "invalid-format",
			args:       []string{"--format", "html", a, b},
			wantCode:   exitError,
			wantStderr: "format must be one of",
		},
		{
			name:       "wrong-number-of-args",
			args:       []string{a},
			wantCode:   exitError,
			wantStderr: "accepts 2 arg(s)",
		},
		{
			name:       "both-stdin",
			args:       []string{"-", "-"},
			wantCode:   exitError,
			wantStderr: "only one of LEFT and RIGHT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := executeForTest(t, tt.stdin, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if diff := cmp.Diff(tt.wantStdout, stdout); diff != "" {
				t.Errorf("stdout differs [-want,+got]:\n%s", diff)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestExecuteJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "one two\nthree\n\nfour\n")
	b := writeFile(t, dir, "b.txt", "one\ntwo three\n\nfive\n")

	code, stdout, stderr := executeForTest(t, "", "--format", "json", "--ignore-reflow", a, b)
	if code != exitDifferent {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, exitDifferent, stderr)
	}
	if got := gjson.Get(stdout, "hunks.#").Int(); got != 1 {
		t.Fatalf("got %d hunks, want 1:\n%s", got, stdout)
	}
	if got := gjson.Get(stdout, "hunks.0.kind").String(); got != "modified" {
		t.Errorf("hunks.0.kind = %q, want %q", got, "modified")
	}
	if got := gjson.Get(stdout, "hunks.0.left.start").Int(); got != 15 {
		t.Errorf("hunks.0.left.start = %d, want 15", got)
	}
}

func TestExecuteUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", "%PDF-1.7")
	b := writeFile(t, dir, "b.txt", "text\n")

	code, stdout, stderr := executeForTest(t, "", "-f", "unified", a, b)
	if code != exitDifferent {
		t.Fatalf("exit code = %d, want %d (stderr: %s)", code, exitDifferent, stderr)
	}
	if !strings.Contains(stdout, "-[unreadable: ") {
		t.Errorf("stdout doesn't show placeholder:\n%s", stdout)
	}
	if !strings.Contains(stderr, "comparing placeholder") {
		t.Errorf("stderr doesn't warn about placeholder:\n%s", stderr)
	}
}

// fakeExtractor returns a fixed text and error for every path.
type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(string) (string, error) { return f.text, f.err }

func TestReadDocument(t *testing.T) {
	errScanned := fmt.Errorf("scanned.pdf: PDF documents: %w", extract.ErrUnsupported)
	errDenied := errors.New("permission denied")

	tests := []struct {
		name     string
		ex       extract.Extractor
		path     string
		stdin    string
		want     string
		wantErr  error
		wantWarn bool
	}{
		{
			name: "extracted",
			ex:   fakeExtractor{text: "contract text"},
			path: "contract.txt",
			want: "contract text",
		},
		{
			name:     "unsupported",
			ex:       fakeExtractor{err: errScanned},
			path:     "scanned.pdf",
			want:     extract.Placeholder(errScanned),
			wantWarn: true,
		},
		{
			name:    "failed",
			ex:      fakeExtractor{err: errDenied},
			path:    "secret.txt",
			wantErr: errDenied,
		},
		{
			name:  "stdin",
			ex:    fakeExtractor{err: errDenied},
			path:  "-",
			stdin: "\ufeffpiped",
			want:  "piped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			got, err := readDocument(tt.ex, tt.path, strings.NewReader(tt.stdin), logger)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("readDocument(%q) returned error %v, want %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readDocument(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if warned := strings.Contains(logs.String(), "level=WARN"); warned != tt.wantWarn {
				t.Errorf("readDocument(%q) logged a warning = %v, want %v:\n%s", tt.path, warned, tt.wantWarn, logs.String())
			}
		})
	}
}

func TestExecuteConfigFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "Hello, world!\n")
	b := writeFile(t, dir, "b.txt", "Hello   world\n")
	cfg := writeFile(t, dir, "docdiff.yaml", `
ignore:
  whitespace: true
  punctuation: true
format: unified
context: 0
colors:
  added: bold green
timeout: 1m
`)

	code, stdout, stderr := executeForTest(t, "", "--config", cfg, a, b)
	if code != exitIdentical {
		t.Errorf("exit code = %d, want %d (stdout: %s, stderr: %s)", code, exitIdentical, stdout, stderr)
	}

	// Flags take precedence over the configuration file.
	code, stdout, stderr = executeForTest(t, "", "--config", cfg, "--ignore-punctuation=false", a, b)
	if code != exitDifferent {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, exitDifferent, stderr)
	}
	want := "--- " + a + "\n+++ " + b + "\n@@ -1,1 +1,1 @@\n-Hello, world!\n+Hello   world\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout differs [-want,+got]:\n%s", diff)
	}
}

func TestExecuteVerbose(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a\n")
	b := writeFile(t, dir, "b.txt", "b\n")

	_, _, stderr := executeForTest(t, "", "--verbose", "-f", "json", a, b)
	for _, want := range []string{"msg=\"read document\"", "msg=\"compared documents\"", "hunks=1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr doesn't contain %q:\n%s", want, stderr)
		}
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "empty", content: ""},
		{name: "valid", content: "format: side\nwidth: 100\ncolor: always\ncolors:\n  gutter: dim\ntimeout: 2s\n"},
		{name: "bad-format", content: "format: pdf\n", wantErr: "format must be one of"},
		{name: "bad-color-mode", content: "color: sometimes\n", wantErr: "color must be one of"},
		{name: "bad-color", content: "colors:\n  added: chartreuse\n", wantErr: "colors.added"},
		{name: "bad-width", content: "width: 0\n", wantErr: "width must be positive"},
		{name: "bad-yaml", content: "format: [\n", wantErr: "failed to parse config"},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			cfg, err := loader.Load(path)
			if err == nil {
				err = loader.Validate(cfg)
			}
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("loading %q failed: %v", tt.content, err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("loading %q returned error %v, want error containing %q", tt.content, err, tt.wantErr)
			}
		})
	}
}

func TestLoaderTimeout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "timeout: 1m30s\n")
	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout == nil || *cfg.Timeout != 90*time.Second {
		t.Errorf("Load(...).Timeout = %v, want 1m30s", cfg.Timeout)
	}
}
