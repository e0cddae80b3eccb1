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

// docdiff compares two documents line by line and shows the differences.
//
// Usage:
//
//	docdiff [flags] LEFT RIGHT
//
// Either file may be "-" to read from standard input. The exit status is 0 if the documents are
// identical, 1 if they differ and 2 if an error occurred.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"znkr.io/docdiff"
	"znkr.io/docdiff/extract"
	"znkr.io/docdiff/render"
)

const (
	exitIdentical = 0
	exitDifferent = 1
	exitError     = 2
)

const (
	formatSide    = "side"
	formatInline  = "inline"
	formatUnified = "unified"
	formatJSON    = "json"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type options struct {
	ignoreWhitespace  bool
	ignorePunctuation bool
	ignoreReflow      bool
	blocks            bool

	format  string
	width   int
	context int
	color   string
	colors  ColorsConfig

	timeout    time.Duration
	configPath string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command with the given arguments and returns the exit status.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	different := false
	cmd := newRootCmd(stdin, &different)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	if different {
		return exitDifferent
	}
	return exitIdentical
}

func newRootCmd(stdin io.Reader, different *bool) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "docdiff [flags] LEFT RIGHT",
		Short: "Compare two documents side by side",
		Long: `docdiff compares two documents line by line and shows the differences.

Differences in whitespace, punctuation and line breaks within paragraphs can be ignored. The exit
status is 0 if the documents are identical, 1 if they differ and 2 if an error occurred.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigFile(cmd, opts); err != nil {
				return err
			}
			if err := validateOptions(opts); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			d, err := run(cmd.Context(), opts, args[0], args[1], stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
			*different = d
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.ignoreWhitespace, "ignore-whitespace", "w", false, "Ignore differences in spaces and tabs")
	cmd.Flags().BoolVarP(&opts.ignorePunctuation, "ignore-punctuation", "p", false, "Ignore the punctuation characters . , ; : ! ? ' \"")
	cmd.Flags().BoolVarP(&opts.ignoreReflow, "ignore-reflow", "r", false, "Compare paragraphs and ignore where lines are broken")
	cmd.Flags().BoolVar(&opts.blocks, "blocks", false, "Report blocks of changed lines as a whole instead of line by line")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSide, "Output format: side, inline, unified or json")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Width of the side-by-side view (default: terminal width or 80)")
	cmd.Flags().IntVarP(&opts.context, "context", "U", 3, "Number of unchanged lines around changes in the unified view")
	cmd.Flags().StringVar(&opts.color, "color", colorAuto, "Color output: auto, always or never")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Give up if the comparison takes longer than this (0 means no limit)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log details about the comparison to stderr")

	return cmd
}

// applyConfigFile loads the configuration file, if any, and applies all values for which no flag
// was set on the command line.
func applyConfigFile(cmd *cobra.Command, opts *options) error {
	if opts.configPath == "" {
		return nil
	}
	loader := NewLoader()
	cfg, err := loader.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if !flags.Changed(name) {
			apply()
		}
	}
	if v := cfg.Ignore.Whitespace; v != nil {
		set("ignore-whitespace", func() { opts.ignoreWhitespace = *v })
	}
	if v := cfg.Ignore.Punctuation; v != nil {
		set("ignore-punctuation", func() { opts.ignorePunctuation = *v })
	}
	if v := cfg.Ignore.Reflow; v != nil {
		set("ignore-reflow", func() { opts.ignoreReflow = *v })
	}
	if v := cfg.Blocks; v != nil {
		set("blocks", func() { opts.blocks = *v })
	}
	if v := cfg.Format; v != nil {
		set("format", func() { opts.format = *v })
	}
	if v := cfg.Width; v != nil {
		set("width", func() { opts.width = *v })
	}
	if v := cfg.Context; v != nil {
		set("context", func() { opts.context = *v })
	}
	if v := cfg.Color; v != nil {
		set("color", func() { opts.color = *v })
	}
	if v := cfg.Timeout; v != nil {
		set("timeout", func() { opts.timeout = *v })
	}
	opts.colors = cfg.Colors
	return nil
}

func validateOptions(opts *options) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	if err := validateColorMode(opts.color); err != nil {
		return err
	}
	if opts.width < 0 {
		return fmt.Errorf("width must not be negative, got %d", opts.width)
	}
	if opts.context < 0 {
		return fmt.Errorf("context must not be negative, got %d", opts.context)
	}
	if opts.timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", opts.timeout)
	}
	return nil
}

// run compares the documents at leftPath and rightPath and writes the result to stdout. It
// reports whether the documents differ.
func run(ctx context.Context, opts *options, leftPath, rightPath string, stdin io.Reader, stdout, stderr io.Writer) (bool, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if leftPath == "-" && rightPath == "-" {
		return false, errors.New("only one of LEFT and RIGHT can be read from stdin")
	}
	left, err := readDocument(extract.PlainText{}, leftPath, stdin, logger)
	if err != nil {
		return false, err
	}
	right, err := readDocument(extract.PlainText{}, rightPath, stdin, logger)
	if err != nil {
		return false, err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	flags := docdiff.Flags{
		IgnoreWhitespace:  opts.ignoreWhitespace,
		IgnoreReflow:      opts.ignoreReflow,
		IgnorePunctuation: opts.ignorePunctuation,
	}
	var diffOpts []docdiff.Option
	if opts.blocks {
		diffOpts = append(diffOpts, docdiff.Blocks())
	}

	start := time.Now()
	hunks, err := docdiff.ComputeDiffContext(ctx, left, right, flags, diffOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, fmt.Errorf("comparison did not finish within %v", opts.timeout)
		}
		return false, fmt.Errorf("comparison cancelled: %w", err)
	}
	logger.Debug("compared documents",
		slog.Int("hunks", len(hunks)),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ignore_whitespace", flags.IgnoreWhitespace),
		slog.Bool("ignore_punctuation", flags.IgnorePunctuation),
		slog.Bool("ignore_reflow", flags.IgnoreReflow),
	)

	if err := output(stdout, opts, leftPath, rightPath, left, right, hunks); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	return len(hunks) > 0, nil
}

// readDocument extracts the text of the document at path with ex, or decodes stdin if path is "-".
// Documents in unsupported formats are replaced by a placeholder, all other failures are errors.
func readDocument(ex extract.Extractor, path string, stdin io.Reader, logger *slog.Logger) (string, error) {
	var (
		text string
		err  error
	)
	if path == "-" {
		text, err = extract.Decode(stdin)
	} else {
		text, err = ex.Extract(path)
	}
	switch {
	case errors.Is(err, extract.ErrUnsupported):
		logger.Warn("comparing placeholder instead of document", slog.String("path", path), slog.Any("error", err))
		return extract.Placeholder(err), nil
	case err != nil:
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debug("read document", slog.String("path", path), slog.Int("bytes", len(text)))
	return text, nil
}

func output(w io.Writer, opts *options, leftPath, rightPath, left, right string, hunks []docdiff.Hunk) error {
	var renderOpts []render.Option
	if useColor(w, opts.color) {
		renderOpts = append(renderOpts, render.TerminalColors(opts.colors.colorOptions()...))
	}

	var out string
	switch opts.format {
	case formatSide:
		width := opts.width
		if width == 0 {
			width = detectTerminalWidth(w)
		}
		renderOpts = append(renderOpts, render.Width(width))
		out = render.SideBySide(left, right, hunks, renderOpts...)
	case formatInline:
		var sb strings.Builder
		fmt.Fprintf(&sb, "--- %s\n", leftPath)
		sb.WriteString(withNewline(render.Inline(left, hunks, render.Left, renderOpts...)))
		fmt.Fprintf(&sb, "+++ %s\n", rightPath)
		sb.WriteString(withNewline(render.Inline(right, hunks, render.Right, renderOpts...)))
		out = sb.String()
	case formatUnified:
		if len(hunks) == 0 {
			return nil
		}
		renderOpts = append(renderOpts, render.Context(opts.context))
		out = fmt.Sprintf("--- %s\n+++ %s\n", leftPath, rightPath) + render.Unified(left, right, hunks, renderOpts...)
	case formatJSON:
		b, err := render.JSON(hunks)
		if err != nil {
			return err
		}
		out = string(b)
	default:
		panic("never reached")
	}
	_, err := io.WriteString(w, out)
	return err
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && f != nil && term.IsTerminal(int(f.Fd()))
}

func detectTerminalWidth(out io.Writer) int {
	if outFile, ok := out.(*os.File); ok && outFile != nil {
		fd := int(outFile.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				return w
			}
		}
	}
	if cols := strings.TrimSpace(os.Getenv("COLUMNS")); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 80
}
