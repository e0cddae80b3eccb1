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

// eval validates the diff engine on real documents. It compares every changed file in the
// history of a git repository with a number of flag combinations and checks that the resulting
// hunks are consistent with the inputs.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"znkr.io/docdiff"
	"znkr.io/docdiff/internal/cmd/eval/internal/git"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	validate bool
	compare  bool
	timeout  time.Duration
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if the hunks should be validated")
	flag.BoolVar(&cfg.compare, "compare", false, "if the number of changes should be compared with diffmatchpatch")
	flag.DurationVar(&cfg.timeout, "timeout", time.Minute, "maximum time for a single comparison")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

type result struct {
	commitID string
	file     string
	variant  string
	N, M     int
	D        int
	hunks    int
	duration time.Duration
}

type variant struct {
	name  string
	flags docdiff.Flags
	opts  []docdiff.Option
}

var variants = []variant{
	{name: "default"},
	{name: "blocks", opts: []docdiff.Option{docdiff.Blocks()}},
	{name: "ignore-whitespace", flags: docdiff.Flags{IgnoreWhitespace: true}},
	{name: "ignore-punctuation", flags: docdiff.Flags{IgnorePunctuation: true}},
	{name: "ignore-reflow", flags: docdiff.Flags{IgnoreReflow: true}},
	{name: "ignore-all", flags: docdiff.Flags{IgnoreWhitespace: true, IgnorePunctuation: true, IgnoreReflow: true}},
}

func run(ctx context.Context, cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var commitsDone atomic.Int64
	var processed atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer stats.Close()
	}

	repo, err := git.Open(ctx, cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %w", err)
	}

	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		repo.Close()
		return fmt.Errorf("reading rev-list: %w", err)
	}

	// Sample commits
	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		perm := rand.Perm(len(commitIDs))[:cfg.sample]
		sample := make([]string, 0, cfg.sample)
		for _, i := range perm {
			sample = append(sample, commitIDs[i])
		}
		commitIDs = sample
	}

	// Read changes.
	type change struct {
		commitID string
		filename string
		old, new string
	}
	changes := make(chan change)
	var readWG sync.WaitGroup // outstanding reads
	var changesWG sync.WaitGroup
	chunkSize := max(1, len(commitIDs)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(commitIDs, chunkSize) {
		changesWG.Add(1)
		go func() {
			defer changesWG.Done()
			for _, commitID := range chunk {
				if ctx.Err() != nil {
					return
				}
				files, err := repo.Changes(ctx, commitID)
				if err != nil {
					notes <- note{
						prefix: commitID,
						msg:    fmt.Sprintf("error processing commit: %v", err),
					}
				}
				for _, file := range files {
					readWG.Add(1)
					repo.ReadChange(file, func(old, new string, err error) {
						defer readWG.Done()
						if err != nil {
							notes <- note{
								prefix: commitID + ":" + file.Path,
								msg:    fmt.Sprintf("error reading change: %v", err),
							}
							return
						}
						if isBinary(old) || isBinary(new) {
							return
						}
						changes <- change{
							commitID: commitID,
							filename: file.Path,
							old:      old,
							new:      new,
						}
					})
				}
				commitsDone.Add(1)
			}
		}()
	}

	// Process diffs.
	var processWG sync.WaitGroup
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range cfg.parallel {
		processWG.Add(1)
		go func() {
			defer processWG.Done()
			for change := range changes {
				N, M := countLines(change.old), countLines(change.new)
				for _, v := range variants {
					prefix := change.commitID + ":" + change.filename + " (" + v.name + ")"
					cctx, cancel := context.WithTimeout(ctx, cfg.timeout)
					start := time.Now()
					hunks, err := docdiff.ComputeDiffContext(cctx, change.old, change.new, v.flags, v.opts...)
					duration := time.Since(start)
					cancel()
					if err != nil {
						notes <- note{prefix: prefix, msg: fmt.Sprintf("comparison failed: %v", err)}
						continue
					}

					if results != nil {
						results <- result{
							commitID: change.commitID,
							file:     change.filename,
							variant:  v.name,
							N:        N,
							M:        M,
							D:        changedLines(hunks),
							hunks:    len(hunks),
							duration: duration,
						}
					}

					if cfg.validate {
						if err := check(change.old, change.new, v.flags, hunks); err != nil {
							notes <- note{prefix: prefix, msg: err.Error()}
						}
					}
					if cfg.compare && v.name == "default" {
						if theirs := diffMatchPatchChanges(change.old, change.new); changedLines(hunks) > theirs {
							notes <- note{
								prefix: prefix,
								msg:    fmt.Sprintf("diff has %d changed lines, diffmatchpatch only %d", changedLines(hunks), theirs),
							}
						}
					}
				}
				processed.Add(1)
			}
		}()
	}

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := 1.0
		if len(commitIDs) > 0 {
			progress = float64(commits) / float64(len(commitIDs))
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsErr error
	if cfg.stats != "" {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("commit_id,file,variant,N,M,D,hunks,duration_ns\n")
			for result := range results {
				_, err := fmt.Fprintf(w, "%s,%s,%s,%d,%d,%d,%d,%d\n", result.commitID, result.file, result.variant, result.N, result.M, result.D, result.hunks, result.duration.Nanoseconds())
				if err != nil && statsErr == nil {
					statsErr = fmt.Errorf("writing stats: %w", err)
				}
			}
			if err := w.Flush(); err != nil && statsErr == nil {
				statsErr = fmt.Errorf("flushing stats: %w", err)
			}
		}()
	}

	// Shutdown
	changesWG.Wait()
	readWG.Wait()
	repo.Close()
	close(changes)
	processWG.Wait()
	if results != nil {
		close(results)
	}
	close(done)
	ioWG.Wait()

	if statsErr != nil {
		return statsErr
	}
	return ctx.Err()
}

func isBinary(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func changedLines(hunks []docdiff.Hunk) int {
	n := 0
	for _, h := range hunks {
		n += h.LeftLines.Len() + h.RightLines.Len()
	}
	return n
}
