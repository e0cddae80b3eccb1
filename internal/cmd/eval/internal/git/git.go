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

// Package git provides a simplified git interface for reading the history of a repository.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// nullID is the blob ID git reports for a file that doesn't exist on one side of a change.
const nullID = "0000000000000000000000000000000000000000"

// Repo is a git repository.
type Repo struct {
	dir  string
	cat  chan<- catRequest
	done chan struct{}
}

// Open opens the repository in dir. The repository must be closed after use.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	cat, done, err := startCatFile(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Repo{dir: dir, cat: cat, done: done}, nil
}

// Close stops all background processes. All reads must have returned before Close is called.
func (r *Repo) Close() {
	close(r.cat)
	<-r.done
}

// RevList returns the IDs of all non-merge commits reachable from HEAD.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := git(ctx, "-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Change is a file changed by a commit.
type Change struct {
	Path  string
	OldID string // nullID if the file was added
	NewID string // nullID if the file was removed
}

// Changes returns the files changed by a commit.
func (r *Repo) Changes(ctx context.Context, commit string) ([]Change, error) {
	out, err := git(ctx, "-C", r.dir, "diff-tree", "--no-commit-id", "-r", commit)
	if err != nil {
		return nil, err
	}
	var changes []Change
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		// :<old mode> <new mode> <old id> <new id> <status>\t<path>
		meta, path, ok := strings.Cut(line, "\t")
		if !ok || !strings.HasPrefix(meta, ":") {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		fields := strings.Fields(meta[1:])
		if len(fields) != 5 {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		changes = append(changes, Change{Path: path, OldID: fields[2], NewID: fields[3]})
	}
	return changes, nil
}

// ReadChange reads the old and the new content of a change and calls fn with them. A missing side
// is read as the empty string. Reads are batched, fn is called asynchronously.
func (r *Repo) ReadChange(c Change, fn func(old, new string, err error)) {
	r.cat <- catRequest{c, fn}
}

func git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %v: %w\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

type catRequest struct {
	change Change
	fn     func(old, new string, err error)
}

// startCatFile starts a git cat-file process in batch mode. Requests are written to the process in
// bundles and the responses are read in a second goroutine, so that git never waits for us.
func startCatFile(ctx context.Context, dir string) (chan<- catRequest, chan struct{}, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch-command", "--buffer")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdin: %w", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdout: %w", err)
	}
	var werr bytes.Buffer
	cmd.Stderr = &werr
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting git cat-file: %w", err)
	}

	requests := make(chan catRequest)
	bundles := make(chan []catRequest, runtime.GOMAXPROCS(0))
	done := make(chan struct{})

	go func() {
		defer close(bundles)
		defer in.Close()
		const maxBundle = 32
		for {
			// Block for the first request of a bundle, then take whatever is available.
			req, ok := <-requests
			if !ok {
				return
			}
			bundle := []catRequest{req}
		Collect:
			for len(bundle) < maxBundle {
				select {
				case req, ok := <-requests:
					if !ok {
						break Collect
					}
					bundle = append(bundle, req)
				default:
					break Collect
				}
			}
			for _, req := range bundle {
				for _, id := range []string{req.change.OldID, req.change.NewID} {
					if id == nullID {
						continue
					}
					fmt.Fprintf(in, "contents %s\n", id)
				}
			}
			fmt.Fprintf(in, "flush\n")
			bundles <- bundle
		}
	}()

	go func() {
		defer close(done)
		defer cmd.Wait()
		r := bufio.NewReader(out)
		var broken error
		for bundle := range bundles {
			for _, req := range bundle {
				if broken != nil {
					req.fn("", "", broken)
					continue
				}
				old, err := readBlob(r, req.change.OldID)
				if err != nil {
					broken = fmt.Errorf("reading %s: %w (%s)", req.change.OldID, err, werr.String())
					req.fn("", "", broken)
					continue
				}
				new, err := readBlob(r, req.change.NewID)
				if err != nil {
					broken = fmt.Errorf("reading %s: %w (%s)", req.change.NewID, err, werr.String())
					req.fn("", "", broken)
					continue
				}
				req.fn(old, new, nil)
			}
		}
	}()

	return requests, done, nil
}

// readBlob reads one response of git cat-file: a header line "<id> <type> <size>" followed by the
// content and a newline.
func readBlob(r *bufio.Reader, id string) (string, error) {
	if id == nullID {
		return "", nil
	}
	header, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return "", fmt.Errorf("unexpected header %q", header)
	}
	if fields[0] != id {
		return "", fmt.Errorf("unexpected object %s", fields[0])
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}
