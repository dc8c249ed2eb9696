// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cases

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one case.
type Result struct {
	File string
	Case string
	// Err describes why the case failed; nil means it passed.
	Err error
}

func (r Result) Passed() bool { return r.Err == nil }

// Run runs every case in files, at most jobs at a time. Each case gets its
// own parser. Results are in file order, then case order. The returned error
// is only set when ctx is done before all cases ran.
func Run(ctx context.Context, files []*File, jobs int) ([]Result, error) {
	return RunWithProgress(ctx, files, jobs, nil)
}

// RunWithProgress is Run, calling progress after each finished case.
// Calls to progress are serialized.
func RunWithProgress(ctx context.Context, files []*File, jobs int, progress func(done, total int)) ([]Result, error) {
	type job struct {
		file *File
		c    Case
	}
	var jobsList []job
	for _, f := range files {
		for _, c := range f.Cases {
			jobsList = append(jobsList, job{f, c})
		}
	}

	results := make([]Result, len(jobsList))
	var (
		mu   sync.Mutex
		done int
	)
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, j := range jobsList {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{File: j.file.Path, Case: j.c.Name, Err: runCase(j.file, j.c)}
			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(jobsList))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runCase(f *File, c Case) error {
	p, err := f.Spec.Build()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	p.Args.SetOutput(io.Discard, io.Discard)

	args, err := c.Tokens()
	if err != nil {
		return err
	}
	log.Printf("%s: %s: %q", f.Path, c.Name, args)

	ok, msg := p.Args.Process(args)
	if ok != c.OK || msg != c.Error {
		return fmt.Errorf("got (%v, %q), want (%v, %q)", ok, msg, c.OK, c.Error)
	}

	vals := p.Values()
	var bad []string
	for _, k := range sortedKeys(c.Values) {
		want := c.Values[k]
		v, found := vals[k]
		if !found {
			bad = append(bad, fmt.Sprintf("%s: not declared", k))
			continue
		}
		if got := v.String(); got != want {
			bad = append(bad, fmt.Sprintf("%s = %q, want %q", k, got, want))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%s", strings.Join(bad, "; "))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
