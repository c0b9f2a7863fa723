// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/promptbake/expand"
	"github.com/stacklok/promptbake/logger"
)

// DefaultPattern is the file name glob processed when no pattern is
// configured.
const DefaultPattern = "*.md"

// Processor applies an expansion engine to files and directory trees.
type Processor struct {
	engine  *expand.Engine
	pattern string
	dryRun  bool
	jobs    int
}

// Option configures a Processor.
type Option func(*Processor)

// WithPattern sets the file name glob selecting documents during a
// directory run. The default is DefaultPattern.
func WithPattern(pattern string) Option {
	return func(p *Processor) {
		p.pattern = pattern
	}
}

// WithDryRun disables writing: results report which files would change, but
// no file is modified.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) {
		p.dryRun = dryRun
	}
}

// WithJobs sets the number of documents processed concurrently during a
// directory run. Values below one fall back to the default.
func WithJobs(jobs int) Option {
	return func(p *Processor) {
		if jobs > 0 {
			p.jobs = jobs
		}
	}
}

// NewProcessor creates a processor around the given engine.
func NewProcessor(engine *expand.Engine, opts ...Option) *Processor {
	p := &Processor{
		engine:  engine,
		pattern: DefaultPattern,
		jobs:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of processing one document.
type Result struct {
	// Path is the document's file path.
	Path string
	// Changed reports whether expansion altered the document's text. In
	// dry-run mode it reports whether a write would have occurred.
	Changed bool
	// Err is the document's failure, if any.
	Err error
}

// Summary aggregates the outcomes of a directory run.
type Summary struct {
	// Results holds one entry per matched document, in walk order.
	Results []Result
}

// Processed returns the number of documents examined.
func (s Summary) Processed() int {
	return len(s.Results)
}

// Changed returns the number of documents whose text changed.
func (s Summary) Changed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil && r.Changed {
			n++
		}
	}
	return n
}

// Failed returns the per-document failures.
func (s Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// ProcessFile expands a single document in place, writing it back only when
// the expanded text differs from the original. The file's permission bits
// are preserved on write.
func (p *Processor) ProcessFile(path string) Result {
	res := Result{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = fmt.Errorf("stat %s: %w", path, err)
		logger.Errorw("skipping document", "path", path, "error", res.Err)
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		logger.Errorw("skipping document", "path", path, "error", res.Err)
		return res
	}

	expanded, err := p.expandDocument(string(data))
	if err != nil {
		res.Err = fmt.Errorf("expanding %s: %w", path, err)
		logger.Errorw("skipping document", "path", path, "error", res.Err)
		return res
	}

	if expanded == string(data) {
		logger.Debugw("unchanged", "path", path)
		return res
	}
	res.Changed = true

	if p.dryRun {
		logger.Infow("would expand", "path", path)
		return res
	}

	if err := os.WriteFile(path, []byte(expanded), info.Mode().Perm()); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", path, err)
		logger.Errorw("skipping document", "path", path, "error", res.Err)
		return res
	}
	logger.Infow("expanded", "path", path)
	return res
}

// expandDocument runs the engine over one document, converting a panic into
// that document's error so a single bad document cannot take down a batch.
func (p *Processor) expandDocument(doc string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("expansion panic: %v", r)
		}
	}()
	return p.engine.Expand(doc), nil
}

// ProcessDir walks root recursively and processes every file whose name
// matches the configured pattern, using a bounded worker pool. Per-document
// failures are recorded in the summary and never abort the run; the returned
// error is non-nil only when the walk itself fails.
func (p *Processor) ProcessDir(ctx context.Context, root string) (Summary, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warnf("skipping unreadable entry %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(p.pattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("walking %s: %w", root, err)
	}

	results := make([]Result, len(paths))
	g := &errgroup.Group{}
	g.SetLimit(p.jobs)
	for i, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = Result{Path: path, Err: ctx.Err()}
				return nil
			}
			results[i] = p.ProcessFile(path)
			return nil
		})
	}
	// Workers never return errors; failures live in their results.
	_ = g.Wait()

	return Summary{Results: results}, nil
}
