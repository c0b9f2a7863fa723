// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command promptbake statically specializes conditional template expressions
// in prompt documents against fixed build-time decision tables.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stacklok/promptbake/batch"
	"github.com/stacklok/promptbake/expand"
	"github.com/stacklok/promptbake/logger"
	"github.com/stacklok/promptbake/tables"
)

var (
	allFiles   bool
	checkOnly  bool
	watchMode  bool
	tablesFile string
	pattern    string
	jobs       int
	debug      bool
)

// errOutOfDate reports committed documents whose expansion is stale; it maps
// to a non-zero exit so CI can gate on it.
var errOutOfDate = errors.New("documents are out of date")

var rootCmd = &cobra.Command{
	Use:   "promptbake [flags] <path>",
	Short: "Statically specialize conditional prompt templates",
	Long: `promptbake resolves conditional template expressions of the form
${COND?trueBranch:falseBranch} and build-time placeholders of the form
${VAR} in text documents, using a fixed decision table and literal table.

Decidable expressions are eliminated at build time; placeholders whose
values are only known at runtime pass through untouched for a later stage.

Pass a single file, or a directory with --all. With --check no file is
written and a non-zero exit reports stale documents. With --watch the
directory is processed once and then re-expanded on every change.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize(debug)
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVar(&allFiles, "all", false, "process every matching file under a directory")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "report files that would change without writing")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "keep running and re-expand files as they change")
	rootCmd.Flags().StringVar(&tablesFile, "tables", "", "YAML tables file overriding the built-in decisions and literals")
	rootCmd.Flags().StringVar(&pattern, "pattern", batch.DefaultPattern, "file name glob selecting documents in directory mode")
	rootCmd.Flags().IntVar(&jobs, "jobs", 0, "number of documents processed concurrently (0 = one per CPU)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(_ *cobra.Command, args []string) error {
	if checkOnly && watchMode {
		return errors.New("--check and --watch are mutually exclusive")
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}
	processor := batch.NewProcessor(engine,
		batch.WithPattern(pattern),
		batch.WithDryRun(checkOnly),
		batch.WithJobs(jobs),
	)

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		if !allFiles && !watchMode {
			return fmt.Errorf("%s is a directory; pass --all to process it", path)
		}
		return runDir(processor, path)
	}
	if watchMode {
		return fmt.Errorf("--watch requires a directory; %s is a file", path)
	}
	return runFile(processor, path)
}

func runFile(processor *batch.Processor, path string) error {
	res := processor.ProcessFile(path)
	if res.Err != nil {
		return res.Err
	}
	if checkOnly && res.Changed {
		return fmt.Errorf("%w: %s", errOutOfDate, path)
	}
	return nil
}

func runDir(processor *batch.Processor, root string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := processor.ProcessDir(ctx, root)
	if err != nil {
		return err
	}
	logger.Infow("batch complete",
		"processed", summary.Processed(),
		"changed", summary.Changed(),
		"failed", len(summary.Failed()),
	)

	if checkOnly && summary.Changed() > 0 {
		return fmt.Errorf("%w: %d file(s) would change", errOutOfDate, summary.Changed())
	}

	if !watchMode {
		if len(summary.Failed()) > 0 {
			return fmt.Errorf("%d document(s) failed", len(summary.Failed()))
		}
		return nil
	}

	watcher, err := batch.NewWatcher(processor, root)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	watcher.Stop()
	return nil
}

// buildEngine layers the optional tables file over the built-in tables. An
// explicit --tables path must exist; the XDG default location is used only
// when present.
func buildEngine() (*expand.Engine, error) {
	decisions := tables.DefaultDecisions()
	literals := tables.DefaultLiterals()

	path := tablesFile
	if path == "" {
		if _, err := os.Stat(tables.DefaultTablesPath()); err == nil {
			path = tables.DefaultTablesPath()
		}
	}
	if path != "" {
		fileDecisions, fileLiterals, err := tables.Load(path)
		if err != nil {
			return nil, err
		}
		decisions = decisions.Merge(fileDecisions)
		literals = literals.Merge(fileLiterals)
		logger.Debugw("loaded tables overrides", "path", path)
	}

	return expand.NewEngine(
		expand.WithDecisions(decisions),
		expand.WithLiterals(literals),
	), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
