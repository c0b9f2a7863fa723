// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/promptbake/batch"
	"github.com/stacklok/promptbake/expand"
	"github.com/stacklok/promptbake/tables"
)

func newTestProcessor(opts ...batch.Option) *batch.Processor {
	engine := expand.NewEngine(
		expand.WithDecisions(tables.DefaultDecisions()),
		expand.WithLiterals(tables.DefaultLiterals()),
	)
	return batch.NewProcessor(engine, opts...)
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile_WritesOnlyOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeDoc(t, dir, "system.md", "Use ${WRITE_TOOL_NAME} for new files.\n")

	p := newTestProcessor()

	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	assert.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Use Write for new files.\n", string(data))

	// A second run finds nothing to do.
	res = p.ProcessFile(path)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed)
}

func TestProcessFile_PreservesPermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.md")
	require.NoError(t, os.WriteFile(path, []byte("${TRUE()?a:b}"), 0o755))

	res := newTestProcessor().ProcessFile(path)
	require.NoError(t, res.Err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := "timeout: ${MAX_TIMEOUT_MS()}\n"
	path := writeDoc(t, dir, "limits.md", original)

	res := newTestProcessor(batch.WithDryRun(true)).ProcessFile(path)
	require.NoError(t, res.Err)
	assert.True(t, res.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "dry run must not write")
}

func TestProcessFile_MissingFile(t *testing.T) {
	t.Parallel()

	res := newTestProcessor().ProcessFile(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, res.Err)
	assert.False(t, res.Changed)
}

func TestProcessDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "agents"), 0o755))

	writeDoc(t, dir, "system.md", "Use ${READ_TOOL_NAME} first.")
	writeDoc(t, filepath.Join(dir, "agents"), "explore.md", "${FALSE()?x:Codebase exploration} uses ${EXPLORE_AGENT}")
	writeDoc(t, dir, "already-expanded.md", "nothing to do here")
	writeDoc(t, dir, "ignored.txt", "Use ${READ_TOOL_NAME} first.")

	// A dangling symlink matching the pattern produces a per-file error
	// without aborting the batch.
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.md")))

	summary, err := newTestProcessor(batch.WithJobs(2)).ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Processed(), "three .md files plus the broken link")
	assert.Equal(t, 2, summary.Changed())
	require.Len(t, summary.Failed(), 1)
	assert.Contains(t, summary.Failed()[0].Path, "broken.md")

	data, err := os.ReadFile(filepath.Join(dir, "system.md"))
	require.NoError(t, err)
	assert.Equal(t, "Use Read first.", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "agents", "explore.md"))
	require.NoError(t, err)
	assert.Equal(t, "Codebase exploration uses Explore", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "ignored.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "${READ_TOOL_NAME}", "non-matching files untouched")
}

func TestProcessDir_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := newTestProcessor().ProcessDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestProcessDir_CustomPattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "prompt.txt", "${TRUE()?yes:no}")
	writeDoc(t, dir, "prompt.md", "${TRUE()?yes:no}")

	summary, err := newTestProcessor(batch.WithPattern("*.txt")).ProcessDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed())

	data, err := os.ReadFile(filepath.Join(dir, "prompt.md"))
	require.NoError(t, err)
	assert.Equal(t, "${TRUE()?yes:no}", string(data))
}
