// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package batch applies the expansion engine to files on disk. It is the I/O
collaborator around the pure engine in package expand: it reads each
document's full text, expands it, and writes the file back only when the
text actually changed.

# Processing Model

Documents are independent, so a directory run processes them with a bounded
worker pool. One document's failure (unreadable file, write permission,
expansion panic) is captured in its per-file Result and never aborts the
rest of the batch.

	engine := expand.NewEngine(...)
	processor := batch.NewProcessor(engine, batch.WithPattern("*.md"))

	summary, err := processor.ProcessDir(ctx, "prompts/")
	if err != nil {
	    // the directory walk itself failed
	}
	for _, r := range summary.Failed() {
	    // per-document failures
	}

# Check Mode

With WithDryRun, files are never written; results still report which files
would change, so CI can fail a build whose committed documents are stale.

# Watch Mode

Watcher re-expands matching files as they are created or modified, for
iterating on templates locally. Re-expanding an already specialized file
produces no change and therefore no write, so the watcher's own writes
settle instead of looping.
*/
package batch
