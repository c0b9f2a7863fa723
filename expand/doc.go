// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package expand implements the static template specialization engine: it
resolves conditional ternary expressions and build-time variable placeholders
embedded in document text against fixed decision and literal tables.

The engine is a pure function over text. It performs two passes per document:
first every innermost, non-nested ternary span of the form

	${condition ? trueBranch : falseBranch}

is replaced by the branch its condition selects, then every remaining simple
placeholder of the form ${NAME} (optionally with a dotted member suffix, a
trailing invocation marker, or a numeric divisor suffix) is replaced by its
literal table value. Placeholders absent from the literal table pass through
byte-for-byte, delimiters included, for resolution by a later runtime stage.

# Basic Usage

Construct an engine with explicit tables and expand documents:

	engine := expand.NewEngine(
	    expand.WithDecisions(tables.DefaultDecisions()),
	    expand.WithLiterals(tables.DefaultLiterals()),
	)

	out := engine.Expand("Use the ${WRITE_TOOL_NAME} tool")
	// out == "Use the Write tool"

# Condition Evaluation

Evaluate resolves a condition expression to a boolean through a fixed rule
chain: literal TRUE/FALSE forms, null and not-null comparisons, string
inequality against the subscription tier, capability membership checks,
negation, truthiness-wrapped flags, conjunction, disjunction, and finally a
direct decision table lookup. Evaluation is total: it never fails, and a
condition matched by no rule resolves through the configured
UnknownConditionPolicy, which defaults to IncludeTrueBranch so that unmodeled
decisions keep template content rather than silently dropping it.

# Concurrency

An Engine is immutable after construction and safe for concurrent use;
documents may be expanded from multiple goroutines simultaneously.
*/
package expand
