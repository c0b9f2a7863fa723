// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"github.com/stacklok/promptbake/tables"
)

// UnknownConditionPolicy decides how Evaluate resolves a condition matched by
// no evaluation rule. It is an explicit, auditable policy rather than an
// implicit code path.
type UnknownConditionPolicy int

const (
	// IncludeTrueBranch resolves unknown conditions to true, keeping the
	// true branch of template content whose decision is unmodeled. This is
	// the default: it favors retaining content over silently dropping it.
	IncludeTrueBranch UnknownConditionPolicy = iota

	// ExcludeTrueBranch resolves unknown conditions to false.
	ExcludeTrueBranch
)

// Engine resolves template expressions against fixed decision and literal
// tables. It is immutable after construction and safe for concurrent use.
type Engine struct {
	decisions tables.DecisionTable
	literals  tables.LiteralTable
	unknown   UnknownConditionPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithDecisions sets the decision table consulted by condition evaluation.
func WithDecisions(t tables.DecisionTable) Option {
	return func(e *Engine) {
		e.decisions = t
	}
}

// WithLiterals sets the literal table consulted by placeholder substitution.
func WithLiterals(t tables.LiteralTable) Option {
	return func(e *Engine) {
		e.literals = t
	}
}

// WithUnknownConditionPolicy sets the resolution policy for conditions
// matched by no evaluation rule. The default is IncludeTrueBranch.
func WithUnknownConditionPolicy(p UnknownConditionPolicy) Option {
	return func(e *Engine) {
		e.unknown = p
	}
}

// NewEngine creates an engine with the given configuration. With no options
// the tables are empty: every ternary still resolves (through the unknown
// condition policy) and every placeholder passes through unchanged.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		decisions: tables.DecisionTable{},
		literals:  tables.LiteralTable{},
		unknown:   IncludeTrueBranch,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
