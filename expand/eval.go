// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"regexp"
	"strings"

	"github.com/stacklok/promptbake/tables"
)

// Comparison and operator markers of the condition dialect.
const (
	notNullMarker   = "!==null"
	nullMarker      = "===null"
	stringNeqMarker = `!=="`
	hasMarker       = ".has"
	truthyFnName    = "IS_TRUTHY_FN"
	andSeparator    = "&&"
	orSeparator     = "||"
)

// truthyFlagRE matches a truthiness call whose argument text names the
// background-tasks flag, anywhere in the condition.
var truthyFlagRE = regexp.MustCompile(
	truthyFnName + `\s*\(\s*[^)]*` + tables.BackgroundTasksFlag + `[^)]*\)`,
)

// Evaluate resolves a condition expression to a boolean using the decision
// table. The rule chain below is checked in priority order and the first
// matching rule wins; it is not a general expression parser.
//
// Evaluate is total: malformed or unrecognized conditions never fail, they
// resolve through the engine's UnknownConditionPolicy.
func (e *Engine) Evaluate(cond string) bool {
	cond = strings.TrimSpace(cond)

	// Literal forms.
	switch cond {
	case "TRUE", "TRUE()":
		return true
	case "FALSE", "FALSE()":
		return false
	}

	// Not-equal-to-null: true unless the entity resolves to the explicit
	// null sentinel. An entity absent from the table in both its exact and
	// base form counts as not null. The comparison is a trailing suffix:
	// a marker in the middle of a compound condition belongs to one of its
	// operands and is handled after the conjunction/disjunction split.
	if strings.HasSuffix(cond, notNullMarker) {
		name := strings.TrimSpace(strings.TrimSuffix(cond, notNullMarker))
		v, ok := e.decisions.Resolve(name)
		return !ok || !v.IsNull()
	}

	// Equal-to-null: the negation of the same lookup.
	if strings.HasSuffix(cond, nullMarker) {
		name := strings.TrimSpace(strings.TrimSuffix(cond, nullMarker))
		v, ok := e.decisions.Resolve(name)
		return ok && v.IsNull()
	}

	// Not-equal-to-string-literal: compares the subscription tier entry
	// against the quoted literal, defaulting the tier when unconfigured.
	if i := strings.Index(cond, stringNeqMarker); i >= 0 {
		rest := cond[i+len(stringNeqMarker):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			tier := tables.DefaultSubscriptionType
			if v, ok := e.decisions.Resolve(tables.SubscriptionTypeEntity); ok && !v.IsNull() {
				tier = v.Text()
			}
			return tier != rest[:j]
		}
	}

	// Capability membership: the guide-subagent capability entry, which is
	// available unless the table says otherwise.
	if strings.Contains(cond, hasMarker) {
		if v, ok := e.decisions.Resolve(tables.GuideSubagentCapability); ok {
			return v.Truthy()
		}
		return true
	}

	// Negation.
	if rest, ok := strings.CutPrefix(cond, "!"); ok {
		return !e.Evaluate(rest)
	}

	// Truthiness-wrapped flag: a call naming the background-tasks flag is
	// true unless the flag is explicitly set; any other wrapped form is true.
	if strings.Contains(cond, truthyFnName) {
		if truthyFlagRE.MatchString(cond) {
			v, ok := e.decisions.Resolve(tables.BackgroundTasksFlag)
			return !(ok && v.Truthy())
		}
		return true
	}

	// Conjunction and disjunction of recursively evaluated operands.
	if strings.Contains(cond, andSeparator) {
		for _, operand := range strings.Split(cond, andSeparator) {
			if !e.Evaluate(operand) {
				return false
			}
		}
		return true
	}
	if strings.Contains(cond, orSeparator) {
		for _, operand := range strings.Split(cond, orSeparator) {
			if e.Evaluate(operand) {
				return true
			}
		}
		return false
	}

	// Direct table lookup by exact name.
	if v, ok := e.decisions[cond]; ok {
		return v.Truthy()
	}

	return e.unknown == IncludeTrueBranch
}
