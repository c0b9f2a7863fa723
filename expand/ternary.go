// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import "strings"

// Template span delimiters.
const (
	spanOpen  = "${"
	spanClose = "}"
)

// ExpandTernary resolves one delimited ternary span, returning the branch
// text selected by its condition. The span is split on the first top-level
// branch separator '?', and the remainder on the first top-level ':', where
// "top level" means outside double-quoted text. A colon inside a quoted
// branch therefore never separates branches.
//
// Branches are trimmed of surrounding whitespace and one layer of enclosing
// double quotes, so an empty branch can be written as "".
//
// A span without both separators is malformed and is returned byte-for-byte
// unchanged; no partial substitution occurs.
func (e *Engine) ExpandTernary(span string) string {
	inner, ok := cutSpan(span)
	if !ok {
		return span
	}

	q := indexTopLevel(inner, '?')
	if q < 0 {
		return span
	}
	cond := inner[:q]
	rest := inner[q+1:]

	c := indexTopLevel(rest, ':')
	if c < 0 {
		return span
	}

	if e.Evaluate(cond) {
		return trimBranch(rest[:c])
	}
	return trimBranch(rest[c+1:])
}

// cutSpan strips the span delimiters, reporting whether they were present.
func cutSpan(span string) (string, bool) {
	if !strings.HasPrefix(span, spanOpen) || !strings.HasSuffix(span, spanClose) {
		return "", false
	}
	return span[len(spanOpen) : len(span)-len(spanClose)], true
}

// indexTopLevel returns the index of the first occurrence of sep outside
// double-quoted text, or -1.
func indexTopLevel(s string, sep byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			inQuote = !inQuote
		case s[i] == sep && !inQuote:
			return i
		}
	}
	return -1
}

// trimBranch trims surrounding whitespace and one layer of enclosing double
// quotes from branch text.
func trimBranch(branch string) string {
	branch = strings.TrimSpace(branch)
	if len(branch) >= 2 && branch[0] == '"' && branch[len(branch)-1] == '"' {
		branch = branch[1 : len(branch)-1]
	}
	return branch
}
