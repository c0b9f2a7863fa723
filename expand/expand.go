// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"regexp"
	"strings"
)

// simplePlaceholderRE matches a simple placeholder span: an upper-case name,
// optionally followed by a dotted member suffix, a trailing invocation
// marker, and a numeric divisor suffix.
var simplePlaceholderRE = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*(?:\.[a-zA-Z_]+)?(?:\(\))?(?:/\d+)?)\}`)

// Substitute resolves one simple placeholder name against the literal table.
// On a hit the literal text is returned verbatim; its contents are never
// re-expanded. On a miss the original delimited placeholder is returned
// unchanged, deferring the name to a later runtime-resolution stage.
func (e *Engine) Substitute(name string) string {
	if text, ok := e.literals.Lookup(name); ok {
		return text
	}
	return spanOpen + name + spanClose
}

// Expand performs a full document pass: first every innermost, non-nested
// ternary span is replaced by its selected branch, then every remaining
// simple placeholder is substituted. Ternaries go first because their
// branches may themselves contain simple placeholders that must survive into
// the output, while their condition text may contain names that also appear
// in the literal table.
//
// Replacement text is never rescanned within a pass, so expansion of one
// span cannot corrupt another. Expand is idempotent.
func (e *Engine) Expand(document string) string {
	out := e.expandTernaries(document)
	return simplePlaceholderRE.ReplaceAllStringFunc(out, func(span string) string {
		name := span[len(spanOpen) : len(span)-len(spanClose)]
		return e.Substitute(name)
	})
}

// expandTernaries replaces every innermost ${...} span containing a branch
// separator. A span is innermost when its content holds no brace, so a
// nested occurrence resolves the inner span and leaves the outer text alone.
// Spans without a branch separator are left for the placeholder pass.
func (e *Engine) expandTernaries(document string) string {
	var b strings.Builder
	b.Grow(len(document))

	i := 0
	for {
		start := strings.Index(document[i:], spanOpen)
		if start < 0 {
			b.WriteString(document[i:])
			return b.String()
		}
		start += i
		b.WriteString(document[i:start])

		end := closingBrace(document, start+len(spanOpen))
		if end < 0 {
			// No innermost span starts here; emit the marker and rescan
			// from just past it so an inner span can still match.
			b.WriteString(spanOpen)
			i = start + len(spanOpen)
			continue
		}

		span := document[start : end+1]
		inner := document[start+len(spanOpen) : end]
		if indexTopLevel(inner, '?') >= 0 {
			b.WriteString(e.ExpandTernary(span))
		} else {
			b.WriteString(span)
		}
		i = end + 1
	}
}

// closingBrace returns the index of the brace closing the span whose content
// starts at from, or -1 when the content is interrupted by another brace
// before it closes (the span is not innermost, or never closes).
func closingBrace(document string, from int) int {
	for k := from; k < len(document); k++ {
		switch document[k] {
		case '}':
			return k
		case '{':
			return -1
		}
	}
	return -1
}
