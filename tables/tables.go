// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package tables

import "strings"

// valueKind discriminates the three shapes a decision value can take.
type valueKind int

const (
	kindNull valueKind = iota
	kindBool
	kindString
)

// Value is a resolved build-time decision value: a boolean, a string, or the
// explicit null sentinel. The zero Value is the null sentinel.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// Null returns the explicit null sentinel, meaning the entity is configured
// as unset.
func Null() Value {
	return Value{kind: kindNull}
}

// Bool returns a boolean decision value.
func Bool(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// String returns a string decision value.
func String(s string) Value {
	return Value{kind: kindString, s: s}
}

// IsNull reports whether the value is the explicit null sentinel.
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// Truthy reports the boolean coercion of the value: null is false, a boolean
// is itself, and a string is true when non-empty.
func (v Value) Truthy() bool {
	switch v.kind {
	case kindBool:
		return v.b
	case kindString:
		return v.s != ""
	default:
		return false
	}
}

// Text returns the string form of the value. Booleans and the null sentinel
// have no string form and return the empty string.
func (v Value) Text() string {
	return v.s
}

// DecisionTable maps condition and entity names to their resolved build-time
// values. Names are matched by exact text; there is no wildcard or prefix
// matching.
type DecisionTable map[string]Value

// Resolve looks up an entity by exact name, falling back to the base name
// with a trailing invocation marker removed, so "MY_FN()" resolves an entry
// stored under either "MY_FN()" or "MY_FN". The second return value reports
// whether either form was present.
func (t DecisionTable) Resolve(name string) (Value, bool) {
	if v, ok := t[name]; ok {
		return v, true
	}
	if base := strings.TrimSuffix(name, "()"); base != name {
		if v, ok := t[base]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Merge returns a new table containing the receiver's entries with the
// overlay's entries layered on top. Neither input is modified.
func (t DecisionTable) Merge(overlay DecisionTable) DecisionTable {
	merged := make(DecisionTable, len(t)+len(overlay))
	for name, v := range t {
		merged[name] = v
	}
	for name, v := range overlay {
		merged[name] = v
	}
	return merged
}

// LiteralTable maps simple placeholder names to their literal replacement
// text. It is a disjoint concern from the decision table: literals feed leaf
// placeholder substitution, never condition evaluation.
type LiteralTable map[string]string

// Lookup returns the replacement text for a placeholder name by exact match.
func (t LiteralTable) Lookup(name string) (string, bool) {
	s, ok := t[name]
	return s, ok
}

// Merge returns a new table containing the receiver's entries with the
// overlay's entries layered on top. Neither input is modified.
func (t LiteralTable) Merge(overlay LiteralTable) LiteralTable {
	merged := make(LiteralTable, len(t)+len(overlay))
	for name, s := range t {
		merged[name] = s
	}
	for name, s := range overlay {
		merged[name] = s
	}
	return merged
}
