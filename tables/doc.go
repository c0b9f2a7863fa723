// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package tables defines the two fixed lookup tables that drive template
specialization: the decision table, mapping condition and entity names to
resolved build-time values, and the literal table, mapping simple placeholder
names to replacement text.

Both tables are plain maps, fixed at construction time and read-only for the
duration of a run. They are passed explicitly into the expansion engine rather
than held as process globals, so multiple configurations (for example, one per
target product) can be used concurrently without interference.

# Values

A decision table entry resolves to one of three value shapes: a boolean, a
string (such as a subscription tier), or the explicit null sentinel meaning
"configured as unset". The null sentinel is distinct from the entry being
absent from the table altogether; only an explicit null makes an equal-to-null
comparison true.

	decisions := tables.DecisionTable{
	    "OUTPUT_STYLE_CONFIG":      tables.Null(),
	    "DISABLE_BACKGROUND_TASKS": tables.Bool(false),
	    "GET_SUBSCRIPTION_TYPE_FN": tables.String("free"),
	}

# Built-in Tables

DefaultDecisions and DefaultLiterals return the standard build-time tables for
specializing agent prompt templates: tool names, timeout and output limits,
display icons, commit and PR attribution lines, and agent type names.

# Loading Overrides

Load reads a YAML tables file, validates it against an embedded JSON schema,
and returns the tables it declares. Merge layers a loaded table over the
built-in defaults:

	decisions, literals, err := tables.Load(path)
	if err != nil {
	    // handle malformed tables file
	}
	merged := tables.DefaultDecisions().Merge(decisions)

The standard location for a user tables file follows XDG base directory
conventions; see DefaultTablesPath.
*/
package tables
