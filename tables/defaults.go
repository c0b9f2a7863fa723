// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package tables

// Entity names with distinguished evaluation behavior. The expansion engine
// recognizes these by name when resolving tier comparisons, capability checks,
// and truthiness-wrapped flags.
const (
	// SubscriptionTypeEntity is the decision entry compared by
	// not-equal-to-string-literal conditions such as `!=="pro"`.
	SubscriptionTypeEntity = "GET_SUBSCRIPTION_TYPE_FN()"

	// DefaultSubscriptionType is the tier assumed when the subscription
	// entity is absent from the decision table.
	DefaultSubscriptionType = "free"

	// GuideSubagentCapability is the decision entry consulted by dotted
	// `.has` capability-membership checks.
	GuideSubagentCapability = "CLAUDE_CODE_GUIDE_SUBAGENT_TYPE.has"

	// BackgroundTasksFlag is the flag recognized inside IS_TRUTHY_FN
	// call arguments.
	BackgroundTasksFlag = "DISABLE_BACKGROUND_TASKS"
)

// DefaultDecisions returns the standard build-time decision table for
// specializing agent prompt templates.
func DefaultDecisions() DecisionTable {
	return DecisionTable{
		// Output style: standard, no custom style configured.
		"OUTPUT_STYLE_CONFIG": Null(),

		// Subscription tier: free, so tier-gated instructions are kept.
		SubscriptionTypeEntity: String(DefaultSubscriptionType),

		// Guide subagent types: all available.
		GuideSubagentCapability: Bool(true),

		// Background tasks: enabled.
		BackgroundTasksFlag: Bool(false),

		"TRUE()":  Bool(true),
		"FALSE()": Bool(false),
	}
}

// DefaultLiterals returns the standard build-time literal table: tool names,
// timeout and output limits, display icons, commit and PR attribution lines,
// and agent type names.
func DefaultLiterals() LiteralTable {
	return LiteralTable{
		// Tool names.
		"BASH_TOOL_NAME":              "Bash",
		"BASH_TOOL_NAME.name":         "Bash",
		"BASH_TOOL_OBJECT.name":       "Bash",
		"READ_TOOL_NAME":              "Read",
		"READ_TOOL":                   "Read",
		"WRITE_TOOL_NAME":             "Write",
		"WRITE_TOOL":                  "Write",
		"WRITE_TOOL.name":             "Write",
		"EDIT_TOOL_NAME":              "Edit",
		"EDIT_TOOL.name":              "Edit",
		"GLOB_TOOL_NAME":              "Glob",
		"GLOB_TOOL":                   "Glob",
		"GREP_TOOL_NAME":              "Grep",
		"SEARCH_TOOL_NAME":            "Glob",
		"TASK_TOOL":                   "Task",
		"TASK_TOOL_NAME":              "Task",
		"TASK_TOOL_NAME.name":         "Task",
		"TASK_TOOL_OBJECT":            "Task",
		"TASK_TOOL_OBJECT.name":       "Task",
		"TODO_TOOL_OBJECT":            "TodoWrite",
		"ASK_USER_QUESTION_TOOL_NAME": "AskUserQuestion",
		"WEBFETCH_TOOL_NAME":          "WebFetch",
		"WEBSEARCH_TOOL_NAME":         "WebSearch",
		"EXIT_PLAN_MODE_TOOL.name":    "ExitPlanMode",
		"EXIT_PLAN_MODE_TOOL_OBJECT.name": "ExitPlanMode",
		"ENTER_PLAN_MODE_TOOL.name":       "EnterPlanMode",

		// Timeouts and output limits. Divisor-suffixed names carry the
		// pre-computed quotient so templates can show minutes.
		"CUSTOM_TIMEOUT_MS()":       "600000",
		"CUSTOM_TIMEOUT_MS()/60000": "10",
		"MAX_TIMEOUT_MS()":          "120000",
		"MAX_TIMEOUT_MS()/60000":    "2",
		"MAX_OUTPUT_CHARS()":        "30000",
		"DEFAULT_READ_LINES":        "2000",
		"MAX_LINE_LENGTH":           "2000",

		// Display icons.
		"ICONS_OBJECT.bullet": "•",
		"ICONS_OBJECT.star":   "★",

		// Commit and PR attribution lines.
		"COMMIT_CO_AUTHORED_BY_CLAUDE_CODE": "Co-Authored-By: Claude <noreply@anthropic.com>",
		"PR_GENERATED_WITH_CLAUDE_CODE":     "Generated with Claude Code",

		// Agent type names.
		"EXPLORE_AGENT":              "Explore",
		"EXPLORE_SUBAGENT.agentType": "Explore",
		"PLAN_AGENT.agentType":       "Plan",
	}
}
