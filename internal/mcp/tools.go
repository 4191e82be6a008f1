package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var refItems = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "description": "Story ID"},
		"day":   map[string]any{"type": "number", "description": "Day 1-4 (omit for the unused pool)"},
		"index": map[string]any{"type": "number", "description": "1-based display index"},
	},
}

func storyRefOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("id", mcp.Description("Story ID. Mutually exclusive with day/index.")),
		mcp.WithNumber("day", mcp.Description("Day (1-4) holding the story when addressing by index")),
		mcp.WithNumber("index", mcp.Description("1-based display index within the day (1 = main)")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

var showToolDef = tool("edition_show",
	"Show the working copy: every present day with display indexes, optionally the unused pool.",
	mcp.WithNumber("day", mcp.Description("Only this day (1-4)")),
	mcp.WithBoolean("include_unused", mcp.Description("Include the unused pool (default true)")),
)

var moveToolDef = tool("edition_move",
	"Move a story to another day. If the target day is full, on_full decides: swap or replace a mini of the target day, or cancel.",
	append(storyRefOptions(),
		mcp.WithNumber("to_day", mcp.Required(), mcp.Description("Target day (1-4)")),
		mcp.WithString("on_full", mcp.Enum("swap", "replace", "cancel"), mcp.Description("Action when the target day is at capacity (default cancel)")),
		mcp.WithNumber("target_index", mcp.Description("Display index of the target day's mini for swap/replace")),
	)...,
)

var unuseToolDef = tool("edition_unuse",
	"Move a story from its day to the unused pool.",
	storyRefOptions()...,
)

var restoreToolDef = tool("edition_restore",
	"Move a story from the unused pool into a day as a mini. Capacity may be exceeded (reported as a warning).",
	mcp.WithString("id", mcp.Description("Story ID")),
	mcp.WithNumber("index", mcp.Description("1-based position in the unused pool")),
	mcp.WithNumber("to_day", mcp.Required(), mcp.Description("Target day (1-4)")),
)

var swapToolDef = tool("edition_swap_main",
	"Make a story the main story of its day; the old main takes its place.",
	storyRefOptions()...,
)

var rewriteToolDef = tool("edition_rewrite",
	"Rewrite a story's title and content through the content rewriter for its day's theme. The story keeps its ID and slot.",
	storyRefOptions()...,
)

var promoteToolDef = tool("edition_promote",
	"Promote a mini to the empty second-story slot of its day.",
	storyRefOptions()...,
)

var demoteToolDef = tool("edition_demote",
	"Demote a day's second story to the front of its minis.",
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day (1-4)")),
)

var combineToolDef = tool("edition_combine",
	"Merge two or more stories of one day into a new story.",
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day (1-4)")),
	mcp.WithArray("stories", mcp.Required(), mcp.Items(refItems), mcp.Description("Stories to merge, by id or index")),
)

var themeToolDef = tool("edition_rename_theme",
	"Rename a day's theme.",
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Day (1-4)")),
	mcp.WithString("name", mcp.Required(), mcp.Description("New theme name")),
)

var themesToolDef = tool("edition_themes",
	"List each present day's theme with its metadata.",
)

var validateToolDef = tool("edition_validate",
	"Validate the working copy. Errors block saving; warnings do not.",
)

var saveToolDef = tool("edition_save",
	"Validate and write the final edition (without the unused pool).",
	mcp.WithString("path", mcp.Description("Output .json path (defaults to config output_path)")),
	mcp.WithBoolean("teasers", mcp.Description("Generate tomorrow teasers for days 1-3")),
)

var regroupToolDef = tool("edition_regroup",
	"Reassign every story to days by theme. Replaces the current grouping.",
	mcp.WithArray("blocklisted", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Story IDs to leave out of every day")),
)

var changesToolDef = tool("edition_changes",
	"List the session's change log.",
)

var diffToolDef = tool("edition_diff",
	"List stories whose day or slot differs from the session start.",
)
