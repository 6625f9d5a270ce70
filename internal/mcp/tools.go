package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/selah/internal/journal"
	"github.com/hpungsan/selah/internal/ops"
)

func moodNames() []string {
	names := make([]string, len(journal.Moods))
	for i, m := range journal.Moods {
		names[i] = string(m)
	}
	return names
}

func dayArg(required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Min(1), mcp.Max(30), mcp.Description("Calendar day (1-30)")}
	if required {
		opts = append(opts, mcp.Required())
	}
	return mcp.WithNumber("day", opts...)
}

var writeToolDef = mcp.NewTool("journal_write",
	mcp.WithDescription("Write the journal entry for a calendar day. Writing a day that already has an entry updates it in place."),
	dayArg(true),
	mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
	mcp.WithString("content", mcp.Required(), mcp.Description("Entry body")),
	mcp.WithString("mood", mcp.Required(), mcp.Enum(moodNames()...), mcp.Description("How the day felt")),
	mcp.WithArray("tags", mcp.WithStringItems(), mcp.Description("Optional tags")),
)

var fetchToolDef = mcp.NewTool("journal_fetch",
	mcp.WithDescription("Fetch the journal entry for a calendar day, with the day's prompts."),
	dayArg(true),
	mcp.WithReadOnlyHintAnnotation(true),
)

var deleteToolDef = mcp.NewTool("journal_delete",
	mcp.WithDescription("Delete a journal entry by id or by day. Specify exactly one."),
	mcp.WithString("id", mcp.Description("Entry id")),
	dayArg(false),
	mcp.WithDestructiveHintAnnotation(true),
)

var listToolDef = mcp.NewTool("journal_list",
	mcp.WithDescription("List journal entries, highest day first."),
	mcp.WithString("mood", mcp.Enum(moodNames()...), mcp.Description("Only entries with this mood")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var searchToolDef = mcp.NewTool("journal_search",
	mcp.WithDescription("Case-insensitive search over entry titles, content, and tags. An empty query lists everything."),
	mcp.WithString("query", mcp.Description("Text to look for")),
	mcp.WithString("mood", mcp.Enum(moodNames()...), mcp.Description("Only entries with this mood")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var statsToolDef = mcp.NewTool("journal_stats",
	mcp.WithDescription("Entry count, days journaled, mood counts, and streaks."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var exportToolDef = mcp.NewTool("journal_export",
	mcp.WithDescription("Export all entries to a JSONL file in the exports directory."),
	mcp.WithString("path", mcp.Description("Destination .jsonl path (default: exports dir)")),
)

var importToolDef = mcp.NewTool("journal_import",
	mcp.WithDescription("Import entries from a JSONL export."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source .jsonl path")),
	mcp.WithString("mode", mcp.Enum(string(ops.ImportModeError), string(ops.ImportModeReplace)),
		mcp.Description("error: abort on any bad line or id collision; replace: upsert valid lines")),
)

var dayToolDef = mcp.NewTool("calendar_day",
	mcp.WithDescription("Show a calendar day: activity, prompts, entry, and completion. Defaults to today."),
	dayArg(false),
	mcp.WithReadOnlyHintAnnotation(true),
)

var calendarListToolDef = mcp.NewTool("calendar_list",
	mcp.WithDescription("List all 30 calendar days and the four themed weeks."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var completeToolDef = mcp.NewTool("calendar_complete",
	mcp.WithDescription("Mark a calendar day complete."),
	dayArg(true),
)

var uncompleteToolDef = mcp.NewTool("calendar_uncomplete",
	mcp.WithDescription("Clear a calendar day's completion mark."),
	dayArg(true),
)

var progressToolDef = mcp.NewTool("calendar_progress",
	mcp.WithDescription("Completed days with per-week counts."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var scheduleToolDef = mcp.NewTool("reminder_schedule",
	mcp.WithDescription("Replace scheduled reminders with one per remaining calendar day."),
)

var cancelToolDef = mcp.NewTool("reminder_cancel",
	mcp.WithDescription("Cancel every scheduled reminder."),
	mcp.WithDestructiveHintAnnotation(true),
)

var pendingToolDef = mcp.NewTool("reminder_pending",
	mcp.WithDescription("List scheduled reminders in fire order."),
	mcp.WithReadOnlyHintAnnotation(true),
)
