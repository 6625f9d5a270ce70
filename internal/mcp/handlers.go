package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/notify"
	"github.com/hpungsan/selah/internal/ops"
)

// PendingLister lists scheduled reminders.
type PendingLister interface {
	Pending(ctx context.Context) ([]notify.Reminder, error)
}

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env       *ops.Env
	scheduler *notify.Scheduler
	pending   PendingLister
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env, scheduler *notify.Scheduler, pending PendingLister) *Handlers {
	return &Handlers{env: env, scheduler: scheduler, pending: pending}
}

// Request types for each tool

// WriteRequest represents the arguments for journal_write.
type WriteRequest struct {
	Day     int      `json:"day"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags,omitempty"`
}

// DayRequest represents tools addressed by a single day.
type DayRequest struct {
	Day int `json:"day,omitempty"`
}

// DeleteRequest represents the arguments for journal_delete.
type DeleteRequest struct {
	ID  string `json:"id,omitempty"`
	Day int    `json:"day,omitempty"`
}

// ListRequest represents the arguments for journal_list.
type ListRequest struct {
	Mood string `json:"mood,omitempty"`
}

// SearchRequest represents the arguments for journal_search.
type SearchRequest struct {
	Query string `json:"query,omitempty"`
	Mood  string `json:"mood,omitempty"`
}

// ExportRequest represents the arguments for journal_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for journal_import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// CalendarListResult is the calendar_list payload.
type CalendarListResult struct {
	Month string          `json:"month"`
	Weeks []calendar.Week `json:"weeks"`
	Days  []calendar.Day  `json:"days"`
}

// PendingResult is the reminder_pending payload.
type PendingResult struct {
	Reminders []notify.Reminder `json:"reminders"`
	Count     int               `json:"count"`
}

// Handler implementations

// HandleWrite handles the journal_write tool call.
func (h *Handlers) HandleWrite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WriteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Write(ctx, h.env, ops.WriteInput{
		Day:     input.Day,
		Title:   input.Title,
		Content: input.Content,
		Mood:    input.Mood,
		Tags:    input.Tags,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFetch handles the journal_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(ctx, h.env, input.Day)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the journal_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.env, ops.DeleteInput{ID: input.ID, Day: input.Day})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the journal_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.env, ops.ListInput{Mood: input.Mood})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSearch handles the journal_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.env, ops.SearchInput{Query: input.Query, Mood: input.Mood})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleStats handles the journal_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(ctx, h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExport handles the journal_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(ctx, h.env, ops.ExportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleImport handles the journal_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(ctx, h.env, ops.ImportInput{
		Path: input.Path,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDay handles the calendar_day tool call. Without a day it shows today.
func (h *Handlers) HandleDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var result *ops.DayOutput
	if input.Day == 0 {
		result, err = ops.Today(ctx, h.env)
	} else {
		result, err = ops.Day(ctx, h.env, input.Day)
	}
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCalendarList handles the calendar_list tool call.
func (h *Handlers) HandleCalendarList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cal := h.env.Calendar
	return successResult(CalendarListResult{
		Month: cal.Month().String(),
		Weeks: cal.Weeks(),
		Days:  cal.Days(),
	})
}

// HandleComplete handles the calendar_complete tool call.
func (h *Handlers) HandleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Complete(ctx, h.env, input.Day)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUncomplete handles the calendar_uncomplete tool call.
func (h *Handlers) HandleUncomplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Uncomplete(ctx, h.env, input.Day)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProgress handles the calendar_progress tool call.
func (h *Handlers) HandleProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Progress(ctx, h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSchedule handles the reminder_schedule tool call.
func (h *Handlers) HandleSchedule(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.scheduler.ScheduleAll(ctx, h.env.Clock())
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCancel handles the reminder_cancel tool call.
func (h *Handlers) HandleCancel(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.scheduler.CancelAll(ctx); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]bool{"cancelled": true})
}

// HandlePending handles the reminder_pending tool call.
func (h *Handlers) HandlePending(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pending, err := h.pending.Pending(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(PendingResult{Reminders: pending, Count: len(pending)})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// INTERNAL errors carry no details; they can hold file paths or SQL text.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if se := errors.As(err); se != nil {
		message := se.Message
		if err != error(se) {
			// keep wrapper context, e.g. "import: NOT_FOUND: ..."
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    se.Code,
			"message": message,
			"status":  se.Status,
		}
		if se.Code != errors.ErrInternal && se.Details != nil {
			errorObj["details"] = se.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
