package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

// WriteInput contains parameters for the Write operation.
type WriteInput struct {
	Day     int    // required, 1-30
	Title   string // required, trimmed
	Content string // required, trimmed
	Mood    string // required
	Tags    []string
}

// WriteOutput contains the result of the Write operation.
type WriteOutput struct {
	Entry   journal.Entry `json:"entry"`
	Created bool          `json:"created"`
}

// Write creates the journal entry for a day, or updates it in place when one
// already exists (keeping its id and createdAt).
func Write(ctx context.Context, env *Env, input WriteInput) (*WriteOutput, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	if err := validateDay(input.Day); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, errors.NewInvalidRequest("title and content are required")
	}

	mood, err := journal.ParseMood(input.Mood)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	calDay, _ := env.Calendar.Day(input.Day)
	now := env.Clock()

	entry := journal.Entry{
		Day:       input.Day,
		Date:      calDay.Date,
		Title:     title,
		Content:   content,
		Mood:      mood,
		Tags:      journal.NormalizeTags(input.Tags),
		UpdatedAt: now,
	}

	existing, found := env.Store.FindByDay(ctx, input.Day)
	if found {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		if entry.UpdatedAt.Before(entry.CreatedAt) {
			entry.UpdatedAt = entry.CreatedAt
		}
	} else {
		entry.ID = journal.NewID(input.Day, now)
		entry.CreatedAt = now
	}

	if err := env.Store.Save(ctx, entry); err != nil {
		return nil, err
	}

	return &WriteOutput{Entry: entry, Created: !found}, nil
}
