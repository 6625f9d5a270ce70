package ops

import (
	"context"
	"fmt"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	journal.Entry
	Prompts []string `json:"prompts"`
}

// Fetch retrieves the journal entry for a day.
func Fetch(ctx context.Context, env *Env, day int) (*FetchOutput, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	e, ok := env.Store.FindByDay(ctx, day)
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("day %d", day))
	}
	calDay, _ := env.Calendar.Day(day)
	return &FetchOutput{Entry: *e, Prompts: calDay.Prompts}, nil
}

// DayOutput is the per-day detail view: the calendar activity, the day's
// entry if one exists, and whether the day is marked complete.
type DayOutput struct {
	calendar.Day
	Icon      string         `json:"icon"`
	Entry     *journal.Entry `json:"entry,omitempty"`
	Completed bool           `json:"completed"`
}

// Day assembles the detail view for a calendar day.
func Day(ctx context.Context, env *Env, day int) (*DayOutput, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	calDay, _ := env.Calendar.Day(day)
	out := &DayOutput{Day: calDay, Icon: calDay.Type.Icon()}

	if e, ok := env.Store.FindByDay(ctx, day); ok {
		out.Entry = e
	}

	completed, err := loadProgress(ctx, env)
	if err != nil {
		return nil, err
	}
	out.Completed = completed[day]
	return out, nil
}

// Today returns the detail view for the calendar day matching the clock.
func Today(ctx context.Context, env *Env) (*DayOutput, error) {
	return Day(ctx, env, env.Calendar.Today(env.Clock()).Day)
}
