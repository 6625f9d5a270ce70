package ops

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/errors"
)

// WeekProgress counts completed days within one themed week.
type WeekProgress struct {
	Week      int    `json:"week"`
	Theme     string `json:"theme"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// ProgressOutput reports which calendar days are marked complete.
type ProgressOutput struct {
	Completed []int          `json:"completed"`
	Weeks     []WeekProgress `json:"weeks"`
	Percent   int            `json:"percent"`
}

// Progress reports completed days.
func Progress(ctx context.Context, env *Env) (*ProgressOutput, error) {
	completed, err := loadProgress(ctx, env)
	if err != nil {
		return nil, err
	}
	return buildProgress(env.Calendar, completed), nil
}

// Complete marks a day complete. Marking it again is a no-op.
func Complete(ctx context.Context, env *Env, day int) (*ProgressOutput, error) {
	return setCompleted(ctx, env, day, true)
}

// Uncomplete clears a day's completion mark.
func Uncomplete(ctx context.Context, env *Env, day int) (*ProgressOutput, error) {
	return setCompleted(ctx, env, day, false)
}

func setCompleted(ctx context.Context, env *Env, day int, done bool) (*ProgressOutput, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	completed, err := loadProgress(ctx, env)
	if err != nil {
		return nil, err
	}
	if done {
		completed[day] = true
	} else {
		delete(completed, day)
	}

	data, err := json.Marshal(sortedDays(completed))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := env.Slot.Put(ctx, ProgressSlotKey, string(data)); err != nil {
		return nil, err
	}
	return buildProgress(env.Calendar, completed), nil
}

func loadProgress(ctx context.Context, env *Env) (map[int]bool, error) {
	completed := make(map[int]bool)
	data, found, err := env.Slot.Get(ctx, ProgressSlotKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return completed, nil
	}

	var days []int
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		return nil, errors.NewStorage("decode", err)
	}
	for _, d := range days {
		if d >= 1 && d <= calendar.Length {
			completed[d] = true
		}
	}
	return completed, nil
}

func buildProgress(cal *calendar.Calendar, completed map[int]bool) *ProgressOutput {
	out := &ProgressOutput{Completed: sortedDays(completed)}
	for _, w := range cal.Weeks() {
		wp := WeekProgress{Week: w.Number, Theme: w.Theme, Total: w.Last - w.First + 1}
		for d := w.First; d <= w.Last; d++ {
			if completed[d] {
				wp.Completed++
			}
		}
		out.Weeks = append(out.Weeks, wp)
	}
	out.Percent = len(out.Completed) * 100 / calendar.Length
	return out
}

func sortedDays(set map[int]bool) []int {
	days := make([]int, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
