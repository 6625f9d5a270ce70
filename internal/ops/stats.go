package ops

import (
	"context"
	"sort"

	"github.com/hpungsan/selah/internal/journal"
)

// StatsOutput summarizes the journal.
type StatsOutput struct {
	TotalEntries  int                  `json:"total_entries"`
	DaysJournaled int                  `json:"days_journaled"`
	Moods         map[journal.Mood]int `json:"moods"`
	CurrentStreak int                  `json:"current_streak"`
	LongestStreak int                  `json:"longest_streak"`
}

// Stats counts entries, distinct days, moods, and streaks of consecutive
// journaled days. The current streak ends at the highest journaled day.
func Stats(ctx context.Context, env *Env) (*StatsOutput, error) {
	entries := env.Store.List(ctx)

	out := &StatsOutput{
		TotalEntries: len(entries),
		Moods:        make(map[journal.Mood]int, len(journal.Moods)),
	}
	for _, m := range journal.Moods {
		out.Moods[m] = 0
	}

	daySet := make(map[int]bool)
	for _, e := range entries {
		out.Moods[e.Mood]++
		daySet[e.Day] = true
	}
	out.DaysJournaled = len(daySet)

	days := make([]int, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Ints(days)

	run := 0
	for i, d := range days {
		if i > 0 && d == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		out.LongestStreak = max(out.LongestStreak, run)
	}
	out.CurrentStreak = run

	return out, nil
}
