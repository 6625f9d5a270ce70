package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/selah/internal/journal"
)

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	for _, d := range []int{1, 2, 3, 5, 6} {
		mood := "joyful"
		if d%2 == 0 {
			mood = "reflective"
		}
		mustWrite(t, env, d, "Day", "Entry", mood)
	}

	out, err := Stats(context.Background(), env)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.TotalEntries != 5 {
		t.Errorf("TotalEntries = %d, want 5", out.TotalEntries)
	}
	if out.DaysJournaled != 5 {
		t.Errorf("DaysJournaled = %d, want 5", out.DaysJournaled)
	}
	if out.Moods[journal.MoodJoyful] != 3 || out.Moods[journal.MoodReflective] != 2 {
		t.Errorf("Moods = %v, want joyful=3 reflective=2", out.Moods)
	}
	if out.Moods[journal.MoodPeaceful] != 0 {
		t.Errorf("Moods[peaceful] = %d, want 0", out.Moods[journal.MoodPeaceful])
	}
	if out.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", out.CurrentStreak)
	}
	if out.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", out.LongestStreak)
	}
}

func TestStats_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, err := Stats(context.Background(), env)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.TotalEntries != 0 || out.CurrentStreak != 0 || out.LongestStreak != 0 {
		t.Errorf("Stats = %+v, want zeros", out)
	}
	if len(out.Moods) != len(journal.Moods) {
		t.Errorf("len(Moods) = %d, want %d", len(out.Moods), len(journal.Moods))
	}
}
