package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/hpungsan/selah/internal/errors"
)

func seedSearch(t *testing.T, env *Env) {
	t.Helper()
	mustWrite(t, env, 1, "Morning Prayer", "Quiet time before work.", "peaceful", "prayer")
	mustWrite(t, env, 7, "Evening", "Gave thanks for FAMILY.", "grateful", "family")
	mustWrite(t, env, 12, "Hard day", "Struggled to pray.", "challenged", "growth")
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	seedSearch(t, env)

	tests := []struct {
		name  string
		query string
		mood  string
		days  []int
	}{
		{"title match", "morning", "", []int{1}},
		{"content case-insensitive", "family", "", []int{7}},
		{"tag match", "growth", "", []int{12}},
		{"spans fields", "pray", "", []int{12, 1}},
		{"mood filter", "pray", "challenged", []int{12}},
		{"no match", "ocean", "", nil},
		{"blank query lists all", "   ", "", []int{12, 7, 1}},
		{"blank query with mood", "", "grateful", []int{7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Search(context.Background(), env, SearchInput{Query: tc.query, Mood: tc.mood})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if out.Total != len(tc.days) {
				t.Fatalf("Total = %d, want %d", out.Total, len(tc.days))
			}
			for i, d := range tc.days {
				if out.Items[i].Day != d {
					t.Errorf("Items[%d].Day = %d, want %d", i, out.Items[i].Day, d)
				}
			}
		})
	}
}

func TestSearch_QueryTooLong(t *testing.T) {
	env := newTestEnv(t)

	_, err := Search(context.Background(), env, SearchInput{Query: strings.Repeat("a", MaxQueryLength+1)})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Search should return ErrInvalidRequest, got: %v", err)
	}
}
