package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

func TestWrite_Create(t *testing.T) {
	env := newTestEnv(t)

	out := mustWrite(t, env, 5, "  Quiet morning ", "\nGrateful for rest.\n", "Grateful", "rest", " rest", "", "sabbath")

	if !out.Created {
		t.Error("Created = false, want true")
	}
	e := out.Entry
	if e.Title != "Quiet morning" {
		t.Errorf("Title = %q, want trimmed", e.Title)
	}
	if e.Content != "Grateful for rest." {
		t.Errorf("Content = %q, want trimmed", e.Content)
	}
	if e.Mood != journal.MoodGrateful {
		t.Errorf("Mood = %q, want %q", e.Mood, journal.MoodGrateful)
	}
	if e.Date != "Sept 5" {
		t.Errorf("Date = %q, want %q", e.Date, "Sept 5")
	}
	if len(e.Tags) != 2 || e.Tags[0] != "rest" || e.Tags[1] != "sabbath" {
		t.Errorf("Tags = %v, want [rest sabbath]", e.Tags)
	}
	if e.ID != journal.NewID(5, e.CreatedAt) {
		t.Errorf("ID = %q, want day-millis form", e.ID)
	}
	if !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Errorf("CreatedAt = %v, UpdatedAt = %v, want equal on create", e.CreatedAt, e.UpdatedAt)
	}
}

func TestWrite_UpdateKeepsIDAndCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := mustWrite(t, env, 3, "First", "Draft", "peaceful")
	second := mustWrite(t, env, 3, "Second", "Rewritten", "joyful", "praise")

	if second.Created {
		t.Error("Created = true on update, want false")
	}
	if second.Entry.ID != first.Entry.ID {
		t.Errorf("ID changed: %q -> %q", first.Entry.ID, second.Entry.ID)
	}
	if !second.Entry.CreatedAt.Equal(first.Entry.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", first.Entry.CreatedAt, second.Entry.CreatedAt)
	}
	if !second.Entry.UpdatedAt.After(first.Entry.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", second.Entry.UpdatedAt, first.Entry.UpdatedAt)
	}

	entries := env.Store.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("len(List) = %d, want 1", len(entries))
	}
	if entries[0].Title != "Second" {
		t.Errorf("Title = %q, want %q", entries[0].Title, "Second")
	}
}

func TestWrite_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input WriteInput
	}{
		{"day zero", WriteInput{Day: 0, Title: "t", Content: "c", Mood: "joyful"}},
		{"day 31", WriteInput{Day: 31, Title: "t", Content: "c", Mood: "joyful"}},
		{"blank title", WriteInput{Day: 1, Title: "   ", Content: "c", Mood: "joyful"}},
		{"blank content", WriteInput{Day: 1, Title: "t", Content: "\t\n", Mood: "joyful"}},
		{"unknown mood", WriteInput{Day: 1, Title: "t", Content: "c", Mood: "angry"}},
		{"missing mood", WriteInput{Day: 1, Title: "t", Content: "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Write(context.Background(), env, tc.input)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("Write should return ErrInvalidRequest, got: %v", err)
			}
		})
	}

	if n := len(env.Store.List(context.Background())); n != 0 {
		t.Errorf("len(List) = %d after rejected writes, want 0", n)
	}
}
