package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/selah/internal/errors"
)

func TestDelete_ByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	written := mustWrite(t, env, 2, "Confession", "Named it.", "challenged")
	mustWrite(t, env, 3, "Fasting", "Skipped lunch.", "reflective")

	out, err := Delete(ctx, env, DeleteInput{ID: written.Entry.ID})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !out.Deleted {
		t.Error("Deleted = false, want true")
	}
	if out.ID != written.Entry.ID {
		t.Errorf("ID = %q, want %q", out.ID, written.Entry.ID)
	}

	_, err = Fetch(ctx, env, 2)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch after delete should return ErrNotFound, got: %v", err)
	}
	if n := len(env.Store.List(ctx)); n != 1 {
		t.Errorf("len(List) = %d, want 1", n)
	}
}

func TestDelete_ByDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	written := mustWrite(t, env, 4, "Cleansing", "Let go.", "peaceful")

	out, err := Delete(ctx, env, DeleteInput{Day: 4})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !out.Deleted || out.ID != written.Entry.ID {
		t.Errorf("Delete = %+v, want deleted %q", out, written.Entry.ID)
	}
}

func TestDelete_ByDay_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := Delete(context.Background(), env, DeleteInput{Day: 4})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Delete should return ErrNotFound, got: %v", err)
	}
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustWrite(t, env, 6, "Kept", "Still here.", "joyful")

	out, err := Delete(ctx, env, DeleteInput{ID: "does-not-exist"})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if out.Deleted {
		t.Error("Deleted = true for unknown id, want false")
	}
	if n := len(env.Store.List(ctx)); n != 1 {
		t.Errorf("len(List) = %d, want 1", n)
	}
}

func TestDelete_Ambiguous(t *testing.T) {
	env := newTestEnv(t)

	_, err := Delete(context.Background(), env, DeleteInput{ID: "4-1", Day: 4})
	if !errors.Is(err, errors.ErrAmbiguousAddressing) {
		t.Errorf("Delete should return ErrAmbiguousAddressing, got: %v", err)
	}
}
