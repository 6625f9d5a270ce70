package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/selah/internal/errors"
)

func TestProgress_CompleteAndUncomplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, d := range []int{8, 1, 8, 30} {
		if _, err := Complete(ctx, env, d); err != nil {
			t.Fatalf("Complete(%d) failed: %v", d, err)
		}
	}

	out, err := Progress(ctx, env)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	want := []int{1, 8, 30}
	if len(out.Completed) != len(want) {
		t.Fatalf("Completed = %v, want %v", out.Completed, want)
	}
	for i := range want {
		if out.Completed[i] != want[i] {
			t.Errorf("Completed[%d] = %d, want %d", i, out.Completed[i], want[i])
		}
	}
	if out.Percent != 10 {
		t.Errorf("Percent = %d, want 10", out.Percent)
	}
	if len(out.Weeks) != 4 {
		t.Fatalf("len(Weeks) = %d, want 4", len(out.Weeks))
	}
	if out.Weeks[0].Completed != 1 || out.Weeks[0].Total != 7 {
		t.Errorf("Weeks[0] = %+v, want 1/7", out.Weeks[0])
	}
	if out.Weeks[3].Completed != 1 || out.Weeks[3].Total != 9 {
		t.Errorf("Weeks[3] = %+v, want 1/9", out.Weeks[3])
	}

	out, err = Uncomplete(ctx, env, 8)
	if err != nil {
		t.Fatalf("Uncomplete failed: %v", err)
	}
	if len(out.Completed) != 2 || out.Weeks[1].Completed != 0 {
		t.Errorf("after Uncomplete: %+v", out)
	}
}

func TestProgress_InvalidDay(t *testing.T) {
	env := newTestEnv(t)

	_, err := Complete(context.Background(), env, 31)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Complete should return ErrInvalidRequest, got: %v", err)
	}
}

func TestProgress_CorruptSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if err := env.Slot.Put(ctx, ProgressSlotKey, "{oops"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	_, err := Progress(ctx, env)
	if !errors.Is(err, errors.ErrStorage) {
		t.Errorf("Progress should return ErrStorage, got: %v", err)
	}
}
