package ops

import (
	"context"
	"testing"
	"time"

	"github.com/hpungsan/selah/internal/config"
	"github.com/hpungsan/selah/internal/db"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/kv"
	"github.com/hpungsan/selah/internal/store"
)

// testClock returns a clock that advances one minute per call.
func testClock() func() time.Time {
	now := time.Date(2026, time.September, 1, 7, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.BaseDir = tmpDir

	slot := kv.NewSQLiteSlot(database)
	env := NewEnv(slot, store.New(slot, cfg.SlotKey, nil), cfg)
	env.Now = testClock()
	return env
}

func mustWrite(t *testing.T, env *Env, day int, title, content, mood string, tags ...string) *WriteOutput {
	t.Helper()
	out, err := Write(context.Background(), env, WriteInput{
		Day:     day,
		Title:   title,
		Content: content,
		Mood:    mood,
		Tags:    tags,
	})
	if err != nil {
		t.Fatalf("Write(day %d) failed: %v", day, err)
	}
	return out
}

func TestValidateAddress_ByID(t *testing.T) {
	addr, err := ValidateAddress(" 5-1725000000000 ", 0)
	if err != nil {
		t.Fatalf("ValidateAddress failed: %v", err)
	}
	if !addr.ByID {
		t.Error("ByID = false, want true")
	}
	if addr.ID != "5-1725000000000" {
		t.Errorf("ID = %q, want %q", addr.ID, "5-1725000000000")
	}
}

func TestValidateAddress_ByDay(t *testing.T) {
	addr, err := ValidateAddress("", 12)
	if err != nil {
		t.Fatalf("ValidateAddress failed: %v", err)
	}
	if addr.ByID {
		t.Error("ByID = true, want false")
	}
	if addr.Day != 12 {
		t.Errorf("Day = %d, want 12", addr.Day)
	}
}

func TestValidateAddress_Ambiguous(t *testing.T) {
	_, err := ValidateAddress("5-1", 5)
	if !errors.Is(err, errors.ErrAmbiguousAddressing) {
		t.Errorf("ValidateAddress should return ErrAmbiguousAddressing, got: %v", err)
	}
}

func TestValidateAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		day  int
	}{
		{"neither", "", 0},
		{"blank id", "   ", 0},
		{"day too high", "", 31},
		{"negative day", "", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateAddress(tc.id, tc.day)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("ValidateAddress should return ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestNewEnv_CalendarMonth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CalendarMonth = 10
	env := NewEnv(nil, nil, cfg)

	if env.Calendar.Month() != time.October {
		t.Errorf("Calendar.Month() = %v, want October", env.Calendar.Month())
	}
}
