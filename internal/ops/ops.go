package ops

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/config"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
	"github.com/hpungsan/selah/internal/kv"
	"github.com/hpungsan/selah/internal/store"
)

// ProgressSlotKey is the slot holding the completed-days set.
const ProgressSlotKey = "devotional_progress"

// Env bundles the dependencies every operation runs against.
type Env struct {
	Store    *store.Store
	Slot     kv.Slot
	Calendar *calendar.Calendar
	Config   *config.Config

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// NewEnv wires an Env over slot using cfg's slot key and calendar month.
func NewEnv(slot kv.Slot, st *store.Store, cfg *config.Config) *Env {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	month := time.September
	if cfg.CalendarMonth >= 1 && cfg.CalendarMonth <= 12 {
		month = time.Month(cfg.CalendarMonth)
	}
	return &Env{
		Store:    st,
		Slot:     slot,
		Calendar: calendar.New(month),
		Config:   cfg,
		Now:      time.Now,
	}
}

// Clock returns the current time as the operations see it.
func (e *Env) Clock() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Address identifies an entry either by id or by calendar day.
type Address struct {
	ByID bool
	ID   string
	Day  int
}

// ValidateAddress validates addressing parameters.
// Rules:
// - Must specify exactly one addressing mode: id OR day
// - Both → ErrAmbiguousAddressing; neither → ErrInvalidRequest
// - day must be within the calendar
func ValidateAddress(id string, day int) (*Address, error) {
	id = strings.TrimSpace(id)
	hasID := id != ""
	hasDay := day != 0

	if hasID && hasDay {
		return nil, errors.NewAmbiguousAddressing()
	}
	if !hasID && !hasDay {
		return nil, errors.NewInvalidRequest("must specify either id or day")
	}
	if hasID {
		return &Address{ByID: true, ID: id}, nil
	}
	if err := validateDay(day); err != nil {
		return nil, err
	}
	return &Address{Day: day}, nil
}

func validateDay(day int) error {
	if !journal.ValidDay(day) {
		return errors.NewInvalidRequest("day must be between 1 and 30")
	}
	return nil
}

// parseMoodFilter returns "" for an empty filter.
func parseMoodFilter(s string) (journal.Mood, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	m, err := journal.ParseMood(s)
	if err != nil {
		return "", errors.NewInvalidRequest(err.Error())
	}
	return m, nil
}

func filterMood(entries []journal.Entry, mood journal.Mood) []journal.Entry {
	if mood == "" {
		return entries
	}
	out := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Mood == mood {
			out = append(out, e)
		}
	}
	return out
}

// sortByDayDesc orders entries for display: highest day first, most recently
// updated first within a day.
func sortByDayDesc(entries []journal.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day > entries[j].Day
		}
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
}

// checkCtx returns a cancellation error if ctx is done.
func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
