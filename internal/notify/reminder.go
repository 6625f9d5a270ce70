package notify

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/selah/internal/calendar"
)

// Reminder is one scheduled local notification for a calendar day.
type Reminder struct {
	ID     string    `json:"id"`
	Day    int       `json:"day"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fire_at"`
}

// PlanOptions positions the calendar in time. Zero Year means the year of
// the reference time.
type PlanOptions struct {
	Year   int
	Hour   int
	Minute int
}

// Plan returns one reminder per calendar day whose fire time is still ahead
// of now, in day order. Fire times are in now's location.
func Plan(cal *calendar.Calendar, opts PlanOptions, now time.Time) []Reminder {
	year := opts.Year
	if year == 0 {
		year = now.Year()
	}

	var out []Reminder
	for _, d := range cal.Days() {
		fireAt := time.Date(year, cal.Month(), d.Day, opts.Hour, opts.Minute, 0, 0, now.Location())
		if !fireAt.After(now) {
			continue
		}
		out = append(out, Reminder{
			ID:     newID(fireAt),
			Day:    d.Day,
			Title:  fmt.Sprintf("Day %d: %s", d.Day, d.Title),
			Body:   d.Description,
			FireAt: fireAt,
		})
	}
	return out
}

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

func newID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
