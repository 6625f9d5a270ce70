// Package journal defines journal entries, moods, and the serialized form of
// the entry collection.
package journal

import (
	"fmt"
	"strings"
	"time"
)

// MinDay and MaxDay bound the calendar days an entry can reflect on.
const (
	MinDay = 1
	MaxDay = 30
)

// Entry is one journal record tied to a calendar day.
type Entry struct {
	// ID is "<day>-<unix millis>" minted at creation and never reassigned
	ID string `json:"id"`

	// Day is the calendar day (1-30) the entry reflects on; not unique
	Day int `json:"day"`

	// Date is the calendar's human-readable label for Day, e.g. "Sept 5"
	Date string `json:"date"`

	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    Mood     `json:"mood"`
	Tags    []string `json:"tags"`

	// CreatedAt is set at first save and preserved on every update
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is set to the current time on every save
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewID mints an entry id from its day and creation time.
func NewID(day int, createdAt time.Time) string {
	return fmt.Sprintf("%d-%d", day, createdAt.UnixMilli())
}

// ValidDay reports whether day is inside the calendar.
func ValidDay(day int) bool {
	return day >= MinDay && day <= MaxDay
}

// Validate checks the structural invariants of a stored entry.
// It does not trim; callers that accept user input trim before saving.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is empty")
	}
	if !ValidDay(e.Day) {
		return fmt.Errorf("day %d out of range %d-%d", e.Day, MinDay, MaxDay)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is empty")
	}
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("content is empty")
	}
	if !e.Mood.Valid() {
		return fmt.Errorf("unknown mood %q", e.Mood)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		return fmt.Errorf("timestamps must be set")
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		return fmt.Errorf("updatedAt %s precedes createdAt %s",
			e.UpdatedAt.Format(time.RFC3339Nano), e.CreatedAt.Format(time.RFC3339Nano))
	}
	return nil
}

// Matches reports whether query occurs case-insensitively in the title,
// the content, or any tag.
func (e *Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// NormalizeTags trims tags, drops empties, and removes duplicates while
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}
