package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// record is the persisted shape of an Entry. Timestamps travel as RFC 3339
// text and every field is required, so a record missing a field fails to
// decode instead of loading as a zero value.
type record struct {
	ID        *string   `json:"id"`
	Day       *int      `json:"day"`
	Date      *string   `json:"date"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Mood      *string   `json:"mood"`
	Tags      *[]string `json:"tags"`
	CreatedAt *string   `json:"createdAt"`
	UpdatedAt *string   `json:"updatedAt"`
}

// Encode serializes a collection of entries to the persisted JSON array.
func Encode(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	out := make([]map[string]any, 0, len(entries))
	for i := range entries {
		out = append(out, encodeEntry(&entries[i]))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeEntry serializes one entry the same way Encode does.
func EncodeEntry(e *Entry) ([]byte, error) {
	return json.Marshal(encodeEntry(e))
}

func encodeEntry(e *Entry) map[string]any {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":        e.ID,
		"day":       e.Day,
		"date":      e.Date,
		"title":     e.Title,
		"content":   e.Content,
		"mood":      string(e.Mood),
		"tags":      tags,
		"createdAt": e.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt": e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Decode parses and validates a persisted collection. Any malformed record
// fails the whole decode; the error names the offending index.
func Decode(data string) ([]Entry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("collection is not a JSON array: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		e, err := DecodeEntry(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("record %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		entries = append(entries, *e)
	}
	return entries, nil
}

// DecodeEntry parses and validates a single persisted record.
func DecodeEntry(data []byte) (*Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var r record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	missing := r.missingFields()
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %v", missing)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, *r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, *r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}

	e := &Entry{
		ID:        *r.ID,
		Day:       *r.Day,
		Date:      *r.Date,
		Title:     *r.Title,
		Content:   *r.Content,
		Mood:      Mood(*r.Mood),
		Tags:      *r.Tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *record) missingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("id", r.ID != nil)
	check("day", r.Day != nil)
	check("date", r.Date != nil)
	check("title", r.Title != nil)
	check("content", r.Content != nil)
	check("mood", r.Mood != nil)
	check("tags", r.Tags != nil)
	check("createdAt", r.CreatedAt != nil)
	check("updatedAt", r.UpdatedAt != nil)
	return missing
}
