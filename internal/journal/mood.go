package journal

import (
	"fmt"
	"strings"
)

// Mood is the single feeling an entry is tagged with.
type Mood string

const (
	MoodPeaceful   Mood = "peaceful"
	MoodGrateful   Mood = "grateful"
	MoodChallenged Mood = "challenged"
	MoodJoyful     Mood = "joyful"
	MoodReflective Mood = "reflective"
)

// Moods lists every mood in display order.
var Moods = []Mood{MoodPeaceful, MoodGrateful, MoodChallenged, MoodJoyful, MoodReflective}

var moodStyles = map[Mood]struct{ emoji, color string }{
	MoodPeaceful:   {"🕊️", "#60A5FA"},
	MoodGrateful:   {"🙏", "#10B981"},
	MoodChallenged: {"💪", "#F59E0B"},
	MoodJoyful:     {"😊", "#EC4899"},
	MoodReflective: {"🤔", "#8B5CF6"},
}

// ParseMood accepts a mood name in any case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("mood must be one of: %s", moodList())
	}
	return m, nil
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	_, ok := moodStyles[m]
	return ok
}

// Emoji returns the mood's display emoji.
func (m Mood) Emoji() string { return moodStyles[m].emoji }

// Color returns the mood's hex display color.
func (m Mood) Color() string { return moodStyles[m].color }

func moodList() string {
	names := make([]string, len(Moods))
	for i, m := range Moods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
