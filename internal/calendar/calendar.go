// Package calendar holds the fixed 30-day devotional calendar: one activity
// per day, four themed weeks, and three journal prompts per day.
package calendar

import (
	"fmt"
	"time"
)

// Length is the number of days in the calendar.
const Length = 30

// ActivityType classifies a day's activity.
type ActivityType string

const (
	Prayer     ActivityType = "prayer"
	Reading    ActivityType = "reading"
	Fasting    ActivityType = "fasting"
	Service    ActivityType = "service"
	Worship    ActivityType = "worship"
	Reflection ActivityType = "reflection"
)

var activityIcons = map[ActivityType]string{
	Prayer:     "🙏",
	Reading:    "📖",
	Fasting:    "🕊️",
	Service:    "❤️",
	Worship:    "🎵",
	Reflection: "✍️",
}

// Icon returns the display icon for the activity type.
func (t ActivityType) Icon() string { return activityIcons[t] }

// Day is one calendar day.
type Day struct {
	Day         int          `json:"day"`
	Date        string       `json:"date"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Week        int          `json:"week"`
	WeekTheme   string       `json:"week_theme"`
	Type        ActivityType `json:"type"`
	Prompts     []string     `json:"prompts"`
}

// Week groups consecutive days under a theme.
type Week struct {
	Number int    `json:"week"`
	Theme  string `json:"theme"`
	Color  string `json:"color"`
	First  int    `json:"first_day"`
	Last   int    `json:"last_day"`
}

// Calendar is the 30-day table laid out in one month.
type Calendar struct {
	month time.Month
	days  []Day
}

// New lays the calendar out in month. Date labels use the month's short
// name ("Sept 5" for September, "Oct 5" for October).
func New(month time.Month) *Calendar {
	days := make([]Day, Length)
	for i, a := range activities {
		n := i + 1
		w := WeekOf(n)
		days[i] = Day{
			Day:         n,
			Date:        fmt.Sprintf("%s %d", monthLabel(month), n),
			Title:       a.title,
			Description: a.description,
			Week:        w,
			WeekTheme:   weekThemes[w-1].theme,
			Type:        a.kind,
			Prompts:     []string{a.prompts[0], a.prompts[1], a.prompts[2]},
		}
	}
	return &Calendar{month: month, days: days}
}

// Default returns the calendar laid out in September.
func Default() *Calendar {
	return New(time.September)
}

// Month returns the month the calendar runs in.
func (c *Calendar) Month() time.Month { return c.month }

// Days returns all days in order. The slice is a copy.
func (c *Calendar) Days() []Day {
	out := make([]Day, len(c.days))
	copy(out, c.days)
	return out
}

// Day returns day n, or false if n is outside 1-30.
func (c *Calendar) Day(n int) (Day, bool) {
	if n < 1 || n > Length {
		return Day{}, false
	}
	return c.days[n-1], true
}

// Today returns the calendar day matching now's day of month when now falls
// in the calendar's month, and day 1 otherwise.
func (c *Calendar) Today(now time.Time) Day {
	if now.Month() == c.month {
		if d, ok := c.Day(now.Day()); ok {
			return d
		}
	}
	return c.days[0]
}

// Weeks returns the four themed weeks.
func (c *Calendar) Weeks() []Week {
	weeks := make([]Week, len(weekThemes))
	for i, wt := range weekThemes {
		first := i*7 + 1
		last := first + 6
		if i == len(weekThemes)-1 {
			last = Length
		}
		weeks[i] = Week{Number: i + 1, Theme: wt.theme, Color: wt.color, First: first, Last: last}
	}
	return weeks
}

// WeekOf returns the week (1-4) day n belongs to. Days 29 and 30 close out week 4.
func WeekOf(n int) int {
	w := (n-1)/7 + 1
	if w > len(weekThemes) {
		w = len(weekThemes)
	}
	if w < 1 {
		w = 1
	}
	return w
}

func monthLabel(m time.Month) string {
	if m == time.September {
		return "Sept"
	}
	return m.String()[:3]
}
