package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backends for the persistence slot.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// DefaultSlotKey is the slot holding the serialized journal collection.
const DefaultSlotKey = "spiritual_journal_entries"

// Config holds application configuration.
type Config struct {
	// Storage selects the persistence slot backend: "sqlite" (default) or "redis".
	Storage string `json:"storage,omitempty"`

	// RedisURL is the redis:// URL used when Storage is "redis".
	RedisURL string `json:"redis_url,omitempty"`

	// SlotKey names the slot holding the journal collection.
	SlotKey string `json:"slot_key,omitempty"`

	// ReminderHour and ReminderMinute set the local time-of-day reminders fire at.
	// Pointers so that midnight (0) can be configured explicitly.
	ReminderHour   *int `json:"reminder_hour,omitempty"`
	ReminderMinute *int `json:"reminder_minute,omitempty"`

	// CalendarYear pins the calendar to a year. 0 means the current year.
	CalendarYear int `json:"calendar_year,omitempty"`

	// CalendarMonth is the month (1-12) the 30-day calendar runs in.
	CalendarMonth int `json:"calendar_month,omitempty"`

	// AllowedPaths is an allowlist of directories for import/export operations.
	// Paths outside <base>/exports require either being in this list or AllowUnsafePaths=true.
	// Paths should be absolute (relative paths are ignored).
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths disables directory restrictions for import/export.
	// Symlink and extension checks still apply.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool type names to disable entirely
	// ("journal", "calendar", "reminder").
	DisabledTypes []string `json:"disabled_types,omitempty"`

	// BaseDir is the data directory the config was loaded from. Not persisted.
	BaseDir string `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	hour, minute := 8, 0
	return &Config{
		Storage:        StorageSQLite,
		SlotKey:        DefaultSlotKey,
		ReminderHour:   &hour,
		ReminderMinute: &minute,
		CalendarMonth:  9,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.selah.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = baseDir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that JSON decoding cannot.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
	case StorageRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis_url is required when storage is %q", StorageRedis)
		}
	default:
		return fmt.Errorf("storage must be one of: %s, %s", StorageSQLite, StorageRedis)
	}
	if h := c.Hour(); h < 0 || h > 23 {
		return fmt.Errorf("reminder_hour must be between 0 and 23, got %d", h)
	}
	if m := c.Minute(); m < 0 || m > 59 {
		return fmt.Errorf("reminder_minute must be between 0 and 59, got %d", m)
	}
	if c.CalendarMonth < 1 || c.CalendarMonth > 12 {
		return fmt.Errorf("calendar_month must be between 1 and 12, got %d", c.CalendarMonth)
	}
	// The calendar runs 30 days inside one month.
	if n := daysIn(time.Month(c.CalendarMonth)); n < 30 {
		return fmt.Errorf("calendar_month %d has only %d days, need 30", c.CalendarMonth, n)
	}
	return nil
}

// Hour returns the configured reminder hour, defaulting to 8.
func (c *Config) Hour() int {
	if c.ReminderHour == nil {
		return 8
	}
	return *c.ReminderHour
}

// Minute returns the configured reminder minute, defaulting to 0.
func (c *Config) Minute() int {
	if c.ReminderMinute == nil {
		return 0
	}
	return *c.ReminderMinute
}

// ExportsDir returns the default export directory under BaseDir.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.BaseDir, "exports")
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{BaseDir: base.BaseDir}
	if overlay.BaseDir != "" {
		result.BaseDir = overlay.BaseDir
	}

	result.Storage = firstNonEmpty(overlay.Storage, base.Storage)
	result.RedisURL = firstNonEmpty(overlay.RedisURL, base.RedisURL)
	result.SlotKey = firstNonEmpty(overlay.SlotKey, base.SlotKey)

	result.ReminderHour = overlay.ReminderHour
	if result.ReminderHour == nil {
		result.ReminderHour = base.ReminderHour
	}
	result.ReminderMinute = overlay.ReminderMinute
	if result.ReminderMinute == nil {
		result.ReminderMinute = base.ReminderMinute
	}

	result.CalendarYear = overlay.CalendarYear
	if result.CalendarYear == 0 {
		result.CalendarYear = base.CalendarYear
	}
	result.CalendarMonth = overlay.CalendarMonth
	if result.CalendarMonth == 0 {
		result.CalendarMonth = base.CalendarMonth
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.AllowUnsafePaths = base.AllowUnsafePaths || overlay.AllowUnsafePaths

	// Arrays: merge and deduplicate
	result.AllowedPaths = mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// daysIn returns the most days month can have, counting leap years.
func daysIn(month time.Month) int {
	return time.Date(2000, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
