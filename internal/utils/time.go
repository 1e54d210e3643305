package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/calumwright/praxis/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// DateKey formats a time as the local date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a date key (YYYY-MM-DD) at midnight in the given location.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// AddDaysToDateKey shifts a date key by n calendar days.
func AddDaysToDateKey(key string, n int, loc *time.Location) (string, error) {
	t, err := ParseDateKey(key, loc)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes-from-midnight as HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOfDay returns the wall-clock minutes from midnight of a timestamp.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// NormalizeTimeSlots canonicalizes a slot selection: drops blanks and
// unparseable entries, re-formats to zero-padded HH:MM, de-dupes preserving
// first occurrence, sorts ascending, and caps the count. It does NOT enforce
// contract constraints; validation fails closed on the normalized result.
func NormalizeTimeSlots(times []string, maxCount int) []string {
	if maxCount <= 0 {
		maxCount = constants.DefaultMaxTimeSlots
	}

	seen := make(map[string]bool)
	var normalized []string
	for _, raw := range times {
		t, err := ParseTime(raw)
		if err != nil {
			continue
		}
		formatted := t.Format(constants.TimeFormat)
		if seen[formatted] {
			continue
		}
		seen[formatted] = true
		normalized = append(normalized, formatted)
	}

	sort.Strings(normalized)

	if len(normalized) > maxCount {
		normalized = normalized[:maxCount]
	}
	return normalized
}

// NormalizeDaysOfWeek filters to valid weekday ordinals (0=Sunday..6),
// de-dupes, and sorts.
func NormalizeDaysOfWeek(days []int) []int {
	seen := make(map[int]bool)
	var normalized []int
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		normalized = append(normalized, d)
	}
	sort.Ints(normalized)
	return normalized
}
