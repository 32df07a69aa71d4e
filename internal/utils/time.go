package utils

import (
	"fmt"
	"time"
)

// StartOfDay returns local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseClock parses a zero-padded "HH:MM" string into a minute-of-day value.
func ParseClock(s string) (int, error) {
	// time.Parse tolerates "9:00"; the stored format is always zero-padded.
	if len(s) != 5 {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinuteOfDay returns t's position within its day in minutes.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
