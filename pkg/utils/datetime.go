package utils

import (
	"regexp"
	"time"
)

var (
	datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	timePattern = regexp.MustCompile(`T(\d{2}:\d{2}:\d{2})`)
)

// ExtractDate pulls the calendar date out of an ISO-8601 datetime string and
// returns it as UTC midnight. The date is taken from the literal characters,
// not from the offset-adjusted instant: "2025-06-27T09:30:00+08:00" is
// 2025-06-27 even though that instant is 2025-06-26 in UTC-anything-west.
// Returns the zero time when the string cannot be interpreted.
func ExtractDate(datetime string) time.Time {
	if datetime == "" {
		return time.Time{}
	}

	if m := datePattern.FindStringSubmatch(datetime); m != nil {
		parsed, err := time.Parse("2006-01-02", m[0])
		if err == nil {
			return parsed
		}
	}

	// Fallback: full calendar parse, truncated to the UTC date.
	parsed, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return time.Time{}
	}
	utc := parsed.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// ExtractTime pulls the wall-clock time-of-day out of an ISO-8601 datetime
// string, preserving the local clock as printed rather than converting to
// UTC: "2025-06-27T09:30:00+08:00" yields "09:30:00". Returns "" when the
// string cannot be interpreted.
func ExtractTime(datetime string) string {
	if datetime == "" {
		return ""
	}

	if m := timePattern.FindStringSubmatch(datetime); m != nil {
		return m[1]
	}

	parsed, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return ""
	}
	return parsed.UTC().Format("15:04:05")
}
