package utils

import (
	"strings"
	"time"
)

const (
	layoutDate    = "2006-01-02"
	layoutDisplay = "02.01.2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DisplayDate turns "2025-03-14" (or a longer timestamp) into "14.03.2025".
// Unparseable input is returned trimmed.
func DisplayDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if t, err := ParseDate(s[:10]); err == nil {
			return t.Format(layoutDisplay)
		}
	}
	return s
}

// DisplayTime keeps HH:MM out of "HH:MM:SS".
func DisplayTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}
