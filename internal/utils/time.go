package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// ValidDateRange reports whether from/to parse and from is not after to.
func ValidDateRange(from, to string) bool {
	f, err := ParseDate(from)
	if err != nil {
		return false
	}
	t, err := ParseDate(to)
	if err != nil {
		return false
	}
	return !f.After(t)
}
