package event

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayouts are the ISO-8601 forms found in listing datetime attributes.
// Fractional seconds are accepted after the seconds field by time.Parse.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses an ISO-8601 date or datetime and truncates it to its date.
// The date is taken in the offset the value was written in and returned as
// midnight UTC. Returns an error if no layout matches.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return DateOf(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid ISO-8601 datetime: %q", value)
}

// DateOf returns midnight UTC of t's calendar date in t's own location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
