package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// layouts are tried in order; the first match wins
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// humanLayouts cover the spelled-out dates language models tend to answer with
var humanLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
}

// Parse reads an ISO-8601 timestamp or calendar date. Values without an
// offset are interpreted as UTC.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseOptional is the lenient variant: besides ISO-8601 it accepts
// spelled-out dates such as "January 19, 2024". It returns nil for empty or
// unparseable input.
func ParseOptional(value *string) *time.Time {
	if value == nil {
		return nil
	}
	if t, err := Parse(*value); err == nil {
		return &t
	}
	v := strings.TrimSpace(*value)
	for _, layout := range humanLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
