package model

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp layout used by the recorded datasets and by
// every emitted event: ISO 8601 without a zone designator. Recordings are
// all taken in store-local time, so no offset arithmetic is performed.
const TimeLayout = "2006-01-02T15:04:05"

// timeLayouts are accepted on input, tried in order. Output always uses
// TimeLayout.
var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
}

// ParseTimestamp parses a record timestamp. An empty or unparsable value
// is an error; rules surface it as a MalformedTimestamp failure.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// FormatTimestamp renders a parsed time back into the dataset layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimeLayout)
}
