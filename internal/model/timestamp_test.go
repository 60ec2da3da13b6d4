package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_DatasetLayout(t *testing.T) {
	at, err := ParseTimestamp("2025-08-13T16:00:01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 13, 16, 0, 1, 0, time.UTC), at)
}

func TestParseTimestamp_RFC3339(t *testing.T) {
	at, err := ParseTimestamp("2025-08-13T16:00:01Z")
	require.NoError(t, err)
	assert.Equal(t, 16, at.Hour())
}

func TestParseTimestamp_Fractional(t *testing.T) {
	at, err := ParseTimestamp("2025-08-13T16:00:01.250000")
	require.NoError(t, err)
	assert.Equal(t, 250*int(time.Millisecond), at.Nanosecond())
}

func TestParseTimestamp_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"garbage", "not-a-time"},
		{"date only", "2025-08-13"},
		{"numeric", "1755100801"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTimestamp(tc.value)
			assert.Error(t, err)
		})
	}
}

func TestFormatTimestamp_RoundTrip(t *testing.T) {
	const raw = "2025-08-13T16:00:01"
	at, err := ParseTimestamp(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, FormatTimestamp(at))
}
