package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "offset converted to UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "nanoseconds kept",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123000000, time.UTC),
			expected: "2024-03-10T09:15:30.123Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB(t *testing.T) {
	got, err := ParseTimeFromDB("2024-01-15T10:30:45Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC), got)

	_, err = ParseTimeFromDB("yesterday")
	assert.Error(t, err)
}
