package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Date
		wantErr  bool
	}{
		{name: "plain date", input: "2026-10-19", expected: Date{2026, time.October, 19}},
		{name: "leap day", input: "2024-02-29", expected: Date{2024, time.February, 29}},
		{name: "garbage", input: "19/10/2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_RFC3339UsesLocalDay(t *testing.T) {
	ts := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	got, err := ParseDate(ts.Format(time.RFC3339))
	require.NoError(t, err)
	assert.Equal(t, DateOf(ts.Local()), got)
}

func TestDate_AddDaysAcrossMonthAndYear(t *testing.T) {
	d := Date{2026, time.January, 1}

	assert.Equal(t, Date{2025, time.December, 31}, d.AddDays(-1))
	assert.Equal(t, Date{2026, time.February, 1}, d.AddDays(31))
	assert.Equal(t, d, d.AddDays(0))
}

func TestDate_Contains(t *testing.T) {
	d := Date{2026, time.October, 19}
	loc := time.Local

	assert.True(t, d.Contains(time.Date(2026, time.October, 19, 0, 0, 0, 0, loc)))
	assert.True(t, d.Contains(time.Date(2026, time.October, 19, 23, 59, 59, 0, loc)))
	assert.False(t, d.Contains(time.Date(2026, time.October, 20, 0, 0, 0, 0, loc)))
}

func TestDate_JSON(t *testing.T) {
	d := Date{2026, time.October, 9}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-09"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`42`), &decoded))
}

func TestDate_Weekday(t *testing.T) {
	assert.Equal(t, time.Monday, Date{2026, time.October, 19}.Weekday())
	assert.True(t, Date{}.IsZero())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, time.October, 19, 22, 0, 0, 0, time.Local)
	next := morning.AddDate(0, 0, 1)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(morning, next))
}
