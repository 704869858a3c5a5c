package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextHourAt(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		offset   time.Duration
		expected time.Time
	}{
		{
			name:     "mid_hour",
			now:      time.Date(2022, 3, 1, 10, 42, 13, 0, time.UTC),
			offset:   time.Minute,
			expected: time.Date(2022, 3, 1, 11, 1, 0, 0, time.UTC),
		},
		{
			name:     "inside_first_minute",
			now:      time.Date(2022, 3, 1, 10, 0, 30, 0, time.UTC),
			offset:   time.Minute,
			expected: time.Date(2022, 3, 1, 11, 1, 0, 0, time.UTC),
		},
		{
			name:     "day_rollover",
			now:      time.Date(2022, 3, 1, 23, 59, 59, 0, time.UTC),
			offset:   time.Minute,
			expected: time.Date(2022, 3, 2, 0, 1, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextHourAt(tt.now, tt.offset))
		})
	}
}

func TestWeekAgoWindow(t *testing.T) {
	now := time.Date(2022, 3, 8, 10, 42, 0, 0, time.UTC)
	target, from, to := WeekAgoWindow(now, time.Hour)

	assert.Equal(t, time.Date(2022, 3, 1, 10, 42, 0, 0, time.UTC), target)
	assert.Equal(t, time.Date(2022, 3, 1, 9, 42, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2022, 3, 1, 11, 42, 0, 0, time.UTC), to)
}

func TestNextSlot(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		interval time.Duration
		expected time.Time
	}{
		{"mid hour", time.Date(2022, 5, 1, 12, 37, 0, 0, time.UTC), time.Hour, time.Date(2022, 5, 1, 13, 0, 0, 0, time.UTC)},
		{"on boundary", time.Date(2022, 5, 1, 13, 0, 0, 0, time.UTC), time.Hour, time.Date(2022, 5, 1, 14, 0, 0, 0, time.UTC)},
		{"quarter hours", time.Date(2022, 5, 1, 12, 37, 0, 0, time.UTC), 15 * time.Minute, time.Date(2022, 5, 1, 12, 45, 0, 0, time.UTC)},
		{"day rollover", time.Date(2022, 5, 1, 23, 59, 59, 0, time.UTC), time.Hour, time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextSlot(tt.now, tt.interval))
		})
	}
}

func TestLastMonth(t *testing.T) {
	now := time.Date(2022, 3, 8, 10, 0, 0, 0, time.UTC)
	from, to := LastMonth(now)

	assert.Equal(t, time.Date(2022, 2, 8, 10, 0, 0, 0, time.UTC), from)
	assert.Equal(t, now, to)
}

func TestIsTimestampStale(t *testing.T) {
	now := time.Date(2022, 3, 8, 10, 0, 0, 0, time.UTC)

	assert.False(t, IsTimestampStale(now.Add(-10*time.Second), now, 30*time.Second))
	assert.True(t, IsTimestampStale(now.Add(-31*time.Second), now, 30*time.Second))
}
