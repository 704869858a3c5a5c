package utils

import (
	"time"
)

// TruncateToHour truncates a time to the start of its hour
func TruncateToHour(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}

// NextHourAt returns the instant offset into the hour following t.
// NextHourAt(10:42:13, time.Minute) is 11:01:00.
func NextHourAt(t time.Time, offset time.Duration) time.Time {
	return TruncateToHour(t).Add(time.Hour + offset)
}

// IsTimestampStale checks if a timestamp is older than the specified duration relative to now
func IsTimestampStale(timestamp, now time.Time, staleDuration time.Duration) bool {
	return now.Sub(timestamp) > staleDuration
}

// WeekAgoWindow returns the instant one week before now and the range of
// radius around it
func WeekAgoWindow(now time.Time, radius time.Duration) (target, from, to time.Time) {
	target = now.AddDate(0, 0, -7)
	return target, target.Add(-radius), target.Add(radius)
}

// NextSlot returns the first multiple of interval strictly after t.
// NextSlot(12:37, time.Hour) is 13:00.
func NextSlot(t time.Time, interval time.Duration) time.Time {
	return t.Truncate(interval).Add(interval)
}

// LastMonth returns the range [now - 1 month, now]
func LastMonth(now time.Time) (from, to time.Time) {
	return now.AddDate(0, -1, 0), now
}

// FromUnixMilli converts epoch milliseconds to UTC time
func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
