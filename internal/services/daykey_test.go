package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey_BeforeRollover(t *testing.T) {
	now := time.Date(2025, 3, 10, 16, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", DayKey(now, 17))
}

func TestDayKey_AtRollover(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11", DayKey(now, 17))
}

func TestDayKey_AfterRollover(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11", DayKey(now, 17))
}

func TestDayKey_MonthBoundary(t *testing.T) {
	now := time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-01", DayKey(now, 17))
}

func TestDayKey_MidnightVariant(t *testing.T) {
	// rolloverHour 0 keys by plain calendar date at any hour
	late := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", DayKey(late, 0))

	early := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11", DayKey(early, 0))
}

func TestMessageBucket_MatchesDayKey(t *testing.T) {
	now := time.Date(2025, 6, 2, 18, 15, 0, 0, time.UTC)
	assert.Equal(t, DayKey(now, 17), MessageBucket(now, 17))
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "9:05", ClockTime(time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, "14:30", ClockTime(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "0:00", ClockTime(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestInWindow(t *testing.T) {
	inside := time.Date(2025, 3, 10, 12, 10, 0, 0, time.UTC)
	assert.True(t, InWindow(inside, "11:50", "12:55"))

	before := time.Date(2025, 3, 10, 11, 49, 0, 0, time.UTC)
	assert.False(t, InWindow(before, "11:50", "12:55"))

	after := time.Date(2025, 3, 10, 12, 56, 0, 0, time.UTC)
	assert.False(t, InWindow(after, "11:50", "12:55"))

	// bounds are inclusive
	assert.True(t, InWindow(time.Date(2025, 3, 10, 11, 50, 0, 0, time.UTC), "11:50", "12:55"))
	assert.True(t, InWindow(time.Date(2025, 3, 10, 12, 55, 0, 0, time.UTC), "11:50", "12:55"))
}

func TestInWindow_MalformedBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, InWindow(now, "nope", "12:55"))
	assert.False(t, InWindow(now, "11:50", ""))
	assert.False(t, InWindow(now, "25:00", "12:55"))
}
