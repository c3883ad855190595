package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const dayKeyLayout = "2006-01-02"

// DayKey resolves the attendance day a moment belongs to. From rolloverHour
// onward the day flips to tomorrow's date, so an evening check-in lands on the
// next day's sheet. A rolloverHour of 0 disables the shift and keys records by
// plain calendar date.
func DayKey(now time.Time, rolloverHour int) string {
	if rolloverHour > 0 && now.Hour() >= rolloverHour {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format(dayKeyLayout)
}

// MessageBucket groups board messages by the same day resolution as
// attendance, so the bucket holding "today's" messages matches the active
// attendance day.
func MessageBucket(createdAt time.Time, rolloverHour int) string {
	return DayKey(createdAt, rolloverHour)
}

// ClockTime renders a short wall-clock stamp ("9:05", "14:30") the way the
// attendance sheet displays it.
func ClockTime(now time.Time) string {
	return fmt.Sprintf("%d:%02d", now.Hour(), now.Minute())
}

// InWindow reports whether now falls inside the [start, end] wall-clock
// window, both bounds given as "HH:MM". Malformed bounds disable the window.
func InWindow(now time.Time, start, end string) bool {
	startMin, ok := parseClock(start)
	if !ok {
		return false
	}
	endMin, ok := parseClock(end)
	if !ok {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	return cur >= startMin && cur <= endMin
}

func parseClock(s string) (int, bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	hour, err := cast.ToIntE(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := cast.ToIntE(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
