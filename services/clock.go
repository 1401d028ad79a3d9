package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// parseClock turns "HH:MM" into minutes since midnight. "24:00" is accepted
// as the end of the day.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	if hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, false
	}
	return hour*60 + minute, true
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// inWindow reports whether minute falls in [start, end). A window whose end
// is before its start runs past midnight, so both the late evening and the
// early morning part of the same calendar day match.
func inWindow(minute, start, end int) bool {
	if end < start {
		end += minutesPerDay
		if minute < start {
			minute += minutesPerDay
		}
	}
	return minute >= start && minute < end
}

// matchesDay treats an empty day set as every day when allowEmpty is set
func matchesDay(days []int, day time.Weekday, allowEmpty bool) bool {
	if len(days) == 0 {
		return allowEmpty
	}
	for _, d := range days {
		if d == int(day) {
			return true
		}
	}
	return false
}

// format12h renders minutes since midnight as "7:00 a.m."
func format12h(minutes int) string {
	minutes %= minutesPerDay
	hour, minute := minutes/60, minutes%60
	suffix := "a.m."
	if hour >= 12 {
		suffix = "p.m."
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
