package services

import (
	"strings"
	"time"

	"github.com/SangBejoo/kingston-parking/models"
)

var dayAbbrev = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// weekOrder is the order days are listed in hours text
var weekOrder = [7]int{1, 2, 3, 4, 5, 6, 0}

// IsOpen reports whether the location accepts parking at t. Streets are
// always open, as are lots without operating hours. The day set of a window
// is only checked against t's own calendar day: a window that runs past
// midnight must list the following day too if the early morning of that day
// is meant to be open.
func IsOpen(loc *models.ParkingLocation, t time.Time) bool {
	if loc.IsStreet() || len(loc.OperatingHours) == 0 {
		return true
	}
	minute := minuteOfDay(t)
	for _, w := range loc.OperatingHours {
		if !matchesDay(w.Days, t.Weekday(), false) {
			continue
		}
		start, ok1 := parseClock(w.Start)
		end, ok2 := parseClock(w.End)
		if !ok1 || !ok2 {
			continue
		}
		if inWindow(minute, start, end) {
			return true
		}
	}
	return false
}

type hoursGroup struct {
	start, end string
	days       [7]bool
}

// HoursLabel renders the operating hours, e.g. "Mon–Sat 7:00 a.m.–11:00 p.m.; Sun 9:00 a.m.–6:00 p.m."
func HoursLabel(loc *models.ParkingLocation) string {
	if len(loc.OperatingHours) == 0 {
		return "24 hours"
	}

	var groups []*hoursGroup
	for _, w := range loc.OperatingHours {
		var g *hoursGroup
		for _, existing := range groups {
			if existing.start == w.Start && existing.end == w.End {
				g = existing
				break
			}
		}
		if g == nil {
			g = &hoursGroup{start: w.Start, end: w.End}
			groups = append(groups, g)
		}
		for _, d := range w.Days {
			if d >= 0 && d < 7 {
				g.days[d] = true
			}
		}
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		start, ok1 := parseClock(g.start)
		end, ok2 := parseClock(g.end)
		if !ok1 || !ok2 {
			continue
		}
		days := dayList(g.days)
		if days == "" {
			continue
		}
		parts = append(parts, days+" "+format12h(start)+"–"+format12h(end))
	}
	if len(parts) == 0 {
		return "Closed"
	}
	return strings.Join(parts, "; ")
}

// dayList renders a day set Monday first, collapsing runs of three or more
// consecutive days into a range
func dayList(set [7]bool) string {
	count := 0
	for _, on := range set {
		if on {
			count++
		}
	}
	switch count {
	case 0:
		return ""
	case 7:
		return "Daily"
	}

	var parts []string
	for i := 0; i < len(weekOrder); {
		if !set[weekOrder[i]] {
			i++
			continue
		}
		j := i
		for j+1 < len(weekOrder) && set[weekOrder[j+1]] {
			j++
		}
		switch {
		case j-i >= 2:
			parts = append(parts, dayAbbrev[weekOrder[i]]+"–"+dayAbbrev[weekOrder[j]])
		default:
			for k := i; k <= j; k++ {
				parts = append(parts, dayAbbrev[weekOrder[k]])
			}
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
