package app

import (
	"strconv"
	"strings"
)

// minutesOfDay converts a "HH:MM AM"/"HH:MM PM" label to minutes since
// midnight using standard 12-hour folding (12 AM -> 0, 12 PM -> 720). The
// second return is false for anything that does not parse; predicates below
// treat such operands as not comparable rather than failing.
func minutesOfDay(label string) (int, bool) {
	clock, meridiem, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return 0, false
	}
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if hours < 1 || hours > 12 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	switch meridiem {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	default:
		return 0, false
	}
	return hours*60 + minutes, true
}

// IsSlotAvailable reports whether a candidate start time is free: false iff
// it falls inside [Start, End) of any existing appointment.
func IsSlotAvailable(start string, existing []Appointment) bool {
	s, ok := minutesOfDay(start)
	if !ok {
		return false
	}
	for _, e := range existing {
		es, okS := minutesOfDay(e.Start)
		ee, okE := minutesOfDay(e.End)
		if !okS || !okE {
			continue
		}
		if s >= es && s < ee {
			return false
		}
	}
	return true
}

// Overlaps reports whether [start, end) intersects any existing appointment.
// Half-open intervals: [a,b) overlaps [c,d) iff a < d && c < b, so touching
// endpoints do not count as overlap.
func Overlaps(start, end string, existing []Appointment) bool {
	s, okS := minutesOfDay(start)
	e, okE := minutesOfDay(end)
	if !okS || !okE {
		return false
	}
	for _, x := range existing {
		xs, okXS := minutesOfDay(x.Start)
		xe, okXE := minutesOfDay(x.End)
		if !okXS || !okXE {
			continue
		}
		if s < xe && xs < e {
			return true
		}
	}
	return false
}

// EndsBeforeStart reports whether end converts to an earlier minute value
// than start. Equal times are not "before"; zero-duration picks are rejected
// separately since the overlap math alone would let them through.
func EndsBeforeStart(start, end string) bool {
	s, okS := minutesOfDay(start)
	e, okE := minutesOfDay(end)
	if !okS || !okE {
		return false
	}
	return e < s
}
