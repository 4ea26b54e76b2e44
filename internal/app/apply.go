package app

import (
	"fmt"
	"time"
)

var applyWeekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// ApplyToWeekdays propagates one day's appointment set onto every other
// weekday (Monday through Friday). apply receives an independent value copy
// per day; mutating one day's list never affects another's. No overlap
// checking happens here — the caller owns warning the user that target days
// are overwritten.
func ApplyToWeekdays(sourceDay string, appts []Appointment, apply func(day string, appts []Appointment) error) error {
	for _, day := range applyWeekdays {
		if day == sourceDay {
			continue
		}
		cp := make([]Appointment, len(appts))
		copy(cp, appts)
		if err := apply(day, cp); err != nil {
			return fmt.Errorf("apply to %s: %w", day, err)
		}
	}
	return nil
}

// uniqueIntervals keeps the first source row per (start, end) pair. Copies
// applied to a target day all receive that day's next date, so two source
// rows differing only by date would land on an identical (day, start, end,
// date) key and collapse under the store's dedupe guard; dropping them here
// makes that explicit.
func uniqueIntervals(appts []Appointment) []Appointment {
	seen := make(map[[2]string]struct{}, len(appts))
	out := make([]Appointment, 0, len(appts))
	for _, appt := range appts {
		k := [2]string{appt.Start, appt.End}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, appt)
	}
	return out
}

// nextDateForWeekday returns the next calendar date (YYYY-MM-DD) falling on
// the named weekday, counting from today; today itself qualifies.
func nextDateForWeekday(day string, now time.Time) (string, error) {
	target := -1
	for i := time.Sunday; i <= time.Saturday; i++ {
		if i.String() == day {
			target = int(i)
			break
		}
	}
	if target < 0 {
		return "", fmt.Errorf("unknown weekday %q", day)
	}
	ahead := (target - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, ahead).Format("2006-01-02"), nil
}
