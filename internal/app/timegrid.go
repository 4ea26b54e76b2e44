package app

import "fmt"

// Operating window for bookable slots, hours inclusive.
const (
	gridOpenHour  = 8
	gridCloseHour = 17
)

// GenerateTimeSlots returns the fixed sequence of bookable half-hour labels
// for one day, "08:00 AM" through "05:30 PM". Output is identical on every
// call; callers may cache or re-derive freely.
func GenerateTimeSlots() []string {
	slots := make([]string, 0, (gridCloseHour-gridOpenHour+1)*2)
	for hour := gridOpenHour; hour <= gridCloseHour; hour++ {
		suffix := "AM"
		if hour >= 12 {
			suffix = "PM"
		}
		displayHour := hour
		if hour > 12 {
			displayHour = hour - 12
		}
		for minute := 0; minute < 60; minute += 30 {
			slots = append(slots, fmt.Sprintf("%02d:%02d %s", displayHour, minute, suffix))
		}
	}
	return slots
}
