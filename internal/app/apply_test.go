package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToWeekdays(t *testing.T) {
	source := []Appointment{
		{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07"},
	}

	var calls []string
	copies := map[string][]Appointment{}
	err := ApplyToWeekdays("Monday", source, func(day string, appts []Appointment) error {
		calls = append(calls, day)
		copies[day] = appts
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Tuesday", "Wednesday", "Thursday", "Friday"}, calls)
	for day, appts := range copies {
		require.Len(t, appts, 1, day)
		assert.Equal(t, source[0], appts[0], day)
	}

	// Copies are independent: mutating one day's list touches nothing else.
	copies["Tuesday"][0].ClientName = "changed"
	assert.Empty(t, source[0].ClientName)
	assert.Empty(t, copies["Wednesday"][0].ClientName)
}

func TestApplyToWeekdaysPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := ApplyToWeekdays("Wednesday", nil, func(day string, appts []Appointment) error {
		calls++
		if day == "Tuesday" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "stops at the failing day")
}

func TestUniqueIntervals(t *testing.T) {
	in := []Appointment{
		{ID: 1, Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07"},
		{ID: 2, Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-14"},
		{ID: 3, Day: "Monday", Start: "10:00 AM", End: "11:00 AM", Date: "2026-09-07"},
	}

	out := uniqueIntervals(in)

	// Rows differing only by date share one interval; the first wins.
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestUniqueIntervalsNoDuplicates(t *testing.T) {
	in := []Appointment{
		{ID: 1, Start: "08:00 AM", End: "09:00 AM"},
		{ID: 2, Start: "09:00 AM", End: "10:00 AM"},
	}
	assert.Equal(t, in, uniqueIntervals(in))
}

func TestNextDateForWeekday(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		day  string
		want string
	}{
		{"Tuesday", "2026-09-01"}, // today counts
		{"Wednesday", "2026-09-02"},
		{"Monday", "2026-09-07"},
		{"Sunday", "2026-09-06"},
	}
	for _, tt := range tests {
		got, err := nextDateForWeekday(tt.day, now)
		require.NoError(t, err, tt.day)
		assert.Equal(t, tt.want, got, tt.day)
	}

	_, err := nextDateForWeekday("Someday", now)
	assert.Error(t, err)
}
