package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentEventTimes(t *testing.T) {
	appt := Appointment{Date: "2026-09-07", Start: "08:00 AM", End: "09:30 AM"}

	start, end, err := appointmentEventTimes(appt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, time.Local), end)
}

func TestAppointmentEventTimesInvalid(t *testing.T) {
	_, _, err := appointmentEventTimes(Appointment{Date: "07/09/2026", Start: "08:00 AM", End: "09:00 AM"})
	assert.Error(t, err)

	_, _, err = appointmentEventTimes(Appointment{Date: "2026-09-07", Start: "8am", End: "09:00 AM"})
	assert.Error(t, err)

	_, _, err = appointmentEventTimes(Appointment{Date: "2026-09-07", Start: "08:00 AM", End: ""})
	assert.Error(t, err)
}
