package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeTestApp connects to the database named by TEST_DATABASE_URL and starts
// from empty partitions. Tests that need it are skipped when the variable is
// unset.
func storeTestApp(t *testing.T) *App {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	a := &App{DB: pool, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, a.InitSchema(context.Background()))
	require.NoError(t, a.ClearAllAppointments(context.Background()))
	return a
}

func TestSaveAppointmentRoundTrip(t *testing.T) {
	a := storeTestApp(t)
	ctx := context.Background()

	appt := Appointment{
		Day:         "Monday",
		Start:       "08:00 AM",
		End:         "09:00 AM",
		Date:        "2026-09-07",
		ClientName:  "Ada",
		ClientPhone: "555-0101",
		ClientEmail: "ada@example.com",
		ClientNotes: "first visit",
	}
	require.NoError(t, a.SaveAppointment(ctx, &appt))
	require.NotZero(t, appt.ID)
	assert.Equal(t, StatusActive, appt.Status)

	active, err := a.ListAppointments(ctx, StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, appt, active[0])
}

func TestSaveAppointmentDedupeGuard(t *testing.T) {
	a := storeTestApp(t)
	ctx := context.Background()

	first := Appointment{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07", ClientName: "Ada"}
	require.NoError(t, a.SaveAppointment(ctx, &first))

	// Same (day, start, end, date) resolves to the existing row, no insert.
	dup := Appointment{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07", ClientName: "Grace"}
	require.NoError(t, a.SaveAppointment(ctx, &dup))
	assert.Equal(t, first.ID, dup.ID)
	assert.Equal(t, "Ada", dup.ClientName)

	active, err := a.ListAppointments(ctx, StatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestMoveAppointmentExactlyOnePartition(t *testing.T) {
	a := storeTestApp(t)
	ctx := context.Background()

	appt := Appointment{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07", ClientName: "Ada"}
	require.NoError(t, a.SaveAppointment(ctx, &appt))

	moved, err := a.MoveAppointment(ctx, appt.ID, StatusActive, StatusDone)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, moved.Status)
	assert.NotEqual(t, appt.ID, moved.ID, "destination partition assigns a fresh id")

	active, err := a.ListAppointments(ctx, StatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := a.ListAppointments(ctx, StatusDone)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	// Fields equal except status and id.
	want := appt
	want.ID = moved.ID
	want.Status = StatusDone
	assert.Equal(t, want, archived[0])
}

func TestMoveAppointmentNotFound(t *testing.T) {
	a := storeTestApp(t)
	ctx := context.Background()

	appt := Appointment{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07"}
	require.NoError(t, a.SaveAppointment(ctx, &appt))

	_, err := a.MoveAppointment(ctx, appt.ID+1000, StatusActive, StatusDone)
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	// No partial mutation: the source row is untouched and nothing reached
	// the archive.
	active, err := a.ListAppointments(ctx, StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, appt.ID, active[0].ID)

	archived, err := a.ListAppointments(ctx, StatusDone)
	require.NoError(t, err)
	assert.Empty(t, archived)
}

func TestClearAllAppointmentsEmptiesBothPartitions(t *testing.T) {
	a := storeTestApp(t)
	ctx := context.Background()

	appt := Appointment{Day: "Monday", Start: "08:00 AM", End: "09:00 AM", Date: "2026-09-07"}
	require.NoError(t, a.SaveAppointment(ctx, &appt))
	_, err := a.MoveAppointment(ctx, appt.ID, StatusActive, StatusDone)
	require.NoError(t, err)

	other := Appointment{Day: "Tuesday", Start: "10:00 AM", End: "11:00 AM", Date: "2026-09-08"}
	require.NoError(t, a.SaveAppointment(ctx, &other))

	require.NoError(t, a.ClearAllAppointments(ctx))

	active, err := a.ListAppointments(ctx, StatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := a.ListAppointments(ctx, StatusDone)
	require.NoError(t, err)
	assert.Empty(t, archived)
}
