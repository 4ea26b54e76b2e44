package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App bundles the shared dependencies handlers need.
type App struct {
	DB     *pgxpool.Pool
	Logger *slog.Logger
}

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusActive    Status = "Active"
	StatusDone      Status = "Done"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// partitionFor maps a status to the table holding records in that state.
// Done and Cancelled records live together in the archive.
func partitionFor(s Status) string {
	if s == StatusActive {
		return "appointments"
	}
	return "archived_appointments"
}

// canTransition reports whether a status change is allowed. Done appointments
// may be reactivated; Cancelled is terminal.
func canTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusDone || to == StatusCancelled
	case StatusDone:
		return to == StatusActive
	}
	return false
}

type Appointment struct {
	ID          int64  `json:"id,omitempty"`
	Day         string `json:"day"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Date        string `json:"date"`
	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	ClientNotes string `json:"client_notes,omitempty"`
	Status      Status `json:"status"`
}

// dedupeKey is the composite identity used by the duplicate guard and the
// day-map aggregation: two rows with the same key describe the same booking.
type dedupeKey struct {
	Day   string
	Start string
	End   string
	Date  string
}

func (a Appointment) key() dedupeKey {
	return dedupeKey{Day: a.Day, Start: a.Start, End: a.End, Date: a.Date}
}
