package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Both partitions share one id sequence so ids stay unique across them; a
// record moved between partitions gets a fresh id from the same sequence.
const appointmentColumns = `id, day, start, "end", date, "clientName", "clientPhone", "clientEmail", "clientNotes", status`

// InitSchema ensures both partitions exist. Safe to call repeatedly.
func (a *App) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS appointment_id_seq`,
	}
	for _, table := range []string{"appointments", "archived_appointments"} {
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY DEFAULT nextval('appointment_id_seq'),
			day TEXT NOT NULL DEFAULT '',
			start TEXT NOT NULL DEFAULT '',
			"end" TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL DEFAULT '',
			"clientName" TEXT NOT NULL DEFAULT '',
			"clientPhone" TEXT NOT NULL DEFAULT '',
			"clientEmail" TEXT NOT NULL DEFAULT '',
			"clientNotes" TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Active'
		)`, table))
	}
	for _, stmt := range stmts {
		if _, err := a.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var appt Appointment
	err := row.Scan(&appt.ID, &appt.Day, &appt.Start, &appt.End, &appt.Date,
		&appt.ClientName, &appt.ClientPhone, &appt.ClientEmail, &appt.ClientNotes, &appt.Status)
	return appt, err
}

// FindAppointment looks an id up in the active partition first, then the
// archive. Ids come from one shared sequence, so at most one partition can
// hold a given id.
func (a *App) FindAppointment(ctx context.Context, id int64) (Appointment, error) {
	for _, table := range []string{"appointments", "archived_appointments"} {
		q := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, appointmentColumns, table)
		appt, err := scanAppointment(a.DB.QueryRow(ctx, q, id))
		if err == nil {
			return appt, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, err
		}
	}
	return Appointment{}, ErrAppointmentNotFound
}

// SaveAppointment persists a new record into the partition implied by its
// status (Active when unset). If a row with the same (day, start, end, date)
// already exists in that partition the existing row is returned instead of
// inserting a duplicate.
func (a *App) SaveAppointment(ctx context.Context, appt *Appointment) error {
	if !appt.Status.Valid() {
		appt.Status = StatusActive
	}
	table := partitionFor(appt.Status)

	checkQ := fmt.Sprintf(`SELECT %s FROM %s WHERE day=$1 AND start=$2 AND "end"=$3 AND date=$4 LIMIT 1`,
		appointmentColumns, table)
	existing, err := scanAppointment(a.DB.QueryRow(ctx, checkQ, appt.Day, appt.Start, appt.End, appt.Date))
	if err == nil {
		*appt = existing
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	insertQ := fmt.Sprintf(`INSERT INTO %s (day, start, "end", date, "clientName", "clientPhone", "clientEmail", "clientNotes", status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`, table)
	return a.DB.QueryRow(ctx, insertQ,
		appt.Day, appt.Start, appt.End, appt.Date,
		appt.ClientName, appt.ClientPhone, appt.ClientEmail, appt.ClientNotes, appt.Status,
	).Scan(&appt.ID)
}

// UpdateAppointment rewrites all mutable fields of the row identified by id
// within the partition implied by the record's status. It never relocates
// partitions; status changes that cross the Active boundary go through
// MoveAppointment.
func (a *App) UpdateAppointment(ctx context.Context, id int64, appt *Appointment) error {
	table := partitionFor(appt.Status)
	q := fmt.Sprintf(`UPDATE %s
		SET day=$1, start=$2, "end"=$3, date=$4, "clientName"=$5, "clientPhone"=$6, "clientEmail"=$7, "clientNotes"=$8, status=$9
		WHERE id=$10`, table)
	res, err := a.DB.Exec(ctx, q,
		appt.Day, appt.Start, appt.End, appt.Date,
		appt.ClientName, appt.ClientPhone, appt.ClientEmail, appt.ClientNotes, appt.Status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	appt.ID = id
	return nil
}

// MoveAppointment relocates a record between partitions as a single
// transaction: read the source row, insert the equivalent row into the
// destination (fresh id), delete the source. On any failure the transaction
// rolls back and the source row is untouched.
func (a *App) MoveAppointment(ctx context.Context, id int64, from, to Status) (Appointment, error) {
	fromTable := partitionFor(from)
	toTable := partitionFor(to)

	tx, err := a.DB.Begin(ctx)
	if err != nil {
		return Appointment{}, err
	}
	defer tx.Rollback(ctx)

	selectQ := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, appointmentColumns, fromTable)
	appt, err := scanAppointment(tx.QueryRow(ctx, selectQ, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		return Appointment{}, err
	}

	appt.Status = to
	insertQ := fmt.Sprintf(`INSERT INTO %s (day, start, "end", date, "clientName", "clientPhone", "clientEmail", "clientNotes", status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`, toTable)
	err = tx.QueryRow(ctx, insertQ,
		appt.Day, appt.Start, appt.End, appt.Date,
		appt.ClientName, appt.ClientPhone, appt.ClientEmail, appt.ClientNotes, appt.Status,
	).Scan(&appt.ID)
	if err != nil {
		return Appointment{}, err
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, fromTable), id); err != nil {
		return Appointment{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

// DeleteAppointment removes the row with the given id from the partition
// implied by status.
func (a *App) DeleteAppointment(ctx context.Context, id int64, status Status) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, partitionFor(status))
	res, err := a.DB.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// DeleteAppointmentsForDay bulk-clears one weekday's Active rows.
func (a *App) DeleteAppointmentsForDay(ctx context.Context, day string) error {
	_, err := a.DB.Exec(ctx, `DELETE FROM appointments WHERE day=$1`, day)
	return err
}

// DeleteUnassignedAppointments removes every row, in either partition, with
// no day assignment.
func (a *App) DeleteUnassignedAppointments(ctx context.Context) error {
	for _, table := range []string{"appointments", "archived_appointments"} {
		if _, err := a.DB.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE day=''`, table)); err != nil {
			return err
		}
	}
	return nil
}

// DeleteDoneAppointments empties the Done portion of the archive, leaving
// Cancelled rows in place.
func (a *App) DeleteDoneAppointments(ctx context.Context) error {
	_, err := a.DB.Exec(ctx, `DELETE FROM archived_appointments WHERE status=$1`, StatusDone)
	return err
}

// ClearAllAppointments empties both partitions.
func (a *App) ClearAllAppointments(ctx context.Context) error {
	for _, table := range []string{"appointments", "archived_appointments"} {
		if _, err := a.DB.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return err
		}
	}
	return nil
}

// ListAppointments returns every row of the partition implied by status,
// newest date first. The start label is compared lexicographically, which is
// stable; chronological re-sorting is a display concern.
func (a *App) ListAppointments(ctx context.Context, status Status) ([]Appointment, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s ORDER BY date DESC, start DESC`,
		appointmentColumns, partitionFor(status))
	rows, err := a.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}
