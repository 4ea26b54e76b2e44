package app

import "context"

// UnassignedDay is the day-map bucket for records with no weekday.
const UnassignedDay = "unassigned"

// DayMap indexes Active appointments by weekday name. It is derived state:
// always rebuilt from the store in full, never patched incrementally, so the
// view can't drift from what is persisted.
type DayMap map[string][]Appointment

// DedupeAppointments collapses rows sharing a (day, start, end, date) key,
// keeping the last-seen row per key. First-occurrence order is preserved.
func DedupeAppointments(all []Appointment) []Appointment {
	index := make(map[dedupeKey]int, len(all))
	out := make([]Appointment, 0, len(all))
	for _, appt := range all {
		k := appt.key()
		if i, seen := index[k]; seen {
			out[i] = appt
			continue
		}
		index[k] = len(out)
		out = append(out, appt)
	}
	return out
}

// BuildDayMap groups Active appointments by day, sending records with no day
// to the UnassignedDay bucket. Non-Active rows are dropped.
func BuildDayMap(appts []Appointment) DayMap {
	m := make(DayMap)
	for _, appt := range appts {
		if appt.Status != StatusActive {
			continue
		}
		day := appt.Day
		if day == "" {
			day = UnassignedDay
		}
		m[day] = append(m[day], appt)
	}
	return m
}

// RefreshAppointments re-derives the day map from both partitions. The
// archive holds Done and Cancelled rows together, so a single archive query
// covers both; rows are deduped before grouping because the same booking can
// transiently exist under more than one key source during edits.
func (a *App) RefreshAppointments(ctx context.Context) (DayMap, error) {
	active, err := a.ListAppointments(ctx, StatusActive)
	if err != nil {
		return nil, err
	}
	archived, err := a.ListAppointments(ctx, StatusDone)
	if err != nil {
		return nil, err
	}

	all := make([]Appointment, 0, len(active)+len(archived))
	all = append(all, active...)
	all = append(all, archived...)
	return BuildDayMap(DedupeAppointments(all)), nil
}

// ClearUnassignedAppointments deletes every record with no day assignment and
// returns the refreshed day map.
func (a *App) ClearUnassignedAppointments(ctx context.Context) (DayMap, error) {
	if err := a.DeleteUnassignedAppointments(ctx); err != nil {
		return nil, err
	}
	return a.RefreshAppointments(ctx)
}
