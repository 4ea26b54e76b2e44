package app

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/slots
func (a *App) GetTimeSlotsHandler(c *gin.Context) {
	slots := GenerateTimeSlots()
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

// GET /api/appointments?status=Active|Done|Cancelled
// Done and Cancelled both resolve to the archive partition; rows carry their
// own status field.
func (a *App) ListAppointmentsHandler(c *gin.Context) {
	status := Status(c.DefaultQuery("status", string(StatusActive)))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	appts, err := a.ListAppointments(c.Request.Context(), status)
	if err != nil {
		a.Logger.Error("list appointments failed", "status", status, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// validateInterval applies the interval rules shared by create and update:
// parseable clock labels, no zero-duration picks, no end-before-start.
// Returns a user-facing message, empty when the interval is acceptable.
func validateInterval(appt *Appointment) string {
	if appt.Start == "" || appt.End == "" || appt.Date == "" {
		return "start, end and date are required"
	}
	if _, ok := minutesOfDay(appt.Start); !ok {
		return "invalid start time, expected HH:MM AM/PM"
	}
	if _, ok := minutesOfDay(appt.End); !ok {
		return "invalid end time, expected HH:MM AM/PM"
	}
	// Zero-duration is a degenerate interval the overlap formula would accept.
	if appt.Start == appt.End {
		return "appointment cannot have zero duration"
	}
	if EndsBeforeStart(appt.Start, appt.End) {
		return "end time must be after start time"
	}
	return ""
}

// activeAppointmentsOn returns the Active set for one day and date, excluding
// the record being edited when excludeID is non-zero.
func (a *App) activeAppointmentsOn(ctx context.Context, day, date string, excludeID int64) ([]Appointment, error) {
	active, err := a.ListAppointments(ctx, StatusActive)
	if err != nil {
		return nil, err
	}
	var out []Appointment
	for _, appt := range active {
		if appt.Day != day || appt.Date != date {
			continue
		}
		if excludeID != 0 && appt.ID == excludeID {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

// POST /api/appointments
func (a *App) CreateAppointmentHandler(c *gin.Context) {
	var appt Appointment
	if err := c.BindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validateInterval(&appt); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	ctx := c.Request.Context()

	existing, err := a.activeAppointmentsOn(ctx, appt.Day, appt.Date, 0)
	if err != nil {
		a.Logger.Error("overlap check failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
		return
	}
	if Overlaps(appt.Start, appt.End, existing) {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment overlaps with an existing appointment"})
		return
	}

	appt.ID = 0
	appt.Status = StatusActive
	if err := a.SaveAppointment(ctx, &appt); err != nil {
		a.Logger.Error("save appointment failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save appointment"})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// PUT /api/appointments/:id
// A status change that crosses the Active boundary relocates the record
// between partitions and assigns it a fresh id; the response carries the
// record as persisted, so clients must pick up the new id from it.
func (a *App) UpdateAppointmentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	var appt Appointment
	if err := c.BindJSON(&appt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !appt.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if msg := validateInterval(&appt); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	ctx := c.Request.Context()

	current, err := a.FindAppointment(ctx, id)
	if errors.Is(err, ErrAppointmentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		a.Logger.Error("lookup appointment failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointment"})
		return
	}

	if appt.Status == StatusActive {
		existing, err := a.activeAppointmentsOn(ctx, appt.Day, appt.Date, id)
		if err != nil {
			a.Logger.Error("overlap check failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check availability"})
			return
		}
		if Overlaps(appt.Start, appt.End, existing) {
			c.JSON(http.StatusConflict, gin.H{"error": "appointment overlaps with an existing appointment"})
			return
		}
	}

	if appt.Status != current.Status {
		if !canTransition(current.Status, appt.Status) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "status change " + string(current.Status) + " -> " + string(appt.Status) + " is not allowed",
			})
			return
		}
		moved, err := a.MoveAppointment(ctx, id, current.Status, appt.Status)
		if errors.Is(err, ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		if err != nil {
			a.Logger.Error("move appointment failed", "id", id, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to move appointment"})
			return
		}
		// The move copied the old field values; apply the edits at the new id.
		id = moved.ID
	}

	if err := a.UpdateAppointment(ctx, id, &appt); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		a.Logger.Error("update appointment failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DELETE /api/appointments/:id?status=Active|Done|Cancelled
func (a *App) DeleteAppointmentHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	status := Status(c.DefaultQuery("status", string(StatusActive)))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	err = a.DeleteAppointment(c.Request.Context(), id, status)
	if errors.Is(err, ErrAppointmentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err != nil {
		a.Logger.Error("delete appointment failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/appointments
func (a *App) ClearAllAppointmentsHandler(c *gin.Context) {
	if err := a.ClearAllAppointments(c.Request.Context()); err != nil {
		a.Logger.Error("clear all appointments failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/days
func (a *App) GetDayMapHandler(c *gin.Context) {
	dayMap, err := a.RefreshAppointments(c.Request.Context())
	if err != nil {
		a.Logger.Error("refresh appointments failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, dayMap)
}

// DELETE /api/days/:day
// The sentinel day "unassigned" clears records with no day assignment across
// both partitions; any other value bulk-clears that weekday's Active rows.
func (a *App) ClearDayHandler(c *gin.Context) {
	day := c.Param("day")
	ctx := c.Request.Context()

	var dayMap DayMap
	var err error
	if day == UnassignedDay {
		dayMap, err = a.ClearUnassignedAppointments(ctx)
	} else {
		if err = a.DeleteAppointmentsForDay(ctx, day); err == nil {
			dayMap, err = a.RefreshAppointments(ctx)
		}
	}
	if err != nil {
		a.Logger.Error("clear day failed", "day", day, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear appointments"})
		return
	}
	c.JSON(http.StatusOK, dayMap)
}

// POST /api/days/:day/apply
// Replaces every other weekday's Active set with a copy of the source day's.
// The copies carry the target day and that weekday's next calendar date, and
// are saved as fresh Active records. No overlap validation is performed
// against the target days: this is an overwrite, and the caller is expected
// to have confirmed it with the user.
func (a *App) ApplyDayHandler(c *gin.Context) {
	sourceDay := c.Param("day")
	ctx := c.Request.Context()

	active, err := a.ListAppointments(ctx, StatusActive)
	if err != nil {
		a.Logger.Error("load source day failed", "day", sourceDay, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	var source []Appointment
	for _, appt := range active {
		if appt.Day == sourceDay {
			source = append(source, appt)
		}
	}
	// Copies share the target day's date, so intervals repeated across dates
	// must be collapsed up front rather than silently by the dedupe guard.
	source = uniqueIntervals(source)
	if len(source) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active appointments on " + sourceDay})
		return
	}

	now := time.Now()
	err = ApplyToWeekdays(sourceDay, source, func(day string, appts []Appointment) error {
		date, err := nextDateForWeekday(day, now)
		if err != nil {
			return err
		}
		if err := a.DeleteAppointmentsForDay(ctx, day); err != nil {
			return err
		}
		for i := range appts {
			appts[i].ID = 0
			appts[i].Day = day
			appts[i].Date = date
			appts[i].Status = StatusActive
			if err := a.SaveAppointment(ctx, &appts[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		a.Logger.Error("apply day failed", "day", sourceDay, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply appointments"})
		return
	}

	dayMap, err := a.RefreshAppointments(ctx)
	if err != nil {
		a.Logger.Error("refresh appointments failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, dayMap)
}

// DELETE /api/archive/done
func (a *App) ClearDoneAppointmentsHandler(c *gin.Context) {
	if err := a.DeleteDoneAppointments(c.Request.Context()); err != nil {
		a.Logger.Error("clear done appointments failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear done appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
