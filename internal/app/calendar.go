package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarConfig holds OAuth2 configuration.
type GoogleCalendarConfig struct {
	Config *oauth2.Config
}

// InitGoogleCalendarConfig builds the OAuth2 config from env, nil when the
// integration is not configured.
func InitGoogleCalendarConfig() *GoogleCalendarConfig {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}

	return &GoogleCalendarConfig{Config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			calendar.CalendarEventsScope,
		},
		Endpoint: google.Endpoint,
	}}
}

// GET /api/calendar/auth
func (a *App) GoogleAuthHandler(c *gin.Context) {
	calendarConfig := InitGoogleCalendarConfig()
	if calendarConfig == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	state := fmt.Sprintf("req_%s_%d", c.GetString(ctxKeyRequestID), time.Now().Unix())
	url := calendarConfig.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.JSON(http.StatusOK, gin.H{
		"auth_url": url,
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	calendarConfig := InitGoogleCalendarConfig()
	if calendarConfig == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}

	token, err := calendarConfig.Config.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}

	tokenJSON, _ := json.Marshal(token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   c.Query("state"),
		"token":   string(tokenJSON),
	})
}

// calendarServiceFromRequest builds a Calendar client from the token the
// caller presents in the X-Google-Token header.
func calendarServiceFromRequest(c *gin.Context) (*calendar.Service, bool) {
	tokenStr := c.GetHeader("X-Google-Token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Google token required in X-Google-Token header"})
		return nil, false
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenStr), &token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token format"})
		return nil, false
	}

	calendarConfig := InitGoogleCalendarConfig()
	if calendarConfig == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google Calendar not configured"})
		return nil, false
	}

	client := calendarConfig.Config.Client(context.Background(), &token)
	srv, err := calendar.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create calendar service"})
		return nil, false
	}
	return srv, true
}

// GET /api/calendar/events
func (a *App) GetGoogleCalendarEvents(c *gin.Context) {
	srv, ok := calendarServiceFromRequest(c)
	if !ok {
		return
	}

	calendarID := c.DefaultQuery("calendar_id", "primary")
	eventsCall := srv.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250)
	if timeMin := c.Query("time_min"); timeMin != "" {
		eventsCall = eventsCall.TimeMin(timeMin)
	}
	if timeMax := c.Query("time_max"); timeMax != "" {
		eventsCall = eventsCall.TimeMax(timeMax)
	}

	events, err := eventsCall.Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to retrieve events: %v", err)})
		return
	}

	type eventSummary struct {
		ID      string `json:"id"`
		Summary string `json:"summary"`
		Start   string `json:"start"`
		End     string `json:"end"`
		Status  string `json:"status"`
	}
	var out []eventSummary
	for _, item := range events.Items {
		ev := eventSummary{ID: item.Id, Summary: item.Summary, Status: item.Status}
		if item.Start != nil {
			ev.Start = item.Start.DateTime
		}
		if item.End != nil {
			ev.End = item.End.DateTime
		}
		out = append(out, ev)
	}
	c.JSON(http.StatusOK, gin.H{"events": out, "count": len(out)})
}

// appointmentEventTimes combines an appointment's date and clock labels into
// concrete local timestamps.
func appointmentEventTimes(appt Appointment) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", appt.Date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", appt.Date, err)
	}
	startMins, ok := minutesOfDay(appt.Start)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q", appt.Start)
	}
	endMins, ok := minutesOfDay(appt.End)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q", appt.End)
	}
	start := day.Add(time.Duration(startMins) * time.Minute)
	end := day.Add(time.Duration(endMins) * time.Minute)
	return start, end, nil
}

// POST /api/calendar/export
// Pushes every Active appointment to the caller's Google Calendar as a timed
// event. Appointments with unparseable times are skipped and reported, not
// fatal to the batch.
func (a *App) ExportAppointmentsHandler(c *gin.Context) {
	srv, ok := calendarServiceFromRequest(c)
	if !ok {
		return
	}

	active, err := a.ListAppointments(c.Request.Context(), StatusActive)
	if err != nil {
		a.Logger.Error("list appointments failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}

	calendarID := c.DefaultQuery("calendar_id", "primary")
	exported := 0
	var skipped []string
	for _, appt := range active {
		start, end, err := appointmentEventTimes(appt)
		if err != nil {
			skipped = append(skipped, err.Error())
			continue
		}
		summary := "Appointment"
		if appt.ClientName != "" {
			summary = "Appointment with " + appt.ClientName
		}
		event := &calendar.Event{
			Summary:     summary,
			Description: appt.ClientNotes,
			Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
			End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		}
		if _, err := srv.Events.Insert(calendarID, event).Do(); err != nil {
			a.Logger.Error("calendar insert failed", "id", appt.ID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    fmt.Sprintf("failed to insert event: %v", err),
				"exported": exported,
			})
			return
		}
		exported++
	}

	c.JSON(http.StatusOK, gin.H{"exported": exported, "skipped": skipped})
}
