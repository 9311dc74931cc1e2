package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/grovecli/grove/internal/api"
)

const defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

// Calendar wraps the Google Calendar API
type Calendar struct {
	client  *api.Client
	baseURL string
}

// NewCalendar creates a Calendar service
func NewCalendar(client *api.Client) *Calendar {
	return &Calendar{client: client, baseURL: defaultCalendarBaseURL}
}

// CalendarEntry is one calendar from the user's calendar list
type CalendarEntry struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary"`
}

// Event is a calendar event
type Event struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   EventTime `json:"start"`
	End     EventTime `json:"end"`
	Status  string    `json:"status"`
}

// EventTime is either a timed or an all-day boundary
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Display renders the boundary for list output.
func (t EventTime) Display() string {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed.Format("2006-01-02 15:04")
		}
		return t.DateTime
	}
	return t.Date
}

// ListCalendars returns the user's calendar list.
func (c *Calendar) ListCalendars(ctx context.Context) ([]CalendarEntry, error) {
	var resp struct {
		Items []CalendarEntry `json:"items"`
	}
	if err := c.client.GetJSON(ctx, c.baseURL+"/users/me/calendarList", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	return resp.Items, nil
}

// ListEvents returns upcoming events from the given calendar, ordered by
// start time.
func (c *Calendar) ListEvents(ctx context.Context, calendarID string, max int) ([]Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if max <= 0 {
		max = 10
	}

	params := url.Values{
		"maxResults":   {strconv.Itoa(max)},
		"orderBy":      {"startTime"},
		"singleEvents": {"true"},
		"timeMin":      {time.Now().Format(time.RFC3339)},
	}

	var resp struct {
		Items []Event `json:"items"`
	}
	endpoint := c.baseURL + "/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.client.GetJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return resp.Items, nil
}

// CreateEvent creates a timed event on the given calendar.
func (c *Calendar) CreateEvent(ctx context.Context, calendarID, summary string, start, end time.Time) (*Event, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	req := map[string]any{
		"summary": summary,
		"start":   EventTime{DateTime: start.Format(time.RFC3339)},
		"end":     EventTime{DateTime: end.Format(time.RFC3339)},
	}

	var event Event
	endpoint := c.baseURL + "/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.client.PostJSON(ctx, endpoint, req, &event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}
