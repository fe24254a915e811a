/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package scaling

import (
	"context"
	"fmt"
	"time"

	"github.com/orien/stackmanager/internal/version"
	"github.com/rs/zerolog"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarSource returns the events happening now, shortest first
type CalendarSource interface {
	CurrentEvents(ctx context.Context, calendarID string) ([]Event, error)
}

// EventLister lists calendar events overlapping a time range
type EventLister interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
}

// GoogleEventLister implements EventLister over the Google Calendar API
type GoogleEventLister struct {
	service *calendar.Service
}

// NewGoogleEventLister creates a Google Calendar client authenticated with an
// API key
func NewGoogleEventLister(ctx context.Context, apiKey string) (*GoogleEventLister, error) {
	service, err := calendar.NewService(ctx, option.WithAPIKey(apiKey), option.WithUserAgent(version.UserAgent()))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return &GoogleEventLister{service: service}, nil
}

// ListEvents expands recurring events into single instances
func (l *GoogleEventLister) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	var items []*calendar.Event
	err := l.service.Events.List(calendarID).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		TimeZone("UTC").
		Pages(ctx, func(page *calendar.Events) error {
			items = append(items, page.Items...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list events of calendar %s: %w", calendarID, err)
	}
	return items, nil
}

// GoogleCalendarSource implements CalendarSource
type GoogleCalendarSource struct {
	lister EventLister
	now    func() time.Time
	logger zerolog.Logger
}

// NewGoogleCalendarSource creates a calendar source reading from lister
func NewGoogleCalendarSource(lister EventLister, logger zerolog.Logger) *GoogleCalendarSource {
	return &GoogleCalendarSource{
		lister: lister,
		now:    time.Now,
		logger: logger.With().Str("component", "calendar").Logger(),
	}
}

// SetClock replaces the clock defining "now"
func (s *GoogleCalendarSource) SetClock(now func() time.Time) {
	s.now = now
}

// CurrentEvents returns events occurring at this second. The lower bound of
// the query is inclusive and the upper bound exclusive.
func (s *GoogleCalendarSource) CurrentEvents(ctx context.Context, calendarID string) ([]Event, error) {
	now := s.now().UTC().Truncate(time.Second)

	items, err := s.lister.ListEvents(ctx, calendarID, now, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		start, err := parseEventTime(item.Start)
		if err != nil {
			return nil, fmt.Errorf("failed to read start of event %q: %w", item.Summary, err)
		}
		end, err := parseEventTime(item.End)
		if err != nil {
			return nil, fmt.Errorf("failed to read end of event %q: %w", item.Summary, err)
		}
		events = append(events, Event{Summary: item.Summary, Start: start, End: end})
	}
	SortByDuration(events)

	s.logger.Debug().Str("calendar", calendarID).Int("events", len(events)).Msg("Found current events")
	return events, nil
}

// parseEventTime reads a timed event or the date of an all day event
func parseEventTime(t *calendar.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("time is missing")
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return parsed.UTC(), nil
	}
	return time.Parse(time.DateOnly, t.Date)
}
