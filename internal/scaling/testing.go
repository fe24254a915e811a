/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package scaling

import (
	"context"
	"time"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
	"google.golang.org/api/calendar/v3"
)

// MockCalendarSource implements CalendarSource for testing
type MockCalendarSource struct {
	mock.Mock
}

func (m *MockCalendarSource) CurrentEvents(ctx context.Context, calendarID string) ([]Event, error) {
	args := m.Called(ctx, calendarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

// MockEventLister implements EventLister for testing
type MockEventLister struct {
	mock.Mock
}

func (m *MockEventLister) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	args := m.Called(ctx, calendarID, timeMin, timeMax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*calendar.Event), args.Error(1)
}

// MockScaler implements Scaler for testing
type MockScaler struct {
	mock.Mock
}

func (m *MockScaler) Scale(ctx context.Context, stack *model.Stack, event *Event) (Decision, error) {
	args := m.Called(ctx, stack, event)
	return args.Get(0).(Decision), args.Error(1)
}
