/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package watch follows the progress of a stack operation by polling its
// events until the stack itself reaches a terminal status.
package watch

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is the pause between two event reads
const DefaultPollInterval = 5 * time.Second

// EventSource reads the event history of a stack
type EventSource interface {
	DescribeStackEvents(ctx context.Context, stackName string) ([]aws.StackEventRecord, error)
}

// Sink receives events in chronological order
type Sink func(event model.StackEvent)

// Watcher polls stack events
type Watcher struct {
	events   EventSource
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewWatcher creates a watcher polling every DefaultPollInterval
func NewWatcher(events EventSource, logger zerolog.Logger) *Watcher {
	return &Watcher{
		events:   events,
		interval: DefaultPollInterval,
		now:      time.Now,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}
}

// SetInterval changes the pause between polls
func (w *Watcher) SetInterval(interval time.Duration) {
	w.interval = interval
}

// SetClock replaces the clock used for the starting high-water mark
func (w *Watcher) SetClock(now func() time.Time) {
	w.now = now
}

// Watch delivers every event newer than the moment it was called to sink and
// returns once the stack itself reports a terminal status. The stack must
// carry its provider id. The loop only ends early when ctx is done.
func (w *Watcher) Watch(ctx context.Context, stack *model.Stack, sink Sink) error {
	if stack.Live == nil || stack.Live.ID == "" {
		return fmt.Errorf("stack %s has no id to watch", stack.Name)
	}
	stackID := stack.Live.ID
	after := w.now()

	log := w.logger.With().Str("stack", stack.Name).Logger()
	log.Debug().Time("after", after).Msg("Watching stack events")

	for {
		events, err := w.eventsAfter(ctx, stack, after)
		if err != nil {
			return err
		}

		for _, event := range events {
			sink(event)
			if event.PhysicalResourceID == stackID && model.IsTerminalStatus(event.ResourceStatus) {
				log.Debug().Str("status", event.ResourceStatus).Msg("Stack reached terminal status")
				return nil
			}
		}

		if len(events) > 0 {
			after = events[len(events)-1].Timestamp
		}

		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// eventsAfter returns events strictly newer than after, oldest first
func (w *Watcher) eventsAfter(ctx context.Context, stack *model.Stack, after time.Time) ([]model.StackEvent, error) {
	records, err := w.events.DescribeStackEvents(ctx, stack.Live.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read events of stack %s: %w", stack.Name, err)
	}

	var events []model.StackEvent
	for _, record := range records {
		if !record.Timestamp.After(after) {
			continue
		}
		events = append(events, model.StackEvent{
			Stack:                stack,
			Timestamp:            record.Timestamp,
			LogicalResourceID:    record.LogicalResourceID,
			PhysicalResourceID:   record.PhysicalResourceID,
			ResourceType:         record.ResourceType,
			ResourceStatus:       record.ResourceStatus,
			ResourceStatusReason: record.ResourceStatusReason,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	w.logger.Debug().Str("stack", stack.Name).Int("events", len(events)).Msg("Read stack events")
	return events, nil
}

// FormatEvent renders an event as one tab separated line
func FormatEvent(event model.StackEvent) string {
	line := fmt.Sprintf("%s\t%s\t%s\t%s",
		event.Timestamp.UTC().Format(time.RFC3339),
		event.ResourceType,
		event.LogicalResourceID,
		event.ResourceStatus)
	if event.ResourceStatusReason != "" {
		line += "\t" + event.ResourceStatusReason
	}
	return line
}

// WriterSink prints each event as a line to w
func WriterSink(w io.Writer) Sink {
	return func(event model.StackEvent) {
		_, _ = fmt.Fprintln(w, FormatEvent(event))
	}
}
