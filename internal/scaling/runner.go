/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package scaling

import (
	"context"
	"fmt"
	"time"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/describe"
	"github.com/rs/zerolog"
)

// Summary totals one scaling run
type Summary struct {
	Checked   int
	Skipped   int
	Updated   int
	Failed    int
	Decisions []Decision
}

// Runner scales every live stack whose template has a calendar
type Runner struct {
	config    *config.Config
	describer describe.Describer
	calendar  CalendarSource
	scaler    Scaler
	metrics   *Metrics
	now       func() time.Time
	logger    zerolog.Logger
}

// NewRunner creates a runner. metrics may be nil.
func NewRunner(cfg *config.Config, describer describe.Describer, calendar CalendarSource, scaler Scaler, metrics *Metrics, logger zerolog.Logger) *Runner {
	return &Runner{
		config:    cfg,
		describer: describer,
		calendar:  calendar,
		scaler:    scaler,
		metrics:   metrics,
		now:       time.Now,
		logger:    logger.With().Str("component", "scaling-runner").Logger(),
	}
}

// Run scales each stack in turn. A failure on one stack is logged and the
// run continues with the next. Only failing to list stacks aborts the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	stacks, err := r.describer.ListStacks(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list stacks: %w", err)
	}

	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		template := stack.Template.Name()
		tc, ok := r.config.Template(template)
		if !ok || !tc.HasCalendar() {
			r.logger.Debug().Str("stack", stack.Name).Str("template", template).Msg("No calendar source for stack, not applying temporal scaling")
			summary.Skipped++
			continue
		}
		summary.Checked++

		events, err := r.calendar.CurrentEvents(ctx, tc.Calendar)
		if err != nil {
			r.logger.Error().Err(err).Str("stack", stack.Name).Str("calendar", tc.Calendar).Msg("Failed to read current events")
			r.recordFailure(&summary)
			continue
		}

		// The shortest current event is the most specific one
		var event *Event
		if len(events) > 0 {
			event = &events[0]
		}

		decision, err := r.scaler.Scale(ctx, stack, event)
		if err != nil {
			r.logger.Error().Err(err).Str("stack", stack.Name).Msg("Failed to scale stack")
			r.recordFailure(&summary)
			continue
		}

		summary.Decisions = append(summary.Decisions, decision)
		if decision.Updated {
			summary.Updated++
		}
		if r.metrics != nil {
			r.metrics.RecordDecision(decision)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordRun(float64(r.now().Unix()))
	}

	r.logger.Info().
		Int("checked", summary.Checked).
		Int("skipped", summary.Skipped).
		Int("updated", summary.Updated).
		Int("failed", summary.Failed).
		Msg("Temporal scaling finished")

	return summary, nil
}

func (r *Runner) recordFailure(summary *Summary) {
	summary.Failed++
	if r.metrics != nil {
		r.metrics.RecordFailure()
	}
}
