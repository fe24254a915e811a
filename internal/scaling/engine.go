/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package scaling updates live stacks to the scaling profile named by the
// current calendar event. Every decision passes a fixed sequence of guards
// and a rejected stack is skipped rather than treated as a failure.
package scaling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/rs/zerolog"
)

// Verdict is the outcome of one scaling decision
type Verdict int

const (
	VerdictUpdated Verdict = iota
	VerdictCooldown
	VerdictUnstable
	VerdictMissingProfile
	VerdictUnchanged
	VerdictForeignParameter
)

func (v Verdict) String() string {
	switch v {
	case VerdictUpdated:
		return "updated"
	case VerdictCooldown:
		return "cooldown"
	case VerdictUnstable:
		return "unstable"
	case VerdictMissingProfile:
		return "missing_profile"
	case VerdictUnchanged:
		return "unchanged"
	case VerdictForeignParameter:
		return "foreign_parameter"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Decision records whether a stack was updated and why
type Decision struct {
	Stack   string
	Profile string
	Updated bool
	Verdict Verdict
	Reason  string
}

// StackUpdater submits an update of a live stack
type StackUpdater interface {
	UpdateStack(ctx context.Context, stack *model.Stack, liveName string) error
}

// Scaler decides and applies the scaling of one live stack
type Scaler interface {
	Scale(ctx context.Context, stack *model.Stack, event *Event) (Decision, error)
}

// Engine implements Scaler
type Engine struct {
	config                *config.Config
	mapper                resolve.StackMapper
	updater               StackUpdater
	minimumUpdateInterval time.Duration
	now                   func() time.Time
	logger                zerolog.Logger
}

// NewEngine creates an engine using the configured minimum update interval
func NewEngine(cfg *config.Config, mapper resolve.StackMapper, updater StackUpdater, logger zerolog.Logger) *Engine {
	interval := cfg.MinimumUpdateInterval
	if interval <= 0 {
		interval = config.DefaultMinimumUpdateInterval
	}
	return &Engine{
		config:                cfg,
		mapper:                mapper,
		updater:               updater,
		minimumUpdateInterval: interval,
		now:                   time.Now,
		logger:                logger.With().Str("component", "scaling").Logger(),
	}
}

// SetClock replaces the clock used by the cooldown guard
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Scale updates stack to the profile named by event, or the default profile
// when event is nil. Guard rejections are reported in the decision. An error
// is only returned when building or submitting the update fails.
func (e *Engine) Scale(ctx context.Context, stack *model.Stack, event *Event) (Decision, error) {
	log := e.logger.With().Str("stack", stack.Name).Logger()
	log.Debug().Msg("Attempting temporal scaling")

	decision := Decision{Stack: stack.Name}
	if stack.Live == nil {
		return decision, fmt.Errorf("stack %s is not a live stack", stack.Name)
	}

	lastUpdated := stack.Live.LastUpdatedTime
	if lastUpdated.IsZero() {
		lastUpdated = stack.Live.CreationTime
	}
	sinceUpdate := e.now().Sub(lastUpdated)
	if sinceUpdate < e.minimumUpdateInterval {
		decision.Verdict = VerdictCooldown
		decision.Reason = fmt.Sprintf("last updated %s ago, less than the %s minimum update interval",
			sinceUpdate.Truncate(time.Second), e.minimumUpdateInterval)
		log.Warn().Dur("since_update", sinceUpdate).Dur("minimum_update_interval", e.minimumUpdateInterval).Msg("Not scaling stack, " + decision.Reason)
		return decision, nil
	}

	if !model.IsStableStatus(stack.Live.Status) {
		decision.Verdict = VerdictUnstable
		decision.Reason = fmt.Sprintf("status %s is not %s, %s or %s", stack.Live.Status,
			model.StatusCreateComplete, model.StatusUpdateComplete, model.StatusRollbackComplete)
		log.Warn().Str("status", stack.Live.Status).Msg("Not scaling stack, " + decision.Reason)
		return decision, nil
	}

	profile := model.DefaultScalingProfile
	if event != nil {
		profile = event.Summary
	}
	decision.Profile = profile
	log = log.With().Str("scaling_profile", profile).Logger()

	profileParams, ok := e.profile(stack.Template.Name(), profile)
	if !ok {
		decision.Verdict = VerdictMissingProfile
		decision.Reason = fmt.Sprintf("no scaling profile %q for template %q", profile, stack.Template.Name())
		log.Error().Msg("Not scaling stack, " + decision.Reason)
		return decision, nil
	}

	desired, err := e.mapper.Create(ctx, resolve.StackRequest{
		Template:       stack.Template.Name(),
		Environment:    stack.Environment,
		ScalingProfile: profile,
		Name:           stack.Name,
	})
	if err != nil {
		return decision, fmt.Errorf("failed to build stack %s with scaling profile %s: %w", stack.Name, profile, err)
	}

	changed := desired.Parameters.ChangedKeys(stack.Parameters)
	if len(changed) == 0 {
		decision.Verdict = VerdictUnchanged
		decision.Reason = "no parameters have changed"
		log.Info().Msg("Not updating stack, " + decision.Reason)
		return decision, nil
	}

	var foreign []string
	for _, key := range changed {
		if _, ok := profileParams[key]; !ok {
			foreign = append(foreign, key)
		}
	}
	if len(foreign) > 0 {
		decision.Verdict = VerdictForeignParameter
		decision.Reason = fmt.Sprintf("update would change parameters outside the scaling profile: %s", strings.Join(foreign, ", "))
		log.Warn().Strs("parameters", foreign).Msg("Not updating stack, " + decision.Reason)
		return decision, nil
	}

	log.Info().Strs("parameters", changed).Msg("Updating stack using scaling profile")
	if err := e.updater.UpdateStack(ctx, desired, stack.Name); err != nil {
		return decision, fmt.Errorf("failed to update stack %s: %w", stack.Name, err)
	}

	decision.Verdict = VerdictUpdated
	decision.Updated = true
	decision.Reason = fmt.Sprintf("changed %s", strings.Join(changed, ", "))
	return decision, nil
}

func (e *Engine) profile(template, profile string) (map[string]string, bool) {
	tc, ok := e.config.Template(template)
	if !ok {
		return nil, false
	}
	return tc.Profile(profile)
}
