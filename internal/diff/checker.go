/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"context"
	"fmt"

	"github.com/orien/stackmanager/internal/describe"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/rs/zerolog"
)

// CheckResult is the outcome of comparing one live stack with its default
// configuration. Err is set when the comparison could not be made.
type CheckResult struct {
	Stack      *model.Stack
	HasChanges bool
	Err        error
}

// Checker compares every live stack with its configuration
type Checker struct {
	describer describe.Describer
	mapper    resolve.StackMapper
	logger    zerolog.Logger
}

// NewChecker creates a new Checker
func NewChecker(describer describe.Describer, mapper resolve.StackMapper, logger zerolog.Logger) *Checker {
	return &Checker{
		describer: describer,
		mapper:    mapper,
		logger:    logger.With().Str("component", "checker").Logger(),
	}
}

// CheckStacks compares each live stack with the stack its template and
// environment produce under the default scaling profile. progress, when not
// nil, is called after each stack. A failing stack does not stop the check.
func (c *Checker) CheckStacks(ctx context.Context, progress func(CheckResult)) ([]CheckResult, error) {
	stacks, err := c.describer.ListStacks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stacks: %w", err)
	}

	results := make([]CheckResult, 0, len(stacks))
	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := c.check(ctx, stack)
		if result.Err != nil {
			c.logger.Error().Err(result.Err).Str("stack", stack.Name).Msg("Failed to check stack")
		}
		results = append(results, result)
		if progress != nil {
			progress(result)
		}
	}
	return results, nil
}

func (c *Checker) check(ctx context.Context, stack *model.Stack) CheckResult {
	desired, err := c.mapper.Create(ctx, resolve.StackRequest{
		Template:       stack.Template.Name(),
		Environment:    stack.Environment,
		ScalingProfile: model.DefaultScalingProfile,
		Name:           stack.Name,
	})
	if err != nil {
		return CheckResult{Stack: stack, Err: err}
	}

	identical, err := model.IsIdentical(ctx, stack, desired)
	if err != nil {
		return CheckResult{Stack: stack, Err: err}
	}
	return CheckResult{Stack: stack, HasChanges: !identical}
}
