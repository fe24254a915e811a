/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package describe maps provider stack records to live stacks. Template
// bodies are only fetched, and their nested stacks expanded, when read.
package describe

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/transform"
	"github.com/rs/zerolog"
)

// StackDescriber implements the Describer interface using CloudFormation operations
type StackDescriber struct {
	cfn      aws.CloudFormationOperations
	expander *transform.Expander
	logger   zerolog.Logger
}

// NewStackDescriber creates a new describer. The expander inlines nested
// stack templates of fetched bodies.
func NewStackDescriber(cfn aws.CloudFormationOperations, expander *transform.Expander, logger zerolog.Logger) *StackDescriber {
	return &StackDescriber{
		cfn:      cfn,
		expander: expander,
		logger:   logger.With().Str("component", "describer").Logger(),
	}
}

// DescribeStack returns the live stack with the given name. A missing stack
// is reported as aws.ErrStackNotFound and an untagged one as ErrUnmanagedStack.
func (d *StackDescriber) DescribeStack(ctx context.Context, name string) (*model.Stack, error) {
	record, err := d.cfn.DescribeStack(ctx, name)
	if err != nil {
		return nil, err
	}

	stack, ok, err := d.toStack(record)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s and %s tags", ErrUnmanagedStack, record.Name, model.EnvironmentTag, model.TemplateTag)
	}

	return stack, nil
}

// ListStacks returns every managed top level stack sorted by name. Stacks
// without identity tags and nested stacks are skipped.
func (d *StackDescriber) ListStacks(ctx context.Context) ([]*model.Stack, error) {
	records, err := d.cfn.ListStacks(ctx)
	if err != nil {
		return nil, err
	}

	stacks := make([]*model.Stack, 0, len(records))
	for _, record := range records {
		stack, ok, err := d.toStack(record)
		if err != nil {
			return nil, err
		}
		if !ok {
			d.logger.Debug().Str("stack", record.Name).Msg("Skipping stack without identity tags")
			continue
		}
		if stack.IsChildStack() {
			d.logger.Debug().Str("stack", record.Name).Msg("Skipping nested stack")
			continue
		}
		stacks = append(stacks, stack)
	}

	slices.SortFunc(stacks, func(a, b *model.Stack) int {
		return strings.Compare(a.Name, b.Name)
	})

	return stacks, nil
}

// toStack converts a provider record. ok is false when the identity tags are
// missing.
func (d *StackDescriber) toStack(record *aws.StackRecord) (stack *model.Stack, ok bool, err error) {
	environment, hasEnvironment := record.Tags[model.EnvironmentTag]
	templateName, hasTemplate := record.Tags[model.TemplateTag]
	if !hasEnvironment || !hasTemplate {
		return nil, false, nil
	}

	live := model.LiveMetadata{
		ID:           record.ID,
		Status:       record.Status,
		CreationTime: record.CreationTime,
	}
	if record.LastUpdatedTime != nil {
		live.LastUpdatedTime = *record.LastUpdatedTime
	}

	template := model.NewDeferredTemplate(templateName, d.bodyLoader(record.Name))
	stack, err = model.NewLiveStack(record.Name, environment, template, model.NewParameters(record.Parameters), live)
	if err != nil {
		return nil, false, fmt.Errorf("failed to map stack %s: %w", record.Name, err)
	}

	return stack, true, nil
}

// bodyLoader fetches the live template of a stack and expands its nested stacks
func (d *StackDescriber) bodyLoader(stackName string) model.BodyLoader {
	return model.BodyLoaderFunc(func(ctx context.Context) (model.Body, error) {
		d.logger.Debug().Str("stack", stackName).Msg("Fetching live template")

		body, err := d.cfn.GetTemplate(ctx, stackName)
		if err != nil {
			return nil, err
		}

		return d.expander.ExpandJSON(ctx, []byte(body), stackName)
	})
}
