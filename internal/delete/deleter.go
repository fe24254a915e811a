/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package delete guards stack deletion behind an existence check and an
// explicit confirmation.
package delete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/describe"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/prompt"
	"github.com/orien/stackmanager/internal/watch"
	"github.com/rs/zerolog"
)

// ErrNotConfirmed is returned when deletion was neither confirmed nor forced
var ErrNotConfirmed = errors.New(`will not delete a stack without confirmation or the "--really" flag`)

// ErrChildStack is returned for nested stacks, which are owned by their parent
var ErrChildStack = errors.New("will not delete a nested stack, delete its parent instead")

// Options controls a deletion
type Options struct {
	// Really skips the confirmation prompt
	Really bool
	// Watch follows the stack events until the deletion finishes
	Watch bool
}

// Deleter defines the interface for stack deletion operations
type Deleter interface {
	DeleteStack(ctx context.Context, name string, options Options) error
}

// StackRemover submits the provider delete call
type StackRemover interface {
	DeleteStack(ctx context.Context, name string) error
}

// StackWatcher follows stack events to a terminal status
type StackWatcher interface {
	Watch(ctx context.Context, stack *model.Stack, sink watch.Sink) error
}

// StackDeleter implements Deleter
type StackDeleter struct {
	describer describe.Describer
	remover   StackRemover
	prompter  prompt.Prompter
	watcher   StackWatcher
	out       io.Writer
	logger    zerolog.Logger
}

// NewStackDeleter creates a new StackDeleter writing progress to out
func NewStackDeleter(describer describe.Describer, remover StackRemover, prompter prompt.Prompter, watcher StackWatcher, out io.Writer, logger zerolog.Logger) *StackDeleter {
	return &StackDeleter{
		describer: describer,
		remover:   remover,
		prompter:  prompter,
		watcher:   watcher,
		out:       out,
		logger:    logger.With().Str("component", "deleter").Logger(),
	}
}

// DeleteStack deletes a managed live stack. A stack that does not exist is
// skipped and nested stacks are refused. Without Options.Really the user must
// confirm.
func (d *StackDeleter) DeleteStack(ctx context.Context, name string, options Options) error {
	stack, err := d.describer.DescribeStack(ctx, name)
	if errors.Is(err, aws.ErrStackNotFound) {
		fmt.Fprintf(d.out, "Stack %s does not exist, skipping deletion\n", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if stack.IsChildStack() {
		d.logger.Warn().Str("stack", stack.Name).Msg("Refusing to delete nested stack")
		return fmt.Errorf("stack %s: %w", stack.Name, ErrChildStack)
	}

	fmt.Fprintf(d.out, "\n=== Stack Deletion Preview ===\n")
	fmt.Fprintf(d.out, "Stack Name: %s\n", stack.Name)
	fmt.Fprintf(d.out, "Environment: %s\n", stack.Environment)
	fmt.Fprintf(d.out, "Template: %s\n", stack.Template.Name())
	fmt.Fprintf(d.out, "Status: %s\n", stack.Live.Status)
	fmt.Fprintf(d.out, "\nThis will permanently delete the CloudFormation stack and all its resources.\n")

	if !options.Really {
		confirmed, err := d.prompter.Confirm(fmt.Sprintf("Do you want to delete stack %s? This cannot be undone.", stack.Name))
		if err != nil {
			return fmt.Errorf("failed to get user confirmation: %w", err)
		}
		if !confirmed {
			d.logger.Info().Str("stack", stack.Name).Msg("Deletion cancelled")
			return ErrNotConfirmed
		}
	}

	if err := d.remover.DeleteStack(ctx, stack.Name); err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", stack.Name, err)
	}
	fmt.Fprintf(d.out, "Deleting stack %s\n", stack.Name)

	if !options.Watch {
		return nil
	}

	if err := d.watcher.Watch(ctx, stack, watch.WriterSink(d.out)); err != nil {
		return fmt.Errorf("failed to watch deletion of stack %s: %w", stack.Name, err)
	}
	return nil
}
