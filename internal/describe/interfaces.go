/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"errors"

	"github.com/orien/stackmanager/internal/model"
)

// ErrUnmanagedStack is returned for a stack without the environment and
// template identity tags
var ErrUnmanagedStack = errors.New("stack is not managed by stackmanager")

// Describer defines the interface for reading live stacks from the provider
type Describer interface {
	// DescribeStack returns the live stack with the given name
	DescribeStack(ctx context.Context, name string) (*model.Stack, error)

	// ListStacks returns every managed top level stack
	ListStacks(ctx context.Context) ([]*model.Stack, error)
}
