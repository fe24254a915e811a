/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDescriber implements Describer for testing
type MockDescriber struct {
	mock.Mock
}

func (m *MockDescriber) DescribeStack(ctx context.Context, name string) (*model.Stack, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stack), args.Error(1)
}

func (m *MockDescriber) ListStacks(ctx context.Context) ([]*model.Stack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Stack), args.Error(1)
}
