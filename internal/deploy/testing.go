/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDeployer implements Deployer for testing
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) CreateStack(ctx context.Context, stack *model.Stack) (string, error) {
	args := m.Called(ctx, stack)
	return args.String(0), args.Error(1)
}

func (m *MockDeployer) UpdateStack(ctx context.Context, stack *model.Stack, liveName string) error {
	args := m.Called(ctx, stack, liveName)
	return args.Error(0)
}

func (m *MockDeployer) DeleteStack(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockDeployer) ValidateStack(ctx context.Context, stack *model.Stack) (string, error) {
	args := m.Called(ctx, stack)
	return args.String(0), args.Error(1)
}
