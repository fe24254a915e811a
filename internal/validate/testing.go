/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/stretchr/testify/mock"
)

// MockValidator is a mock implementation of Validator for testing
type MockValidator struct {
	mock.Mock
}

// ValidateStack mocks the ValidateStack method
func (m *MockValidator) ValidateStack(ctx context.Context, req resolve.StackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// ValidateAll mocks the ValidateAll method
func (m *MockValidator) ValidateAll(ctx context.Context, cfg *config.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
