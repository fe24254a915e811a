/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDiffer implements Differ for testing
type MockDiffer struct {
	mock.Mock
}

func (m *MockDiffer) DiffStack(ctx context.Context, live, desired *model.Stack) (*Result, error) {
	args := m.Called(ctx, live, desired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}
