/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package delete

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDeleter implements Deleter for testing
type MockDeleter struct {
	mock.Mock
}

func (m *MockDeleter) DeleteStack(ctx context.Context, name string, options Options) error {
	args := m.Called(ctx, name, options)
	return args.Error(0)
}
