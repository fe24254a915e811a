/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockFileSystemResolver implements FileSystemResolver for testing
type MockFileSystemResolver struct {
	mock.Mock
}

func (m *MockFileSystemResolver) ReadTemplate(templateName string) (string, error) {
	args := m.Called(templateName)
	return args.String(0), args.Error(1)
}

// MockTemplateProcessor implements TemplateProcessor for testing
type MockTemplateProcessor struct {
	mock.Mock
}

func (m *MockTemplateProcessor) Process(ctx context.Context, name, content string, data RenderContext) (string, error) {
	args := m.Called(ctx, name, content, data)
	return args.String(0), args.Error(1)
}

// MockStackMapper implements StackMapper for testing
type MockStackMapper struct {
	mock.Mock
}

func (m *MockStackMapper) Create(ctx context.Context, req StackRequest) (*model.Stack, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stack), args.Error(1)
}
