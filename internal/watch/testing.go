/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package watch

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockWatcher stands in for Watcher in tests. Events given as the second
// return value are delivered to the sink.
type MockWatcher struct {
	mock.Mock
}

func (m *MockWatcher) Watch(ctx context.Context, stack *model.Stack, sink Sink) error {
	args := m.Called(ctx, stack)
	if len(args) > 1 {
		if events, ok := args.Get(1).([]model.StackEvent); ok {
			for _, event := range events {
				sink(event)
			}
		}
	}
	return args.Error(0)
}
