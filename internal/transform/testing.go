/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package transform

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MemoryStore is an in-memory ContentStore for tests.
type MemoryStore struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

// NewMemoryStore returns an empty store serving URLs under baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string][]byte)}
}

// Put records data under key.
func (m *MemoryStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.objects[m.BaseURL+key] = append([]byte(nil), data...)
	return m.BaseURL + key, nil
}

// Get returns the data behind url.
func (m *MemoryStore) Get(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[url]
	if !ok {
		return nil, fmt.Errorf("object %s not found", url)
	}
	return data, nil
}

// Puts returns how many Put calls were made.
func (m *MemoryStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Len returns the number of distinct stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// MockResolver implements Resolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, ref Reference) (Resolved, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(Resolved), args.Error(1)
}

// MockStackTemplateSource implements StackTemplateSource for testing
type MockStackTemplateSource struct {
	mock.Mock
}

func (m *MockStackTemplateSource) PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error) {
	args := m.Called(ctx, stackName, logicalID)
	return args.String(0), args.Error(1)
}

func (m *MockStackTemplateSource) GetTemplate(ctx context.Context, stackName string) (string, error) {
	args := m.Called(ctx, stackName)
	return args.String(0), args.Error(1)
}
