/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockConfigProvider implements ConfigProvider for testing
type MockConfigProvider struct {
	mock.Mock
}

func (m *MockConfigProvider) LoadConfig(ctx context.Context) (*Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Config), args.Error(1)
}

func (m *MockConfigProvider) GetTemplate(name string) (*TemplateConfig, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TemplateConfig), args.Error(1)
}

func (m *MockConfigProvider) ListTemplates() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockConfigProvider) Validate() error {
	args := m.Called()
	return args.Error(0)
}

// NewTestTemplateConfig returns a template with a prod environment and
// default and busy scaling profiles
func NewTestTemplateConfig(name string) *TemplateConfig {
	return &TemplateConfig{
		Name:     name,
		Defaults: map[string]string{"InstanceType": "t3.small", "MinSize": "1"},
		Environments: map[string]map[string]string{
			"prod": {"KeyName": "prod"},
		},
		ScalingProfiles: map[string]map[string]string{
			"default": {"MinSize": "2"},
			"busy":    {"MinSize": "6", "MaxSize": "12"},
		},
	}
}
