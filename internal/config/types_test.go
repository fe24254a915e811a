/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_TemplateNamesSorted(t *testing.T) {
	cfg := &Config{
		Templates: map[string]*TemplateConfig{
			"web":      NewTestTemplateConfig("web"),
			"database": NewTestTemplateConfig("database"),
			"cache":    NewTestTemplateConfig("cache"),
		},
	}

	assert.Equal(t, []string{"cache", "database", "web"}, cfg.TemplateNames())
}

func TestConfig_Template(t *testing.T) {
	cfg := &Config{Templates: map[string]*TemplateConfig{"web": NewTestTemplateConfig("web")}}

	tmpl, ok := cfg.Template("web")
	require.True(t, ok)
	assert.Equal(t, "web", tmpl.Name)

	_, ok = cfg.Template("missing")
	assert.False(t, ok)
}

func TestTemplateConfig_Lookups(t *testing.T) {
	tmpl := NewTestTemplateConfig("web")

	assert.Equal(t, []string{"prod"}, tmpl.EnvironmentNames())
	assert.Equal(t, []string{"busy", "default"}, tmpl.ProfileNames())

	env, ok := tmpl.Environment("prod")
	require.True(t, ok)
	assert.Equal(t, "prod", env["KeyName"])

	_, ok = tmpl.Environment("staging")
	assert.False(t, ok)

	profile, ok := tmpl.Profile("busy")
	require.True(t, ok)
	assert.Equal(t, "6", profile["MinSize"])

	_, ok = tmpl.Profile("quiet")
	assert.False(t, ok)
}

func TestTemplateConfig_HasCalendar(t *testing.T) {
	tmpl := NewTestTemplateConfig("web")
	assert.False(t, tmpl.HasCalendar())

	tmpl.Calendar = "team@group.calendar.google.com"
	assert.True(t, tmpl.HasCalendar())
}

func TestMockConfigProvider_Interface(t *testing.T) {
	var _ ConfigProvider = &MockConfigProvider{}
}

func TestMockConfigProvider_GetTemplate(t *testing.T) {
	mockProvider := &MockConfigProvider{}
	mockProvider.On("GetTemplate", "web").Return(NewTestTemplateConfig("web"), nil)
	mockProvider.On("GetTemplate", "missing").Return(nil, errors.New("template 'missing' not found"))

	tmpl, err := mockProvider.GetTemplate("web")
	require.NoError(t, err)
	assert.Equal(t, "web", tmpl.Name)

	tmpl, err = mockProvider.GetTemplate("missing")
	assert.Error(t, err)
	assert.Nil(t, tmpl)

	mockProvider.AssertExpectations(t)
}

func TestMockConfigProvider_LoadConfig(t *testing.T) {
	ctx := context.Background()
	mockProvider := &MockConfigProvider{}
	expected := &Config{Bucket: "templates", MinimumUpdateInterval: DefaultMinimumUpdateInterval}
	mockProvider.On("LoadConfig", ctx).Return(expected, nil)

	cfg, err := mockProvider.LoadConfig(ctx)

	require.NoError(t, err)
	assert.Same(t, expected, cfg)
}
