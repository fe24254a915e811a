/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"maps"
	"slices"
	"time"
)

// DefaultMinimumUpdateInterval is the cooldown applied between automatic
// scaling updates when the configuration does not set one
const DefaultMinimumUpdateInterval = time.Hour

// ConfigProvider defines the interface for loading template configuration
type ConfigProvider interface {
	// LoadConfig loads and validates the complete configuration
	LoadConfig(ctx context.Context) (*Config, error)

	// GetTemplate returns the configuration of a single template
	GetTemplate(name string) (*TemplateConfig, error)

	// ListTemplates returns all configured template names, sorted
	ListTemplates() ([]string, error)

	// Validate checks the configuration for consistency and errors
	Validate() error
}

// Config represents the resolved stack manager configuration
type Config struct {
	Bucket                string
	Region                string
	TemplatesDir          string
	MinimumUpdateInterval time.Duration
	Templates             map[string]*TemplateConfig
}

// TemplateConfig holds the parameter layers of one template. Environments
// and scaling profiles override the defaults in that order.
type TemplateConfig struct {
	Name            string
	Defaults        map[string]string
	Environments    map[string]map[string]string
	ScalingProfiles map[string]map[string]string
	Calendar        string
}

// TemplateNames returns the configured template names in lexical order
func (c *Config) TemplateNames() []string {
	return slices.Sorted(maps.Keys(c.Templates))
}

// Template returns the named template configuration
func (c *Config) Template(name string) (*TemplateConfig, bool) {
	t, ok := c.Templates[name]
	return t, ok
}

// EnvironmentNames returns the template's environments in lexical order
func (t *TemplateConfig) EnvironmentNames() []string {
	return slices.Sorted(maps.Keys(t.Environments))
}

// ProfileNames returns the template's scaling profiles in lexical order
func (t *TemplateConfig) ProfileNames() []string {
	return slices.Sorted(maps.Keys(t.ScalingProfiles))
}

// Environment returns the parameters of an environment
func (t *TemplateConfig) Environment(name string) (map[string]string, bool) {
	params, ok := t.Environments[name]
	return params, ok
}

// Profile returns the parameters of a scaling profile
func (t *TemplateConfig) Profile(name string) (map[string]string, bool) {
	params, ok := t.ScalingProfiles[name]
	return params, ok
}

// HasCalendar reports whether automatic scaling is driven by a calendar
func (t *TemplateConfig) HasCalendar() bool {
	return t.Calendar != ""
}
