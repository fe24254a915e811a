/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package file contains the raw YAML structure read by the file based
// configuration provider.
package file

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/orien/stackmanager/internal/config"
	"gopkg.in/yaml.v3"
)

// Config represents one YAML configuration file
type Config struct {
	Bucket                string               `yaml:"bucket"`
	Region                string               `yaml:"region"`
	TemplatesDir          string               `yaml:"templates_dir"`
	MinimumUpdateInterval *Duration            `yaml:"minimum_update_interval"`
	Templates             map[string]*Template `yaml:"templates" validate:"required,min=1,dive,required"`
}

// Template represents the parameter layers of a template as they appear in YAML
type Template struct {
	Defaults        ParameterMap            `yaml:"defaults"`
	Environments    map[string]ParameterMap `yaml:"environments" validate:"required,min=1"`
	ScalingProfiles map[string]ParameterMap `yaml:"scaling_profiles" validate:"required,min=1"`
	Calendar        string                  `yaml:"calendar" validate:"omitempty,min=3"`
}

// ParameterMap is a map of parameter values. Any scalar is accepted and kept
// as its literal text, so `MinSize: 2` and `MinSize: "2"` are the same.
type ParameterMap map[string]string

// UnmarshalYAML implements custom YAML unmarshalling for ParameterMap
func (pm *ParameterMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*pm = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping of names to values", node.Line)
	}

	result := make(ParameterMap, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: parameter %s must be a scalar value", value.Line, key.Value)
		}
		if value.Tag == "!!null" {
			result[key.Value] = ""
			continue
		}
		result[key.Value] = value.Value
	}

	*pm = result
	return nil
}

// Duration is a time.Duration read from either a Go duration string such as
// "90m" or an integer number of seconds
type Duration time.Duration

// UnmarshalYAML implements custom YAML unmarshalling for Duration
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar value", node.Line)
	}

	if node.Tag == "!!int" {
		seconds, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, node.Value, err)
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in Go duration syntax
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ToTemplateConfig converts the YAML template to the generic configuration
func (t *Template) ToTemplateConfig(name string) *config.TemplateConfig {
	return &config.TemplateConfig{
		Name:            name,
		Defaults:        copyParameters(t.Defaults),
		Environments:    copyLayers(t.Environments),
		ScalingProfiles: copyLayers(t.ScalingProfiles),
		Calendar:        t.Calendar,
	}
}

func copyParameters(source ParameterMap) map[string]string {
	result := make(map[string]string, len(source))
	maps.Copy(result, source)
	return result
}

func copyLayers(source map[string]ParameterMap) map[string]map[string]string {
	result := make(map[string]map[string]string, len(source))
	for name, params := range source {
		result[name] = copyParameters(params)
	}
	return result
}
