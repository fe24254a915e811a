/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package resolve turns template configuration into desired stacks: it layers
// parameters, names the stack and renders the template body.
package resolve

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
)

// Layer names a parameter layer of a template
type Layer string

const (
	LayerDefaults       Layer = "defaults"
	LayerEnvironment    Layer = "environment"
	LayerScalingProfile Layer = "scaling profile"
)

// MissingParametersError is returned when a template, environment or
// scaling profile has no parameter set in the configuration
type MissingParametersError struct {
	Template string
	Layer    Layer
	Name     string
}

func (e *MissingParametersError) Error() string {
	switch e.Layer {
	case LayerEnvironment:
		return fmt.Sprintf("no parameters found for environment %q of template %q", e.Name, e.Template)
	case LayerScalingProfile:
		return fmt.Sprintf("no parameters found for scaling profile %q of template %q", e.Name, e.Template)
	default:
		return fmt.Sprintf("no default parameters found for template %q", e.Template)
	}
}

var invalidNameChars = regexp.MustCompile(`[^-a-zA-Z0-9]`)

// StackRequest identifies the desired stack to build. An empty ScalingProfile
// selects the default profile and an empty Name selects the generated name.
type StackRequest struct {
	Template       string
	Environment    string
	ScalingProfile string
	Name           string
}

// StackMapper builds desired stacks from configuration
type StackMapper interface {
	Create(ctx context.Context, req StackRequest) (*model.Stack, error)
}

// ConfigMapper implements StackMapper over a loaded configuration
type ConfigMapper struct {
	config    *config.Config
	templates FileSystemResolver
	processor TemplateProcessor
	logger    zerolog.Logger
	clock     func() time.Time
}

// NewConfigMapper creates a mapper rendering templates found by templates
func NewConfigMapper(cfg *config.Config, templates FileSystemResolver, processor TemplateProcessor, logger zerolog.Logger) *ConfigMapper {
	return &ConfigMapper{
		config:    cfg,
		templates: templates,
		processor: processor,
		logger:    logger.With().Str("component", "config-mapper").Logger(),
		clock:     time.Now,
	}
}

// SetClock replaces the clock used for generated stack names (for testing)
func (m *ConfigMapper) SetClock(clock func() time.Time) {
	m.clock = clock
}

// Create layers defaults, environment and scaling profile parameters, later
// layers winning, and renders the template with the result
func (m *ConfigMapper) Create(ctx context.Context, req StackRequest) (*model.Stack, error) {
	profile := req.ScalingProfile
	if profile == "" {
		profile = model.DefaultScalingProfile
	}

	parameters, err := m.Parameters(req.Template, req.Environment, profile)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = DefaultName(req.Environment, req.Template, m.clock())
	}
	if err := model.ValidateStackName(name); err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("template", req.Template).
		Str("environment", req.Environment).
		Str("scaling_profile", profile).
		Str("stack", name).
		Msg("Rendering template")

	content, err := m.templates.ReadTemplate(req.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", req.Template, err)
	}

	rendered, err := m.processor.Process(ctx, req.Template, content, RenderContext{
		Environment:     req.Environment,
		Parameters:      parameters,
		StackParameters: parameters,
		RootStackName:   name,
	})
	if err != nil {
		return nil, err
	}

	body, err := model.ParseBody([]byte(rendered))
	if err != nil {
		return nil, fmt.Errorf("template %s did not render valid JSON: %w", req.Template, err)
	}

	return model.NewStack(name, req.Environment, model.NewTemplate(req.Template, body), model.NewParameters(parameters))
}

// Parameters returns the merged parameters of a template, environment and
// scaling profile
func (m *ConfigMapper) Parameters(templateName, environment, profile string) (map[string]string, error) {
	tmpl, ok := m.config.Template(templateName)
	if !ok {
		return nil, &MissingParametersError{Template: templateName, Layer: LayerDefaults}
	}
	envParams, ok := tmpl.Environment(environment)
	if !ok {
		return nil, &MissingParametersError{Template: templateName, Layer: LayerEnvironment, Name: environment}
	}
	profileParams, ok := tmpl.Profile(profile)
	if !ok {
		return nil, &MissingParametersError{Template: templateName, Layer: LayerScalingProfile, Name: profile}
	}

	merged := make(map[string]string, len(tmpl.Defaults)+len(envParams)+len(profileParams))
	maps.Copy(merged, tmpl.Defaults)
	maps.Copy(merged, envParams)
	maps.Copy(merged, profileParams)
	return merged, nil
}

// DefaultName generates the stack name used when none is given, for example
// "LiveSite-Web-2025W7" for environment live_site and template web
func DefaultName(environment, templateName string, now time.Time) string {
	year, week := now.ISOWeek()
	name := fmt.Sprintf("%s-%s-%dW%d", titleWords(environment), titleWords(templateName), year, week)
	return invalidNameChars.ReplaceAllString(name, "")
}

// titleWords turns underscores into spaces and upper-cases the first letter
// of every word
func titleWords(s string) string {
	runes := []rune(strings.ReplaceAll(s, "_", " "))
	start := true
	for i, r := range runes {
		if unicode.IsSpace(r) {
			start = true
			continue
		}
		if start {
			runes[i] = unicode.ToUpper(r)
			start = false
		}
	}
	return string(runes)
}
