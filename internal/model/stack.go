/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

const (
	// EnvironmentTag classifies a stack to its deployment environment.
	EnvironmentTag = "stackmanager:environment"
	// TemplateTag classifies a stack to its owning template.
	TemplateTag = "stackmanager:template"

	// DefaultScalingProfile is applied when no calendar event is active.
	DefaultScalingProfile = "default"

	maxStackNameLength = 255
)

var (
	stackNamePattern = regexp.MustCompile(`^[a-zA-Z][-a-zA-Z0-9]*$`)

	// Provider generated nested stack names end in a random token. This is a
	// heuristic and can misclassify a top level stack named the same way.
	childStackPattern = regexp.MustCompile(`-[A-Z0-9]{12,13}$`)
)

// LiveMetadata holds the provider observed state of a deployed stack.
type LiveMetadata struct {
	ID              string
	Status          string
	CreationTime    time.Time
	LastUpdatedTime time.Time
}

// Stack is a template rendered for one environment with its parameters.
// Live is nil for a desired stack that has not been read from the provider.
type Stack struct {
	Name        string
	Environment string
	Template    *Template
	Parameters  Parameters
	Live        *LiveMetadata
}

// NewStack validates the stack name and builds a desired stack.
func NewStack(name, environment string, template *Template, parameters Parameters) (*Stack, error) {
	if err := ValidateStackName(name); err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("stack %s has no template", name)
	}

	return &Stack{
		Name:        name,
		Environment: environment,
		Template:    template,
		Parameters:  parameters,
	}, nil
}

// NewLiveStack builds a stack read from the provider. A zero last updated
// time is replaced by the creation time.
func NewLiveStack(name, environment string, template *Template, parameters Parameters, live LiveMetadata) (*Stack, error) {
	stack, err := NewStack(name, environment, template, parameters)
	if err != nil {
		return nil, err
	}
	if live.LastUpdatedTime.IsZero() {
		live.LastUpdatedTime = live.CreationTime
	}
	stack.Live = &live
	return stack, nil
}

// ValidateStackName checks the provider naming rules.
func ValidateStackName(name string) error {
	if len(name) == 0 || len(name) > maxStackNameLength {
		return &ValidationError{
			Field:  "stack name",
			Value:  name,
			Reason: fmt.Sprintf("must be between 1 and %d characters", maxStackNameLength),
		}
	}
	if !stackNamePattern.MatchString(name) {
		return &ValidationError{
			Field:  "stack name",
			Value:  name,
			Reason: "must start with a letter and contain only letters, digits and dashes",
		}
	}
	return nil
}

// Tags returns the identity tags derived from the environment and template.
func (s *Stack) Tags() Tags {
	tags, _ := NewTags(map[string]string{
		EnvironmentTag: s.Environment,
		TemplateTag:    s.Template.Name(),
	})
	return tags
}

// IsChildStack reports whether the name looks like a provider generated nested stack.
func (s *Stack) IsChildStack() bool {
	return IsChildStackName(s.Name)
}

// IsChildStackName applies the nested stack naming heuristic to a name.
func IsChildStackName(name string) bool {
	return childStackPattern.MatchString(name)
}

// IsIdentical reports whether two stacks have equal templates, parameters and
// tags. Deferred template bodies are materialized to compare them.
func IsIdentical(ctx context.Context, a, b *Stack) (bool, error) {
	if !a.Parameters.Equal(b.Parameters) || !a.Tags().Equal(b.Tags()) {
		return false, nil
	}
	return a.Template.IsIdentical(ctx, b.Template)
}
