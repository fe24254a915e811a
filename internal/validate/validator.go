/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package validate renders configured stacks and has the provider check
// their templates without creating anything.
package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/rs/zerolog"
)

// Validator orchestrates template validation
type Validator interface {
	ValidateStack(ctx context.Context, req resolve.StackRequest) error
	ValidateAll(ctx context.Context, cfg *config.Config) error
}

// StackValidator uploads a stack template and asks the provider to validate it
type StackValidator interface {
	ValidateStack(ctx context.Context, stack *model.Stack) (string, error)
}

// TemplateValidator implements the Validator interface
type TemplateValidator struct {
	mapper    resolve.StackMapper
	validator StackValidator
	out       io.Writer
	logger    zerolog.Logger
}

// NewTemplateValidator creates a new validator
func NewTemplateValidator(mapper resolve.StackMapper, validator StackValidator, out io.Writer, logger zerolog.Logger) *TemplateValidator {
	return &TemplateValidator{
		mapper:    mapper,
		validator: validator,
		out:       out,
		logger:    logger.With().Str("component", "validator").Logger(),
	}
}

// ValidateStack validates the template one stack request renders
func (v *TemplateValidator) ValidateStack(ctx context.Context, req resolve.StackRequest) error {
	fmt.Fprintf(v.out, "Validating template '%s' for environment '%s'...\n", req.Template, req.Environment)

	if err := v.validate(ctx, req); err != nil {
		fmt.Fprintf(v.out, "\n✗ Validation failed for template '%s'\n", req.Template)
		fmt.Fprintf(v.out, "  Error: %v\n", err)
		return err
	}

	fmt.Fprintf(v.out, "\n✓ Template '%s' is valid for environment '%s'\n", req.Template, req.Environment)
	return nil
}

// ValidateAll validates every template in every environment with the
// default scaling profile
func (v *TemplateValidator) ValidateAll(ctx context.Context, cfg *config.Config) error {
	var requests []resolve.StackRequest
	for _, name := range cfg.TemplateNames() {
		template, _ := cfg.Template(name)
		for _, env := range template.EnvironmentNames() {
			requests = append(requests, resolve.StackRequest{Template: name, Environment: env})
		}
	}

	if len(requests) == 0 {
		fmt.Fprintln(v.out, "No templates configured")
		return nil
	}

	fmt.Fprintf(v.out, "Validating %d template(s)...\n\n", len(requests))

	results := make([]ValidationResult, 0, len(requests))
	hasErrors := false

	for _, req := range requests {
		label := req.Template + "/" + req.Environment
		fmt.Fprintf(v.out, "→ Validating '%s'... ", label)

		if err := v.validate(ctx, req); err != nil {
			fmt.Fprintf(v.out, "✗\n")
			results = append(results, ValidationResult{Name: label, Valid: false, Error: err.Error()})
			hasErrors = true
			continue
		}

		fmt.Fprintf(v.out, "✓\n")
		results = append(results, ValidationResult{Name: label, Valid: true})
	}

	v.printSummary(results)

	if hasErrors {
		return fmt.Errorf("validation failed for one or more templates")
	}

	return nil
}

func (v *TemplateValidator) validate(ctx context.Context, req resolve.StackRequest) error {
	stack, err := v.mapper.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to build stack from template %s: %w", req.Template, err)
	}

	templateURL, err := v.validator.ValidateStack(ctx, stack)
	if err != nil {
		return err
	}

	v.logger.Debug().Str("template", req.Template).Str("environment", req.Environment).Str("template_url", templateURL).Msg("Template is valid")
	return nil
}

// printSummary prints validation results summary
func (v *TemplateValidator) printSummary(results []ValidationResult) {
	fmt.Fprintln(v.out, "\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(v.out, "Validation Summary")
	fmt.Fprintln(v.out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	validCount := 0
	invalidCount := 0

	for _, result := range results {
		if result.Valid {
			validCount++
			fmt.Fprintf(v.out, "✓ %s\n", result.Name)
		} else {
			invalidCount++
			fmt.Fprintf(v.out, "✗ %s\n", result.Name)
			fmt.Fprintf(v.out, "  Error: %s\n", result.Error)
		}
	}

	fmt.Fprintln(v.out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(v.out, "Total:   %d\n", len(results))
	fmt.Fprintf(v.out, "Valid:   %d\n", validCount)
	fmt.Fprintf(v.out, "Invalid: %d\n", invalidCount)

	if invalidCount == 0 {
		fmt.Fprintln(v.out, "\n✓ All templates are valid")
	} else {
		fmt.Fprintln(v.out, "\n✗ Some templates failed validation")
	}
}

// ValidationResult contains the outcome of a single template validation
type ValidationResult struct {
	Name  string
	Valid bool
	Error string
}
