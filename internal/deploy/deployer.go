/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package deploy submits desired stacks to CloudFormation. Templates are
// squashed into the content store first and referenced by URL.
package deploy

import (
	"context"
	"fmt"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
)

// Deployer defines the interface for stack lifecycle operations
type Deployer interface {
	CreateStack(ctx context.Context, stack *model.Stack) (string, error)
	UpdateStack(ctx context.Context, stack *model.Stack, liveName string) error
	DeleteStack(ctx context.Context, name string) error
	ValidateStack(ctx context.Context, stack *model.Stack) (string, error)
}

// TemplateSquasher uploads a template tree and returns the root template URL
type TemplateSquasher interface {
	SquashTemplate(ctx context.Context, template *model.Template) (string, error)
}

// AWSDeployer implements Deployer using AWS CloudFormation
type AWSDeployer struct {
	cfn      aws.CloudFormationOperations
	squasher TemplateSquasher
	logger   zerolog.Logger
}

// NewAWSDeployer creates a new AWSDeployer
func NewAWSDeployer(cfn aws.CloudFormationOperations, squasher TemplateSquasher, logger zerolog.Logger) *AWSDeployer {
	return &AWSDeployer{
		cfn:      cfn,
		squasher: squasher,
		logger:   logger.With().Str("component", "deployer").Logger(),
	}
}

// CreateStack creates the stack with its identity tags and returns the
// provider assigned stack id
func (d *AWSDeployer) CreateStack(ctx context.Context, stack *model.Stack) (string, error) {
	templateURL, err := d.squash(ctx, stack)
	if err != nil {
		return "", err
	}

	d.logger.Info().Str("stack", stack.Name).Str("template_url", templateURL).Msg("Creating stack")

	stackID, err := d.cfn.CreateStack(ctx, aws.CreateStackInput{
		StackName:    stack.Name,
		TemplateURL:  templateURL,
		Parameters:   toParameters(stack.Parameters),
		Tags:         stack.Tags().Map(),
		Capabilities: []string{aws.CapabilityIAM, aws.CapabilityNamedIAM},
	})
	if err != nil {
		return "", err
	}

	return stackID, nil
}

// UpdateStack updates the live stack liveName to the desired stack. Tags are
// immutable after creation and are not resent.
func (d *AWSDeployer) UpdateStack(ctx context.Context, stack *model.Stack, liveName string) error {
	templateURL, err := d.squash(ctx, stack)
	if err != nil {
		return err
	}

	d.logger.Info().Str("stack", liveName).Str("template_url", templateURL).Msg("Updating stack")

	return d.cfn.UpdateStack(ctx, aws.UpdateStackInput{
		StackName:    liveName,
		TemplateURL:  templateURL,
		Parameters:   toParameters(stack.Parameters),
		Capabilities: []string{aws.CapabilityIAM, aws.CapabilityNamedIAM},
	})
}

// DeleteStack deletes a stack by name
func (d *AWSDeployer) DeleteStack(ctx context.Context, name string) error {
	d.logger.Info().Str("stack", name).Msg("Deleting stack")

	return d.cfn.DeleteStack(ctx, name)
}

// ValidateStack squashes the template and asks the provider to validate it.
// The uploaded template URL is returned.
func (d *AWSDeployer) ValidateStack(ctx context.Context, stack *model.Stack) (string, error) {
	templateURL, err := d.squash(ctx, stack)
	if err != nil {
		return "", err
	}

	if err := d.cfn.ValidateTemplateURL(ctx, templateURL); err != nil {
		return "", fmt.Errorf("template of stack %s is invalid: %w", stack.Name, err)
	}

	return templateURL, nil
}

func (d *AWSDeployer) squash(ctx context.Context, stack *model.Stack) (string, error) {
	templateURL, err := d.squasher.SquashTemplate(ctx, stack.Template)
	if err != nil {
		return "", fmt.Errorf("failed to upload template of stack %s: %w", stack.Name, err)
	}
	return templateURL, nil
}

// toParameters converts parameters in key order. No parameters gives nil so
// the field is omitted from the request.
func toParameters(params model.Parameters) []aws.Parameter {
	if params.Len() == 0 {
		return nil
	}

	result := make([]aws.Parameter, 0, params.Len())
	for _, key := range params.Keys() {
		value, _ := params.Get(key)
		result = append(result, aws.Parameter{Key: key, Value: value})
	}
	return result
}
