/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/orien/stackmanager/internal/validate"
	"github.com/spf13/cobra"
)

var (
	validateScalingProfile string
	// validator can be injected for testing
	validator validate.Validator
)

// validateCmd represents the validate-stack command
var validateCmd = &cobra.Command{
	Use:   "validate-stack [<template> <environment>]",
	Short: "Validate rendered templates with CloudFormation",
	Long: `Render templates, upload them to the template bucket and have
CloudFormation validate them. No stack is created or changed.

Without arguments every template is validated for each of its environments
under the default scaling profile.

Examples:
  stackmanager validate-stack                # Validate every template
  stackmanager validate-stack web prod       # Validate one template
  stackmanager validate-stack web prod --scaling-profile busy`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts no arguments or <template> <environment>, received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		v, err := getValidator(ctx, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if len(args) == 2 {
			return v.ValidateStack(ctx, resolve.StackRequest{
				Template:       args[0],
				Environment:    args[1],
				ScalingProfile: validateScalingProfile,
			})
		}

		cfg, err := getConfig(ctx)
		if err != nil {
			return err
		}
		return v.ValidateAll(ctx, cfg)
	},
}

// getValidator returns the validator instance, creating a default one if none is set
func getValidator(ctx context.Context, out io.Writer) (validate.Validator, error) {
	if validator != nil {
		return validator, nil
	}

	mapper, err := getStackMapper(ctx)
	if err != nil {
		return nil, err
	}
	dep, err := getDeployer(ctx)
	if err != nil {
		return nil, err
	}
	return validate.NewTemplateValidator(mapper, dep, out, logger), nil
}

// SetValidator allows injection of a validator (for testing)
func SetValidator(v validate.Validator) {
	validator = v
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateScalingProfile, "scaling-profile", model.DefaultScalingProfile, "scaling profile to render the template with")
}
