/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/orien/stackmanager/internal/describe"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	previewScalingProfile string
	previewName           string
)

// previewCmd represents the preview-stack command
var previewCmd = &cobra.Command{
	Use:   "preview-stack <template> <environment>",
	Short: "Preview a new stack without creating it",
	Long: `Render a template for an environment and scaling profile and print the
resulting template body, parameters and tags. Nothing is uploaded or created.

Examples:
  stackmanager preview-stack web prod
  stackmanager preview-stack web prod --scaling-profile busy --name Prod-Web`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mapper, err := getStackMapper(ctx)
		if err != nil {
			return err
		}

		stack, err := mapper.Create(ctx, resolve.StackRequest{
			Template:       args[0],
			Environment:    args[1],
			ScalingProfile: previewScalingProfile,
			Name:           previewName,
		})
		if err != nil {
			return fmt.Errorf("failed to build stack: %w", err)
		}

		output, err := describe.FormatPreview(ctx, stack)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewScalingProfile, "scaling-profile", model.DefaultScalingProfile, "scaling profile to use for the stack")
	previewCmd.Flags().StringVar(&previewName, "name", "", "name of the stack (generated when empty)")
}
