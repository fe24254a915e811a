/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/orien/stackmanager/internal/watch"
	"github.com/spf13/cobra"
)

var (
	createScalingProfile string
	createName           string
	createWatch          bool
)

// createCmd represents the create-stack command
var createCmd = &cobra.Command{
	Use:   "create-stack <template> <environment>",
	Short: "Create a new stack",
	Long: `Render a template for an environment and scaling profile, upload it to the
template bucket and create the stack.

When no name is given one is generated from the environment, template and
ISO week, for example Prod-Web-2025W7.

Examples:
  stackmanager create-stack web prod
  stackmanager create-stack web prod --scaling-profile busy
  stackmanager create-stack web prod --name Prod-Web --watch`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		mapper, err := getStackMapper(ctx)
		if err != nil {
			return err
		}
		d, err := getDeployer(ctx)
		if err != nil {
			return err
		}

		stack, err := mapper.Create(ctx, resolve.StackRequest{
			Template:       args[0],
			Environment:    args[1],
			ScalingProfile: createScalingProfile,
			Name:           createName,
		})
		if err != nil {
			return fmt.Errorf("failed to build stack: %w", err)
		}

		stackID, err := d.CreateStack(ctx, stack)
		if err != nil {
			return fmt.Errorf("failed to create stack %s: %w", stack.Name, err)
		}
		fmt.Fprintf(out, "Creating stack %s\n", stack.Name)

		if !createWatch {
			return nil
		}

		w, err := getWatcher(ctx)
		if err != nil {
			return err
		}
		stack.Live = &model.LiveMetadata{ID: stackID}
		return w.Watch(ctx, stack, watch.WriterSink(out))
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createScalingProfile, "scaling-profile", model.DefaultScalingProfile, "scaling profile to use for the stack")
	createCmd.Flags().StringVar(&createName, "name", "", "name of the stack (generated when empty)")
	createCmd.Flags().BoolVar(&createWatch, "watch", false, "follow stack events until creation completes")
}
