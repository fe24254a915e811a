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
	updateScalingProfile string
	updateWatch          bool
)

// updateCmd represents the update-stack command
var updateCmd = &cobra.Command{
	Use:   "update-stack <name>",
	Short: "Update a live stack to its current configuration",
	Long: `Rebuild a live stack from the template and environment it was created
with, using the given scaling profile, and update it.

Examples:
  stackmanager update-stack Prod-Web-2025W7
  stackmanager update-stack Prod-Web-2025W7 --scaling-profile busy --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		name := args[0]

		d, err := getDescriber(ctx)
		if err != nil {
			return err
		}
		mapper, err := getStackMapper(ctx)
		if err != nil {
			return err
		}
		dep, err := getDeployer(ctx)
		if err != nil {
			return err
		}

		live, err := d.DescribeStack(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", name, err)
		}

		desired, err := mapper.Create(ctx, resolve.StackRequest{
			Template:       live.Template.Name(),
			Environment:    live.Environment,
			ScalingProfile: updateScalingProfile,
			Name:           name,
		})
		if err != nil {
			return fmt.Errorf("failed to build stack %s: %w", name, err)
		}

		if err := dep.UpdateStack(ctx, desired, name); err != nil {
			return fmt.Errorf("failed to update stack %s: %w", name, err)
		}
		fmt.Fprintf(out, "Updating stack %s\n", name)

		if !updateWatch {
			return nil
		}

		w, err := getWatcher(ctx)
		if err != nil {
			return err
		}
		return w.Watch(ctx, live, watch.WriterSink(out))
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateScalingProfile, "scaling-profile", model.DefaultScalingProfile, "scaling profile to use for the stack")
	updateCmd.Flags().BoolVar(&updateWatch, "watch", false, "follow stack events until the update completes")
}
