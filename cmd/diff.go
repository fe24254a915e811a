/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/orien/stackmanager/internal/diff"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	diffScalingProfile string
	diffNoColour       bool
	// differ can be injected for testing
	differ diff.Differ
)

// diffCmd represents the diff-stack command
var diffCmd = &cobra.Command{
	Use:   "diff-stack <name>",
	Short: "Show differences between a live stack and its configuration",
	Long: `Compare a live stack with the stack its template and environment produce
under the given scaling profile. Parameter, tag and template differences are
shown, the latter two as unified diffs.

This shows what 'stackmanager update-stack' would change.

Examples:
  stackmanager diff-stack Prod-Web-2025W7
  stackmanager diff-stack Prod-Web-2025W7 --scaling-profile busy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		d, err := getDescriber(ctx)
		if err != nil {
			return err
		}
		mapper, err := getStackMapper(ctx)
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
			ScalingProfile: diffScalingProfile,
			Name:           name,
		})
		if err != nil {
			return fmt.Errorf("failed to build stack %s: %w", name, err)
		}

		result, err := getDiffer().DiffStack(ctx, live, desired)
		if err != nil {
			return fmt.Errorf("failed to diff stack %s: %w", name, err)
		}

		styles := diff.NewStyles(!diffNoColour && diff.ShouldUseColour())
		fmt.Fprint(cmd.OutOrStdout(), diff.FormatResult(result, styles))
		return nil
	},
}

// getDiffer returns the differ instance, creating a default one if none is set
func getDiffer() diff.Differ {
	if differ != nil {
		return differ
	}
	return diff.NewStackDiffer(logger)
}

// SetDiffer allows injection of a differ (for testing)
func SetDiffer(d diff.Differ) {
	differ = d
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffScalingProfile, "scaling-profile", model.DefaultScalingProfile, "scaling profile to compare against")
	diffCmd.Flags().BoolVar(&diffNoColour, "no-colour", false, "disable coloured output")
}
