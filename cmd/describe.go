/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/orien/stackmanager/internal/describe"
	"github.com/spf13/cobra"
)

// describeCmd represents the describe-stack command
var describeCmd = &cobra.Command{
	Use:   "describe-stack <name>",
	Short: "Display detailed information about a live stack",
	Long: `Display the status, timestamps and parameters of a live stack.

Examples:
  stackmanager describe-stack Prod-Web-2025W7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		d, err := getDescriber(ctx)
		if err != nil {
			return err
		}

		stack, err := d.DescribeStack(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", name, err)
		}

		fmt.Fprint(cmd.OutOrStdout(), describe.FormatStack(stack))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
