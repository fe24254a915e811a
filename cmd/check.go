/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/orien/stackmanager/internal/diff"
	"github.com/spf13/cobra"
)

// checkCmd represents the check-stacks command
var checkCmd = &cobra.Command{
	Use:   "check-stacks",
	Short: "Check whether live stacks differ from their configuration",
	Long: `Compare every managed live stack with the stack its template and
environment produce under the default scaling profile.

A progress mark is written to stderr per stack: Y when it has changes and .
when it matches. A table of all stacks follows on stdout.

Examples:
  stackmanager check-stacks`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := getDescriber(ctx)
		if err != nil {
			return err
		}
		mapper, err := getStackMapper(ctx)
		if err != nil {
			return err
		}

		progress := cmd.ErrOrStderr()
		results, err := diff.NewChecker(d, mapper, logger).CheckStacks(ctx, func(result diff.CheckResult) {
			mark := "."
			if result.HasChanges {
				mark = "Y"
			}
			fmt.Fprint(progress, mark)
		})
		if len(results) > 0 {
			fmt.Fprintln(progress)
		}
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), diff.FormatCheckResults(results, diff.NewStyles(diff.ShouldUseColour())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
