/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"io"

	"github.com/orien/stackmanager/internal/delete"
	"github.com/orien/stackmanager/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	deleteReally bool
	deleteWatch  bool
	// deleter can be injected for testing
	deleter delete.Deleter
)

// deleteCmd represents the delete-stack command
var deleteCmd = &cobra.Command{
	Use:   "delete-stack <name>",
	Short: "Delete a live stack",
	Long: `Delete a stack managed by stackmanager.

The stack is described first and its details shown. Without --really you are
asked to confirm; declining leaves the stack in place. A stack that does not
exist is skipped.

Examples:
  stackmanager delete-stack Dev-Web-2025W7
  stackmanager delete-stack Dev-Web-2025W7 --really --watch

CAUTION: Deletion is destructive and cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := getDeleter(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		return d.DeleteStack(ctx, args[0], delete.Options{
			Really: deleteReally,
			Watch:  deleteWatch,
		})
	},
}

// getDeleter returns the deleter instance, creating a default one if none is set
func getDeleter(ctx context.Context, in io.Reader, out io.Writer) (delete.Deleter, error) {
	if deleter != nil {
		return deleter, nil
	}

	d, err := getDescriber(ctx)
	if err != nil {
		return nil, err
	}
	dep, err := getDeployer(ctx)
	if err != nil {
		return nil, err
	}
	w, err := getWatcher(ctx)
	if err != nil {
		return nil, err
	}

	return delete.NewStackDeleter(d, dep, prompt.NewStdinPrompter(in, out), w, out, logger), nil
}

// SetDeleter allows injection of a deleter (for testing)
func SetDeleter(d delete.Deleter) {
	deleter = d
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&deleteReally, "really", false, "delete without asking for confirmation")
	deleteCmd.Flags().BoolVar(&deleteWatch, "watch", false, "follow stack events until the deletion completes")
}
