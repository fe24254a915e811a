/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/describe"
	"github.com/spf13/cobra"
)

// listStacksCmd represents the list-stacks command
var listStacksCmd = &cobra.Command{
	Use:   "list-stacks",
	Short: "List all stacks managed by stackmanager",
	Long: `List every live stack carrying stackmanager's environment and template
tags. Nested stacks are left out.

Examples:
  stackmanager list-stacks
  stackmanager list-stacks --region eu-west-1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := getDescriber(ctx)
		if err != nil {
			return err
		}

		stacks, err := d.ListStacks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list stacks: %w", err)
		}

		if len(stacks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No managed stacks found")
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), describe.FormatStackList(stacks))
		return nil
	},
}

// listTemplatesCmd represents the list-templates command
var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List all templates with their environments and scaling profiles",
	Long: `List the configured templates together with the environments and scaling
profiles each one can be built with.

Examples:
  stackmanager list-templates
  stackmanager list-templates --config config/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig(cmd.Context())
		if err != nil {
			return err
		}

		writeTemplateList(cmd.OutOrStdout(), cfg)
		return nil
	},
}

// writeTemplateList prints one row per template in name order
func writeTemplateList(out io.Writer, cfg *config.Config) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tENVIRONMENTS\tSCALING PROFILES\tCALENDAR")
	for _, name := range cfg.TemplateNames() {
		tmpl, _ := cfg.Template(name)
		calendar := "-"
		if tmpl.HasCalendar() {
			calendar = tmpl.Calendar
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			name,
			strings.Join(tmpl.EnvironmentNames(), ", "),
			strings.Join(tmpl.ProfileNames(), ", "),
			calendar,
		)
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listStacksCmd)
	rootCmd.AddCommand(listTemplatesCmd)
}
