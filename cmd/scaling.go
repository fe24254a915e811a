/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/orien/stackmanager/internal/scaling"
	"github.com/spf13/cobra"
)

var (
	scalingMetricsFile string
	// calendarSource can be injected for testing
	calendarSource scaling.CalendarSource
)

// scalingCmd represents the perform-scaling command
var scalingCmd = &cobra.Command{
	Use:   "perform-scaling",
	Short: "Scale live stacks to the profiles of their current calendar events",
	Long: `Apply temporal scaling to every live stack whose template has a calendar.

The summary of the shortest event happening now names the scaling profile to
use. With no current event the default profile applies. A stack is only
updated when it is stable, was not updated within the minimum update interval
and the update changes nothing but the parameters of that scaling profile.

Intended to be run on a schedule. With --metrics-file the decisions are
written in the Prometheus text format for the node exporter textfile
collector.

Examples:
  stackmanager perform-scaling
  stackmanager perform-scaling --metrics-file /var/lib/node_exporter/stackmanager.prom`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := getConfig(ctx)
		if err != nil {
			return err
		}
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
		calendar, err := getCalendarSource(ctx)
		if err != nil {
			return err
		}

		metrics := scaling.NewMetrics()
		engine := scaling.NewEngine(cfg, mapper, dep, logger)
		summary, runErr := scaling.NewRunner(cfg, d, calendar, engine, metrics, logger).Run(ctx)

		if scalingMetricsFile != "" {
			if err := metrics.WriteTextfile(scalingMetricsFile); err != nil {
				return errors.Join(runErr, err)
			}
		}
		if runErr != nil {
			return runErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Checked %d stacks: %d updated, %d skipped, %d failed\n",
			summary.Checked, summary.Updated, summary.Skipped, summary.Failed)
		for _, decision := range summary.Decisions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s): %s, %s\n", decision.Stack, decision.Profile, decision.Verdict, decision.Reason)
		}

		if summary.Failed > 0 {
			return fmt.Errorf("temporal scaling failed for %d stacks", summary.Failed)
		}
		return nil
	},
}

// getCalendarSource returns the calendar source, creating a Google Calendar
// source if none is set
func getCalendarSource(ctx context.Context) (scaling.CalendarSource, error) {
	if calendarSource != nil {
		return calendarSource, nil
	}

	if globals.googleAPIKey == "" {
		return nil, fmt.Errorf("a Google API key is required to read scaling calendars, set --google-api-key or %s_GOOGLE_API_KEY", EnvPrefix)
	}

	lister, err := scaling.NewGoogleEventLister(ctx, globals.googleAPIKey)
	if err != nil {
		return nil, err
	}
	calendarSource = scaling.NewGoogleCalendarSource(lister, logger)
	return calendarSource, nil
}

// SetCalendarSource allows injection of a calendar source (for testing)
func SetCalendarSource(c scaling.CalendarSource) {
	calendarSource = c
}

func init() {
	rootCmd.AddCommand(scalingCmd)

	scalingCmd.Flags().StringVar(&scalingMetricsFile, "metrics-file", "", "write scaling metrics to this Prometheus textfile")
}
