/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/orien/stackmanager/internal/logging"
	"github.com/orien/stackmanager/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read for global flags
const EnvPrefix = "STACKMANAGER"

// DefaultConfigPath is read when no configuration path is given
const DefaultConfigPath = "stackmanager.yaml"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   version.Name,
	Short: "Manage AWS CloudFormation stacks from templates and calendars",
	Long: `stackmanager creates, updates and deletes CloudFormation stacks from
templated configuration and scales them on a schedule:

• Templates rendered per environment and scaling profile
• Nested stacks squashed into a content addressed S3 bucket
• Drift checks between live stacks and their configuration
• Temporal scaling driven by Google Calendar events

Every global flag can also be set with an environment variable, for example
STACKMANAGER_REGION for --region.`,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

// RootCommand returns the root command for documentation generation
func RootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the command tree with fang's help and error rendering
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.GitCommit),
	)
}

// setUp applies environment overrides and builds the logger before any command runs
func setUp(cmd *cobra.Command, args []string) error {
	if err := bindEnvironment(cmd); err != nil {
		return err
	}

	l, err := logging.New(globals.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// bindEnvironment sets every flag not given on the command line from its
// STACKMANAGER_* environment variable
func bindEnvironment(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()}
	for _, fs := range flagSets {
		if err := v.BindPFlags(fs); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var bindErr error
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || bindErr != nil {
				return
			}
			val := v.GetString(f.Name)
			if val == "" || val == f.DefValue {
				return
			}
			if err := f.Value.Set(val); err != nil {
				bindErr = fmt.Errorf("invalid value %q for %s_%s: %w", val, EnvPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err)
			}
		})
	}
	return bindErr
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&globals.configPath, "config", "c", DefaultConfigPath, "configuration file or directory")
	flags.StringVar(&globals.logLevel, "log-level", logging.DefaultLevel, "log level: "+strings.Join(logging.Levels, ", "))
	flags.StringVar(&globals.region, "region", "", "AWS region (overrides config)")
	flags.StringVarP(&globals.profile, "profile", "p", "", "AWS shared config profile")
	flags.StringVar(&globals.bucket, "bucket", "", "template bucket (overrides config)")
	flags.StringVar(&globals.googleAPIKey, "google-api-key", "", "Google API key used to read scaling calendars")
}
