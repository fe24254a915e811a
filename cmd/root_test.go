/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// findCommand returns the direct subcommand of root with the given name
func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// resetFlags restores every flag of the tree to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// resetCollaborators clears every injected collaborator when the test ends
func resetCollaborators(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configProvider = nil
		clientFactory = nil
		stackMapper = nil
		describer = nil
		deployer = nil
		stackWatcher = nil
		deleter = nil
		differ = nil
		validator = nil
		calendarSource = nil
		loadedConfig = nil
	})
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// injectConfig serves cfg as the loaded configuration
func injectConfig(t *testing.T, cfg *config.Config) *config.MockConfigProvider {
	t.Helper()
	provider := &config.MockConfigProvider{}
	provider.On("LoadConfig", mock.Anything).Return(cfg, nil)
	SetConfigProvider(provider)
	return provider
}

func newTestConfig() *config.Config {
	web := config.NewTestTemplateConfig("web")
	web.Calendar = "team@group.calendar.google.com"
	return &config.Config{
		Bucket:                "templates",
		Region:                "eu-west-1",
		MinimumUpdateInterval: config.DefaultMinimumUpdateInterval,
		Templates: map[string]*config.TemplateConfig{
			"web":      web,
			"database": config.NewTestTemplateConfig("database"),
		},
	}
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "stackmanager", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "STACKMANAGER_REGION")
	assert.Same(t, rootCmd, RootCommand())
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{
		"list-stacks",
		"list-templates",
		"describe-stack",
		"preview-stack",
		"create-stack",
		"update-stack",
		"delete-stack",
		"check-stacks",
		"diff-stack",
		"validate-stack",
		"perform-scaling",
		"version",
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, findCommand(rootCmd, name), "%s should be registered", name)
		})
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, DefaultConfigPath, configFlag.DefValue)
	assert.Equal(t, "c", configFlag.Shorthand)

	logLevelFlag := flags.Lookup("log-level")
	require.NotNil(t, logLevelFlag)
	assert.Equal(t, "info", logLevelFlag.DefValue)

	for _, name := range []string{"region", "profile", "bucket", "google-api-key"} {
		assert.NotNil(t, flags.Lookup(name), "--%s should be a global flag", name)
	}
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCommand(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "stackmanager")
	assert.Contains(t, stdout, "--config")
	assert.Contains(t, stdout, "--log-level")
	assert.Contains(t, stdout, "perform-scaling")
}

func TestRootCmd_EnvironmentOverridesDefaults(t *testing.T) {
	resetCollaborators(t)
	injectConfig(t, newTestConfig())
	t.Setenv("STACKMANAGER_REGION", "eu-west-2")
	t.Setenv("STACKMANAGER_BUCKET", "other-templates")

	_, _, err := executeCommand(t, "list-templates")

	require.NoError(t, err)
	assert.Equal(t, "eu-west-2", globals.region)
	assert.Equal(t, "other-templates", globals.bucket)
}

func TestRootCmd_FlagWinsOverEnvironment(t *testing.T) {
	resetCollaborators(t)
	injectConfig(t, newTestConfig())
	t.Setenv("STACKMANAGER_REGION", "eu-west-2")

	_, _, err := executeCommand(t, "list-templates", "--region", "us-east-1")

	require.NoError(t, err)
	assert.Equal(t, "us-east-1", globals.region)
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	resetCollaborators(t)
	injectConfig(t, newTestConfig())

	_, _, err := executeCommand(t, "list-templates", "--log-level", "loud")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}

func TestRootCmd_LogLevelFromEnvironment(t *testing.T) {
	resetCollaborators(t)
	injectConfig(t, newTestConfig())
	t.Setenv("STACKMANAGER_LOG_LEVEL", "debug")

	_, _, err := executeCommand(t, "list-templates")

	require.NoError(t, err)
	assert.Equal(t, "debug", globals.logLevel)
}

func TestGetConfig_LoadsOnce(t *testing.T) {
	resetCollaborators(t)
	provider := injectConfig(t, newTestConfig())

	first, err := getConfig(context.Background())
	require.NoError(t, err)
	second, err := getConfig(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	provider.AssertNumberOfCalls(t, "LoadConfig", 1)
}

func TestGetConfig_Error(t *testing.T) {
	resetCollaborators(t)
	provider := &config.MockConfigProvider{}
	provider.On("LoadConfig", mock.Anything).Return(nil, assert.AnError)
	SetConfigProvider(provider)

	_, err := getConfig(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.ErrorIs(t, err, assert.AnError)
}

// newLiveStack returns a live stack of the web template in prod
func newLiveStack(name string) *model.Stack {
	stack := model.NewTestStack(name, "prod", "web", map[string]string{"MinSize": "2"})
	stack.Live = &model.LiveMetadata{
		ID:     "arn:aws:cloudformation:eu-west-1:123456789012:stack/" + name + "/0a1b2c3d",
		Status: model.StatusUpdateComplete,
	}
	return stack
}
