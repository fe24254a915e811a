/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/config"
	"github.com/orien/stackmanager/internal/config/file"
	"github.com/orien/stackmanager/internal/deploy"
	"github.com/orien/stackmanager/internal/describe"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/orien/stackmanager/internal/store"
	"github.com/orien/stackmanager/internal/transform"
	"github.com/orien/stackmanager/internal/version"
	"github.com/orien/stackmanager/internal/watch"
	"github.com/rs/zerolog"
)

// settings are the global flags shared by every command
type settings struct {
	configPath   string
	logLevel     string
	region       string
	profile      string
	bucket       string
	googleAPIKey string
}

// Watcher follows the events of a live stack until it settles
type Watcher interface {
	Watch(ctx context.Context, stack *model.Stack, sink watch.Sink) error
}

var (
	globals settings
	logger  = zerolog.Nop()

	// the collaborators below can be injected for testing
	configProvider config.ConfigProvider
	clientFactory  aws.ClientFactory
	stackMapper    resolve.StackMapper
	describer      describe.Describer
	deployer       deploy.Deployer
	stackWatcher   Watcher

	loadedConfig *config.Config
)

// SetConfigProvider allows injection of a configuration provider (for testing)
func SetConfigProvider(p config.ConfigProvider) {
	configProvider = p
	loadedConfig = nil
}

// SetClientFactory allows injection of an AWS client factory (for testing)
func SetClientFactory(f aws.ClientFactory) {
	clientFactory = f
}

// SetStackMapper allows injection of a stack mapper (for testing)
func SetStackMapper(m resolve.StackMapper) {
	stackMapper = m
}

// SetDescriber allows injection of a describer (for testing)
func SetDescriber(d describe.Describer) {
	describer = d
}

// SetDeployer allows injection of a deployer (for testing)
func SetDeployer(d deploy.Deployer) {
	deployer = d
}

// SetWatcher allows injection of a stack watcher (for testing)
func SetWatcher(w Watcher) {
	stackWatcher = w
}

// getConfig loads the configuration once per invocation
func getConfig(ctx context.Context) (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}

	provider := configProvider
	if provider == nil {
		provider = file.NewProvider(globals.configPath)
	}

	cfg, err := provider.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	loadedConfig = cfg
	return cfg, nil
}

// getClientFactory returns the AWS client factory, creating a default one if none is set
func getClientFactory(ctx context.Context) (aws.ClientFactory, error) {
	if clientFactory != nil {
		return clientFactory, nil
	}

	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}

	region := globals.region
	if region == "" {
		region = cfg.Region
	}

	factory, err := aws.NewClientFactory(ctx, aws.Config{
		Region:  region,
		Profile: globals.profile,
		AppID:   version.UserAgent(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS clients: %w", err)
	}
	clientFactory = factory
	return clientFactory, nil
}

// getTemplateStore returns the content store templates are squashed into
func getTemplateStore(ctx context.Context) (*store.S3Store, error) {
	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}
	factory, err := getClientFactory(ctx)
	if err != nil {
		return nil, err
	}

	bucket := globals.bucket
	if bucket == "" {
		bucket = cfg.Bucket
	}
	return store.NewS3Store(factory.S3(), bucket, factory.Region())
}

// getStackMapper returns the stack mapper, creating a default one if none is set
func getStackMapper(ctx context.Context) (resolve.StackMapper, error) {
	if stackMapper != nil {
		return stackMapper, nil
	}

	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}
	factory, err := getClientFactory(ctx)
	if err != nil {
		return nil, err
	}

	processor := resolve.NewCfnTemplateProcessor(resolve.Lookups{
		Resources:  factory.CloudFormation(),
		EC2:        factory.EC2(),
		RDS:        factory.RDS(),
		CodeDeploy: factory.CodeDeploy(),
	})
	stackMapper = resolve.NewConfigMapper(cfg, resolve.NewFileSystemResolver(cfg.TemplatesDir), processor, logger)
	return stackMapper, nil
}

// getDescriber returns the describer, creating a default one if none is set
func getDescriber(ctx context.Context) (describe.Describer, error) {
	if describer != nil {
		return describer, nil
	}

	factory, err := getClientFactory(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := getTemplateStore(ctx)
	if err != nil {
		return nil, err
	}

	resolver := transform.ChainResolver{
		transform.NewStoreResolver(templates),
		transform.NewStackResolver(factory.CloudFormation()),
		transform.NewHTTPResolver(transform.DefaultDownloadTimeout),
	}
	describer = describe.NewStackDescriber(factory.CloudFormation(), transform.NewExpander(resolver, logger), logger)
	return describer, nil
}

// getDeployer returns the deployer, creating a default one if none is set
func getDeployer(ctx context.Context) (deploy.Deployer, error) {
	if deployer != nil {
		return deployer, nil
	}

	factory, err := getClientFactory(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := getTemplateStore(ctx)
	if err != nil {
		return nil, err
	}

	deployer = deploy.NewAWSDeployer(factory.CloudFormation(), transform.NewSquasher(templates, logger), logger)
	return deployer, nil
}

// getWatcher returns the stack watcher, creating a default one if none is set
func getWatcher(ctx context.Context) (Watcher, error) {
	if stackWatcher != nil {
		return stackWatcher, nil
	}

	factory, err := getClientFactory(ctx)
	if err != nil {
		return nil, err
	}

	stackWatcher = watch.NewWatcher(factory.CloudFormation(), logger)
	return stackWatcher, nil
}
