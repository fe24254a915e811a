/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientFactory creates AWS service clients sharing one set of credentials
type ClientFactory interface {
	// CloudFormation returns CloudFormation operations for the configured region
	CloudFormation() CloudFormationOperations

	// EC2 returns EC2 lookups for the configured region
	EC2() EC2Lookups

	// RDS returns RDS lookups for the configured region
	RDS() RDSLookups

	// CodeDeploy returns CodeDeploy lookups for the configured region
	CodeDeploy() CodeDeployLookups

	// S3 returns the S3 client used by the template store
	S3() *s3.Client

	// Region returns the resolved AWS region
	Region() string
}

// DefaultClientFactory implements ClientFactory, creating each client once
type DefaultClientFactory struct {
	config aws.Config

	mutex sync.Mutex
	cfn   CloudFormationOperations
	ec2   EC2Lookups
	rds   RDSLookups
	cd    CodeDeployLookups
	s3    *s3.Client
}

// NewClientFactory loads AWS configuration and returns a factory over it
func NewClientFactory(ctx context.Context, cfg Config) (*DefaultClientFactory, error) {
	awsCfg, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("no AWS region configured")
	}

	return NewClientFactoryFromConfig(awsCfg), nil
}

// NewClientFactoryFromConfig returns a factory over an already loaded configuration
func NewClientFactoryFromConfig(cfg aws.Config) *DefaultClientFactory {
	return &DefaultClientFactory{config: cfg}
}

// CloudFormation returns CloudFormation operations
func (f *DefaultClientFactory) CloudFormation() CloudFormationOperations {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.cfn == nil {
		f.cfn = NewCloudFormationOperationsWithClient(cloudformation.NewFromConfig(f.config))
	}
	return f.cfn
}

// EC2 returns EC2 lookups
func (f *DefaultClientFactory) EC2() EC2Lookups {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.ec2 == nil {
		f.ec2 = NewEC2LookupsWithClient(ec2.NewFromConfig(f.config))
	}
	return f.ec2
}

// RDS returns RDS lookups
func (f *DefaultClientFactory) RDS() RDSLookups {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.rds == nil {
		f.rds = NewRDSLookupsWithClient(rds.NewFromConfig(f.config))
	}
	return f.rds
}

// CodeDeploy returns CodeDeploy lookups
func (f *DefaultClientFactory) CodeDeploy() CodeDeployLookups {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.cd == nil {
		f.cd = NewCodeDeployLookupsWithClient(codedeploy.NewFromConfig(f.config))
	}
	return f.cd
}

// S3 returns the S3 client
func (f *DefaultClientFactory) S3() *s3.Client {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.s3 == nil {
		f.s3 = s3.NewFromConfig(f.config)
	}
	return f.s3
}

// Region returns the configured AWS region
func (f *DefaultClientFactory) Region() string {
	return f.config.Region
}
