/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// CloudFormationClient defines the interface for CloudFormation client operations
// This allows for easier testing with mock implementations
type CloudFormationClient interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackResource(ctx context.Context, params *cloudformation.DescribeStackResourceInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourceOutput, error)
	DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	GetTemplate(ctx context.Context, params *cloudformation.GetTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.GetTemplateOutput, error)
	ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
}

// EC2Client defines the EC2 calls used by template lookup functions
type EC2Client interface {
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
}

// RDSClient defines the RDS calls used by template lookup functions
type RDSClient interface {
	DescribeDBSnapshots(ctx context.Context, params *rds.DescribeDBSnapshotsInput, optFns ...func(*rds.Options)) (*rds.DescribeDBSnapshotsOutput, error)
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// CodeDeployClient defines the CodeDeploy calls used by template lookup functions
type CodeDeployClient interface {
	ListApplicationRevisions(ctx context.Context, params *codedeploy.ListApplicationRevisionsInput, optFns ...func(*codedeploy.Options)) (*codedeploy.ListApplicationRevisionsOutput, error)
	GetDeploymentGroup(ctx context.Context, params *codedeploy.GetDeploymentGroupInput, optFns ...func(*codedeploy.Options)) (*codedeploy.GetDeploymentGroupOutput, error)
}

// Ensure that the actual SDK clients implement our interfaces
var (
	_ CloudFormationClient = (*cloudformation.Client)(nil)
	_ EC2Client            = (*ec2.Client)(nil)
	_ RDSClient            = (*rds.Client)(nil)
	_ CodeDeployClient     = (*codedeploy.Client)(nil)
)

// Ensure that the default implementations satisfy their interfaces
var (
	_ CloudFormationOperations = (*DefaultCloudFormationOperations)(nil)
	_ EC2Lookups               = (*DefaultEC2Lookups)(nil)
	_ RDSLookups               = (*DefaultRDSLookups)(nil)
	_ CodeDeployLookups        = (*DefaultCodeDeployLookups)(nil)
	_ ClientFactory            = (*DefaultClientFactory)(nil)
)

// CloudFormationOperations is the provisioning API used by the rest of the application
type CloudFormationOperations interface {
	CreateStack(ctx context.Context, input CreateStackInput) (string, error)
	UpdateStack(ctx context.Context, input UpdateStackInput) error
	DeleteStack(ctx context.Context, stackName string) error
	DescribeStack(ctx context.Context, stackName string) (*StackRecord, error)
	ListStacks(ctx context.Context) ([]*StackRecord, error)
	GetTemplate(ctx context.Context, stackName string) (string, error)
	PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error)
	DescribeStackEvents(ctx context.Context, stackName string) ([]StackEventRecord, error)
	ValidateTemplateURL(ctx context.Context, templateURL string) error
}

// EC2Lookups resolves EC2 identifiers for rendered templates
type EC2Lookups interface {
	LatestImage(ctx context.Context, owner, description string) (string, error)
	LatestVolumeSnapshot(ctx context.Context, volumeID string) (string, error)
	VolumeSourceSnapshot(ctx context.Context, volumeID string) (string, error)
}

// RDSLookups resolves RDS identifiers and tags for rendered templates
type RDSLookups interface {
	LatestDBSnapshot(ctx context.Context, instanceID string) (string, error)
	DBInstanceTag(ctx context.Context, instanceID, key string) (string, error)
}

// CodeDeployLookups resolves CodeDeploy revisions for rendered templates
type CodeDeployLookups interface {
	LatestApplicationRevision(ctx context.Context, application string) (string, error)
	DeploymentGroupRevision(ctx context.Context, application, group string) (string, error)
}
