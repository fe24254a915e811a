/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy"
	"github.com/aws/aws-sdk-go-v2/service/codedeploy/types"
)

// DefaultCodeDeployLookups implements CodeDeployLookups over the CodeDeploy API
type DefaultCodeDeployLookups struct {
	client CodeDeployClient
}

// NewCodeDeployLookupsWithClient creates lookups with a custom client
func NewCodeDeployLookupsWithClient(client CodeDeployClient) *DefaultCodeDeployLookups {
	return &DefaultCodeDeployLookups{client: client}
}

// LatestApplicationRevision returns the most recently registered revision of
// an application as a CloudFormation Revision property in JSON.
func (l *DefaultCodeDeployLookups) LatestApplicationRevision(ctx context.Context, application string) (string, error) {
	if application == "" {
		return "", fmt.Errorf("application name must not be empty")
	}

	result, err := l.client.ListApplicationRevisions(ctx, &codedeploy.ListApplicationRevisionsInput{
		ApplicationName: aws.String(application),
		SortBy:          types.ApplicationRevisionSortByRegisterTime,
		SortOrder:       types.SortOrderDescending,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list revisions of application %s: %w", application, err)
	}
	if len(result.Revisions) == 0 {
		return "", fmt.Errorf("no revisions registered for application %s", application)
	}

	return revisionJSON(result.Revisions[0])
}

// DeploymentGroupRevision returns the target revision of a deployment group
// as a CloudFormation Revision property in JSON, or an empty string when the
// group does not exist or has no target revision.
func (l *DefaultCodeDeployLookups) DeploymentGroupRevision(ctx context.Context, application, group string) (string, error) {
	if application == "" {
		return "", fmt.Errorf("application name must not be empty")
	}
	if group == "" {
		return "", fmt.Errorf("deployment group name must not be empty")
	}

	result, err := l.client.GetDeploymentGroup(ctx, &codedeploy.GetDeploymentGroupInput{
		ApplicationName:     aws.String(application),
		DeploymentGroupName: aws.String(group),
	})
	if err != nil {
		var notFound *types.DeploymentGroupDoesNotExistException
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get deployment group %s of application %s: %w", group, application, err)
	}
	if result.DeploymentGroupInfo == nil || result.DeploymentGroupInfo.TargetRevision == nil {
		return "", nil
	}

	return revisionJSON(*result.DeploymentGroupInfo.TargetRevision)
}

// revisionJSON renders a revision with the capitalised keys CloudFormation expects
func revisionJSON(revision types.RevisionLocation) (string, error) {
	property := map[string]any{
		"RevisionType": string(revision.RevisionType),
	}
	if location := revision.S3Location; location != nil {
		s3 := map[string]any{
			"Bucket": aws.ToString(location.Bucket),
			"Key":    aws.ToString(location.Key),
		}
		if location.BundleType != "" {
			s3["BundleType"] = string(location.BundleType)
		}
		if location.ETag != nil {
			s3["ETag"] = aws.ToString(location.ETag)
		}
		if location.Version != nil {
			s3["Version"] = aws.ToString(location.Version)
		}
		property["S3Location"] = s3
	}
	if location := revision.GitHubLocation; location != nil {
		property["GitHubLocation"] = map[string]any{
			"Repository": aws.ToString(location.Repository),
			"CommitId":   aws.ToString(location.CommitId),
		}
	}

	data, err := json.Marshal(property)
	if err != nil {
		return "", fmt.Errorf("failed to encode revision: %w", err)
	}
	return string(data), nil
}
