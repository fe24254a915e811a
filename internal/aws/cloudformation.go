/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/google/uuid"
)

// Capabilities acknowledging templates that create IAM resources, the latter
// for resources with custom names.
const (
	CapabilityIAM      = "CAPABILITY_IAM"
	CapabilityNamedIAM = "CAPABILITY_NAMED_IAM"
)

// StackRecord represents a CloudFormation stack as reported by the API
type StackRecord struct {
	ID              string
	Name            string
	Status          string
	Description     string
	CreationTime    time.Time
	LastUpdatedTime *time.Time
	Parameters      map[string]string
	Tags            map[string]string
}

// StackEventRecord represents one entry of a stack's event history
type StackEventRecord struct {
	EventID              string
	StackID              string
	StackName            string
	LogicalResourceID    string
	PhysicalResourceID   string
	ResourceType         string
	ResourceStatus       string
	ResourceStatusReason string
	Timestamp            time.Time
}

// Parameter represents a CloudFormation stack parameter
type Parameter struct {
	Key   string
	Value string
}

// CreateStackInput contains parameters for creating a stack
type CreateStackInput struct {
	StackName    string
	TemplateURL  string
	Parameters   []Parameter
	Tags         map[string]string
	Capabilities []string
}

// UpdateStackInput contains parameters for updating a stack
type UpdateStackInput struct {
	StackName    string
	TemplateURL  string
	Parameters   []Parameter
	Capabilities []string
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client   CloudFormationClient
	newToken func() string
}

// NewCloudFormationOperationsWithClient creates operations with a custom client
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client:   client,
		newToken: uuid.NewString,
	}
}

// CreateStack creates a new CloudFormation stack and returns its id. Failed
// creations are left in place for inspection.
func (cf *DefaultCloudFormationOperations) CreateStack(ctx context.Context, input CreateStackInput) (string, error) {
	tags := make([]types.Tag, 0, len(input.Tags))
	for k, v := range input.Tags {
		tags = append(tags, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(v),
		})
	}
	sort.Slice(tags, func(i, j int) bool { return aws.ToString(tags[i].Key) < aws.ToString(tags[j].Key) })

	result, err := cf.client.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:          aws.String(input.StackName),
		TemplateURL:        aws.String(input.TemplateURL),
		Parameters:         toSDKParameters(input.Parameters),
		Tags:               tags,
		Capabilities:       toSDKCapabilities(input.Capabilities),
		OnFailure:          types.OnFailureDoNothing,
		ClientRequestToken: aws.String(cf.newToken()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create stack %s: %w", input.StackName, err)
	}

	return aws.ToString(result.StackId), nil
}

// UpdateStack updates an existing CloudFormation stack. Tags are not resent.
func (cf *DefaultCloudFormationOperations) UpdateStack(ctx context.Context, input UpdateStackInput) error {
	_, err := cf.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:          aws.String(input.StackName),
		TemplateURL:        aws.String(input.TemplateURL),
		Parameters:         toSDKParameters(input.Parameters),
		Capabilities:       toSDKCapabilities(input.Capabilities),
		ClientRequestToken: aws.String(cf.newToken()),
	})
	if err != nil {
		return fmt.Errorf("failed to update stack %s: %w", input.StackName, err)
	}

	return nil
}

// DeleteStack deletes a CloudFormation stack
func (cf *DefaultCloudFormationOperations) DeleteStack(ctx context.Context, stackName string) error {
	_, err := cf.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName:          aws.String(stackName),
		ClientRequestToken: aws.String(cf.newToken()),
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", stackName, err)
	}

	return nil
}

// DescribeStack retrieves a single stack. A missing stack yields ErrStackNotFound.
func (cf *DefaultCloudFormationOperations) DescribeStack(ctx context.Context, stackName string) (*StackRecord, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if IsStackNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, stackName)
	}

	return toStackRecord(result.Stacks[0]), nil
}

// ListStacks returns every stack that has not been deleted
func (cf *DefaultCloudFormationOperations) ListStacks(ctx context.Context) ([]*StackRecord, error) {
	var stacks []*StackRecord
	paginator := cloudformation.NewDescribeStacksPaginator(cf.client, &cloudformation.DescribeStacksInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stacks: %w", err)
		}

		for _, stack := range page.Stacks {
			if stack.StackStatus == types.StackStatusDeleteComplete {
				continue
			}
			stacks = append(stacks, toStackRecord(stack))
		}
	}

	return stacks, nil
}

// GetTemplate retrieves the original template of a stack
func (cf *DefaultCloudFormationOperations) GetTemplate(ctx context.Context, stackName string) (string, error) {
	result, err := cf.client.GetTemplate(ctx, &cloudformation.GetTemplateInput{
		StackName:     aws.String(stackName),
		TemplateStage: types.TemplateStageOriginal,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get template for stack %s: %w", stackName, err)
	}

	return aws.ToString(result.TemplateBody), nil
}

// PhysicalResourceID returns the physical id of a resource in a stack. It
// returns an empty id and no error when the stack does not exist.
func (cf *DefaultCloudFormationOperations) PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error) {
	result, err := cf.client.DescribeStackResource(ctx, &cloudformation.DescribeStackResourceInput{
		StackName:         aws.String(stackName),
		LogicalResourceId: aws.String(logicalID),
	})
	if err != nil {
		if IsStackNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to describe resource %s of stack %s: %w", logicalID, stackName, err)
	}

	if result.StackResourceDetail == nil {
		return "", fmt.Errorf("no resource with name %s found in stack %s", logicalID, stackName)
	}

	return aws.ToString(result.StackResourceDetail.PhysicalResourceId), nil
}

// DescribeStackEvents returns the full event history of a stack in the order
// the API reports it. Pass the stack id to read events of a deleted stack.
func (cf *DefaultCloudFormationOperations) DescribeStackEvents(ctx context.Context, stackName string) ([]StackEventRecord, error) {
	var events []StackEventRecord
	paginator := cloudformation.NewDescribeStackEventsPaginator(cf.client, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe stack events for %s: %w", stackName, err)
		}

		for _, event := range page.StackEvents {
			events = append(events, StackEventRecord{
				EventID:              aws.ToString(event.EventId),
				StackID:              aws.ToString(event.StackId),
				StackName:            aws.ToString(event.StackName),
				LogicalResourceID:    aws.ToString(event.LogicalResourceId),
				PhysicalResourceID:   aws.ToString(event.PhysicalResourceId),
				ResourceType:         aws.ToString(event.ResourceType),
				ResourceStatus:       string(event.ResourceStatus),
				ResourceStatusReason: aws.ToString(event.ResourceStatusReason),
				Timestamp:            aws.ToTime(event.Timestamp),
			})
		}
	}

	return events, nil
}

// ValidateTemplateURL validates an uploaded CloudFormation template
func (cf *DefaultCloudFormationOperations) ValidateTemplateURL(ctx context.Context, templateURL string) error {
	_, err := cf.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateURL: aws.String(templateURL),
	})
	if err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}

	return nil
}

// toSDKParameters returns nil for an empty list so the field is omitted from the request
func toSDKParameters(parameters []Parameter) []types.Parameter {
	if len(parameters) == 0 {
		return nil
	}

	params := make([]types.Parameter, len(parameters))
	for i, p := range parameters {
		params[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}
	return params
}

func toSDKCapabilities(capabilities []string) []types.Capability {
	out := make([]types.Capability, len(capabilities))
	for i, c := range capabilities {
		out[i] = types.Capability(c)
	}
	return out
}

func toStackRecord(stack types.Stack) *StackRecord {
	record := &StackRecord{
		ID:              aws.ToString(stack.StackId),
		Name:            aws.ToString(stack.StackName),
		Status:          string(stack.StackStatus),
		Description:     aws.ToString(stack.Description),
		CreationTime:    aws.ToTime(stack.CreationTime),
		LastUpdatedTime: stack.LastUpdatedTime,
		Parameters:      make(map[string]string),
		Tags:            make(map[string]string),
	}

	for _, param := range stack.Parameters {
		record.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}

	for _, tag := range stack.Tags {
		record.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return record
}
