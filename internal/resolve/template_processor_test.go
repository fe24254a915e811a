/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCfnTemplateProcessor_Process_RenderContext(t *testing.T) {
	processor := NewCfnTemplateProcessor(Lookups{})

	template := `{"Description": "{{ .Environment }} {{ .RootStackName }}", "Size": "{{ index .Parameters "MinSize" }}", "Same": "{{ index .StackParameters "MinSize" }}"}`

	result, err := processor.Process(context.Background(), "web", template, RenderContext{
		Environment:     "prod",
		Parameters:      map[string]string{"MinSize": "2"},
		StackParameters: map[string]string{"MinSize": "2"},
		RootStackName:   "Prod-Web-2025W7",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"Description": "prod Prod-Web-2025W7", "Size": "2", "Same": "2"}`, result)
}

func TestCfnTemplateProcessor_Process_SprigFunctions(t *testing.T) {
	processor := NewCfnTemplateProcessor(Lookups{})

	template := `{"Name": {{ .Environment | upper | quote }}, "A": {{ .Parameters.A | quote }}, "C": {{ .Parameters.C | default "3" | quote }}}`

	result, err := processor.Process(context.Background(), "web", template, RenderContext{
		Environment: "prod",
		Parameters:  map[string]string{"B": "2", "A": "1"},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"Name": "PROD", "A": "1", "C": "3"}`, result)
}

func TestCfnTemplateProcessor_Process_Cidr(t *testing.T) {
	processor := NewCfnTemplateProcessor(Lookups{})
	template := `{{ cidr "10.0.0.0/16" 24 }} {{ cidr "10.0.0.0/16" 24 }} {{ cidr "10.0.0.0/16" 20 }}`

	first, err := processor.Process(context.Background(), "vpc", template, RenderContext{})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24 10.0.1.0/24 10.0.16.0/20", first)

	// Each render starts from a fresh allocator
	second, err := processor.Process(context.Background(), "vpc", template, RenderContext{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCfnTemplateProcessor_Process_CidrExhausted(t *testing.T) {
	processor := NewCfnTemplateProcessor(Lookups{})

	_, err := processor.Process(context.Background(), "vpc", `{{ cidr "10.0.0.0/24" 16 }}`, RenderContext{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the size of the container block")
}

func TestCfnTemplateProcessor_Process_ProviderLookups(t *testing.T) {
	ctx := context.Background()
	resources := &aws.MockCloudFormationOperations{}
	ec2 := &aws.MockEC2Lookups{}
	processor := NewCfnTemplateProcessor(Lookups{Resources: resources, EC2: ec2})

	resources.On("PhysicalResourceID", ctx, "Prod-Network", "Vpc").Return("vpc-123", nil)
	ec2.On("LatestImage", ctx, "amazon", "Amazon Linux 2023").Return("ami-456", nil)
	ec2.On("LatestVolumeSnapshot", ctx, "vol-1").Return("snap-1", nil)
	ec2.On("VolumeSourceSnapshot", ctx, "vol-2").Return("snap-2", nil)

	template := `{{ physicalResourceId "Prod-Network" "Vpc" }} {{ latestImage "amazon" "Amazon Linux 2023" }} {{ latestVolumeSnapshot "vol-1" }} {{ volumeSourceSnapshot "vol-2" }}`

	result, err := processor.Process(ctx, "web", template, RenderContext{})

	require.NoError(t, err)
	assert.Equal(t, "vpc-123 ami-456 snap-1 snap-2", result)
	resources.AssertExpectations(t)
	ec2.AssertExpectations(t)
}

func TestCfnTemplateProcessor_Process_RDSAndCodeDeployLookups(t *testing.T) {
	ctx := context.Background()
	rds := &aws.MockRDSLookups{}
	codeDeploy := &aws.MockCodeDeployLookups{}
	processor := NewCfnTemplateProcessor(Lookups{RDS: rds, CodeDeploy: codeDeploy})

	rds.On("LatestDBSnapshot", ctx, "prod-db").Return("rds:prod-db-2025-03-14", nil)
	rds.On("DBInstanceTag", ctx, "prod-db", "Schema").Return("v42", nil)
	codeDeploy.On("LatestApplicationRevision", ctx, "web").Return(`{"RevisionType":"S3"}`, nil)
	codeDeploy.On("DeploymentGroupRevision", ctx, "web", "prod").Return("", nil)

	template := `{{ latestRdsSnapshot "prod-db" }} {{ rdsInstanceTag "prod-db" "Schema" }} {{ latestApplicationRevision "web" }} [{{ deploymentGroupRevision "web" "prod" }}]`

	result, err := processor.Process(ctx, "web", template, RenderContext{})

	require.NoError(t, err)
	assert.Equal(t, `rds:prod-db-2025-03-14 v42 {"RevisionType":"S3"} []`, result)
	rds.AssertExpectations(t)
	codeDeploy.AssertExpectations(t)
}

func TestCfnTemplateProcessor_Process_LookupErrors(t *testing.T) {
	ctx := context.Background()
	ec2 := &aws.MockEC2Lookups{}
	ec2.On("LatestImage", ctx, mock.Anything, mock.Anything).Return("", errors.New("no available images"))
	processor := NewCfnTemplateProcessor(Lookups{EC2: ec2})

	tests := []struct {
		name     string
		template string
		wantErr  string
	}{
		{name: "empty stack name", template: `{{ physicalResourceId "" "Vpc" }}`, wantErr: "stack name must not be empty"},
		{name: "empty logical id", template: `{{ physicalResourceId "Stack" "" }}`, wantErr: "logical resource id must not be empty"},
		{name: "no resource lookup", template: `{{ physicalResourceId "Stack" "Vpc" }}`, wantErr: "lookup is not available"},
		{name: "empty image owner", template: `{{ latestImage "" "x" }}`, wantErr: "must not be empty"},
		{name: "empty volume", template: `{{ latestVolumeSnapshot "" }}`, wantErr: "volume id must not be empty"},
		{name: "empty source volume", template: `{{ volumeSourceSnapshot "" }}`, wantErr: "volume id must not be empty"},
		{name: "provider error", template: `{{ latestImage "amazon" "x" }}`, wantErr: "no available images"},
		{name: "empty DB instance", template: `{{ latestRdsSnapshot "" }}`, wantErr: "DB instance identifier must not be empty"},
		{name: "empty tag key", template: `{{ rdsInstanceTag "prod-db" "" }}`, wantErr: "must not be empty"},
		{name: "no RDS lookup", template: `{{ latestRdsSnapshot "prod-db" }}`, wantErr: "lookup is not available"},
		{name: "empty application", template: `{{ latestApplicationRevision "" }}`, wantErr: "application name must not be empty"},
		{name: "empty deployment group", template: `{{ deploymentGroupRevision "web" "" }}`, wantErr: "must not be empty"},
		{name: "no CodeDeploy lookup", template: `{{ deploymentGroupRevision "web" "prod" }}`, wantErr: "lookup is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := processor.Process(ctx, "web", tt.template, RenderContext{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCfnTemplateProcessor_Process_ParseError(t *testing.T) {
	processor := NewCfnTemplateProcessor(Lookups{})

	_, err := processor.Process(context.Background(), "web", `{{ .Environment `, RenderContext{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template web")
}
