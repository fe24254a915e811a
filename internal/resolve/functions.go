/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/orien/stackmanager/internal/aws"
	"github.com/orien/stackmanager/internal/cidr"
)

// PhysicalResourceLookup resolves a logical resource of a stack to its physical id
type PhysicalResourceLookup interface {
	PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error)
}

// Lookups are the provider queries exposed to templates. Any may be nil, in
// which case the matching functions fail when called.
type Lookups struct {
	Resources  PhysicalResourceLookup
	EC2        aws.EC2Lookups
	RDS        aws.RDSLookups
	CodeDeploy aws.CodeDeployLookups
}

var errLookupUnavailable = errors.New("lookup is not available")

// templateFuncs returns the provider lookup functions bound to ctx. The
// allocator is shared by every cidr call of one render.
func templateFuncs(ctx context.Context, lookups Lookups, allocator *cidr.Allocator) template.FuncMap {
	return template.FuncMap{
		"cidr": func(container string, bits int) (string, error) {
			return allocator.AllocateString(container, bits)
		},
		"physicalResourceId": func(stackName, logicalID string) (string, error) {
			if stackName == "" {
				return "", fmt.Errorf("physicalResourceId: stack name must not be empty")
			}
			if logicalID == "" {
				return "", fmt.Errorf("physicalResourceId: logical resource id must not be empty")
			}
			if lookups.Resources == nil {
				return "", fmt.Errorf("physicalResourceId: %w", errLookupUnavailable)
			}
			return lookups.Resources.PhysicalResourceID(ctx, stackName, logicalID)
		},
		"latestImage": func(owner, description string) (string, error) {
			if owner == "" || description == "" {
				return "", fmt.Errorf("latestImage: owner and description must not be empty")
			}
			if lookups.EC2 == nil {
				return "", fmt.Errorf("latestImage: %w", errLookupUnavailable)
			}
			return lookups.EC2.LatestImage(ctx, owner, description)
		},
		"latestVolumeSnapshot": func(volumeID string) (string, error) {
			if volumeID == "" {
				return "", fmt.Errorf("latestVolumeSnapshot: volume id must not be empty")
			}
			if lookups.EC2 == nil {
				return "", fmt.Errorf("latestVolumeSnapshot: %w", errLookupUnavailable)
			}
			return lookups.EC2.LatestVolumeSnapshot(ctx, volumeID)
		},
		"volumeSourceSnapshot": func(volumeID string) (string, error) {
			if volumeID == "" {
				return "", fmt.Errorf("volumeSourceSnapshot: volume id must not be empty")
			}
			if lookups.EC2 == nil {
				return "", fmt.Errorf("volumeSourceSnapshot: %w", errLookupUnavailable)
			}
			return lookups.EC2.VolumeSourceSnapshot(ctx, volumeID)
		},
		"latestRdsSnapshot": func(instanceID string) (string, error) {
			if instanceID == "" {
				return "", fmt.Errorf("latestRdsSnapshot: DB instance identifier must not be empty")
			}
			if lookups.RDS == nil {
				return "", fmt.Errorf("latestRdsSnapshot: %w", errLookupUnavailable)
			}
			return lookups.RDS.LatestDBSnapshot(ctx, instanceID)
		},
		"rdsInstanceTag": func(instanceID, key string) (string, error) {
			if instanceID == "" || key == "" {
				return "", fmt.Errorf("rdsInstanceTag: DB instance identifier and tag key must not be empty")
			}
			if lookups.RDS == nil {
				return "", fmt.Errorf("rdsInstanceTag: %w", errLookupUnavailable)
			}
			return lookups.RDS.DBInstanceTag(ctx, instanceID, key)
		},
		"latestApplicationRevision": func(application string) (string, error) {
			if application == "" {
				return "", fmt.Errorf("latestApplicationRevision: application name must not be empty")
			}
			if lookups.CodeDeploy == nil {
				return "", fmt.Errorf("latestApplicationRevision: %w", errLookupUnavailable)
			}
			return lookups.CodeDeploy.LatestApplicationRevision(ctx, application)
		},
		"deploymentGroupRevision": func(application, group string) (string, error) {
			if application == "" || group == "" {
				return "", fmt.Errorf("deploymentGroupRevision: application and deployment group names must not be empty")
			}
			if lookups.CodeDeploy == nil {
				return "", fmt.Errorf("deploymentGroupRevision: %w", errLookupUnavailable)
			}
			return lookups.CodeDeploy.DeploymentGroupRevision(ctx, application, group)
		},
	}
}
