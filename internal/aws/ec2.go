/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DefaultEC2Lookups implements EC2Lookups over the EC2 API
type DefaultEC2Lookups struct {
	client EC2Client
}

// NewEC2LookupsWithClient creates lookups with a custom client
func NewEC2LookupsWithClient(client EC2Client) *DefaultEC2Lookups {
	return &DefaultEC2Lookups{client: client}
}

// LatestImage returns the most recently created available image owned by
// owner whose description matches exactly.
func (l *DefaultEC2Lookups) LatestImage(ctx context.Context, owner, description string) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("image owner must not be empty")
	}
	if description == "" {
		return "", fmt.Errorf("image description must not be empty")
	}

	result, err := l.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{owner},
		Filters: []types.Filter{
			{Name: aws.String("description"), Values: []string{description}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe images: %w", err)
	}
	if len(result.Images) == 0 {
		return "", fmt.Errorf("no images owned by %s match description %q", owner, description)
	}

	var (
		latestID   string
		latestTime time.Time
	)
	for _, image := range result.Images {
		if image.State != types.ImageStateAvailable {
			continue
		}
		created, err := time.Parse(time.RFC3339, aws.ToString(image.CreationDate))
		if err != nil {
			return "", fmt.Errorf("failed to parse creation date of image %s: %w", aws.ToString(image.ImageId), err)
		}
		if latestID == "" || !created.Before(latestTime) {
			latestID, latestTime = aws.ToString(image.ImageId), created
		}
	}

	if latestID == "" {
		return "", fmt.Errorf("no available images owned by %s match description %q", owner, description)
	}
	return latestID, nil
}

// LatestVolumeSnapshot returns the most recent completed snapshot of a volume
func (l *DefaultEC2Lookups) LatestVolumeSnapshot(ctx context.Context, volumeID string) (string, error) {
	if volumeID == "" {
		return "", fmt.Errorf("volume id must not be empty")
	}

	result, err := l.client.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
		Filters: []types.Filter{
			{Name: aws.String("volume-id"), Values: []string{volumeID}},
			{Name: aws.String("status"), Values: []string{string(types.SnapshotStateCompleted)}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe snapshots of volume %s: %w", volumeID, err)
	}

	var (
		latestID   string
		latestTime time.Time
	)
	for _, snapshot := range result.Snapshots {
		if snapshot.State != types.SnapshotStateCompleted {
			continue
		}
		started := aws.ToTime(snapshot.StartTime)
		if latestID == "" || !started.Before(latestTime) {
			latestID, latestTime = aws.ToString(snapshot.SnapshotId), started
		}
	}

	if latestID == "" {
		return "", fmt.Errorf("no completed snapshots found for volume %s", volumeID)
	}
	return latestID, nil
}

// VolumeSourceSnapshot returns the snapshot a volume was created from, or an
// empty string when it was not created from one.
func (l *DefaultEC2Lookups) VolumeSourceSnapshot(ctx context.Context, volumeID string) (string, error) {
	if volumeID == "" {
		return "", fmt.Errorf("volume id must not be empty")
	}

	result, err := l.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe volume %s: %w", volumeID, err)
	}
	if len(result.Volumes) == 0 {
		return "", nil
	}

	return aws.ToString(result.Volumes[0].SnapshotId), nil
}
