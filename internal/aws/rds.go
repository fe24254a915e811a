/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// DefaultRDSLookups implements RDSLookups over the RDS API
type DefaultRDSLookups struct {
	client RDSClient
}

// NewRDSLookupsWithClient creates lookups with a custom client
func NewRDSLookupsWithClient(client RDSClient) *DefaultRDSLookups {
	return &DefaultRDSLookups{client: client}
}

// LatestDBSnapshot returns the most recent automated snapshot of a DB instance
func (l *DefaultRDSLookups) LatestDBSnapshot(ctx context.Context, instanceID string) (string, error) {
	if instanceID == "" {
		return "", fmt.Errorf("DB instance identifier must not be empty")
	}

	var (
		latestID   string
		latestTime time.Time
		marker     *string
	)
	for {
		result, err := l.client.DescribeDBSnapshots(ctx, &rds.DescribeDBSnapshotsInput{
			DBInstanceIdentifier: aws.String(instanceID),
			SnapshotType:         aws.String("automated"),
			Marker:               marker,
		})
		if err != nil {
			return "", fmt.Errorf("failed to describe snapshots of DB instance %s: %w", instanceID, err)
		}

		for _, snapshot := range result.DBSnapshots {
			created := aws.ToTime(snapshot.SnapshotCreateTime)
			if latestID == "" || !created.Before(latestTime) {
				latestID, latestTime = aws.ToString(snapshot.DBSnapshotIdentifier), created
			}
		}

		marker = result.Marker
		if aws.ToString(marker) == "" {
			break
		}
	}

	if latestID == "" {
		return "", fmt.Errorf("no automated snapshots found for DB instance %s", instanceID)
	}
	return latestID, nil
}

// DBInstanceTag returns the value of a tag of a DB instance, or an empty
// string when the instance or the tag does not exist.
func (l *DefaultRDSLookups) DBInstanceTag(ctx context.Context, instanceID, key string) (string, error) {
	if instanceID == "" {
		return "", fmt.Errorf("DB instance identifier must not be empty")
	}
	if key == "" {
		return "", fmt.Errorf("tag key must not be empty")
	}

	result, err := l.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(instanceID),
	})
	if err != nil {
		var notFound *types.DBInstanceNotFoundFault
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to describe DB instance %s: %w", instanceID, err)
	}

	for _, instance := range result.DBInstances {
		for _, tag := range instance.TagList {
			if aws.ToString(tag.Key) == key {
				return aws.ToString(tag.Value), nil
			}
		}
	}
	return "", nil
}
