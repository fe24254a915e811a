/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package store keeps squashed templates in S3 under content addressed keys.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client defines the S3 calls used by the store
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ S3Client = (*s3.Client)(nil)

// S3Store stores templates as objects of a single bucket
type S3Store struct {
	client S3Client
	bucket string
	region string
}

// NewS3Store creates a store for bucket in region
func NewS3Store(client S3Client, bucket, region string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("template bucket must be configured")
	}
	if region == "" {
		return nil, fmt.Errorf("template bucket region must be configured")
	}
	return &S3Store{client: client, bucket: bucket, region: region}, nil
}

// Put uploads data under key and returns the object URL
func (s *S3Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s in bucket %s: %w", key, s.bucket, err)
	}

	return s.URL(key), nil
}

// Get downloads the object behind a URL of this store's bucket
func (s *S3Store) Get(ctx context.Context, objectURL string) ([]byte, error) {
	key, err := s.Key(objectURL)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", key, s.bucket, err)
	}
	defer func() { _ = result.Body.Close() }()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// URL returns the virtual hosted style URL of key
func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Key extracts the object key from a URL in this store's bucket. Virtual
// hosted and path style URLs are accepted, with or without a region.
func (s *S3Store) Key(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", fmt.Errorf("invalid object URL %q: %w", objectURL, err)
	}

	host := strings.ToLower(u.Hostname())
	path := strings.TrimPrefix(u.Path, "/")

	switch {
	case host == s.bucket+".s3.amazonaws.com",
		host == s.bucket+".s3."+s.region+".amazonaws.com",
		host == s.bucket+".s3-"+s.region+".amazonaws.com":
		if path != "" {
			return path, nil
		}
	case host == "s3.amazonaws.com",
		host == "s3."+s.region+".amazonaws.com",
		host == "s3-"+s.region+".amazonaws.com":
		if key, ok := strings.CutPrefix(path, s.bucket+"/"); ok && key != "" {
			return key, nil
		}
	}

	return "", fmt.Errorf("URL %q is not an object of bucket %s", objectURL, s.bucket)
}
