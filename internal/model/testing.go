/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import "time"

// NewTestBody returns a minimal template body with one queue resource.
func NewTestBody() Body {
	return Body{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": map[string]any{
			"Queue": map[string]any{
				"Type": "AWS::SQS::Queue",
			},
		},
	}
}

// NewTestStack creates a desired stack for testing purposes. It panics on an
// invalid name.
func NewTestStack(name, environment, template string, parameters map[string]string) *Stack {
	stack, err := NewStack(name, environment, NewTemplate(template, NewTestBody()), NewParameters(parameters))
	if err != nil {
		panic(err)
	}
	return stack
}

// NewTestLiveStack creates a live stack for testing purposes.
func NewTestLiveStack(name, environment, template string, parameters map[string]string, status string, lastUpdated time.Time) *Stack {
	stack := NewTestStack(name, environment, template, parameters)
	stack.Live = &LiveMetadata{
		ID:              "arn:aws:cloudformation:eu-west-1:123456789012:stack/" + name + "/0a1b2c3d",
		Status:          status,
		CreationTime:    lastUpdated,
		LastUpdatedTime: lastUpdated,
	}
	return stack
}
