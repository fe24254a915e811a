/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package diff compares live stacks with the stacks their configuration
// describes. Differences are reported per key and as unified diffs of the
// canonical parameter listing and template JSON.
package diff

import (
	"context"

	"github.com/orien/stackmanager/internal/model"
)

// Differ defines the interface for performing stack diffs
type Differ interface {
	// DiffStack compares a live stack with its desired configuration
	DiffStack(ctx context.Context, live, desired *model.Stack) (*Result, error)
}

// Result contains the results of a stack diff operation
type Result struct {
	StackName      string
	Environment    string
	Identical      bool
	ParameterDiffs []ParameterDiff
	TagDiffs       []TagDiff
	// ParameterDiff and TemplateDiff are unified diffs, empty when equal
	ParameterDiff string
	TemplateDiff  string
}

// HasChanges returns true if any changes were detected
func (r *Result) HasChanges() bool {
	return !r.Identical
}

// ParameterDiff represents a difference in stack parameters
type ParameterDiff struct {
	Key           string
	CurrentValue  string
	ProposedValue string
	ChangeType    ChangeType
}

// TagDiff represents a difference in stack tags
type TagDiff struct {
	Key           string
	CurrentValue  string
	ProposedValue string
	ChangeType    ChangeType
}

// ChangeType indicates the type of change detected
type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "ADD"
	ChangeTypeModify ChangeType = "MODIFY"
	ChangeTypeRemove ChangeType = "REMOVE"
)
