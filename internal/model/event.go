/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"fmt"
	"time"
)

// StackEvent is one resource transition reported for a stack.
type StackEvent struct {
	// Stack is the stack the event was read for. It is not owned by the event.
	Stack *Stack

	Timestamp            time.Time
	LogicalResourceID    string
	PhysicalResourceID   string
	ResourceType         string
	ResourceStatus       string
	ResourceStatusReason string
}

func (e StackEvent) String() string {
	line := fmt.Sprintf("%s %s %s %s", e.Timestamp.Format(time.RFC3339), e.ResourceStatus, e.ResourceType, e.LogicalResourceID)
	if e.ResourceStatusReason != "" {
		line += " (" + e.ResourceStatusReason + ")"
	}
	return line
}

// Stack statuses the provider settles in once an operation has finished.
const (
	StatusCreateComplete         = "CREATE_COMPLETE"
	StatusCreateFailed           = "CREATE_FAILED"
	StatusUpdateComplete         = "UPDATE_COMPLETE"
	StatusDeleteComplete         = "DELETE_COMPLETE"
	StatusDeleteFailed           = "DELETE_FAILED"
	StatusRollbackComplete       = "ROLLBACK_COMPLETE"
	StatusRollbackFailed         = "ROLLBACK_FAILED"
	StatusUpdateRollbackComplete = "UPDATE_ROLLBACK_COMPLETE"
	StatusUpdateRollbackFailed   = "UPDATE_ROLLBACK_FAILED"
)

// TerminalStatuses end an operation on the stack resource itself.
var TerminalStatuses = []string{
	StatusCreateFailed,
	StatusCreateComplete,
	StatusDeleteFailed,
	StatusDeleteComplete,
	StatusRollbackFailed,
	StatusRollbackComplete,
	StatusUpdateComplete,
	StatusUpdateRollbackComplete,
	StatusUpdateRollbackFailed,
}

// IsStableStatus reports whether a stack in status may be updated automatically.
func IsStableStatus(status string) bool {
	switch status {
	case StatusCreateComplete, StatusUpdateComplete, StatusRollbackComplete:
		return true
	}
	return false
}

// IsTerminalStatus reports whether status is one of TerminalStatuses.
func IsTerminalStatus(status string) bool {
	for _, s := range TerminalStatuses {
		if s == status {
			return true
		}
	}
	return false
}
