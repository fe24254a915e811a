/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrStackNotFound is returned when a stack does not exist
var ErrStackNotFound = errors.New("stack does not exist")

// IsStackNotFound reports whether err means the stack does not exist.
// CloudFormation reports this as a generic ValidationError.
func IsStackNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStackNotFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" && strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}
	return false
}
