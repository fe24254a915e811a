/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"testing"

	"github.com/orien/stackmanager/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	originalVersion := version.Version
	version.Version = "1.2.3"
	defer func() { version.Version = originalVersion }()

	stdout, _, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "stackmanager 1.2.3")
	assert.Contains(t, stdout, "Go version:")
}

func TestVersionCommand_Short(t *testing.T) {
	originalVersion := version.Version
	version.Version = "1.2.3"
	defer func() { version.Version = originalVersion }()

	stdout, _, err := executeCommand(t, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", stdout)
}
