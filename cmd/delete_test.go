/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"testing"

	"github.com/orien/stackmanager/internal/delete"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteCommand_Flags(t *testing.T) {
	deleteCmd := findCommand(rootCmd, "delete-stack")
	require.NotNil(t, deleteCmd)

	really := deleteCmd.Flags().Lookup("really")
	require.NotNil(t, really)
	assert.Equal(t, "false", really.DefValue)

	watchFlag := deleteCmd.Flags().Lookup("watch")
	require.NotNil(t, watchFlag)
	assert.Equal(t, "false", watchFlag.DefValue)
}

func TestDeleteCommand_PassesOptions(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected delete.Options
	}{
		{"defaults", nil, delete.Options{}},
		{"really", []string{"--really"}, delete.Options{Really: true}},
		{"really and watch", []string{"--really", "--watch"}, delete.Options{Really: true, Watch: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetCollaborators(t)
			mockDeleter := &delete.MockDeleter{}
			mockDeleter.On("DeleteStack", mock.Anything, "Dev-Web-2025W7", tt.expected).Return(nil)
			SetDeleter(mockDeleter)

			_, _, err := executeCommand(t, append([]string{"delete-stack", "Dev-Web-2025W7"}, tt.args...)...)

			require.NoError(t, err)
			mockDeleter.AssertExpectations(t)
		})
	}
}

func TestDeleteCommand_NotConfirmed(t *testing.T) {
	resetCollaborators(t)
	mockDeleter := &delete.MockDeleter{}
	mockDeleter.On("DeleteStack", mock.Anything, "Dev-Web-2025W7", delete.Options{}).Return(delete.ErrNotConfirmed)
	SetDeleter(mockDeleter)

	_, _, err := executeCommand(t, "delete-stack", "Dev-Web-2025W7")

	assert.ErrorIs(t, err, delete.ErrNotConfirmed)
}

func TestDeleteCommand_RequiresName(t *testing.T) {
	_, _, err := executeCommand(t, "delete-stack")

	assert.Error(t, err)
}
