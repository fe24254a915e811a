/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"testing"

	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand(t *testing.T) {
	resetCollaborators(t)
	mapper := &resolve.MockStackMapper{}
	mapper.On("Create", mock.Anything, resolve.StackRequest{
		Template:       "web",
		Environment:    "prod",
		ScalingProfile: model.DefaultScalingProfile,
	}).Return(model.NewTestStack("Prod-Web-2025W7", "prod", "web", map[string]string{"MinSize": "2"}), nil)
	SetStackMapper(mapper)

	stdout, _, err := executeCommand(t, "preview-stack", "web", "prod")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Template\n")
	assert.Contains(t, stdout, "AWS::SQS::Queue")
	assert.Contains(t, stdout, "Parameters\n")
	assert.Contains(t, stdout, "Tags\n")
	assert.Contains(t, stdout, model.EnvironmentTag)
	mapper.AssertExpectations(t)
}

func TestPreviewCommand_Options(t *testing.T) {
	resetCollaborators(t)
	mapper := &resolve.MockStackMapper{}
	mapper.On("Create", mock.Anything, resolve.StackRequest{
		Template:       "web",
		Environment:    "prod",
		ScalingProfile: "busy",
		Name:           "Prod-Web",
	}).Return(model.NewTestStack("Prod-Web", "prod", "web", nil), nil)
	SetStackMapper(mapper)

	_, _, err := executeCommand(t, "preview-stack", "web", "prod", "--scaling-profile", "busy", "--name", "Prod-Web")

	require.NoError(t, err)
	mapper.AssertExpectations(t)
}

func TestPreviewCommand_MissingParameters(t *testing.T) {
	resetCollaborators(t)
	mapper := &resolve.MockStackMapper{}
	mapper.On("Create", mock.Anything, mock.Anything).Return(nil, &resolve.MissingParametersError{
		Template: "web",
		Layer:    resolve.LayerEnvironment,
		Name:     "staging",
	})
	SetStackMapper(mapper)

	_, _, err := executeCommand(t, "preview-stack", "web", "staging")

	require.Error(t, err)
	var missing *resolve.MissingParametersError
	assert.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), `no parameters found for environment "staging" of template "web"`)
}
