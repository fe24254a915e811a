/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orien/stackmanager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStack_LiveStack(t *testing.T) {
	updated := time.Date(2025, 1, 15, 14, 22, 10, 0, time.UTC)
	stack := model.NewTestLiveStack("Prod-Web", "prod", "web", map[string]string{
		"MinSize":      "2",
		"InstanceType": "t3.small",
	}, model.StatusUpdateComplete, updated)
	stack.Live.CreationTime = time.Date(2025, 1, 15, 10, 30, 45, 0, time.UTC)

	output := FormatStack(stack)

	assert.Contains(t, output, "Stack: Prod-Web\n")
	assert.Contains(t, output, "Environment: prod\n")
	assert.Contains(t, output, "Template: web\n")
	assert.Contains(t, output, "Status: UPDATE_COMPLETE\n")
	assert.Contains(t, output, "Created: 2025-01-15 10:30:45 UTC\n")
	assert.Contains(t, output, "Updated: 2025-01-15 14:22:10 UTC\n")
	assert.Contains(t, output, "Stack ID: arn:aws:cloudformation:eu-west-1:123456789012:stack/Prod-Web/0a1b2c3d\n")

	// Parameters are listed in key order
	assert.Less(t, strings.Index(output, "InstanceType: t3.small"), strings.Index(output, "MinSize: 2"))
}

func TestFormatStack_NeverUpdated(t *testing.T) {
	created := time.Date(2025, 1, 15, 10, 30, 45, 0, time.UTC)
	stack := model.NewTestLiveStack("Prod-Web", "prod", "web", nil, model.StatusCreateComplete, created)

	output := FormatStack(stack)

	assert.Contains(t, output, "Created: 2025-01-15 10:30:45 UTC\n")
	assert.NotContains(t, output, "Updated:")
	assert.NotContains(t, output, "Parameters:")
}

func TestFormatStack_DesiredStack(t *testing.T) {
	stack := model.NewTestStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"})

	output := FormatStack(stack)

	assert.NotContains(t, output, "Status:")
	assert.Contains(t, output, "Parameters:\n  MinSize: 2\n")
}

func TestFormatStackList(t *testing.T) {
	updated := time.Date(2025, 1, 15, 14, 22, 10, 0, time.UTC)
	stacks := []*model.Stack{
		model.NewTestLiveStack("Prod-Web", "prod", "web", nil, model.StatusUpdateComplete, updated),
		model.NewTestLiveStack("Dev-Database", "dev", "database", nil, model.StatusCreateComplete, updated),
	}

	lines := strings.Split(strings.TrimSuffix(FormatStackList(stacks), "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "ENVIRONMENT", "TEMPLATE", "STATUS", "LAST", "UPDATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Prod-Web", "prod", "web", "UPDATE_COMPLETE", "2025-01-15T14:22:10Z"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Dev-Database", "dev", "database", "CREATE_COMPLETE", "2025-01-15T14:22:10Z"}, strings.Fields(lines[2]))
}

func TestFormatPreview(t *testing.T) {
	stack := model.NewTestStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"})

	output, err := FormatPreview(context.Background(), stack)
	require.NoError(t, err)

	templateAt := strings.Index(output, "Template\n")
	parametersAt := strings.Index(output, "Parameters\n")
	tagsAt := strings.Index(output, "Tags\n")
	assert.Equal(t, 0, templateAt)
	assert.Less(t, templateAt, parametersAt)
	assert.Less(t, parametersAt, tagsAt)

	assert.Contains(t, output, "AWS::SQS::Queue")
	assert.Equal(t, []string{"MinSize", "2"}, strings.Fields(strings.Split(output[parametersAt:], "\n")[2]))
	assert.Contains(t, output[tagsAt:], model.EnvironmentTag)
	assert.Contains(t, output[tagsAt:], model.TemplateTag)
}

func TestFormatPreview_TemplateError(t *testing.T) {
	loader := model.BodyLoaderFunc(func(ctx context.Context) (model.Body, error) {
		return nil, errors.New("access denied")
	})
	stack, err := model.NewStack("Prod-Web", "prod", model.NewDeferredTemplate("web", loader), model.NewParameters(nil))
	require.NoError(t, err)

	_, err = FormatPreview(context.Background(), stack)

	assert.ErrorContains(t, err, "access denied")
}
