/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lastUpdated = time.Date(2025, 1, 15, 14, 22, 10, 0, time.UTC)

func topicBody() model.Body {
	body := model.NewTestBody()
	model.Resources(body)["Topic"] = map[string]any{"Type": "AWS::SNS::Topic"}
	return body
}

func TestStackDiffer_DiffStack_Identical(t *testing.T) {
	ctx := context.Background()
	live := model.NewTestLiveStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"}, model.StatusUpdateComplete, lastUpdated)
	desired := model.NewTestStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"})

	result, err := NewStackDiffer(zerolog.Nop()).DiffStack(ctx, live, desired)

	require.NoError(t, err)
	assert.True(t, result.Identical)
	assert.False(t, result.HasChanges())
	assert.Empty(t, result.ParameterDiff)
	assert.Empty(t, result.TemplateDiff)
	assert.Equal(t, "Prod-Web", result.StackName)
	assert.Equal(t, "prod", result.Environment)
}

func TestStackDiffer_DiffStack_ParametersAndTemplate(t *testing.T) {
	ctx := context.Background()
	live := model.NewTestLiveStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2", "KeyName": "prod"}, model.StatusUpdateComplete, lastUpdated)
	desired, err := model.NewStack("Prod-Web", "prod", model.NewTemplate("web", topicBody()), model.NewParameters(map[string]string{
		"MinSize": "6",
		"MaxSize": "12",
	}))
	require.NoError(t, err)

	result, err := NewStackDiffer(zerolog.Nop()).DiffStack(ctx, live, desired)
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.Equal(t, []ParameterDiff{
		{Key: "KeyName", CurrentValue: "prod", ChangeType: ChangeTypeRemove},
		{Key: "MaxSize", ProposedValue: "12", ChangeType: ChangeTypeAdd},
		{Key: "MinSize", CurrentValue: "2", ProposedValue: "6", ChangeType: ChangeTypeModify},
	}, result.ParameterDiffs)
	assert.Empty(t, result.TagDiffs)

	assert.Contains(t, result.ParameterDiff, "--- live/parameters\n")
	assert.Contains(t, result.ParameterDiff, "+++ desired/parameters\n")
	assert.Contains(t, result.ParameterDiff, "-KeyName = \"prod\"\n")
	assert.Contains(t, result.ParameterDiff, "-MinSize = \"2\"\n")
	assert.Contains(t, result.ParameterDiff, "+MinSize = \"6\"\n")
	assert.Contains(t, result.ParameterDiff, "+MaxSize = \"12\"\n")

	assert.Contains(t, result.TemplateDiff, "--- live/template/web\n")
	assert.Contains(t, result.TemplateDiff, "+++ desired/template/web\n")
	var added []string
	for _, line := range strings.Split(result.TemplateDiff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added = append(added, strings.TrimSpace(line[1:]))
		}
	}
	assert.Contains(t, added, `"Type": "AWS::SNS::Topic"`)
}

func TestStackDiffer_DiffStack_TemplateOnly(t *testing.T) {
	ctx := context.Background()
	live := model.NewTestLiveStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"}, model.StatusUpdateComplete, lastUpdated)
	desired, err := model.NewStack("Prod-Web", "prod", model.NewTemplate("web", topicBody()), model.NewParameters(map[string]string{"MinSize": "2"}))
	require.NoError(t, err)

	result, err := NewStackDiffer(zerolog.Nop()).DiffStack(ctx, live, desired)

	require.NoError(t, err)
	assert.True(t, result.HasChanges())
	assert.Empty(t, result.ParameterDiffs)
	assert.Empty(t, result.ParameterDiff)
	assert.NotEmpty(t, result.TemplateDiff)
}

func TestStackDiffer_DiffStack_EnvironmentTag(t *testing.T) {
	ctx := context.Background()
	live := model.NewTestLiveStack("Prod-Web", "prod", "web", nil, model.StatusUpdateComplete, lastUpdated)
	desired := model.NewTestStack("Prod-Web", "staging", "web", nil)

	result, err := NewStackDiffer(zerolog.Nop()).DiffStack(ctx, live, desired)

	require.NoError(t, err)
	assert.Equal(t, []TagDiff{
		{Key: model.EnvironmentTag, CurrentValue: "prod", ProposedValue: "staging", ChangeType: ChangeTypeModify},
	}, result.TagDiffs)
}

func TestStackDiffer_DiffStack_LiveTemplateError(t *testing.T) {
	ctx := context.Background()
	live := model.NewTestLiveStack("Prod-Web", "prod", "web", nil, model.StatusUpdateComplete, lastUpdated)
	live.Template = model.NewDeferredTemplate("web", model.BodyLoaderFunc(func(context.Context) (model.Body, error) {
		return nil, errors.New("access denied")
	}))
	desired := model.NewTestStack("Prod-Web", "prod", "web", nil)

	_, err := NewStackDiffer(zerolog.Nop()).DiffStack(ctx, live, desired)

	assert.ErrorContains(t, err, "failed to compare stack Prod-Web")
	assert.ErrorContains(t, err, "access denied")
}

func TestStackDiffer_ImplementsDiffer(t *testing.T) {
	var _ Differ = &StackDiffer{}
	var _ Differ = &MockDiffer{}
}
