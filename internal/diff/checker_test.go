/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"context"
	"errors"
	"testing"

	"github.com/orien/stackmanager/internal/describe"
	"github.com/orien/stackmanager/internal/model"
	"github.com/orien/stackmanager/internal/resolve"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChecker_CheckStacks(t *testing.T) {
	ctx := context.Background()
	describer := &describe.MockDescriber{}
	mapper := &resolve.MockStackMapper{}

	web := model.NewTestLiveStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"}, model.StatusUpdateComplete, lastUpdated)
	api := model.NewTestLiveStack("Prod-Api", "prod", "api", map[string]string{"MinSize": "2"}, model.StatusUpdateComplete, lastUpdated)
	broken := model.NewTestLiveStack("Prod-Db", "prod", "db", nil, model.StatusUpdateComplete, lastUpdated)
	describer.On("ListStacks", ctx).Return([]*model.Stack{web, api, broken}, nil)

	mapper.On("Create", ctx, resolve.StackRequest{Template: "web", Environment: "prod", ScalingProfile: "default", Name: "Prod-Web"}).
		Return(model.NewTestStack("Prod-Web", "prod", "web", map[string]string{"MinSize": "2"}), nil)
	mapper.On("Create", ctx, resolve.StackRequest{Template: "api", Environment: "prod", ScalingProfile: "default", Name: "Prod-Api"}).
		Return(model.NewTestStack("Prod-Api", "prod", "api", map[string]string{"MinSize": "4"}), nil)
	mapper.On("Create", ctx, mock.MatchedBy(func(req resolve.StackRequest) bool { return req.Template == "db" })).
		Return(nil, errors.New("template 'db' not found in configuration"))

	var progress []string
	results, err := NewChecker(describer, mapper, zerolog.Nop()).CheckStacks(ctx, func(r CheckResult) {
		progress = append(progress, r.Stack.Name)
	})

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.False(t, results[0].HasChanges)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[1].HasChanges)
	assert.ErrorContains(t, results[2].Err, "not found in configuration")
	assert.Equal(t, []string{"Prod-Web", "Prod-Api", "Prod-Db"}, progress)
}

func TestChecker_CheckStacks_ListError(t *testing.T) {
	ctx := context.Background()
	describer := &describe.MockDescriber{}
	describer.On("ListStacks", ctx).Return(nil, errors.New("access denied"))

	_, err := NewChecker(describer, &resolve.MockStackMapper{}, zerolog.Nop()).CheckStacks(ctx, nil)

	assert.ErrorContains(t, err, "failed to list stacks")
}
