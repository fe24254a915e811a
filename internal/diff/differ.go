/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"context"
	"fmt"
	"strings"

	"github.com/orien/stackmanager/internal/model"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
)

// diffContext is the number of unchanged lines around each hunk
const diffContext = 3

// StackDiffer implements Differ
type StackDiffer struct {
	logger zerolog.Logger
}

// NewStackDiffer creates a new StackDiffer
func NewStackDiffer(logger zerolog.Logger) *StackDiffer {
	return &StackDiffer{logger: logger.With().Str("component", "differ").Logger()}
}

// DiffStack compares live with desired. Both template bodies are
// materialized, which expands nested stacks of the live template.
func (d *StackDiffer) DiffStack(ctx context.Context, live, desired *model.Stack) (*Result, error) {
	result := &Result{
		StackName:   live.Name,
		Environment: live.Environment,
	}

	identical, err := model.IsIdentical(ctx, live, desired)
	if err != nil {
		return nil, fmt.Errorf("failed to compare stack %s: %w", live.Name, err)
	}
	result.Identical = identical
	if identical {
		d.logger.Debug().Str("stack", live.Name).Msg("Stack matches its configuration")
		return result, nil
	}

	result.ParameterDiffs = CompareParameters(live.Parameters, desired.Parameters)
	result.TagDiffs = CompareTags(live.Tags(), desired.Tags())

	result.ParameterDiff, err = unifiedDiff(joinLines(live.Parameters.Lines()), joinLines(desired.Parameters.Lines()), "parameters")
	if err != nil {
		return nil, err
	}

	liveJSON, err := live.Template.JSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read live template of stack %s: %w", live.Name, err)
	}
	desiredJSON, err := desired.Template.JSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read desired template of stack %s: %w", live.Name, err)
	}
	result.TemplateDiff, err = unifiedDiff(string(liveJSON), string(desiredJSON), "template/"+desired.Template.Name())
	if err != nil {
		return nil, err
	}

	d.logger.Debug().
		Str("stack", live.Name).
		Int("parameter_changes", len(result.ParameterDiffs)).
		Int("tag_changes", len(result.TagDiffs)).
		Bool("template_changed", result.TemplateDiff != "").
		Msg("Stack differs from its configuration")

	return result, nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// unifiedDiff returns an empty string when both texts are equal
func unifiedDiff(live, desired, name string) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(live),
		B:        difflib.SplitLines(desired),
		FromFile: "live/" + name,
		ToFile:   "desired/" + name,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", name, err)
	}
	return text, nil
}
