/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/orien/stackmanager/internal/model"
)

// FormatStack formats a live stack for display
func FormatStack(stack *model.Stack) string {
	var output strings.Builder

	fmt.Fprintf(&output, "Stack: %s\n", stack.Name)
	fmt.Fprintf(&output, "Environment: %s\n", stack.Environment)
	fmt.Fprintf(&output, "Template: %s\n", stack.Template.Name())
	if stack.Live != nil {
		fmt.Fprintf(&output, "Status: %s\n", stack.Live.Status)
		if !stack.Live.CreationTime.IsZero() {
			fmt.Fprintf(&output, "Created: %s\n", formatTime(stack.Live.CreationTime))
		}
		if !stack.Live.LastUpdatedTime.Equal(stack.Live.CreationTime) {
			fmt.Fprintf(&output, "Updated: %s\n", formatTime(stack.Live.LastUpdatedTime))
		}
		if stack.Live.ID != "" {
			fmt.Fprintf(&output, "Stack ID: %s\n", stack.Live.ID)
		}
	}

	if stack.Parameters.Len() > 0 {
		output.WriteString("\nParameters:\n")
		for _, key := range stack.Parameters.Keys() {
			value, _ := stack.Parameters.Get(key)
			fmt.Fprintf(&output, "  %s: %s\n", key, value)
		}
	}

	return output.String()
}

// FormatStackList formats stacks as an aligned table, one row per stack
func FormatStackList(stacks []*model.Stack) string {
	var output strings.Builder
	w := tabwriter.NewWriter(&output, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tENVIRONMENT\tTEMPLATE\tSTATUS\tLAST UPDATED")
	for _, stack := range stacks {
		status, updated := "", ""
		if stack.Live != nil {
			status = stack.Live.Status
			updated = stack.Live.LastUpdatedTime.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", stack.Name, stack.Environment, stack.Template.Name(), status, updated)
	}
	_ = w.Flush()

	return output.String()
}

// FormatPreview formats a desired stack as its rendered template followed by
// its parameters and tags
func FormatPreview(ctx context.Context, stack *model.Stack) (string, error) {
	body, err := stack.Template.JSON(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to render template of stack %s: %w", stack.Name, err)
	}

	var output strings.Builder
	output.WriteString("Template\n")
	output.Write(body)
	output.WriteString("\n\nParameters\n")
	writeKeyValues(&output, stack.Parameters.Keys(), stack.Parameters.Get)

	tags := stack.Tags()
	output.WriteString("\nTags\n")
	writeKeyValues(&output, tags.Keys(), tags.Get)

	return output.String(), nil
}

func writeKeyValues(output *strings.Builder, keys []string, get func(string) (string, bool)) {
	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, key := range keys {
		value, _ := get(key)
		fmt.Fprintf(w, "%s\t%s\n", key, value)
	}
	_ = w.Flush()
}

// formatTime formats time in a human-readable format
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}
