/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// FormatResult renders a diff result for the terminal
func FormatResult(r *Result, styles *Styles) string {
	var output strings.Builder

	header := fmt.Sprintf("Stack: %s (Environment: %s)", r.StackName, r.Environment)
	output.WriteString(styles.HeaderTitle.Render(header))
	output.WriteString("\n")
	output.WriteString(styles.Separator.Render(strings.Repeat("═", 60)))
	output.WriteString("\n\n")

	if !r.HasChanges() {
		output.WriteString(styles.StatusNoChange.Render("Status: NO CHANGES"))
		output.WriteString("\n")
		output.WriteString("The live stack matches its configuration.\n")
		return output.String()
	}

	output.WriteString(styles.StatusChanges.Render("Status: CHANGES DETECTED"))
	output.WriteString("\n\n")

	if len(r.ParameterDiffs) > 0 {
		output.WriteString(styles.SectionHeader.Render("Parameter Changes:"))
		output.WriteString("\n")
		for _, d := range r.ParameterDiffs {
			writeKeyChange(&output, styles, d.ChangeType, d.Key, d.CurrentValue, d.ProposedValue)
		}
		output.WriteString("\n")
	}

	if len(r.TagDiffs) > 0 {
		output.WriteString(styles.SectionHeader.Render("Tag Changes:"))
		output.WriteString("\n")
		for _, d := range r.TagDiffs {
			writeKeyChange(&output, styles, d.ChangeType, d.Key, d.CurrentValue, d.ProposedValue)
		}
		output.WriteString("\n")
	}

	if r.TemplateDiff != "" {
		output.WriteString(styles.SectionHeader.Render("Template Changes:"))
		output.WriteString("\n")
		output.WriteString(FormatUnifiedDiff(r.TemplateDiff, styles))
	}

	return output.String()
}

func writeKeyChange(output *strings.Builder, styles *Styles, change ChangeType, key, current, proposed string) {
	symbol := styles.GetChangeSymbol(change)
	k := styles.Key.Render(key)
	switch change {
	case ChangeTypeAdd:
		fmt.Fprintf(output, "  %s %s: %s\n", symbol, k, proposed)
	case ChangeTypeRemove:
		fmt.Fprintf(output, "  %s %s: %s\n", symbol, k, current)
	default:
		fmt.Fprintf(output, "  %s %s: %s → %s\n", symbol, k, current, proposed)
	}
}

// FormatUnifiedDiff colours the lines of a unified diff
func FormatUnifiedDiff(text string, styles *Styles) string {
	var output strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		content := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(content, "+++"), strings.HasPrefix(content, "---"):
			output.WriteString(styles.Subtle.Render(content))
		case strings.HasPrefix(content, "@@"):
			output.WriteString(styles.Hunk.Render(content))
		case strings.HasPrefix(content, "+"):
			output.WriteString(styles.Added.Render(content))
		case strings.HasPrefix(content, "-"):
			output.WriteString(styles.Removed.Render(content))
		default:
			output.WriteString(content)
		}
		output.WriteString("\n")
	}
	return output.String()
}

// FormatCheckResults renders one row per checked stack
func FormatCheckResults(results []CheckResult, styles *Styles) string {
	var output strings.Builder
	w := tabwriter.NewWriter(&output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tLAST UPDATED\tHAS CHANGES")
	for _, r := range results {
		var status, updated string
		if r.Stack.Live != nil {
			status = r.Stack.Live.Status
			updated = r.Stack.Live.LastUpdatedTime.UTC().Format(time.RFC3339)
		}

		// Only the last column is styled so colour codes do not widen cells
		changes := "No"
		switch {
		case r.Err != nil:
			changes = styles.Error.Render("Error: " + r.Err.Error())
		case r.HasChanges:
			changes = styles.StatusChanges.Render("Yes")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Stack.Name, status, updated, changes)
	}
	_ = w.Flush()
	return output.String()
}
