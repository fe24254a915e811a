/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// docgen writes the command reference of stackmanager as markdown or man pages.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	stackcmd "github.com/orien/stackmanager/cmd"
	"github.com/orien/stackmanager/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
)

func main() {
	outputDir := pflag.String("out", filepath.Join("docs", "cli"), "directory the reference is written to")
	format := pflag.String("format", "markdown", "output format: markdown, man")
	pflag.Parse()

	if err := run(*outputDir, *format); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

func run(outputDir, format string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := stackcmd.RootCommand()
	disableAutoGenTag(root)

	switch format {
	case "markdown":
		if err := removeGenerated(outputDir, ".md"); err != nil {
			return err
		}
		return doc.GenMarkdownTreeCustom(root, outputDir, func(string) string { return "" }, linkHandler)
	case "man":
		if err := removeGenerated(outputDir, ".1"); err != nil {
			return err
		}
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   strings.ToUpper(version.Name),
			Section: "1",
			Source:  version.UserAgent(),
		}, outputDir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// removeGenerated deletes earlier output so removed commands leave no pages behind
func removeGenerated(dir, extension string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func disableAutoGenTag(cmd *cobra.Command) {
	cmd.DisableAutoGenTag = true
	for _, child := range cmd.Commands() {
		disableAutoGenTag(child)
	}
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(strings.ReplaceAll(base, " ", "-"))
}
