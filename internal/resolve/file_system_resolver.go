/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TemplateExtension is appended to a template name to find its source file
const TemplateExtension = ".json.tmpl"

// FileSystemResolver defines the interface for reading template sources by name
type FileSystemResolver interface {
	ReadTemplate(templateName string) (string, error)
}

// DefaultFileSystemResolver reads <dir>/<template>.json.tmpl files
type DefaultFileSystemResolver struct {
	dir string
}

// NewFileSystemResolver creates a resolver reading templates from dir
func NewFileSystemResolver(dir string) *DefaultFileSystemResolver {
	return &DefaultFileSystemResolver{dir: dir}
}

// ReadTemplate reads the source of the named template
func (fsr *DefaultFileSystemResolver) ReadTemplate(templateName string) (string, error) {
	filePath, err := fsr.TemplatePath(templateName)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}

// TemplatePath returns the source file path of the named template
func (fsr *DefaultFileSystemResolver) TemplatePath(templateName string) (string, error) {
	if templateName == "" || strings.ContainsAny(templateName, `/\`) || strings.Contains(templateName, "..") {
		return "", fmt.Errorf("invalid template name %q", templateName)
	}
	return filepath.Join(fsr.dir, templateName+TemplateExtension), nil
}
