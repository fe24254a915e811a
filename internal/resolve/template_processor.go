/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/orien/stackmanager/internal/cidr"
)

// RenderContext is the data a template is executed with
type RenderContext struct {
	Environment     string
	Parameters      map[string]string
	StackParameters map[string]string
	RootStackName   string
}

// TemplateProcessor defines the interface for rendering CloudFormation templates
type TemplateProcessor interface {
	Process(ctx context.Context, name, content string, data RenderContext) (string, error)
}

// CfnTemplateProcessor implements TemplateProcessor using Go's text/template
// with Sprig functions and provider lookups
type CfnTemplateProcessor struct {
	lookups Lookups
}

// NewCfnTemplateProcessor creates a new CloudFormation template processor
func NewCfnTemplateProcessor(lookups Lookups) *CfnTemplateProcessor {
	return &CfnTemplateProcessor{lookups: lookups}
}

// Process renders a template. Each call gets its own address allocator, so
// cidr results restart from the container's first block on every render.
func (tp *CfnTemplateProcessor) Process(ctx context.Context, name, content string, data RenderContext) (string, error) {
	funcs := sprig.TxtFuncMap()
	maps.Copy(funcs, templateFuncs(ctx, tp.lookups, cidr.NewAllocator()))

	tmpl, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
