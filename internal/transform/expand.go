/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package transform

import (
	"context"
	"fmt"

	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Reference identifies the nested template of one nested stack resource.
type Reference struct {
	// URL is the TemplateURL property of the resource.
	URL string
	// ParentStack is the live stack declaring the resource, when known.
	ParentStack string
	// LogicalID is the logical resource id within the parent template.
	LogicalID string
}

func (r Reference) String() string {
	if r.ParentStack != "" {
		return fmt.Sprintf("%s (%s in stack %s)", r.URL, r.LogicalID, r.ParentStack)
	}
	return fmt.Sprintf("%s (%s)", r.URL, r.LogicalID)
}

// Resolved is the content behind a reference.
type Resolved struct {
	Content []byte
	// Stack is the live nested stack the content was read from, if any.
	Stack string
}

// Resolver fetches the content of a nested template reference. A resolver
// that cannot handle a reference returns an error wrapping ErrUnsupportedReference.
type Resolver interface {
	Resolve(ctx context.Context, ref Reference) (Resolved, error)
}

// Expander replaces nested template references with their inline bodies.
type Expander struct {
	resolver Resolver
	logger   zerolog.Logger
}

// NewExpander creates an expander using resolver for every reference.
func NewExpander(resolver Resolver, logger zerolog.Logger) *Expander {
	return &Expander{
		resolver: resolver,
		logger:   logger.With().Str("component", "expander").Logger(),
	}
}

// Expand returns a copy of body with every nested stack TemplateURL replaced
// by the resolved TemplateBody, recursively. stackName names the live stack
// the body belongs to and may be empty.
func (e *Expander) Expand(ctx context.Context, body model.Body, stackName string) (model.Body, error) {
	tree := model.CloneBody(body)
	if err := e.expandTree(ctx, tree, stackName); err != nil {
		return nil, err
	}
	return tree, nil
}

// ExpandJSON decodes template content and expands it.
func (e *Expander) ExpandJSON(ctx context.Context, data []byte, stackName string) (model.Body, error) {
	body, err := model.ParseBody(data)
	if err != nil {
		return nil, err
	}
	return e.Expand(ctx, body, stackName)
}

type expandedChild struct {
	props map[string]any
	body  model.Body
}

func (e *Expander) expandTree(ctx context.Context, body model.Body, stackName string) error {
	type pending struct {
		props map[string]any
		ref   Reference
	}

	var children []pending
	for logicalID, resource := range model.Resources(body) {
		props, ok := model.NestedStackProperties(resource)
		if !ok {
			continue
		}
		url, ok := props[templateURLProperty].(string)
		if !ok {
			continue
		}
		children = append(children, pending{
			props: props,
			ref:   Reference{URL: url, ParentStack: stackName, LogicalID: logicalID},
		})
	}
	if len(children) == 0 {
		return nil
	}

	results := make([]expandedChild, len(children))
	g, ctx := errgroup.WithContext(ctx)
	for i, child := range children {
		g.Go(func() error {
			e.logger.Debug().Str("reference", child.ref.String()).Msg("Resolving nested template")

			resolved, err := e.resolver.Resolve(ctx, child.ref)
			if err != nil {
				return &ResolutionError{Reference: child.ref, Err: err}
			}
			nested, err := model.ParseBody(resolved.Content)
			if err != nil {
				return &ResolutionError{Reference: child.ref, Err: err}
			}
			if err := e.expandTree(ctx, nested, resolved.Stack); err != nil {
				return err
			}
			results[i] = expandedChild{props: child.props, body: nested}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		result.props[templateBodyProperty] = result.body
		delete(result.props, templateURLProperty)
	}
	return nil
}
