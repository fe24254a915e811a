/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"bytes"
	"context"
	"fmt"
	"sync"
)

// BodyLoader produces a template body on demand.
type BodyLoader interface {
	LoadBody(ctx context.Context) (Body, error)
}

// BodyLoaderFunc adapts a function to BodyLoader.
type BodyLoaderFunc func(ctx context.Context) (Body, error)

// LoadBody calls f.
func (f BodyLoaderFunc) LoadBody(ctx context.Context) (Body, error) { return f(ctx) }

// Template is a named template whose body is either materialized or deferred.
// A deferred body is loaded on first access and cached; a failed load is not
// cached so a later call may retry.
type Template struct {
	name string

	mu     sync.Mutex
	body   Body
	loader BodyLoader
}

// NewTemplate returns a template holding an already materialized body.
func NewTemplate(name string, body Body) *Template {
	return &Template{name: name, body: CloneBody(body)}
}

// NewDeferredTemplate returns a template whose body is produced by loader
// the first time it is read.
func NewDeferredTemplate(name string, loader BodyLoader) *Template {
	return &Template{name: name, loader: loader}
}

// Name returns the logical template name.
func (t *Template) Name() string { return t.name }

// Materialized reports whether the body has been loaded.
func (t *Template) Materialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.body != nil
}

// Body returns a copy of the materialized body, loading it if needed.
func (t *Template) Body(ctx context.Context) (Body, error) {
	body, err := t.materialize(ctx)
	if err != nil {
		return nil, err
	}
	return CloneBody(body), nil
}

// JSON returns the canonical JSON encoding of the body.
func (t *Template) JSON(ctx context.Context) ([]byte, error) {
	body, err := t.materialize(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeBody(body)
}

// IsIdentical reports whether both templates share a name and canonical body.
func (t *Template) IsIdentical(ctx context.Context, other *Template) (bool, error) {
	if t.name != other.name {
		return false, nil
	}
	if t == other {
		return true, nil
	}

	mine, err := t.JSON(ctx)
	if err != nil {
		return false, err
	}
	theirs, err := other.JSON(ctx)
	if err != nil {
		return false, err
	}
	return bytes.Equal(mine, theirs), nil
}

func (t *Template) materialize(ctx context.Context) (Body, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.body != nil {
		return t.body, nil
	}
	if t.loader == nil {
		return nil, fmt.Errorf("template %s has no body", t.name)
	}

	body, err := t.loader.LoadBody(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load body of template %s: %w", t.name, err)
	}
	if body == nil {
		return nil, fmt.Errorf("template %s loaded an empty body", t.name)
	}
	t.body = body
	return t.body, nil
}
