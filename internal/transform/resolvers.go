/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultDownloadTimeout bounds a single HTTP template download.
const DefaultDownloadTimeout = 10 * time.Second

// StoreResolver reads references from the content store that squashed them.
type StoreResolver struct {
	store ContentStore
}

// NewStoreResolver creates a resolver reading from store.
func NewStoreResolver(store ContentStore) *StoreResolver {
	return &StoreResolver{store: store}
}

// Resolve fetches the URL from the content store.
func (r *StoreResolver) Resolve(ctx context.Context, ref Reference) (Resolved, error) {
	if ref.URL == "" {
		return Resolved{}, fmt.Errorf("%w: no template URL", ErrUnsupportedReference)
	}
	data, err := r.store.Get(ctx, ref.URL)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Content: data}, nil
}

// HTTPResolver downloads references over HTTP(S).
type HTTPResolver struct {
	client *http.Client
}

// NewHTTPResolver creates a resolver whose downloads time out after timeout.
// A zero timeout selects DefaultDownloadTimeout.
func NewHTTPResolver(timeout time.Duration) *HTTPResolver {
	if timeout == 0 {
		timeout = DefaultDownloadTimeout
	}
	return &HTTPResolver{client: &http.Client{Timeout: timeout}}
}

// NewHTTPResolverWithClient creates a resolver using client.
func NewHTTPResolverWithClient(client *http.Client) *HTTPResolver {
	return &HTTPResolver{client: client}
}

// Resolve performs a GET on the reference URL.
func (r *HTTPResolver) Resolve(ctx context.Context, ref Reference) (Resolved, error) {
	u, err := url.Parse(ref.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Resolved{}, fmt.Errorf("%w: %q is not an HTTP URL", ErrUnsupportedReference, ref.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to download template: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Resolved{}, fmt.Errorf("failed to download template: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to read template: %w", err)
	}
	return Resolved{Content: data}, nil
}

// StackTemplateSource reads nested stack templates through the provisioning API.
type StackTemplateSource interface {
	PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error)
	GetTemplate(ctx context.Context, stackName string) (string, error)
}

// StackResolver resolves a reference by finding the live nested stack behind the
// resource and reading its template.
type StackResolver struct {
	source StackTemplateSource
}

// NewStackResolver creates a resolver backed by source.
func NewStackResolver(source StackTemplateSource) *StackResolver {
	return &StackResolver{source: source}
}

// Resolve looks up the nested stack id and fetches its template.
func (r *StackResolver) Resolve(ctx context.Context, ref Reference) (Resolved, error) {
	if ref.ParentStack == "" || ref.LogicalID == "" {
		return Resolved{}, fmt.Errorf("%w: parent stack unknown", ErrUnsupportedReference)
	}

	stackID, err := r.source.PhysicalResourceID(ctx, ref.ParentStack, ref.LogicalID)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to find nested stack %s: %w", ref.LogicalID, err)
	}
	if stackID == "" {
		return Resolved{}, fmt.Errorf("nested stack %s has no physical id", ref.LogicalID)
	}

	body, err := r.source.GetTemplate(ctx, stackID)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to get template of nested stack %s: %w", stackID, err)
	}
	return Resolved{Content: []byte(body), Stack: stackID}, nil
}

// ChainResolver tries resolvers in order and returns the first success.
type ChainResolver []Resolver

// Resolve returns the first successful resolution, or all failures joined.
func (c ChainResolver) Resolve(ctx context.Context, ref Reference) (Resolved, error) {
	if len(c) == 0 {
		return Resolved{}, ErrUnsupportedReference
	}

	var errs []error
	for _, resolver := range c {
		resolved, err := resolver.Resolve(ctx, ref)
		if err == nil {
			return resolved, nil
		}
		if ctx.Err() != nil {
			return Resolved{}, ctx.Err()
		}
		errs = append(errs, err)
	}
	return Resolved{}, errors.Join(errs...)
}
