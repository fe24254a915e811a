/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package transform converts template trees between the inline form used for
// comparison and the reference form accepted by the provisioning API.
package transform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/orien/stackmanager/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// MaxTemplateSize is the largest serialized body the provider accepts.
	MaxTemplateSize = 307200

	templateBodyProperty = "TemplateBody"
	templateURLProperty  = "TemplateURL"
)

// ContentStore persists serialized templates under content addressed keys.
type ContentStore interface {
	// Put stores data under key and returns its URL. Storing the same key
	// twice must be harmless.
	Put(ctx context.Context, key string, data []byte) (string, error)
	// Get returns the content behind a URL returned by Put.
	Get(ctx context.Context, url string) ([]byte, error)
}

// Squasher uploads nested stack bodies deepest first and replaces each
// inline body with the URL of its stored copy.
type Squasher struct {
	store   ContentStore
	logger  zerolog.Logger
	maxSize int
}

// NewSquasher creates a squasher writing to store.
func NewSquasher(store ContentStore, logger zerolog.Logger) *Squasher {
	return &Squasher{
		store:   store,
		logger:  logger.With().Str("component", "squasher").Logger(),
		maxSize: MaxTemplateSize,
	}
}

// Squash uploads every nested body and the root body, and returns the URL of
// the root. The body passed in is not modified.
func (s *Squasher) Squash(ctx context.Context, body model.Body) (string, error) {
	run := &squashRun{Squasher: s, urls: make(map[string]string)}

	tree := model.CloneBody(body)
	if err := run.squashTree(ctx, tree); err != nil {
		return "", err
	}
	return run.upload(ctx, tree)
}

// SquashTemplate squashes the materialized body of a template.
func (s *Squasher) SquashTemplate(ctx context.Context, template *model.Template) (string, error) {
	body, err := template.Body(ctx)
	if err != nil {
		return "", err
	}
	return s.Squash(ctx, body)
}

// squashRun deduplicates uploads of identical bodies within one Squash call.
type squashRun struct {
	*Squasher
	uploads singleflight.Group

	mu   sync.Mutex
	urls map[string]string
}

type squashedChild struct {
	props map[string]any
	url   string
}

func (r *squashRun) squashTree(ctx context.Context, body model.Body) error {
	var children []map[string]any
	for _, resource := range model.Resources(body) {
		props, ok := model.NestedStackProperties(resource)
		if !ok {
			continue
		}
		if _, ok := props[templateBodyProperty].(map[string]any); !ok {
			continue
		}
		children = append(children, props)
	}
	if len(children) == 0 {
		return nil
	}

	results := make([]squashedChild, len(children))
	g, ctx := errgroup.WithContext(ctx)
	for i, props := range children {
		child := props[templateBodyProperty].(map[string]any)
		g.Go(func() error {
			if err := r.squashTree(ctx, child); err != nil {
				return err
			}
			url, err := r.upload(ctx, child)
			if err != nil {
				return err
			}
			results[i] = squashedChild{props: props, url: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		result.props[templateURLProperty] = result.url
		delete(result.props, templateBodyProperty)
	}
	return nil
}

func (r *squashRun) upload(ctx context.Context, body model.Body) (string, error) {
	data, err := model.EncodeBody(body)
	if err != nil {
		return "", err
	}
	if len(data) > r.maxSize {
		return "", &TooLargeError{Size: len(data), Max: r.maxSize}
	}

	key := ContentKey(data)

	if url, done := r.uploaded(key); done {
		return url, nil
	}

	result, err, _ := r.uploads.Do(key, func() (any, error) {
		if url, done := r.uploaded(key); done {
			return url, nil
		}
		r.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("Uploading template")
		url, err := r.store.Put(ctx, key, data)
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		r.urls[key] = url
		r.mu.Unlock()
		return url, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload template %s: %w", key, err)
	}
	return result.(string), nil
}

func (r *squashRun) uploaded(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	url, ok := r.urls[key]
	return url, ok
}

// ContentKey returns the storage key for serialized template content.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ".json"
}
