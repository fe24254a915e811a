/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBody(t *testing.T) {
	body, err := ParseBody([]byte(`{"Resources": {"Bucket": {"Type": "AWS::S3::Bucket"}}, "Count": 12345678901234567890}`))

	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), body["Count"])
	assert.Contains(t, Resources(body), "Bucket")
}

func TestParseBody_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "Resources:\n  Bucket: {}"},
		{name: "array", input: `["a"]`},
		{name: "null", input: `null`},
		{name: "trailing data", input: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBody([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestEncodeBody_CanonicalFormatting(t *testing.T) {
	body := Body{
		"b": "https://example.com/a?x=<y>",
		"a": []any{json.Number("1"), true, nil},
	}

	data, err := EncodeBody(body)

	require.NoError(t, err)
	expected := "{\n" +
		"    \"a\": [\n" +
		"        1,\n" +
		"        true,\n" +
		"        null\n" +
		"    ],\n" +
		"    \"b\": \"https://example.com/a?x=<y>\"\n" +
		"}\n"
	assert.Equal(t, expected, string(data))
}

func TestEncodeBody_EmptyObject(t *testing.T) {
	data, err := EncodeBody(Body{})

	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestCloneBody_IsDeep(t *testing.T) {
	original := NewTestBody()
	clone := CloneBody(original)

	Resources(clone)["Queue"].(map[string]any)["Type"] = "AWS::SNS::Topic"

	assert.Equal(t, "AWS::SQS::Queue", Resources(original)["Queue"].(map[string]any)["Type"])
}

func TestNestedStackProperties(t *testing.T) {
	nested := map[string]any{
		"Type":       NestedStackType,
		"Properties": map[string]any{"TemplateURL": "https://example.com/a.json"},
	}
	other := map[string]any{"Type": "AWS::S3::Bucket", "Properties": map[string]any{}}

	props, ok := NestedStackProperties(nested)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.json", props["TemplateURL"])

	_, ok = NestedStackProperties(other)
	assert.False(t, ok)

	_, ok = NestedStackProperties(map[string]any{"Type": NestedStackType})
	assert.False(t, ok)

	_, ok = NestedStackProperties("not a resource")
	assert.False(t, ok)
}

func TestTemplate_Name(t *testing.T) {
	template := NewTemplate("web", Body{})

	assert.Equal(t, "web", template.Name())
	assert.True(t, template.Materialized())
}

func TestTemplate_DeferredBodyLoadsOnce(t *testing.T) {
	calls := 0
	template := NewDeferredTemplate("web", BodyLoaderFunc(func(ctx context.Context) (Body, error) {
		calls++
		return NewTestBody(), nil
	}))

	assert.False(t, template.Materialized())

	_, err := template.Body(context.Background())
	require.NoError(t, err)
	_, err = template.JSON(context.Background())
	require.NoError(t, err)

	assert.True(t, template.Materialized())
	assert.Equal(t, 1, calls)
}

func TestTemplate_DeferredBodyErrorIsNotCached(t *testing.T) {
	fail := true
	template := NewDeferredTemplate("web", BodyLoaderFunc(func(ctx context.Context) (Body, error) {
		if fail {
			return nil, errors.New("throttled")
		}
		return Body{}, nil
	}))

	_, err := template.Body(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.False(t, template.Materialized())

	fail = false
	_, err = template.Body(context.Background())
	assert.NoError(t, err)
}

func TestTemplate_BodyReturnsCopy(t *testing.T) {
	template := NewTemplate("web", NewTestBody())

	body, err := template.Body(context.Background())
	require.NoError(t, err)
	delete(body, "Resources")

	again, err := template.Body(context.Background())
	require.NoError(t, err)
	assert.Contains(t, again, "Resources")
}

func TestTemplate_NoBody(t *testing.T) {
	_, err := NewTemplate("web", nil).JSON(context.Background())

	assert.Error(t, err)
}

func TestTemplate_IsIdentical(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		a        *Template
		b        *Template
		expected bool
	}{
		{
			name:     "same name and body",
			a:        NewTemplate("foo", Body{}),
			b:        NewTemplate("foo", Body{}),
			expected: true,
		},
		{
			name:     "different name",
			a:        NewTemplate("foo", Body{}),
			b:        NewTemplate("bar", Body{}),
			expected: false,
		},
		{
			name:     "different body",
			a:        NewTemplate("foo", Body{"foo": "bar"}),
			b:        NewTemplate("foo", Body{"baz": "qux"}),
			expected: false,
		},
		{
			name: "deferred body equal to materialized body",
			a:    NewTemplate("foo", NewTestBody()),
			b: NewDeferredTemplate("foo", BodyLoaderFunc(func(ctx context.Context) (Body, error) {
				return NewTestBody(), nil
			})),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identical, err := tt.a.IsIdentical(ctx, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, identical)

			reverse, err := tt.b.IsIdentical(ctx, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reverse)
		})
	}
}
