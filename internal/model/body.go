/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// NestedStackType is the resource type of a nested stack in a template body.
const NestedStackType = "AWS::CloudFormation::Stack"

// Body is a decoded template document. Values in the tree are limited to the
// JSON value set: map[string]any, []any, string, json.Number, bool and nil.
type Body = map[string]any

// ParseBody decodes JSON template content into a Body. Numbers are kept as
// json.Number so large integers survive a round trip unchanged.
func ParseBody(data []byte) (Body, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body Body
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("template body could not be decoded as JSON: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("template body must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("template body contains trailing data after the JSON object")
	}

	return body, nil
}

// EncodeBody renders a Body as canonical JSON: keys sorted, four-space indent,
// slashes and HTML characters unescaped, and a trailing newline.
func EncodeBody(body Body) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("template body could not be encoded as JSON: %w", err)
	}

	// Encode terminates the document with exactly one newline.
	return buf.Bytes(), nil
}

// CloneBody returns a deep copy of body.
func CloneBody(body Body) Body {
	if body == nil {
		return nil
	}
	return cloneValue(body).(Body)
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

// Resources returns the Resources section of a body, or nil when absent or malformed.
func Resources(body Body) map[string]any {
	resources, _ := body["Resources"].(map[string]any)
	return resources
}

// NestedStackProperties returns the Properties map of a resource when the
// resource is a nested stack declaring properties.
func NestedStackProperties(resource any) (map[string]any, bool) {
	res, ok := resource.(map[string]any)
	if !ok {
		return nil, false
	}
	if kind, _ := res["Type"].(string); kind != NestedStackType {
		return nil, false
	}
	props, ok := res["Properties"].(map[string]any)
	return props, ok
}
