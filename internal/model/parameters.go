/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"fmt"
	"sort"
	"strconv"
)

// MaxTags is the provider limit on tags per stack.
const MaxTags = 10

type entry struct {
	Key   string
	Value string
}

// entries is a key/value set held in lexicographic key order.
type entries []entry

func newEntries(values map[string]string) entries {
	out := make(entries, 0, len(values))
	for k, v := range values {
		out = append(out, entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (e entries) keys() []string {
	keys := make([]string, len(e))
	for i, item := range e {
		keys[i] = item.Key
	}
	return keys
}

func (e entries) get(key string) (string, bool) {
	i := sort.Search(len(e), func(i int) bool { return e[i].Key >= key })
	if i < len(e) && e[i].Key == key {
		return e[i].Value, true
	}
	return "", false
}

func (e entries) toMap() map[string]string {
	out := make(map[string]string, len(e))
	for _, item := range e {
		out[item.Key] = item.Value
	}
	return out
}

func (e entries) equal(other entries) bool {
	if len(e) != len(other) {
		return false
	}
	for i := range e {
		if e[i] != other[i] {
			return false
		}
	}
	return true
}

func (e entries) lines() []string {
	out := make([]string, len(e))
	for i, item := range e {
		out[i] = fmt.Sprintf("%s = %s", item.Key, strconv.Quote(item.Value))
	}
	return out
}

// Parameters is an immutable set of stack parameters in canonical key order.
type Parameters struct {
	entries entries
}

// NewParameters builds Parameters from a map. The map is copied.
func NewParameters(values map[string]string) Parameters {
	return Parameters{entries: newEntries(values)}
}

// Keys returns parameter names in canonical order.
func (p Parameters) Keys() []string { return p.entries.keys() }

// Get returns the value of a parameter.
func (p Parameters) Get(key string) (string, bool) { return p.entries.get(key) }

// Len returns the number of parameters.
func (p Parameters) Len() int { return len(p.entries) }

// Map returns a copy of the parameters as a map.
func (p Parameters) Map() map[string]string { return p.entries.toMap() }

// Equal reports whether both sets hold the same key/value pairs.
func (p Parameters) Equal(other Parameters) bool { return p.entries.equal(other.entries) }

// Lines renders one `key = "value"` line per parameter in canonical order.
func (p Parameters) Lines() []string { return p.entries.lines() }

// ChangedKeys returns the keys of p whose value is absent from or different in
// base, in canonical order. Keys present only in base are not reported.
func (p Parameters) ChangedKeys(base Parameters) []string {
	var changed []string
	for _, item := range p.entries {
		if v, ok := base.entries.get(item.Key); !ok || v != item.Value {
			changed = append(changed, item.Key)
		}
	}
	return changed
}

// Tags is an immutable set of stack tags in canonical key order.
type Tags struct {
	entries entries
}

// NewTags builds Tags from a map, enforcing the provider tag limit.
func NewTags(values map[string]string) (Tags, error) {
	if len(values) > MaxTags {
		return Tags{}, &ValidationError{
			Field:  "tags",
			Value:  strconv.Itoa(len(values)),
			Reason: fmt.Sprintf("a stack may carry at most %d tags", MaxTags),
		}
	}
	return Tags{entries: newEntries(values)}, nil
}

// Keys returns tag names in canonical order.
func (t Tags) Keys() []string { return t.entries.keys() }

// Get returns the value of a tag.
func (t Tags) Get(key string) (string, bool) { return t.entries.get(key) }

// Len returns the number of tags.
func (t Tags) Len() int { return len(t.entries) }

// Map returns a copy of the tags as a map.
func (t Tags) Map() map[string]string { return t.entries.toMap() }

// Equal reports whether both sets hold the same key/value pairs.
func (t Tags) Equal(other Tags) bool { return t.entries.equal(other.entries) }
