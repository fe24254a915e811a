/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParameterMap_UnmarshalYAML_Scalars(t *testing.T) {
	var params ParameterMap
	err := yaml.Unmarshal([]byte(`
Name: web
Count: 3
Enabled: true
Ratio: 0.5
Quoted: "007"
Empty: ~
`), &params)

	require.NoError(t, err)
	assert.Equal(t, ParameterMap{
		"Name":    "web",
		"Count":   "3",
		"Enabled": "true",
		"Ratio":   "0.5",
		"Quoted":  "007",
		"Empty":   "",
	}, params)
}

func TestParameterMap_UnmarshalYAML_RejectsNonScalars(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "sequence value", content: "Subnets: [a, b]\n"},
		{name: "mapping value", content: "Tags: {a: b}\n"},
		{name: "not a mapping", content: "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params ParameterMap
			assert.Error(t, yaml.Unmarshal([]byte(tt.content), &params))
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		content string
		want    time.Duration
		wantErr bool
	}{
		{content: "1h", want: time.Hour},
		{content: "90m", want: 90 * time.Minute},
		{content: "3600", want: time.Hour},
		{content: `"30s"`, want: 30 * time.Second},
		{content: "soon", wantErr: true},
		{content: "[1]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			var d Duration
			err := yaml.Unmarshal([]byte(tt.content), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(map[string]Duration{"interval": Duration(90 * time.Minute)})

	require.NoError(t, err)
	assert.Equal(t, "interval: 1h30m0s\n", string(out))
}

func TestTemplate_ToTemplateConfig(t *testing.T) {
	raw := &Template{
		Defaults:        ParameterMap{"MinSize": "1"},
		Environments:    map[string]ParameterMap{"prod": {"KeyName": "prod"}, "dev": nil},
		ScalingProfiles: map[string]ParameterMap{"default": {"MinSize": "2"}},
		Calendar:        "team@group.calendar.google.com",
	}

	tmpl := raw.ToTemplateConfig("web")

	assert.Equal(t, "web", tmpl.Name)
	assert.Equal(t, map[string]string{"MinSize": "1"}, tmpl.Defaults)
	assert.Equal(t, map[string]string{}, tmpl.Environments["dev"])
	assert.Equal(t, "2", tmpl.ScalingProfiles["default"]["MinSize"])
	assert.Equal(t, "team@group.calendar.google.com", tmpl.Calendar)

	// Mutating the result leaves the raw config untouched
	tmpl.Environments["prod"]["KeyName"] = "changed"
	assert.Equal(t, "prod", raw.Environments["prod"]["KeyName"])
}
