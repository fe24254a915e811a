/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "y", input: "y\n", expected: true},
		{name: "yes", input: "yes\n", expected: true},
		{name: "upper case with spaces", input: "  YES  \n", expected: true},
		{name: "n", input: "n\n", expected: false},
		{name: "anything else", input: "sure\n", expected: false},
		{name: "empty line", input: "\n", expected: false},
		{name: "end of input", input: "", expected: false},
		{name: "no trailing newline", input: "y", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			prompter := NewStdinPrompter(strings.NewReader(tt.input), &out)

			confirmed, err := prompter.Confirm("Delete stack Prod-Web?")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, confirmed)
			assert.Equal(t, "Delete stack Prod-Web? [y/N]: ", out.String())
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("terminal closed") }

func TestStdinPrompter_Confirm_ReadError(t *testing.T) {
	prompter := NewStdinPrompter(failingReader{}, &bytes.Buffer{})

	_, err := prompter.Confirm("Delete stack Prod-Web?")

	assert.ErrorContains(t, err, "failed to read user input")
	assert.ErrorContains(t, err, "terminal closed")
}

func TestMockPrompter_Interface(t *testing.T) {
	var _ Prompter = (*MockPrompter)(nil)
	var _ Prompter = (*StdinPrompter)(nil)
}
