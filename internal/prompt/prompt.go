/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter defines the interface for user prompting
type Prompter interface {
	Confirm(message string) (bool, error)
}

// StdinPrompter implements Prompter over a reader and writer, normally the
// terminal
type StdinPrompter struct {
	input  io.Reader
	output io.Writer
}

// NewStdinPrompter creates a new prompter reading answers from input
func NewStdinPrompter(input io.Reader, output io.Writer) *StdinPrompter {
	return &StdinPrompter{input: input, output: output}
}

// Confirm asks a yes/no question. Only y or yes confirms; end of input
// counts as no.
func (p *StdinPrompter) Confirm(message string) (bool, error) {
	if _, err := fmt.Fprintf(p.output, "%s [y/N]: ", message); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	scanner := bufio.NewScanner(p.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read user input: %w", err)
		}
		return false, nil
	}

	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes", nil
}
