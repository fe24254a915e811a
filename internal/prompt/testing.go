/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package prompt

import (
	"github.com/stretchr/testify/mock"
)

// MockPrompter answers confirmations in tests. The question asked is passed
// to the mock so expectations can match on it.
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Confirm(message string) (bool, error) {
	args := m.Called(message)
	return args.Bool(0), args.Error(1)
}
