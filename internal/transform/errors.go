/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package transform

import (
	"errors"
	"fmt"
)

// ErrUnsupportedReference is returned by a Resolver that cannot handle a reference.
var ErrUnsupportedReference = errors.New("unsupported template reference")

// ResolutionError reports a nested template reference that could not be
// turned back into an inline body.
type ResolutionError struct {
	Reference Reference
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve nested template %s: %v", e.Reference, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TooLargeError reports a serialized template over the provider size limit.
type TooLargeError struct {
	Size int
	Max  int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("template body encoded as JSON is %d bytes, the maximum is %d bytes", e.Size, e.Max)
}
