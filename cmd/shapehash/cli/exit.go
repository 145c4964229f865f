// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes. A mismatch is a valid outcome, distinct from a failure to
// compute one.
const (
	ExitCodeOK       = 0
	ExitCodeMismatch = 1
	ExitCodeError    = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Mismatch returns the error a command returns when fingerprints
// differ.
func Mismatch() error {
	return &ExitError{Code: ExitCodeMismatch}
}

// ExitCodeOf returns the process exit code for err and whether the
// error message should be printed.
func ExitCodeOf(err error) (code int, printable bool) {
	if err == nil {
		return ExitCodeOK, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	return ExitCodeError, true
}
