// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package recommend

import "fmt"

// inputError is a rejected query. Its text is the user-facing detail and it matches ErrBadInput.
type inputError struct {
	detail string
	cause  error
}

func badInput(format string, args ...any) error {
	return &inputError{detail: fmt.Sprintf(format, args...)}
}

func (e *inputError) Error() string        { return e.detail }
func (e *inputError) Unwrap() error        { return e.cause }
func (e *inputError) Is(target error) bool { return target == ErrBadInput }

// predictorError is a model failure. It matches ErrPredictor and wraps the cause.
type predictorError struct {
	stage string // classifier, scaler or index
	cause error
}

func (e *predictorError) Error() string        { return e.cause.Error() }
func (e *predictorError) Unwrap() error        { return e.cause }
func (e *predictorError) Is(target error) bool { return target == ErrPredictor }
