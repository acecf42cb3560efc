/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured error types for planfeed.
//
// Provider adapters absorb all failures at their boundary, but the error
// codes here let logs and observability tooling distinguish anticipated
// upstream failures (missing credentials, non-2xx responses) from genuine
// programming errors.
package errors

import "fmt"

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeMissingCredentials indicates a provider adapter was skipped
	// because its required credentials were not configured.
	ErrCodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	// ErrCodeUpstreamStatus indicates a provider API returned a non-2xx status.
	ErrCodeUpstreamStatus ErrorCode = "UPSTREAM_STATUS"
	// ErrCodeTransport indicates the request to a provider API failed to complete.
	ErrCodeTransport ErrorCode = "TRANSPORT"
	// ErrCodeDecode indicates a provider response body could not be decoded.
	ErrCodeDecode ErrorCode = "DECODE"
	// ErrCodeValidation indicates a plan record failed schema validation.
	ErrCodeValidation ErrorCode = "VALIDATION"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewWithStatus creates an UPSTREAM_STATUS error describing a failed
// provider resource request. The resource name and numeric status are kept
// in the context map for structured reporting.
func NewWithStatus(resource string, code int, status string) *StructuredError {
	return &StructuredError{
		Code:    ErrCodeUpstreamStatus,
		Message: fmt.Sprintf("%s request failed with status %s", resource, status),
		Context: map[string]any{
			"resource": resource,
			"status":   code,
		},
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the error code of a StructuredError anywhere in the chain,
// or ErrCodeInternal when the error carries no code.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			return se.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrCodeInternal
}

// IsExpected reports whether the error is an anticipated operational failure
// (credentials, upstream status, transport, decode) rather than a programming
// error. Both classes degrade to an empty plan sequence at the adapter
// boundary, but unexpected ones deserve louder reporting.
func IsExpected(err error) bool {
	switch CodeOf(err) {
	case ErrCodeMissingCredentials, ErrCodeUpstreamStatus, ErrCodeTransport, ErrCodeDecode:
		return true
	default:
		return false
	}
}
