/*
Copyright © 2026 Planfeed Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"strings"
)

// FieldError describes a single schema violation, qualified by the dotted
// path of the offending field.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result collects the outcome of validating one candidate plan record.
type Result struct {
	// ID is the candidate's id, carried for reporting even when invalid.
	ID string `json:"id" yaml:"id"`

	// Errors holds field-qualified violations in evaluation order.
	// An empty slice means the record is valid.
	Errors []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Valid reports whether the record passed all constraints.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error implements the error interface so a Result can be returned or
// logged where an error is expected.
func (r *Result) Error() string {
	if r.Valid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.String()
	}
	return fmt.Sprintf("plan %q: %s", r.ID, strings.Join(msgs, "; "))
}

func (r *Result) addError(field, format string, args ...any) {
	r.Errors = append(r.Errors, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Summary aggregates validation outcomes across a collection.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
}
