package core

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports that no expense exists for the referenced id.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Expense not found with id: %d", e.ID)
}

// InvalidInputError is a business-rule violation detected on create or
// update, after transport-level validation has already passed.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return e.Reason
}

// FieldErrors collects transport-level violations, one message per field.
// Unlike business-rule validation, every failing field is reported in a
// single pass.
type FieldErrors map[string]string

// Add records a violation for field unless one is already present, so the
// first message for a field wins.
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
