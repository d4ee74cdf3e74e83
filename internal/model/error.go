package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")     // 400
	ErrSchemaMismatch = errors.New("schema mismatch")       // 422
	ErrPartNotFound   = errors.New("part not found")        // 404
	ErrDuplicateKey   = errors.New("duplicate part number") // 409
	ErrPersistence    = errors.New("persistence failure")   // 503
)

type FieldError struct {
	Field  string
	Reason string
}

// ValidationError describes one invalid record. Row is the 1-based data row
// of an imported file, zero outside of imports.
type ValidationError struct {
	Row        int
	PartNumber string
	Fields     []FieldError
}

func NewValidationError(row int, partNumber string, fields ...FieldError) *ValidationError {
	return &ValidationError{Row: row, PartNumber: partNumber, Fields: fields}
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	if e.Row > 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.PartNumber != "" {
		fmt.Fprintf(&b, " for part %q", e.PartNumber)
	}
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s %s", f.Field, f.Reason)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type DuplicateKeyError struct {
	PartNumbers []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateKey, strings.Join(e.PartNumbers, ", "))
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

type SchemaMismatchError struct {
	Expected []string
	Found    []string
	Missing  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: missing columns [%s], found [%s]",
		ErrSchemaMismatch,
		strings.Join(e.Missing, ", "),
		strings.Join(e.Found, ", "),
	)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }
