package errors

import (
	"fmt"
	"strings"
)

// SchemaError reports a structural problem with the input file: required
// columns that are absent, or cells whose values cannot be coerced to the
// column's declared type. Schema problems are fatal and abort the run
// before any processing; everything row-local is handled downstream.
type SchemaError struct {
	// Missing lists required column names absent from the header.
	Missing []string
	// Cell describes the first uncoercible cell, when that is the cause.
	Cell *CellError
}

// CellError pinpoints an uncoercible cell in the input.
type CellError struct {
	Row    int    // 1-based data row number, header excluded
	Column string // raw column name from the header
	Value  string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("[%s] required columns missing: %s",
			ErrTypeSchema, strings.Join(e.Missing, ", "))
	case e.Cell != nil:
		return fmt.Sprintf("[%s] column %q row %d: cannot coerce value %q",
			ErrTypeSchema, e.Cell.Column, e.Cell.Row, e.Cell.Value)
	default:
		return fmt.Sprintf("[%s] invalid input schema", ErrTypeSchema)
	}
}

// NewMissingColumnsError creates a SchemaError for absent required columns
func NewMissingColumnsError(columns []string) *SchemaError {
	return &SchemaError{Missing: columns}
}

// NewUncoercibleCellError creates a SchemaError for a value that does not
// parse as the column's declared type
func NewUncoercibleCellError(row int, column, value string) *SchemaError {
	return &SchemaError{Cell: &CellError{Row: row, Column: column, Value: value}}
}

// IsSchemaError reports whether err is a SchemaError
func IsSchemaError(err error) bool {
	_, ok := err.(*SchemaError)
	return ok
}
