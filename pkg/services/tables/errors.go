package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrDataNotLoaded means the table map is empty. A reload may fix it.
	ErrDataNotLoaded = errors.New("workbook data not loaded")
	ErrTableNotFound = errors.New("table not found")
	ErrRowNotFound   = errors.New("row not found")
)

// NotFoundError carries the names the caller could have used instead.
type NotFoundError struct {
	Table     string
	Row       string
	Available []string
	Err       error
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.Err, ErrRowNotFound) {
		return fmt.Sprintf("row %q not found in table %q, available rows: %q", e.Row, e.Table, e.Available)
	}
	return fmt.Sprintf("table %q not found, available tables: %q", e.Table, e.Available)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func newTableNotFound(table string, available []string) *NotFoundError {
	return &NotFoundError{Table: table, Available: available, Err: ErrTableNotFound}
}

func newRowNotFound(table, row string, available []string) *NotFoundError {
	return &NotFoundError{Table: table, Row: row, Available: available, Err: ErrRowNotFound}
}
