package workbook

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGridUnavailable means no candidate location produced a grid.
	ErrGridUnavailable = errors.New("no workbook grid available")
	// ErrUnsupportedFormat is returned for file extensions without a registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
)

// LoadError describes every location that was tried.
type LoadError struct {
	Attempts []Attempt
}

type Attempt struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Location, a.Err))
	}
	return fmt.Sprintf("%v, tried [%s]", ErrGridUnavailable, strings.Join(parts, "; "))
}

func (e *LoadError) Unwrap() error {
	return ErrGridUnavailable
}
