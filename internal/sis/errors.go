package sis

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidYear       = errors.New("the entered year must be a two digit integer, like 22 or 23")
	ErrInvalidSemester   = errors.New("the entered semester must either be 'fall' or 'spring'")
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrMissingField      = errors.New("missing field")
	ErrIO                = errors.New("io error")
)

// MissingFieldError is returned when an entry of a response lacks a field that had to be read.
// Entry is the position of the entry in the response, or -1 for fields at the top level.
type MissingFieldError struct {
	Entry int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("missing field: %s", e.Field)
	}
	return fmt.Sprintf("missing field: entry %d: %s", e.Entry, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
