package sis

import (
	"fmt"
	"strconv"
	"strings"
)

type Semester string

const (
	Fall   Semester = "fall"
	Spring Semester = "spring"
)

// Code is the single digit SIS uses for the semester in a term code.
func (s Semester) Code() (string, error) {
	switch s {
	case Fall:
		return "8", nil
	case Spring:
		return "2", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSemester, string(s))
}

// ParseSemester is case-insensitive, "Fall", "FALL" and "fall" are the same semester.
func ParseSemester(semester string) (Semester, error) {
	s := Semester(strings.ToLower(semester))
	if _, err := s.Code(); err != nil {
		return "", err
	}
	return s, nil
}

// ParseYear parses a year given as text, it must be exactly two decimal digits.
func ParseYear(year string) (int, error) {
	if len(year) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	return n, ValidateYear(n)
}

// ValidateYear rejects anything whose decimal representation is not two digits.
func ValidateYear(year int) error {
	if year < 10 || year > 99 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// Validate checks the year and semester and returns the Term they make up.
func Validate(year int, semester string) (Term, error) {
	if err := ValidateYear(year); err != nil {
		return Term{}, err
	}
	s, err := ParseSemester(semester)
	if err != nil {
		return Term{}, err
	}
	return Term{Year: year, Semester: s}, nil
}
