package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse marks a style source that is not well formed.
var ErrParse = errors.New("parse error")

// ErrEncodeUnsupported is returned when encoding to a read-only format.
var ErrEncodeUnsupported = errors.New("format cannot be encoded")

// ParseError locates a syntax or structure error in a style source.
// It matches ErrParse with errors.Is.
type ParseError struct {
	// Name is the source name, usually a file path.
	Name string

	// Line and Column are 1-based; zero when unknown.
	Line   int
	Column int

	// Message describes the problem.
	Message string

	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var loc []string
	if e.Name != "" {
		loc = append(loc, e.Name)
	}
	if e.Line > 0 {
		loc = append(loc, fmt.Sprint(e.Line))
		if e.Column > 0 {
			loc = append(loc, fmt.Sprint(e.Column))
		}
	}
	if len(loc) == 0 {
		return e.Message
	}
	return strings.Join(loc, ":") + ": " + e.Message
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(data []byte, offset int) (int, int) {
	if offset > len(data) {
		offset = len(data)
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
