package ruleconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument marks an empty or malformed rule id or option.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResolved is returned when a store is mutated after Resolve.
	ErrResolved = errors.New("rule configuration already resolved")
)

// ArgumentError describes an invalid declaration. It matches
// ErrInvalidArgument with errors.Is.
type ArgumentError struct {
	// RuleID is the offending rule, empty when the id itself is missing.
	RuleID RuleID

	// Option is the offending option name, if any.
	Option string

	// Reason describes what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidArgument.Error())
	if e.RuleID != "" {
		fmt.Fprintf(&b, ": rule %q", string(e.RuleID))
	}
	if e.Option != "" {
		fmt.Fprintf(&b, " option %q", e.Option)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
