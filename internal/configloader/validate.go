package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// ValidationIssue describes a declaration the catalog does not recognise.
// Option vocabularies belong to the linting engine, so issues never stop a
// load.
type ValidationIssue struct {
	// RuleID is the rule the declaration names.
	RuleID ruleconfig.RuleID

	// Option is the offending option name, if any.
	Option string

	// Message describes the issue.
	Message string

	// Pos locates the declaration (if known).
	Pos ruleconfig.Position
}

// Error implements the error interface.
func (e *ValidationIssue) Error() string {
	var parts []string

	if pos := e.Pos.String(); pos != "" {
		parts = append(parts, pos)
	}

	if e.RuleID != "" {
		field := "rule " + e.RuleID.String()
		if e.Option != "" {
			field += " option " + e.Option
		}
		parts = append(parts, field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationIssue
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Messages returns every warning as text.
func (r *ValidationResult) Messages() []string {
	messages := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		messages = append(messages, w.Error())
	}
	return messages
}

// Validate checks declarations against the catalog. Unknown rules, unknown
// option names and option values whose type differs from the default are
// reported once each.
func Validate(stmts []ruleconfig.Statement, reg *catalog.Registry) *ValidationResult {
	result := &ValidationResult{}
	reported := make(map[string]bool)

	warn := func(issue ValidationIssue) {
		key := issue.RuleID.String() + "\x00" + issue.Option + "\x00" + issue.Message
		if reported[key] {
			return
		}
		reported[key] = true
		result.Warnings = append(result.Warnings, issue)
	}

	for _, stmt := range stmts {
		if stmt.Kind == ruleconfig.KindEnableAll || stmt.RuleID == "" {
			continue
		}

		rule, known := reg.Get(stmt.RuleID)
		if !known {
			warn(ValidationIssue{
				RuleID:  stmt.RuleID,
				Message: "unknown rule; it is kept for the linting engine",
				Pos:     stmt.Pos,
			})
			continue
		}

		if stmt.Kind == ruleconfig.KindSetStyle {
			validateOptions(rule, stmt, warn)
		}
	}

	return result
}

func validateOptions(rule catalog.Rule, stmt ruleconfig.Statement, warn func(ValidationIssue)) {
	for _, key := range stmt.Options.Keys() {
		def, ok := rule.Defaults[key]
		if !ok {
			warn(ValidationIssue{
				RuleID:  stmt.RuleID,
				Option:  key,
				Message: "unknown option",
				Pos:     stmt.Pos,
			})
			continue
		}

		value, err := ruleconfig.NormalizeValue(stmt.Options[key])
		if err != nil {
			continue
		}
		if want, got := valueKind(def), valueKind(value); want != got {
			warn(ValidationIssue{
				RuleID:  stmt.RuleID,
				Option:  key,
				Message: fmt.Sprintf("expected %s value, got %s", want, got),
				Pos:     stmt.Pos,
			})
		}
	}
}

// valueKind names the type of a normalized option value. Integers and
// floats are both numbers.
func valueKind(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
