package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldPath       = "path"
	FieldBackup     = "backup"
	FieldWorkingDir = "working_dir"

	// Style source fields.
	FieldFormat     = "format"
	FieldSource     = "source"
	FieldMdlrc      = "mdlrc"
	FieldStatements = "statements"
	FieldWarnings   = "warnings"

	// Rule fields.
	FieldRuleID   = "rule_id"
	FieldAlias    = "alias"
	FieldOption   = "option"
	FieldEnabled  = "enabled"
	FieldDisabled = "disabled"
	FieldStyled   = "styled"
	FieldBaseline = "baseline"
)
