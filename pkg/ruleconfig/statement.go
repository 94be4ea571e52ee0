package ruleconfig

import "strconv"

// StatementKind identifies a declaration.
type StatementKind int

const (
	// KindEnableAll turns on every rule known to the engine.
	KindEnableAll StatementKind = iota + 1

	// KindSetStyle selects options for one rule.
	KindSetStyle

	// KindExclude turns one rule off.
	KindExclude
)

// String returns the keyword used for the kind in style files.
func (k StatementKind) String() string {
	switch k {
	case KindEnableAll:
		return "all"
	case KindSetStyle:
		return "rule"
	case KindExclude:
		return "exclude_rule"
	default:
		return "StatementKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Position locates a statement in its source.
type Position struct {
	Name string
	Line int
}

// String formats the position as "name:line", omitting unknown parts.
func (p Position) String() string {
	switch {
	case p.Name == "" && p.Line == 0:
		return ""
	case p.Line == 0:
		return p.Name
	case p.Name == "":
		return "line " + strconv.Itoa(p.Line)
	default:
		return p.Name + ":" + strconv.Itoa(p.Line)
	}
}

// Statement is a single parsed declaration.
type Statement struct {
	Kind    StatementKind
	RuleID  RuleID
	Options RuleOption
	Pos     Position
}

// AllStatement returns an enable-all declaration.
func AllStatement() Statement {
	return Statement{Kind: KindEnableAll}
}

// StyleStatement returns a style declaration for id.
func StyleStatement(id RuleID, opts RuleOption) Statement {
	return Statement{Kind: KindSetStyle, RuleID: id, Options: opts}
}

// ExcludeStatement returns an exclusion for id.
func ExcludeStatement(id RuleID) Statement {
	return Statement{Kind: KindExclude, RuleID: id}
}

// At returns a copy of s positioned at pos.
func (s Statement) At(pos Position) Statement {
	s.Pos = pos
	return s
}
