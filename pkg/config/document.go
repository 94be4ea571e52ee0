package config

import (
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// Document is the structured form of a style used by the YAML and JSON
// formats:
//
//	all: true
//	rules:
//	  - id: MD003
//	    options: {style: atx}
//	exclude: [MD013, MD041]
//
// Rules keep their order so a later entry for the same id wins.
type Document struct {
	All     bool        `json:"all,omitempty"     yaml:"all,omitempty"`
	Rules   []RuleEntry `json:"rules,omitempty"   yaml:"rules,omitempty"`
	Exclude []string    `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// RuleEntry is one style override in a Document.
type RuleEntry struct {
	ID      string         `json:"id"      yaml:"id"`
	Options map[string]any `json:"options" yaml:"options"`
}

// documentKeys are the top-level keys a Document accepts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var documentKeys = map[string]bool{
	"all":     true,
	"rules":   true,
	"exclude": true,
}

// NewDocument builds a Document from statements.
func NewDocument(stmts []ruleconfig.Statement) *Document {
	doc := &Document{}
	for _, stmt := range stmts {
		switch stmt.Kind {
		case ruleconfig.KindEnableAll:
			doc.All = true
		case ruleconfig.KindSetStyle:
			doc.Rules = append(doc.Rules, RuleEntry{
				ID:      stmt.RuleID.String(),
				Options: stmt.Options.Clone(),
			})
		case ruleconfig.KindExclude:
			doc.Exclude = append(doc.Exclude, stmt.RuleID.String())
		default:
		}
	}
	return doc
}

// Statements converts the document into declarations: enable-all, then
// rules in order, then exclusions. ruleLines and excludeLines supply source
// line numbers by index and may be nil.
func (d *Document) Statements(name string, ruleLines, excludeLines []int) []ruleconfig.Statement {
	stmts := make([]ruleconfig.Statement, 0, 1+len(d.Rules)+len(d.Exclude))
	if d.All {
		stmts = append(stmts, ruleconfig.AllStatement().At(ruleconfig.Position{Name: name}))
	}
	for i, entry := range d.Rules {
		pos := ruleconfig.Position{Name: name, Line: lineAt(ruleLines, i)}
		stmts = append(stmts, ruleconfig.StyleStatement(ruleconfig.RuleID(entry.ID), entry.Options).At(pos))
	}
	for i, id := range d.Exclude {
		pos := ruleconfig.Position{Name: name, Line: lineAt(excludeLines, i)}
		stmts = append(stmts, ruleconfig.ExcludeStatement(ruleconfig.RuleID(id)).At(pos))
	}
	return stmts
}

func lineAt(lines []int, i int) int {
	if i < len(lines) {
		return lines[i]
	}
	return 0
}
