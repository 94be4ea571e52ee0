package config

import (
	"fmt"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// TagLookup expands a tag name into the rules carrying it.
// *catalog.Registry satisfies it.
type TagLookup interface {
	Tag(name string) []ruleconfig.RuleID
}

// ParseOptions controls decoding.
type ParseOptions struct {
	// Tags expands tag references (exclude_tag in style files, tag keys in
	// markdownlint configs). Tag references fail to parse when nil.
	Tags TagLookup
}

// Parsed holds decoded declarations.
type Parsed struct {
	// Statements in declaration order.
	Statements []ruleconfig.Statement

	// Warnings are non-fatal issues, such as ignored keys.
	Warnings []string
}

func (p *Parsed) add(stmt ruleconfig.Statement) {
	p.Statements = append(p.Statements, stmt)
}

func (p *Parsed) warnf(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// Parse decodes data in the given format. name is used in error positions.
func Parse(format Format, name string, data []byte, opts ParseOptions) (*Parsed, error) {
	switch format {
	case FormatStyle:
		return parseStyle(name, data, opts)
	case FormatYAML:
		return parseYAML(name, data)
	case FormatJSON:
		return parseJSON(name, data)
	case FormatHCL:
		return parseHCL(name, data)
	case FormatMarkdownlint:
		return parseMarkdownlint(name, data, opts)
	default:
		return nil, fmt.Errorf("parse %s: unknown format %q", name, format)
	}
}

// Encode writes statements in the given format.
func Encode(format Format, stmts []ruleconfig.Statement) ([]byte, error) {
	switch format {
	case FormatStyle:
		return encodeStyle(stmts)
	case FormatYAML:
		return encodeYAML(stmts)
	case FormatJSON:
		return encodeJSON(stmts)
	case FormatHCL:
		return encodeHCL(stmts)
	case FormatMarkdownlint:
		return nil, fmt.Errorf("%w: %s", ErrEncodeUnsupported, format)
	default:
		return nil, fmt.Errorf("encode: unknown format %q", format)
	}
}

// EncodeStore writes the declarations that rebuild store.
func EncodeStore(format Format, store *ruleconfig.Store) ([]byte, error) {
	return Encode(format, store.Statements())
}
