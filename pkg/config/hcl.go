package config

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// HCL styles use one block per override:
//
//	all = true
//
//	rule "MD003" {
//	  style = "atx"
//	}
//
//	exclude = ["MD013", "MD041"]

type hclDocument struct {
	All     *bool     `hcl:"all,optional"`
	Exclude []string  `hcl:"exclude,optional"`
	Rules   []hclRule `hcl:"rule,block"`
}

type hclRule struct {
	ID      string   `hcl:"id,label"`
	Options hcl.Body `hcl:",remain"`
}

func parseHCL(name string, data []byte) (*Parsed, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, hclParseError(name, diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, hclParseError(name, diags)
	}

	result := &Parsed{}
	if doc.All != nil && *doc.All {
		result.add(ruleconfig.AllStatement().At(ruleconfig.Position{Name: name}))
	}

	for _, rule := range doc.Rules {
		opts, line, err := hclOptions(name, rule)
		if err != nil {
			return nil, err
		}
		pos := ruleconfig.Position{Name: name, Line: line}
		result.add(ruleconfig.StyleStatement(ruleconfig.RuleID(rule.ID), opts).At(pos))
	}

	for _, id := range doc.Exclude {
		result.add(ruleconfig.ExcludeStatement(ruleconfig.RuleID(id)).At(ruleconfig.Position{Name: name}))
	}
	return result, nil
}

// hclOptions reads the attributes of a rule block as options.
func hclOptions(name string, rule hclRule) (ruleconfig.RuleOption, int, error) {
	line := 0
	if body, ok := rule.Options.(*hclsyntax.Body); ok {
		line = body.SrcRange.Start.Line
	}

	attrs, diags := rule.Options.JustAttributes()
	if diags.HasErrors() {
		return nil, line, hclParseError(name, diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	opts := make(ruleconfig.RuleOption, len(ordered))
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, line, hclParseError(name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, line, &ParseError{
				Name:    name,
				Line:    attr.Range.Start.Line,
				Column:  attr.Range.Start.Column,
				Message: fmt.Sprintf("rule %q option %q: %v", rule.ID, attr.Name, err),
			}
		}
		opts[attr.Name] = goVal
	}
	return opts, line, nil
}

var errNullValue = errors.New("value is null")

func ctyToGo(val cty.Value) (any, error) {
	if val.IsNull() || !val.IsKnown() {
		return nil, errNullValue
	}
	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Bool:
		return val.True(), nil
	case cty.Number:
		num := val.AsBigFloat()
		if num.IsInt() {
			if n, acc := num.Int64(); acc == big.Exact {
				return int(n), nil
			}
		}
		f, _ := num.Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", val.Type().FriendlyName())
	}
}

func goToCty(value any) (cty.Value, error) {
	switch val := value.(type) {
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", value)
	}
}

func hclParseError(name string, diags hcl.Diagnostics) *ParseError {
	perr := &ParseError{Name: name, Message: diags.Error(), Err: diags}
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		perr.Message = diag.Summary
		if diag.Detail != "" {
			perr.Message += ": " + diag.Detail
		}
		if diag.Subject != nil {
			perr.Line = diag.Subject.Start.Line
			perr.Column = diag.Subject.Start.Column
		}
		break
	}
	return perr
}

func encodeHCL(stmts []ruleconfig.Statement) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	var excluded []cty.Value
	for _, stmt := range stmts {
		switch stmt.Kind {
		case ruleconfig.KindEnableAll:
			body.SetAttributeValue("all", cty.True)
		case ruleconfig.KindSetStyle:
			body.AppendNewline()
			block := body.AppendNewBlock("rule", []string{stmt.RuleID.String()})
			for _, key := range stmt.Options.Keys() {
				if !hclsyntax.ValidIdentifier(key) {
					return nil, fmt.Errorf("rule %s: option %q is not a valid HCL identifier", stmt.RuleID, key)
				}
				val, err := goToCty(stmt.Options[key])
				if err != nil {
					return nil, fmt.Errorf("rule %s option %q: %w", stmt.RuleID, key, err)
				}
				block.Body().SetAttributeValue(key, val)
			}
		case ruleconfig.KindExclude:
			excluded = append(excluded, cty.StringVal(stmt.RuleID.String()))
		default:
			return nil, fmt.Errorf("encode hcl: unknown statement %s", stmt.Kind)
		}
	}

	if len(excluded) > 0 {
		body.AppendNewline()
		body.SetAttributeValue("exclude", cty.ListVal(excluded))
	}
	return file.Bytes(), nil
}
