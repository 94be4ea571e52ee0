package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// markdownlint config keys that are not rules.
const (
	mdlKeyDefault = "default"
	mdlKeyExtends = "extends"
	mdlKeySchema  = "$schema"
	mdlKeyEnabled = "enabled"
)

// parseMarkdownlint converts a markdownlint config (.markdownlint.json,
// .jsonc, .yaml, .yml) into declarations:
//
//   - "default" absent or true enables all rules
//   - a rule set to false, or to an object with "enabled": false, is excluded
//   - a rule set to an object is styled with the object's other keys
//   - a tag key set to false excludes every rule carrying the tag
func parseMarkdownlint(name string, data []byte, opts ParseOptions) (*Parsed, error) {
	var raw map[string]any
	if isYAMLName(name) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, yamlParseError(name, err)
		}
	} else {
		plain := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(plain)) > 0 {
			decoder := json.NewDecoder(bytes.NewReader(plain))
			decoder.UseNumber()
			if err := decoder.Decode(&raw); err != nil {
				return nil, jsonParseError(name, plain, err)
			}
			if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
				line, col := lineColumn(plain, int(decoder.InputOffset()))
				return nil, &ParseError{Name: name, Line: line, Column: col, Message: "unexpected data after config object"}
			}
		}
	}

	result := &Parsed{}
	pos := ruleconfig.Position{Name: name}

	enableAll := true
	if value, ok := raw[mdlKeyDefault]; ok {
		flag, isBool := value.(bool)
		if !isBool {
			return nil, &ParseError{Name: name, Message: fmt.Sprintf("%q must be a boolean", mdlKeyDefault)}
		}
		enableAll = flag
	}
	if enableAll {
		result.add(ruleconfig.AllStatement().At(pos))
	}
	if _, ok := raw[mdlKeyExtends]; ok {
		result.warnf("%s: %q is not supported; the extended config was not loaded", name, mdlKeyExtends)
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		switch key {
		case mdlKeyDefault, mdlKeyExtends, mdlKeySchema:
			continue
		}
		if err := convertMarkdownlintKey(result, pos, key, raw[key], opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertMarkdownlintKey(result *Parsed, pos ruleconfig.Position, key string, value any, opts ParseOptions) error {
	var tagRules []ruleconfig.RuleID
	if opts.Tags != nil {
		tagRules = opts.Tags.Tag(key)
	}

	switch val := value.(type) {
	case bool:
		if val {
			return nil
		}
		if len(tagRules) > 0 {
			for _, id := range tagRules {
				result.add(ruleconfig.ExcludeStatement(id).At(pos))
			}
			return nil
		}
		result.add(ruleconfig.ExcludeStatement(ruleconfig.RuleID(key)).At(pos))
	case map[string]any:
		if len(tagRules) > 0 {
			result.warnf("%s: options for tag %q are not supported; ignored", pos.Name, key)
			return nil
		}
		ruleOpts := ruleconfig.RuleOption{}
		excluded := false
		for optKey, optVal := range val {
			if optKey == mdlKeyEnabled {
				if enabled, ok := optVal.(bool); ok {
					excluded = !enabled
					continue
				}
			}
			switch optVal.(type) {
			case []any, map[string]any:
				result.warnf("%s: %s option %q is not a scalar; ignored", pos.Name, key, optKey)
				continue
			}
			ruleOpts[optKey] = jsonNumberValue(optVal)
		}
		if excluded {
			result.add(ruleconfig.ExcludeStatement(ruleconfig.RuleID(key)).At(pos))
			return nil
		}
		if len(ruleOpts) > 0 {
			result.add(ruleconfig.StyleStatement(ruleconfig.RuleID(key), ruleOpts).At(pos))
		}
	case nil:
		result.warnf("%s: %q has no value; ignored", pos.Name, key)
	default:
		return &ParseError{
			Name:    pos.Name,
			Message: fmt.Sprintf("%q must be a boolean or an object, got %T", key, value),
		}
	}
	return nil
}
