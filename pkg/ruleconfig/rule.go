// Package ruleconfig holds markdownlint style declarations and resolves them
// into the effective rule configuration handed to a linting engine.
//
// A Store accumulates three kinds of declaration: enable-all, a per-rule
// style override and a per-rule exclusion. Resolve freezes the store and
// returns an EffectiveConfig in which exclusion always wins over style.
package ruleconfig

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"unicode"
)

// RuleID names a lint rule (e.g., "MD003"). The vocabulary is owned by the
// linting engine; this package only checks the identifier is well formed.
type RuleID string

// String returns the identifier as a plain string.
func (id RuleID) String() string {
	return string(id)
}

// Validate returns an *ArgumentError if id is empty or contains whitespace.
func (id RuleID) Validate() error {
	raw := string(id)
	if raw == "" {
		return &ArgumentError{Reason: "rule id is empty"}
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return &ArgumentError{RuleID: id, Reason: "rule id contains whitespace"}
	}
	return nil
}

// RuleOption maps option names to values for a single rule.
// Values are string, bool, int or float64.
type RuleOption map[string]any

// Clone returns a copy of the options. Values are scalars, so a shallow copy
// is a deep copy.
func (o RuleOption) Clone() RuleOption {
	if o == nil {
		return nil
	}
	return maps.Clone(o)
}

// Keys returns the option names in sorted order.
func (o RuleOption) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// Equal reports whether both option sets hold the same keys and values.
func (o RuleOption) Equal(other RuleOption) bool {
	return maps.Equal(o, other)
}

// String renders the options as "key=value" pairs in key order.
func (o RuleOption) String() string {
	parts := make([]string, 0, len(o))
	for _, key := range o.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", key, o[key]))
	}
	return strings.Join(parts, " ")
}

// normalizeOptions validates opts and returns a copy with every value in its
// canonical type.
func normalizeOptions(id RuleID, opts RuleOption) (RuleOption, error) {
	if len(opts) == 0 {
		return nil, &ArgumentError{RuleID: id, Reason: "style options are empty"}
	}

	normalized := make(RuleOption, len(opts))
	for key, value := range opts {
		if strings.TrimSpace(key) == "" {
			return nil, &ArgumentError{RuleID: id, Reason: "option name is empty"}
		}
		canonical, err := NormalizeValue(value)
		if err != nil {
			return nil, &ArgumentError{RuleID: id, Option: key, Reason: err.Error()}
		}
		normalized[key] = canonical
	}
	return normalized, nil
}

var errEmptyValue = errors.New("value is empty")

// NormalizeValue converts a decoded option value into one of the canonical
// types: string, bool, int or float64. Whole-valued floats become int so
// values decoded from JSON compare equal to values decoded from YAML.
func NormalizeValue(value any) (any, error) {
	switch val := value.(type) {
	case string:
		if val == "" {
			return nil, errEmptyValue
		}
		return val, nil
	case bool:
		return val, nil
	case int:
		return val, nil
	case int8:
		return int(val), nil
	case int16:
		return int(val), nil
	case int32:
		return int(val), nil
	case int64:
		return int(val), nil
	case uint:
		return int(val), nil //nolint:gosec // option values are small
	case uint8:
		return int(val), nil
	case uint16:
		return int(val), nil
	case uint32:
		return int(val), nil
	case uint64:
		return int(val), nil //nolint:gosec // option values are small
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	case nil:
		return nil, errEmptyValue
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}

func normalizeFloat(val float64) (any, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, fmt.Errorf("value %v is not a finite number", val)
	}
	if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
		return int(val), nil
	}
	return val, nil
}

// compareIDs orders rule ids lexically.
func compareIDs(a, b RuleID) int {
	return cmp.Compare(a, b)
}
