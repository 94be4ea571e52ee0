package ruleconfig

import (
	"maps"
	"slices"
)

// RuleState is the resolved configuration of one rule.
type RuleState struct {
	ID RuleID

	// Enabled is true when the baseline is on and the rule is not excluded.
	Enabled bool

	// Options are the style override, or the engine default when the rule
	// has no override or is excluded.
	Options RuleOption

	// Styled is true when Options came from a style override.
	Styled bool

	// Excluded is true when the rule was explicitly turned off.
	Excluded bool

	// Known is true when the engine catalog lists the rule.
	Known bool
}

// EffectiveConfig is the read-only result of Store.Resolve.
type EffectiveConfig struct {
	baseline bool
	styles   map[RuleID]RuleOption
	excluded map[RuleID]struct{}
	defaults map[RuleID]RuleOption
	rules    map[RuleID]RuleState
}

// state computes the resolution for id. Exclusion wins over style.
func (c *EffectiveConfig) state(id RuleID) RuleState {
	_, excluded := c.excluded[id]
	defaults, known := c.defaults[id]
	st := RuleState{
		ID:       id,
		Enabled:  c.baseline && !excluded,
		Options:  defaults.Clone(),
		Excluded: excluded,
		Known:    known,
	}
	if opts, ok := c.styles[id]; ok && !excluded {
		st.Options = opts.Clone()
		st.Styled = true
	}
	return st
}

// BaselineEnabled reports whether the configuration enabled all rules.
func (c *EffectiveConfig) BaselineEnabled() bool {
	return c.baseline
}

// Rule returns the state of id. Rules not in the catalog and never declared
// follow the baseline with no options.
func (c *EffectiveConfig) Rule(id RuleID) RuleState {
	if st, ok := c.rules[id]; ok {
		st.Options = st.Options.Clone()
		return st
	}
	return c.state(id)
}

// Enabled reports whether id should run.
func (c *EffectiveConfig) Enabled(id RuleID) bool {
	return c.Rule(id).Enabled
}

// Options returns the options the engine should use for id.
func (c *EffectiveConfig) Options(id RuleID) RuleOption {
	return c.Rule(id).Options
}

// Rules returns every resolved rule ordered by id.
func (c *EffectiveConfig) Rules() []RuleState {
	ids := slices.SortedFunc(maps.Keys(c.rules), compareIDs)
	states := make([]RuleState, 0, len(ids))
	for _, id := range ids {
		states = append(states, c.Rule(id))
	}
	return states
}

// EnabledIDs returns the ids of enabled rules in order.
func (c *EffectiveConfig) EnabledIDs() []RuleID {
	return c.filterIDs(true)
}

// DisabledIDs returns the ids of disabled rules in order.
func (c *EffectiveConfig) DisabledIDs() []RuleID {
	return c.filterIDs(false)
}

func (c *EffectiveConfig) filterIDs(enabled bool) []RuleID {
	var ids []RuleID
	for _, st := range c.Rules() {
		if st.Enabled == enabled {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// Equal reports whether both configurations resolve every rule the same
// way: same rule set, same enablement, same options.
func (c *EffectiveConfig) Equal(other *EffectiveConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.baseline != other.baseline || len(c.rules) != len(other.rules) {
		return false
	}
	for id, st := range c.rules {
		ost, ok := other.rules[id]
		if !ok || st.Enabled != ost.Enabled || !st.Options.Equal(ost.Options) {
			return false
		}
	}
	return true
}
