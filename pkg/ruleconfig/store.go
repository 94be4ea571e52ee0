package ruleconfig

import (
	"fmt"
	"maps"
	"slices"
)

// RuleDefault is the engine's default configuration for one rule.
type RuleDefault struct {
	ID             RuleID
	DefaultOptions RuleOption
}

// Catalog lists every rule the linting engine knows, with its defaults.
type Catalog interface {
	RuleDefaults() []RuleDefault
}

// Store accumulates style declarations. It is built by a single caller and
// is not safe for concurrent mutation. After Resolve it rejects changes.
type Store struct {
	baselineEnabled bool
	styles          map[RuleID]RuleOption
	excluded        map[RuleID]struct{}
	resolved        bool
}

// NewStore returns an empty store: nothing enabled, nothing styled.
func NewStore() *Store {
	return &Store{
		styles:   make(map[RuleID]RuleOption),
		excluded: make(map[RuleID]struct{}),
	}
}

// EnableAll turns on the baseline. Calling it more than once has no
// further effect.
func (s *Store) EnableAll() error {
	if s.resolved {
		return ErrResolved
	}
	s.baselineEnabled = true
	return nil
}

// SetStyle records opts for id, replacing any earlier options for the same
// rule. It does not change whether the rule is enabled.
func (s *Store) SetStyle(id RuleID, opts RuleOption) error {
	if s.resolved {
		return ErrResolved
	}
	if err := id.Validate(); err != nil {
		return err
	}

	normalized, err := normalizeOptions(id, opts)
	if err != nil {
		return err
	}
	s.styles[id] = normalized
	return nil
}

// Exclude turns id off regardless of any style recorded for it.
func (s *Store) Exclude(id RuleID) error {
	if s.resolved {
		return ErrResolved
	}
	if err := id.Validate(); err != nil {
		return err
	}
	s.excluded[id] = struct{}{}
	return nil
}

// Apply dispatches a parsed statement to the matching operation.
// Errors carry the statement position when one is known.
func (s *Store) Apply(stmt Statement) error {
	var err error
	switch stmt.Kind {
	case KindEnableAll:
		err = s.EnableAll()
	case KindSetStyle:
		err = s.SetStyle(stmt.RuleID, stmt.Options)
	case KindExclude:
		err = s.Exclude(stmt.RuleID)
	default:
		err = &ArgumentError{RuleID: stmt.RuleID, Reason: "unknown statement " + stmt.Kind.String()}
	}

	if err != nil {
		if pos := stmt.Pos.String(); pos != "" {
			return fmt.Errorf("%s: %w", pos, err)
		}
		return err
	}
	return nil
}

// ApplyAll applies statements in order and stops at the first error.
func (s *Store) ApplyAll(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := s.Apply(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BaselineEnabled reports whether an enable-all declaration was applied.
func (s *Store) BaselineEnabled() bool {
	return s.baselineEnabled
}

// Style returns a copy of the options recorded for id.
func (s *Store) Style(id RuleID) (RuleOption, bool) {
	opts, ok := s.styles[id]
	return opts.Clone(), ok
}

// IsExcluded reports whether id has been excluded.
func (s *Store) IsExcluded(id RuleID) bool {
	_, ok := s.excluded[id]
	return ok
}

// Resolved reports whether Resolve has been called.
func (s *Store) Resolved() bool {
	return s.resolved
}

// Statements returns the declarations that rebuild this store: enable-all
// first, then styles and exclusions each sorted by rule id.
func (s *Store) Statements() []Statement {
	stmts := make([]Statement, 0, 1+len(s.styles)+len(s.excluded))
	if s.baselineEnabled {
		stmts = append(stmts, AllStatement())
	}
	for _, id := range slices.Sorted(maps.Keys(s.styles)) {
		stmts = append(stmts, StyleStatement(id, s.styles[id].Clone()))
	}
	for _, id := range slices.Sorted(maps.Keys(s.excluded)) {
		stmts = append(stmts, ExcludeStatement(id))
	}
	return stmts
}

// Resolve freezes the store and computes the effective configuration for
// every rule in catalog plus every rule named by a declaration. A nil
// catalog resolves only the declared rules.
func (s *Store) Resolve(catalog Catalog) *EffectiveConfig {
	s.resolved = true

	eff := &EffectiveConfig{
		baseline: s.baselineEnabled,
		styles:   make(map[RuleID]RuleOption, len(s.styles)),
		excluded: maps.Clone(s.excluded),
		defaults: make(map[RuleID]RuleOption),
		rules:    make(map[RuleID]RuleState),
	}
	for id, opts := range s.styles {
		eff.styles[id] = opts.Clone()
	}
	if catalog != nil {
		for _, def := range catalog.RuleDefaults() {
			eff.defaults[def.ID] = def.DefaultOptions.Clone()
		}
	}

	for id := range eff.defaults {
		eff.rules[id] = eff.state(id)
	}
	for id := range eff.styles {
		eff.rules[id] = eff.state(id)
	}
	for id := range eff.excluded {
		eff.rules[id] = eff.state(id)
	}
	return eff
}
