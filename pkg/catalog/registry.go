// Package catalog describes the rules a markdownlint engine knows: their
// ids, aliases, tags and default options.
package catalog

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// Rule describes one engine rule.
type Rule struct {
	// ID is the stable rule code (e.g., "MD003").
	ID ruleconfig.RuleID

	// Alias is the human-readable name (e.g., "header-style").
	Alias string

	// Description summarizes what the rule checks.
	Description string

	// Tags group related rules (e.g., "headers").
	Tags []string

	// Defaults are the options the engine uses when no style is set.
	Defaults ruleconfig.RuleOption
}

// Registry holds rule descriptions.
type Registry struct {
	mu      sync.RWMutex
	byID    map[ruleconfig.RuleID]Rule
	byAlias map[string]ruleconfig.RuleID
	tags    map[string][]ruleconfig.RuleID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[ruleconfig.RuleID]Rule),
		byAlias: make(map[string]ruleconfig.RuleID),
		tags:    make(map[string][]ruleconfig.RuleID),
	}
}

// Register adds rule, replacing any rule with the same id.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID]; ok {
		delete(r.byAlias, strings.ToLower(old.Alias))
		for _, tag := range old.Tags {
			tag = strings.ToLower(tag)
			r.tags[tag] = slices.DeleteFunc(r.tags[tag], func(id ruleconfig.RuleID) bool { return id == rule.ID })
		}
	}

	r.byID[rule.ID] = rule
	if rule.Alias != "" {
		r.byAlias[strings.ToLower(rule.Alias)] = rule.ID
	}
	for _, tag := range rule.Tags {
		tag = strings.ToLower(tag)
		ids := append(r.tags[tag], rule.ID)
		slices.Sort(ids)
		r.tags[tag] = ids
	}
}

// Get returns the rule with the given id.
func (r *Registry) Get(id ruleconfig.RuleID) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Resolve maps a key to a canonical rule id. The key may be the id, the id
// in another case ("md003"), or the alias.
func (r *Registry) Resolve(key string) (ruleconfig.RuleID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[ruleconfig.RuleID(key)]; ok {
		return ruleconfig.RuleID(key), true
	}
	upper := ruleconfig.RuleID(strings.ToUpper(key))
	if _, ok := r.byID[upper]; ok {
		return upper, true
	}
	if id, ok := r.byAlias[strings.ToLower(key)]; ok {
		return id, true
	}
	return "", false
}

// Rules returns all rules sorted by id.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.byID))
	for _, id := range slices.Sorted(maps.Keys(r.byID)) {
		rules = append(rules, r.byID[id])
	}
	return rules
}

// IDs returns all rule ids in sorted order.
func (r *Registry) IDs() []ruleconfig.RuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byID))
}

// Tag returns the ids of the rules carrying tag, or nil.
func (r *Registry) Tag(tag string) []ruleconfig.RuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tags[strings.ToLower(tag)])
}

// Tags returns every tag name in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.tags))
	for tag, ids := range r.tags {
		if len(ids) > 0 {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// KnownOption reports whether key is an option the engine accepts for id.
func (r *Registry) KnownOption(id ruleconfig.RuleID, key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	if !ok {
		return false
	}
	_, ok = rule.Defaults[key]
	return ok
}

// RuleDefaults implements ruleconfig.Catalog.
func (r *Registry) RuleDefaults() []ruleconfig.RuleDefault {
	rules := r.Rules()
	defaults := make([]ruleconfig.RuleDefault, 0, len(rules))
	for _, rule := range rules {
		defaults = append(defaults, ruleconfig.RuleDefault{
			ID:             rule.ID,
			DefaultOptions: rule.Defaults.Clone(),
		})
	}
	return defaults
}

//nolint:gochecknoglobals // Built-in registry is created once on first use
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry of built-in markdownlint rules.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, rule := range builtinRules() {
			defaultRegistry.Register(rule)
		}
	})
	return defaultRegistry
}
