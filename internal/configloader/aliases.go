package configloader

import (
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// markdownlintAliases maps markdownlint (JavaScript) rule names to rule IDs.
// The catalog carries mdl's own aliases; markdownlint renamed most of the
// header rules, so configs converted from it use these instead.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintAliases = map[string]ruleconfig.RuleID{
	// Headings
	"heading-increment":            "MD001",
	"heading-style":                "MD003",
	"blanks-around-headings":       "MD022",
	"heading-start-left":           "MD023",
	"no-duplicate-heading":         "MD024",
	"single-title":                 "MD025",
	"single-h1":                    "MD025",
	"no-trailing-punctuation":      "MD026",
	"first-line-heading":           "MD041",
	"first-line-h1":                "MD041",
	"no-missing-space-atx":         "MD018",
	"no-multiple-space-atx":        "MD019",
	"no-missing-space-closed-atx":  "MD020",
	"no-multiple-space-closed-atx": "MD021",

	// Lists
	"ul-style":            "MD004",
	"list-indent":         "MD005",
	"ul-start-left":       "MD006",
	"ul-indent":           "MD007",
	"ol-prefix":           "MD029",
	"list-marker-space":   "MD030",
	"blanks-around-lists": "MD032",

	// Whitespace
	"no-trailing-spaces":      "MD009",
	"no-hard-tabs":            "MD010",
	"no-multiple-blanks":      "MD012",
	"line-length":             "MD013",
	"single-trailing-newline": "MD047",

	// Code
	"commands-show-output": "MD014",
	"blanks-around-fences": "MD031",
	"no-space-in-code":     "MD038",
	"fenced-code-language": "MD040",
	"code-block-style":     "MD046",

	// Links
	"no-reversed-links": "MD011",
	"no-bare-urls":      "MD034",
	"no-space-in-links": "MD039",

	// Blockquote
	"no-multiple-space-blockquote": "MD027",
	"no-blanks-blockquote":         "MD028",

	// HTML
	"no-inline-html": "MD033",

	// HR
	"hr-style": "MD035",

	// Emphasis
	"no-emphasis-as-heading": "MD036",
	"no-space-in-emphasis":   "MD037",
}

// markdownlintTags maps markdownlint tag names to catalog tags where the
// two tools disagree.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintTags = map[string]string{
	"headings": catalog.TagHeaders,
	"heading":  catalog.TagHeaders,
}

// ruleLookup resolves rule keys and tag names against the catalog,
// falling back to markdownlint's vocabulary.
type ruleLookup struct {
	reg *catalog.Registry
}

// Tag implements config.TagLookup.
func (l ruleLookup) Tag(name string) []ruleconfig.RuleID {
	if ids := l.reg.Tag(name); len(ids) > 0 {
		return ids
	}
	if tag, ok := markdownlintTags[strings.ToLower(name)]; ok {
		return l.reg.Tag(tag)
	}
	return nil
}

// ResolveRule converts an ID, mdl alias or markdownlint alias to a
// canonical rule ID.
func (l ruleLookup) ResolveRule(key string) (ruleconfig.RuleID, bool) {
	if id, ok := l.reg.Resolve(key); ok {
		return id, true
	}
	if id, ok := markdownlintAliases[strings.ToLower(key)]; ok {
		if _, known := l.reg.Get(id); known {
			return id, true
		}
	}
	return "", false
}
