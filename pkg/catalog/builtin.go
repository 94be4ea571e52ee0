package catalog

import "github.com/yaklabco/mdlstyle/pkg/ruleconfig"

// Tag names used by the built-in rules.
const (
	TagHeaders     = "headers"
	TagBullet      = "bullet"
	TagUL          = "ul"
	TagOL          = "ol"
	TagIndentation = "indentation"
	TagWhitespace  = "whitespace"
	TagHardTab     = "hard_tab"
	TagLinks       = "links"
	TagBlankLines  = "blank_lines"
	TagLineLength  = "line_length"
	TagCode        = "code"
	TagATX         = "atx"
	TagATXClosed   = "atx_closed"
	TagSpaces      = "spaces"
	TagBlockquote  = "blockquote"
	TagHTML        = "html"
	TagURL         = "url"
	TagHR          = "hr"
	TagEmphasis    = "emphasis"
	TagLanguage    = "language"
)

const defaultPunctuation = ".,;:!?"

func tags(names ...string) []string {
	return names
}

// builtinRules returns the rules shipped with markdownlint (mdl).
//
//nolint:funlen // Read-only rule table.
func builtinRules() []Rule {
	return []Rule{
		{ID: "MD001", Alias: "header-increment", Description: "Header levels should only increment by one level at a time",
			Tags: tags(TagHeaders)},
		{ID: "MD002", Alias: "first-header-h1", Description: "First header should be a top level header",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"level": 1}},
		{ID: "MD003", Alias: "header-style", Description: "Header style",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"style": "consistent"}},
		{ID: "MD004", Alias: "ul-style", Description: "Unordered list style",
			Tags: tags(TagBullet, TagUL), Defaults: ruleconfig.RuleOption{"style": "consistent"}},
		{ID: "MD005", Alias: "list-indent", Description: "Inconsistent indentation for list items at the same level",
			Tags: tags(TagBullet, TagUL, TagIndentation)},
		{ID: "MD006", Alias: "ul-start-left", Description: "Consider starting bulleted lists at the beginning of the line",
			Tags: tags(TagBullet, TagUL, TagIndentation)},
		{ID: "MD007", Alias: "ul-indent", Description: "Unordered list indentation",
			Tags: tags(TagBullet, TagUL, TagIndentation), Defaults: ruleconfig.RuleOption{"indent": 3}},
		{ID: "MD009", Alias: "no-trailing-spaces", Description: "Trailing spaces",
			Tags: tags(TagWhitespace), Defaults: ruleconfig.RuleOption{"br_spaces": 2}},
		{ID: "MD010", Alias: "no-hard-tabs", Description: "Hard tabs",
			Tags: tags(TagWhitespace, TagHardTab), Defaults: ruleconfig.RuleOption{"ignore_code_blocks": false}},
		{ID: "MD011", Alias: "no-reversed-links", Description: "Reversed link syntax",
			Tags: tags(TagLinks)},
		{ID: "MD012", Alias: "no-multiple-blanks", Description: "Multiple consecutive blank lines",
			Tags: tags(TagWhitespace, TagBlankLines)},
		{ID: "MD013", Alias: "line-length", Description: "Line length",
			Tags: tags(TagLineLength), Defaults: ruleconfig.RuleOption{
				"line_length":        80,
				"ignore_code_blocks": false,
				"code_blocks":        true,
				"tables":             true,
			}},
		{ID: "MD014", Alias: "commands-show-output", Description: "Dollar signs used before commands without showing output",
			Tags: tags(TagCode)},
		{ID: "MD018", Alias: "no-missing-space-atx", Description: "No space after hash on atx style header",
			Tags: tags(TagHeaders, TagATX, TagSpaces)},
		{ID: "MD019", Alias: "no-multiple-space-atx", Description: "Multiple spaces after hash on atx style header",
			Tags: tags(TagHeaders, TagATX, TagSpaces)},
		{ID: "MD020", Alias: "no-missing-space-closed-atx", Description: "No space inside hashes on closed atx style header",
			Tags: tags(TagHeaders, TagATXClosed, TagSpaces)},
		{ID: "MD021", Alias: "no-multiple-space-closed-atx", Description: "Multiple spaces inside hashes on closed atx style header",
			Tags: tags(TagHeaders, TagATXClosed, TagSpaces)},
		{ID: "MD022", Alias: "blanks-around-headers", Description: "Headers should be surrounded by blank lines",
			Tags: tags(TagHeaders, TagBlankLines)},
		{ID: "MD023", Alias: "header-start-left", Description: "Headers must start at the beginning of the line",
			Tags: tags(TagHeaders, TagSpaces)},
		{ID: "MD024", Alias: "no-duplicate-header", Description: "Multiple headers with the same content",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"allow_different_nesting": false}},
		{ID: "MD025", Alias: "single-h1", Description: "Multiple top level headers in the same document",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"level": 1}},
		{ID: "MD026", Alias: "no-trailing-punctuation", Description: "Trailing punctuation in header",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"punctuation": defaultPunctuation}},
		{ID: "MD027", Alias: "no-multiple-space-blockquote", Description: "Multiple spaces after blockquote symbol",
			Tags: tags(TagBlockquote, TagWhitespace, TagIndentation)},
		{ID: "MD028", Alias: "no-blanks-blockquote", Description: "Blank line inside blockquote",
			Tags: tags(TagBlockquote, TagWhitespace)},
		{ID: "MD029", Alias: "ol-prefix", Description: "Ordered list item prefix",
			Tags: tags(TagOL), Defaults: ruleconfig.RuleOption{"style": "one"}},
		{ID: "MD030", Alias: "list-marker-space", Description: "Spaces after list markers",
			Tags: tags(TagOL, TagUL, TagWhitespace), Defaults: ruleconfig.RuleOption{
				"ul_single": 1,
				"ol_single": 1,
				"ul_multi":  1,
				"ol_multi":  1,
			}},
		{ID: "MD031", Alias: "blanks-around-fences", Description: "Fenced code blocks should be surrounded by blank lines",
			Tags: tags(TagCode, TagBlankLines)},
		{ID: "MD032", Alias: "blanks-around-lists", Description: "Lists should be surrounded by blank lines",
			Tags: tags(TagBullet, TagUL, TagOL, TagBlankLines)},
		{ID: "MD033", Alias: "no-inline-html", Description: "Inline HTML",
			Tags: tags(TagHTML)},
		{ID: "MD034", Alias: "no-bare-urls", Description: "Bare URL used",
			Tags: tags(TagLinks, TagURL)},
		{ID: "MD035", Alias: "hr-style", Description: "Horizontal rule style",
			Tags: tags(TagHR), Defaults: ruleconfig.RuleOption{"style": "consistent"}},
		{ID: "MD036", Alias: "no-emphasis-as-header", Description: "Emphasis used instead of a header",
			Tags: tags(TagHeaders, TagEmphasis), Defaults: ruleconfig.RuleOption{"punctuation": defaultPunctuation}},
		{ID: "MD037", Alias: "no-space-in-emphasis", Description: "Spaces inside emphasis markers",
			Tags: tags(TagWhitespace, TagEmphasis)},
		{ID: "MD038", Alias: "no-space-in-code", Description: "Spaces inside code span elements",
			Tags: tags(TagWhitespace, TagCode)},
		{ID: "MD039", Alias: "no-space-in-links", Description: "Spaces inside link text",
			Tags: tags(TagWhitespace, TagLinks)},
		{ID: "MD040", Alias: "fenced-code-language", Description: "Fenced code blocks should have a language specified",
			Tags: tags(TagCode, TagLanguage)},
		{ID: "MD041", Alias: "first-line-h1", Description: "First line in file should be a top level header",
			Tags: tags(TagHeaders), Defaults: ruleconfig.RuleOption{"level": 1}},
		{ID: "MD046", Alias: "code-block-style", Description: "Code block style",
			Tags: tags(TagCode), Defaults: ruleconfig.RuleOption{"style": "fenced"}},
		{ID: "MD047", Alias: "single-trailing-newline", Description: "File should end with a single newline character",
			Tags: tags(TagBlankLines)},
	}
}
