package config_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

func sampleStore(t *testing.T) *ruleconfig.Store {
	t.Helper()

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll([]ruleconfig.Statement{
		ruleconfig.AllStatement(),
		ruleconfig.StyleStatement("MD003", ruleconfig.RuleOption{"style": "atx"}),
		ruleconfig.StyleStatement("MD013", ruleconfig.RuleOption{"line_length": 120, "tables": false}),
		ruleconfig.StyleStatement("MD026", ruleconfig.RuleOption{"punctuation": ".,;:!"}),
		ruleconfig.StyleStatement("MD041", ruleconfig.RuleOption{"level": 2}),
		ruleconfig.StyleStatement("X100", ruleconfig.RuleOption{"ratio": 0.25, "label": "it's done"}),
		ruleconfig.ExcludeStatement("MD041"),
		ruleconfig.ExcludeStatement("MD002"),
	}))
	return store
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []config.Format{config.FormatStyle, config.FormatYAML, config.FormatJSON, config.FormatHCL} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			original := sampleStore(t)
			out, err := config.EncodeStore(format, original)
			require.NoError(t, err)

			parsed, err := config.Parse(format, "roundtrip", out, config.ParseOptions{})
			require.NoError(t, err, string(out))
			assert.Empty(t, parsed.Warnings)

			rebuilt := ruleconfig.NewStore()
			require.NoError(t, rebuilt.ApplyAll(parsed.Statements))

			want := original.Resolve(catalog.Default())
			got := rebuilt.Resolve(catalog.Default())
			assert.True(t, want.Equal(got), "round trip through %s changed the result:\n%s", format, out)

			if diff := cmp.Diff(original.Statements(), stripPositions(rebuilt.Statements())); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeParse_LargeInteger(t *testing.T) {
	t.Parallel()

	const big = 1 << 60
	for _, format := range []config.Format{config.FormatStyle, config.FormatYAML, config.FormatJSON, config.FormatHCL} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			original := ruleconfig.NewStore()
			require.NoError(t, original.EnableAll())
			require.NoError(t, original.SetStyle("X200", ruleconfig.RuleOption{"limit": big}))

			out, err := config.EncodeStore(format, original)
			require.NoError(t, err)

			parsed, err := config.Parse(format, "big", out, config.ParseOptions{})
			require.NoError(t, err, string(out))

			rebuilt := ruleconfig.NewStore()
			require.NoError(t, rebuilt.ApplyAll(parsed.Statements))

			eff := rebuilt.Resolve(nil)
			assert.Equal(t, ruleconfig.RuleOption{"limit": big}, eff.Options("X200"), string(out))
			assert.True(t, original.Resolve(nil).Equal(eff))
		})
	}
}

func TestParseMarkdownlint_LargeInteger(t *testing.T) {
	t.Parallel()

	src := `{"MD013": {"line_length": 1152921504606846976, "ratio": 0.5}}`
	parsed, err := config.Parse(config.FormatMarkdownlint, ".markdownlint.json", []byte(src), config.ParseOptions{})
	require.NoError(t, err)

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(nil)
	assert.Equal(t, ruleconfig.RuleOption{"line_length": 1 << 60, "ratio": 0.5}, eff.Options("MD013"))
}

func stripPositions(stmts []ruleconfig.Statement) []ruleconfig.Statement {
	out := make([]ruleconfig.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, stmt.At(ruleconfig.Position{}))
	}
	return out
}

func TestEncode_Markdownlint(t *testing.T) {
	t.Parallel()

	_, err := config.Encode(config.FormatMarkdownlint, nil)
	require.ErrorIs(t, err, config.ErrEncodeUnsupported)
	assert.False(t, config.FormatMarkdownlint.CanEncode())
	assert.True(t, config.FormatHCL.CanEncode())
}

func TestParse_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.Parse(config.Format("toml"), "x.toml", nil, config.ParseOptions{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, config.ErrParse))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.Format
		wantErr bool
	}{
		{"style", config.FormatStyle, false},
		{"rb", config.FormatStyle, false},
		{".yml", config.FormatYAML, false},
		{"YAML", config.FormatYAML, false},
		{"jsonc", config.FormatJSON, false},
		{"hcl", config.FormatHCL, false},
		{"markdownlint", config.FormatMarkdownlint, false},
		{"toml", "", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    config.Format
		wantErr bool
	}{
		{"/home/me/.mdl_styles.rb", config.FormatStyle, false},
		{".mdl_style", config.FormatStyle, false},
		{"/home/me/.mdl_styles", config.FormatStyle, false},
		{".mdlrc-style", config.FormatStyle, false},
		{".mdl_style.yml", config.FormatYAML, false},
		{"project/.mdlstyle.yml", config.FormatYAML, false},
		{".mdlstyle.yaml", config.FormatYAML, false},
		{".mdlstyle.json", config.FormatJSON, false},
		{"style.hcl", config.FormatHCL, false},
		{".markdownlint.json", config.FormatMarkdownlint, false},
		{".markdownlint.jsonc", config.FormatMarkdownlint, false},
		{"docs/.markdownlint.yaml", config.FormatMarkdownlint, false},
		{"README", "", true},
		{"style.toml", "", true},
		{"style.markdownlint", "", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			got, err := config.DetectFormat(testCase.path)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	src := `all: true
rules:
  - id: MD003
    options:
      style: atx
  - id: MD003
    options:
      style: setext
exclude:
  - MD013
`
	parsed, err := config.Parse(config.FormatYAML, ".mdlstyle.yml", []byte(src), config.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, parsed.Statements, 4)
	assert.Equal(t, 3, parsed.Statements[1].Pos.Line)
	assert.Equal(t, 6, parsed.Statements[2].Pos.Line)
	assert.Equal(t, 10, parsed.Statements[3].Pos.Line)

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(catalog.Default())
	assert.Equal(t, ruleconfig.RuleOption{"style": "setext"}, eff.Options("MD003"))
	assert.False(t, eff.Enabled("MD013"))
}

func TestParseYAML_Empty(t *testing.T) {
	t.Parallel()

	parsed, err := config.Parse(config.FormatYAML, "empty.yml", []byte("# nothing\n"), config.ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, parsed.Statements)
}

func TestParseYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{"unknown key", "all: true\nrulez: []\n", 2, `unknown key "rulez"`},
		{"not a mapping", "- MD001\n", 1, "must be a mapping"},
		{"bad indentation", "all: true\n  rules: x\n", 2, "line 2"},
		{"wrong type", "all: maybe\n", 1, "cannot unmarshal"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(config.FormatYAML, "bad.yml", []byte(testCase.src), config.ParseOptions{})
			require.ErrorIs(t, err, config.ErrParse)

			var perr *config.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, testCase.wantLine, perr.Line)
			assert.Contains(t, perr.Error(), testCase.wantMsg)
		})
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	src := `{
  // enable everything, then adjust
  "all": true,
  "rules": [
    {"id": "MD013", "options": {"line_length": 100.0, "code_blocks": false}},
  ],
  "exclude": ["MD041"]
}`
	parsed, err := config.Parse(config.FormatJSON, ".mdlstyle.json", []byte(src), config.ParseOptions{})
	require.NoError(t, err)

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(catalog.Default())
	assert.Equal(t, ruleconfig.RuleOption{"line_length": 100, "code_blocks": false}, eff.Options("MD013"))
	assert.False(t, eff.Enabled("MD041"))
	assert.True(t, eff.Enabled("MD001"))
}

func TestParseJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{"syntax", "{\n  \"all\": true\n  \"exclude\": []\n}", 3, "invalid character"},
		{"unknown field", "{\"all\": true, \"extra\": 1}", 0, "unknown field"},
		{"wrong type", "{\n\"all\": \"yes\"\n}", 2, "cannot unmarshal"},
		{"trailing data", "{\"all\": true}\n{}", 2, "unexpected data"},
		{"truncated", "{\"all\": true,\n", 2, "unexpected EOF"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(config.FormatJSON, "bad.json", []byte(testCase.src), config.ParseOptions{})
			require.ErrorIs(t, err, config.ErrParse)

			var perr *config.ParseError
			require.ErrorAs(t, err, &perr)
			if testCase.wantLine > 0 {
				assert.Equal(t, testCase.wantLine, perr.Line)
			}
			assert.Contains(t, perr.Error(), testCase.wantMsg)
		})
	}
}

func TestParseHCL(t *testing.T) {
	t.Parallel()

	src := `all = true

rule "MD029" {
  style = "ordered"
}

rule "MD007" {
  indent = 2
}

exclude = ["MD002", "MD013"]
`
	parsed, err := config.Parse(config.FormatHCL, "style.hcl", []byte(src), config.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, parsed.Statements, 5)
	assert.Equal(t, ruleconfig.RuleID("MD029"), parsed.Statements[1].RuleID)
	assert.Equal(t, 3, parsed.Statements[1].Pos.Line)

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(catalog.Default())
	assert.Equal(t, ruleconfig.RuleOption{"style": "ordered"}, eff.Options("MD029"))
	assert.Equal(t, ruleconfig.RuleOption{"indent": 2}, eff.Options("MD007"))
	assert.False(t, eff.Enabled("MD002"))
	assert.False(t, eff.Enabled("MD013"))
}

func TestParseHCL_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"syntax", "all = \n", 1},
		{"unknown attribute", "all = true\ncolor = \"red\"\n", 2},
		{"null option", "rule \"MD003\" {\n  style = null\n}\n", 2},
		{"list option", "rule \"MD003\" {\n  style = [\"atx\"]\n}\n", 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(config.FormatHCL, "bad.hcl", []byte(testCase.src), config.ParseOptions{})
			require.ErrorIs(t, err, config.ErrParse)

			var perr *config.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, testCase.wantLine, perr.Line)
		})
	}
}

func TestEncodeHCL(t *testing.T) {
	t.Parallel()

	out, err := config.EncodeStore(config.FormatHCL, sampleStore(t))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "all = true")
	assert.Contains(t, text, `rule "MD003" {`)
	assert.Contains(t, text, `style = "atx"`)
	assert.Contains(t, text, `exclude = ["MD002", "MD041"]`)
}

func TestEncodeHCL_InvalidOptionName(t *testing.T) {
	t.Parallel()

	_, err := config.Encode(config.FormatHCL, []ruleconfig.Statement{
		ruleconfig.StyleStatement("MD003", ruleconfig.RuleOption{"not valid": "x"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid HCL identifier")
}

func TestParseMarkdownlint(t *testing.T) {
	t.Parallel()

	src := `{
  "$schema": "https://example.invalid/markdownlint.schema.json",
  "default": true,
  "MD003": {"style": "atx"},
  "MD007": {"indent": 4, "start_indented": false},
  "MD013": false,
  "MD024": {"enabled": false, "siblings_only": true},
  "MD029": true,
  "MD033": {"allowed_elements": ["br"]},
  "whitespace": false
}`
	parsed, err := config.Parse(config.FormatMarkdownlint, ".markdownlint.jsonc", []byte(src),
		config.ParseOptions{Tags: catalog.Default()})
	require.NoError(t, err)
	require.Len(t, parsed.Warnings, 1)
	assert.Contains(t, parsed.Warnings[0], "allowed_elements")

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(catalog.Default())

	assert.True(t, eff.BaselineEnabled())
	assert.Equal(t, ruleconfig.RuleOption{"style": "atx"}, eff.Options("MD003"))
	assert.Equal(t, ruleconfig.RuleOption{"indent": 4, "start_indented": false}, eff.Options("MD007"))
	assert.False(t, eff.Enabled("MD013"))
	assert.False(t, eff.Enabled("MD024"))
	assert.True(t, eff.Enabled("MD029"))
	assert.True(t, eff.Enabled("MD033"))
	assert.False(t, eff.Rule("MD033").Styled)

	for _, id := range catalog.Default().Tag(catalog.TagWhitespace) {
		assert.False(t, eff.Enabled(id), id)
	}
}

func TestParseMarkdownlint_YAML(t *testing.T) {
	t.Parallel()

	src := `default: false
extends: base.yaml
MD013:
  line_length: 100
MD041: false
`
	parsed, err := config.Parse(config.FormatMarkdownlint, ".markdownlint.yaml", []byte(src), config.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, parsed.Warnings, 1)
	assert.Contains(t, parsed.Warnings[0], "extends")

	store := ruleconfig.NewStore()
	require.NoError(t, store.ApplyAll(parsed.Statements))
	eff := store.Resolve(catalog.Default())

	assert.False(t, eff.BaselineEnabled())
	assert.False(t, eff.Enabled("MD013"))
	assert.True(t, eff.Rule("MD013").Styled)
	assert.True(t, eff.Rule("MD041").Excluded)
}

func TestParseMarkdownlint_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		src  string
	}{
		{"default not bool", ".markdownlint.json", `{"default": "yes"}`},
		{"rule set to number", ".markdownlint.json", `{"MD013": 80}`},
		{"broken json", ".markdownlint.json", `{"MD013": }`},
		{"broken yaml", ".markdownlint.yml", "MD013: [\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse(config.FormatMarkdownlint, testCase.file, []byte(testCase.src), config.ParseOptions{})
			require.ErrorIs(t, err, config.ErrParse)
		})
	}
}

func TestParseError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *config.ParseError
		want string
	}{
		{&config.ParseError{Name: "a.rb", Line: 3, Column: 7, Message: "boom"}, "a.rb:3:7: boom"},
		{&config.ParseError{Name: "a.rb", Line: 3, Message: "boom"}, "a.rb:3: boom"},
		{&config.ParseError{Name: "a.rb", Message: "boom"}, "a.rb: boom"},
		{&config.ParseError{Message: "boom"}, "boom"},
	}

	for _, testCase := range tests {
		t.Run(testCase.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.err.Error())
			assert.ErrorIs(t, testCase.err, config.ErrParse)
		})
	}

	inner := errors.New("decoder")
	assert.ErrorIs(t, &config.ParseError{Err: inner}, inner)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	out := config.GenerateTemplate(catalog.Default())
	text := string(out)
	assert.Contains(t, text, "\nall\n")
	assert.Contains(t, text, "# rule 'MD003', :style => :consistent")
	assert.Contains(t, text, "# rule 'MD009', :br_spaces => 2")
	assert.NotContains(t, text, "'MD001'")

	parsed, err := config.Parse(config.FormatStyle, "template.rb", out, config.ParseOptions{})
	require.NoError(t, err)
	require.Len(t, parsed.Statements, 1)
	assert.Equal(t, ruleconfig.KindEnableAll, parsed.Statements[0].Kind)
}
