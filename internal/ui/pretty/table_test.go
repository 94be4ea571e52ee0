package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

func TestFormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)

	result := formatter.FormatTable(sampleEffective(t), catalog.Default())
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.Contains(t, lines[0], "RULE")
	assert.Contains(t, lines[0], "ALIAS")
	assert.Contains(t, lines[0], "STATE")
	assert.Contains(t, lines[0], "OPTIONS")
	assert.True(t, strings.HasPrefix(lines[1], "====="), lines[1])
	assert.Contains(t, lines[len(lines)-1], "Legend: * = style override | ? = not in catalog")

	md003 := findLine(t, lines, " MD003 ")
	assert.Contains(t, md003, "header-style")
	assert.Contains(t, md003, "enabled")
	assert.Contains(t, md003, "style=atx")
	assert.True(t, strings.HasSuffix(md003, "*"), md003)

	md013 := findLine(t, lines, " MD013 ")
	assert.Contains(t, md013, "line-length")
	assert.Contains(t, md013, "excluded")
	assert.Contains(t, md013, "line_length=80")
	assert.False(t, strings.HasSuffix(strings.TrimRight(md013, " "), "*"), md013)

	unknown := findLine(t, lines, " XX001 ")
	assert.Contains(t, unknown, "level=2")
	assert.True(t, strings.HasSuffix(unknown, "*?"), unknown)

	// MD0xx and XX0xx are different rule families.
	assert.Contains(t, result, "\n-----")
}

func TestFormatTable_RowOrder(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)

	result := formatter.FormatTable(sampleEffective(t), catalog.Default())
	first := strings.Index(result, " MD001 ")
	second := strings.Index(result, " MD002 ")
	last := strings.Index(result, " MD046 ")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	if last != -1 {
		assert.Less(t, second, last)
	}
}

func TestFormatTable_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	assert.Empty(t, formatter.FormatTable(nil, nil))
	assert.Empty(t, formatter.FormatTable(ruleconfig.NewStore().Resolve(nil), nil))
}

func TestFormatTable_NarrowTerminal(t *testing.T) {
	store := ruleconfig.NewStore()
	require.NoError(t, store.EnableAll())
	require.NoError(t, store.SetStyle("MD013", ruleconfig.RuleOption{
		"line_length":        120,
		"code_blocks":        false,
		"tables":             false,
		"headers":            true,
		"ignore_code_blocks": false,
	}))
	eff := store.Resolve(nil)

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)
	result := formatter.FormatTable(eff, catalog.Default())

	md013 := findLine(t, strings.Split(result, "\n"), " MD013 ")
	assert.Contains(t, md013, "...")
	assert.Contains(t, md013, "line-length")
}

func TestRuleStateToTableRow(t *testing.T) {
	tests := []struct {
		name  string
		state ruleconfig.RuleState
		reg   *catalog.Registry
		want  pretty.TableRow
	}{
		{
			name: "styled",
			state: ruleconfig.RuleState{
				ID: "MD003", Enabled: true, Styled: true, Known: true,
				Options: ruleconfig.RuleOption{"style": "atx"},
			},
			reg: catalog.Default(),
			want: pretty.TableRow{
				RuleID: "MD003", Alias: "header-style", State: pretty.StateEnabled,
				Options: "style=atx", Styled: true, Known: true,
			},
		},
		{
			name:  "excluded wins over enabled baseline",
			state: ruleconfig.RuleState{ID: "MD041", Excluded: true, Known: true},
			reg:   catalog.Default(),
			want: pretty.TableRow{
				RuleID: "MD041", Alias: "first-line-h1", State: pretty.StateExcluded,
				Options: "-", Known: true,
			},
		},
		{
			name:  "disabled without registry",
			state: ruleconfig.RuleState{ID: "MD001", Known: true},
			want: pretty.TableRow{
				RuleID: "MD001", State: pretty.StateDisabled, Options: "-", Known: true,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, pretty.RuleStateToTableRow(testCase.state, testCase.reg))
		})
	}
}

func findLine(t *testing.T, lines []string, substr string) string {
	t.Helper()
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line contains %q", substr)
	return ""
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	var buf strings.Builder
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
