package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// Table formatting constants.
const (
	styledSymbol      = "*"
	unknownSymbol     = "?"
	noOptions         = "-"
	tablePadding      = 2
	tableColumnCount  = 5 // RULE, ALIAS, STATE, OPTIONS, MARKERS
	markerColumnWidth = 3
	minRuleWidth      = 6
	minAliasWidth     = 12
	minStateWidth     = 8
	minOptionsWidth   = 20
	heavySeparator    = "="
	lightSeparator    = "-"
	defaultTermWidth  = 100
)

// Rule state labels shown in the STATE column.
const (
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
	StateExcluded = "excluded"
)

// TableRow represents a single row in the rule table.
type TableRow struct {
	RuleID  string
	Alias   string
	State   string
	Options string
	Styled  bool
	Known   bool
}

// TableFormatter formats an effective configuration as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable renders every resolved rule of eff, one row per rule in id
// order. Aliases come from reg, which may be nil.
func (t *TableFormatter) FormatTable(eff *ruleconfig.EffectiveConfig, reg *catalog.Registry) string {
	if eff == nil {
		return ""
	}

	states := eff.Rules()
	if len(states) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(states))
	for _, st := range states {
		rows = append(rows, RuleStateToTableRow(st, reg))
	}

	colWidths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	// Rule families (MD0xx, MD1xx, custom prefixes) are split by a light
	// separator.
	prevGroup := ""
	for i, row := range rows {
		group := ruleGroup(row.RuleID)
		if i > 0 && group != prevGroup {
			builder.WriteString(t.formatSeparator(colWidths, lightSeparator))
			builder.WriteString("\n")
		}
		prevGroup = group

		builder.WriteString(t.formatRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(colWidths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// ruleGroup returns the id up to its last two characters, so MD001 and
// MD099 share a group while MD101 starts a new one.
func ruleGroup(id string) string {
	if len(id) <= 2 {
		return id
	}
	return id[:len(id)-2]
}

type columnWidths struct {
	rule    int
	alias   int
	state   int
	options int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		rule:    minRuleWidth,
		alias:   minAliasWidth,
		state:   minStateWidth,
		options: minOptionsWidth,
	}

	for _, row := range rows {
		widths.rule = max(widths.rule, len(row.RuleID))
		widths.alias = max(widths.alias, len(row.Alias))
		widths.state = max(widths.state, len(row.State))
		widths.options = max(widths.options, len(row.Options))
	}

	// Constrain to terminal width
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		// Reduce options width first
		excess := totalWidth - t.termWidth
		widths.options = max(minOptionsWidth, widths.options-excess)

		// If still too wide, reduce alias width
		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.alias = max(minAliasWidth, widths.alias-excess)
		}
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.rule + widths.alias + widths.state + widths.options +
		(tablePadding * tableColumnCount) + markerColumnWidth
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s   ",
		widths.rule, "RULE",
		widths.alias, "ALIAS",
		widths.state, "STATE",
		widths.options, "OPTIONS",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	sep := strings.Repeat(char, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single row. Cells are padded before styling so ANSI
// sequences do not disturb alignment.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	ruleID := padRight(truncateString(row.RuleID, widths.rule), widths.rule)
	alias := padRight(truncateString(row.Alias, widths.alias), widths.alias)
	state := padRight(truncateString(row.State, widths.state), widths.state)
	options := padRight(truncateString(row.Options, widths.options), widths.options)

	var markers string
	if row.Styled {
		markers += t.styles.Styled.Render(styledSymbol)
	}
	if !row.Known {
		markers += t.styles.Unknown.Render(unknownSymbol)
	}

	optionStyle := t.styles.Options
	if !row.Styled {
		optionStyle = t.styles.Dim
	}

	return fmt.Sprintf(" %s  %s  %s  %s  %s",
		t.styles.RuleID.Render(ruleID),
		t.styles.Alias.Render(alias),
		t.stateStyle(row.State).Render(state),
		optionStyle.Render(options),
		markers,
	)
}

// stateStyle returns the style for a state label.
func (t *TableFormatter) stateStyle(state string) lipgloss.Style {
	switch state {
	case StateEnabled:
		return t.styles.Enabled
	case StateExcluded:
		return t.styles.Excluded
	case StateDisabled:
		return t.styles.Disabled
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the table symbols.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = style override | %s = not in catalog", styledSymbol, unknownSymbol),
		)
	}

	styledSample := t.styles.Styled.Render(styledSymbol)
	unknownSample := t.styles.Unknown.Render(unknownSymbol)

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = style override  %s = not in catalog", styledSample, unknownSample),
	)
}

// RuleStateToTableRow converts a resolved rule to a table row.
func RuleStateToTableRow(st ruleconfig.RuleState, reg *catalog.Registry) TableRow {
	row := TableRow{
		RuleID:  st.ID.String(),
		State:   stateLabel(st),
		Options: st.Options.String(),
		Styled:  st.Styled,
		Known:   st.Known,
	}
	if row.Options == "" {
		row.Options = noOptions
	}
	if reg != nil {
		if rule, ok := reg.Get(st.ID); ok {
			row.Alias = rule.Alias
		}
	}
	return row
}

func stateLabel(st ruleconfig.RuleState) string {
	switch {
	case st.Excluded:
		return StateExcluded
	case st.Enabled:
		return StateEnabled
	default:
		return StateDisabled
	}
}

// padRight pads str with spaces to width.
func padRight(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
