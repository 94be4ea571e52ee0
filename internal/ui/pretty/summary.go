package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

const (
	summaryDividerWidth = 40
	wordRule            = "rule"
	wordRules           = "rules"
)

// Report describes a loaded style for the summary block.
type Report struct {
	Effective *ruleconfig.EffectiveConfig
	Sources   []string
	Format    string
	Warnings  []string
}

// Counts tallies the rule states of an effective configuration.
type Counts struct {
	Total    int
	Enabled  int
	Disabled int
	Excluded int
	Styled   int
	Unknown  int
}

// CountRules tallies the rule states of eff.
func CountRules(eff *ruleconfig.EffectiveConfig) Counts {
	var counts Counts
	if eff == nil {
		return counts
	}
	for _, st := range eff.Rules() {
		counts.Total++
		if st.Enabled {
			counts.Enabled++
		} else {
			counts.Disabled++
		}
		if st.Excluded {
			counts.Excluded++
		}
		if st.Styled {
			counts.Styled++
		}
		if !st.Known {
			counts.Unknown++
		}
	}
	return counts
}

// FormatSummaryOneLine formats rule counts as a single line.
// Example: "41 rules: 36 enabled, 5 disabled (3 excluded), 4 styled".
func (s *Styles) FormatSummaryOneLine(eff *ruleconfig.EffectiveConfig) string {
	counts := CountRules(eff)
	if counts.Total == 0 {
		return s.Dim.Render("No rules configured") + "\n"
	}

	ruleWord := wordRules
	if counts.Total == 1 {
		ruleWord = wordRule
	}

	var parts []string
	parts = append(parts, s.Enabled.Render(fmt.Sprintf("%d enabled", counts.Enabled)))

	disabled := s.Disabled.Render(fmt.Sprintf("%d disabled", counts.Disabled))
	if counts.Excluded > 0 {
		disabled += " " + s.Excluded.Render(fmt.Sprintf("(%d excluded)", counts.Excluded))
	}
	parts = append(parts, disabled)

	if counts.Styled > 0 {
		parts = append(parts, s.Styled.Render(fmt.Sprintf("%d styled", counts.Styled)))
	}
	if counts.Unknown > 0 {
		parts = append(parts, s.Unknown.Render(fmt.Sprintf("%d unknown", counts.Unknown)))
	}

	return fmt.Sprintf("%d %s: %s\n", counts.Total, ruleWord, strings.Join(parts, ", "))
}

// FormatSummary formats a loaded style as a summary block.
func (s *Styles) FormatSummary(report Report) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Style"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if len(report.Sources) == 0 {
		builder.WriteString("  Source:      " + s.Dim.Render("none") + "\n")
	}
	for i, src := range report.Sources {
		label := "  Source:      "
		if i > 0 {
			label = "               "
		}
		builder.WriteString(label + s.SummaryValue.Render(src) + "\n")
	}
	if report.Format != "" {
		builder.WriteString("  Format:      " + s.SummaryValue.Render(report.Format) + "\n")
	}

	baseline := s.Disabled.Render("off")
	if report.Effective != nil && report.Effective.BaselineEnabled() {
		baseline = s.Enabled.Render("all rules")
	}
	builder.WriteString("  Baseline:    " + baseline + "\n")

	builder.WriteString("\n")

	counts := CountRules(report.Effective)
	builder.WriteString("  Rules:       " + s.SummaryValue.Render(strconv.Itoa(counts.Total)) + "\n")
	builder.WriteString("    Enabled:   " + s.Enabled.Render(strconv.Itoa(counts.Enabled)) + "\n")
	builder.WriteString("    Disabled:  " + s.Disabled.Render(strconv.Itoa(counts.Disabled)) + "\n")
	if counts.Excluded > 0 {
		builder.WriteString("    Excluded:  " + s.Excluded.Render(strconv.Itoa(counts.Excluded)) + "\n")
	}
	if counts.Styled > 0 {
		builder.WriteString("    Styled:    " + s.Styled.Render(strconv.Itoa(counts.Styled)) + "\n")
	}

	if len(report.Warnings) > 0 {
		builder.WriteString("\n")
		builder.WriteString(s.FormatWarnings(report.Warnings))
	}

	return builder.String()
}

// FormatWarnings formats load warnings, one per line.
func (s *Styles) FormatWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, warning := range warnings {
		builder.WriteString("  " + s.Warning.Render("warning") + "  " + warning + "\n")
	}
	return builder.String()
}

// FormatError formats a fatal load error.
func (s *Styles) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return s.Error.Render("error") + "  " + err.Error() + "\n"
}
