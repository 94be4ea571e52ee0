package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
)

// GenerateTemplate writes a starter style file: enable-all followed by every
// rule that takes options, commented out with its defaults.
func GenerateTemplate(reg *catalog.Registry) []byte {
	var buf bytes.Buffer
	buf.WriteString("# markdownlint style\n")
	buf.WriteString("# Uncomment a rule line to override its defaults, or add\n")
	buf.WriteString("# exclude_rule 'MDxxx' to turn a rule off.\n\n")
	buf.WriteString("all\n")

	for _, rule := range reg.Rules() {
		if len(rule.Defaults) == 0 {
			continue
		}

		parts := make([]string, 0, len(rule.Defaults))
		for _, key := range rule.Defaults.Keys() {
			value, err := styleValue(rule.Defaults[key])
			if err != nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s => %s", styleSymbol(key), value))
		}
		fmt.Fprintf(&buf, "\n# %s (%s): %s\n", rule.ID, rule.Alias, rule.Description)
		fmt.Fprintf(&buf, "# rule %s, %s\n", quoteStyle(rule.ID.String()), strings.Join(parts, ", "))
	}
	return buf.Bytes()
}
