// Package config reads and writes style declarations in the formats a
// markdownlint style can be written in: the mdl style DSL, YAML, JSON (with
// comments), HCL, and markdownlint's own config files.
//
// Every format decodes to an ordered []ruleconfig.Statement; applying the
// statements to a ruleconfig.Store gives the same result regardless of the
// source format.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a style source serialization.
type Format string

const (
	FormatStyle        Format = "style"
	FormatYAML         Format = "yaml"
	FormatJSON         Format = "json"
	FormatHCL          Format = "hcl"
	FormatMarkdownlint Format = "markdownlint"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatStyle, FormatYAML, FormatJSON, FormatHCL, FormatMarkdownlint}
}

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatStyle, FormatYAML, FormatJSON, FormatHCL, FormatMarkdownlint:
		return true
	default:
		return false
	}
}

// CanEncode reports whether declarations can be written in this format.
// markdownlint files are read for conversion only.
func (f Format) CanEncode() bool {
	return f.IsValid() && f != FormatMarkdownlint
}

// ParseFormat converts a user-supplied name ("yml", "JSONC", "rb") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "style", "rb", "mdl":
		return FormatStyle, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "hcl":
		return FormatHCL, nil
	case "markdownlint":
		return FormatMarkdownlint, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// DetectFormat picks a format from a file name.
// markdownlint config files are recognised by name before extension.
func DetectFormat(path string) (Format, error) {
	base := strings.ToLower(filepath.Base(path))

	if strings.HasPrefix(base, ".markdownlint.") || strings.HasPrefix(base, "markdownlint.") {
		return FormatMarkdownlint, nil
	}

	ext := filepath.Ext(base)
	format, err := ParseFormat(ext)

	// Dotfile style names (.mdl_style, .mdl_styles, .mdlrc-style) are the
	// whole base, so filepath.Ext returns the name itself.
	if err != nil && isStyleDotfile(base) {
		return FormatStyle, nil
	}

	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %q: no extension", path)
	}
	if err != nil || format == FormatMarkdownlint {
		return "", fmt.Errorf("cannot detect format of %q: unsupported extension %q", path, ext)
	}
	return format, nil
}

func isStyleDotfile(base string) bool {
	return strings.HasPrefix(base, ".mdl_style") || base == ".mdlrc-style"
}

// isYAMLName reports whether a markdownlint file name holds YAML.
func isYAMLName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
