package configloader

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/config"
)

// mdlrcStyleKey is the .mdlrc setting that names the style.
const mdlrcStyleKey = "style"

// Mdlrc holds the settings read from a .mdlrc file. Each line is a
// "key value" or "key = value" pair; values may be quoted.
//
//	style "~/.mdl_styles.rb"
//	git_recurse true
type Mdlrc struct {
	// Path is the file the settings came from.
	Path string

	// Style is the raw style value: a file path or a built-in style name.
	Style string

	// StyleLine is the line Style was set on.
	StyleLine int

	// Settings holds every other key, last value wins.
	Settings map[string]string
}

// ParseMdlrc reads .mdlrc content. name is used in error positions.
func ParseMdlrc(name string, data []byte) (*Mdlrc, error) {
	rc := &Mdlrc{Path: name, Settings: make(map[string]string)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest := line, ""
		if idx := strings.IndexAny(line, " \t="); idx >= 0 {
			key, rest = line[:idx], strings.TrimSpace(line[idx:])
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
		if key == "" || rest == "" {
			return nil, &config.ParseError{Name: name, Line: lineNo, Message: fmt.Sprintf("setting %q has no value", line)}
		}

		value, err := mdlrcValue(rest)
		if err != nil {
			return nil, &config.ParseError{Name: name, Line: lineNo, Message: err.Error(), Err: err}
		}

		if key == mdlrcStyleKey {
			rc.Style = value
			rc.StyleLine = lineNo
			continue
		}
		rc.Settings[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rc, nil
}

// mdlrcValue unquotes a setting value and drops a trailing comment.
func mdlrcValue(raw string) (string, error) {
	switch raw[0] {
	case '"':
		end := closingQuote(raw)
		if end < 0 {
			return "", fmt.Errorf("unterminated string %s", raw)
		}
		return strconv.Unquote(raw[:end+1])
	case '\'':
		end := closingQuote(raw)
		if end < 0 {
			return "", fmt.Errorf("unterminated string %s", raw)
		}
		return strings.NewReplacer(`\'`, `'`, `\\`, `\`).Replace(raw[1:end]), nil
	case ':':
		raw = raw[1:]
	}
	value, _, _ := strings.Cut(raw, "#")
	return strings.TrimSpace(value), nil
}

func closingQuote(raw string) int {
	quote := raw[0]
	for i := 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

// IgnoredKeys returns the settings that have no effect on the style, sorted.
func (rc *Mdlrc) IgnoredKeys() []string {
	keys := make([]string, 0, len(rc.Settings))
	for key := range rc.Settings {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// StylePath expands the style value into a file path: "~" is replaced with
// homeDir and relative paths are taken from the .mdlrc's directory.
func (rc *Mdlrc) StylePath(homeDir string) string {
	return expandStylePath(rc.Style, filepath.Dir(rc.Path), homeDir)
}

func expandStylePath(style, baseDir, homeDir string) string {
	switch {
	case style == "":
		return ""
	case style == "~" && homeDir != "":
		return homeDir
	case strings.HasPrefix(style, "~/") && homeDir != "":
		return filepath.Join(homeDir, style[2:])
	case filepath.IsAbs(style):
		return style
	default:
		return filepath.Join(baseDir, style)
	}
}
