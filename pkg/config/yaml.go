package config

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// YAMLIndent returns the indentation used when writing YAML.
func YAMLIndent() int {
	return 2
}

func parseYAML(name string, data []byte) (*Parsed, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, yamlParseError(name, err)
	}

	result := &Parsed{}
	if len(root.Content) == 0 {
		return result, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Name:    name,
			Line:    mapping.Line,
			Column:  mapping.Column,
			Message: "style document must be a mapping",
		}
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if !documentKeys[key.Value] {
			return nil, &ParseError{
				Name:    name,
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("unknown key %q", key.Value),
			}
		}
	}

	var doc Document
	if err := mapping.Decode(&doc); err != nil {
		return nil, yamlParseError(name, err)
	}

	ruleLines, excludeLines := yamlLines(mapping)
	result.Statements = doc.Statements(name, ruleLines, excludeLines)
	return result, nil
}

// yamlLines returns the line of each rules and exclude entry.
func yamlLines(mapping *yaml.Node) ([]int, []int) {
	var ruleLines, excludeLines []int
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			continue
		}
		lines := make([]int, 0, len(value.Content))
		for _, item := range value.Content {
			lines = append(lines, item.Line)
		}
		switch key.Value {
		case "rules":
			ruleLines = lines
		case "exclude":
			excludeLines = lines
		}
	}
	return ruleLines, excludeLines
}

//nolint:gochecknoglobals // Compiled once.
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

func yamlParseError(name string, err error) *ParseError {
	perr := &ParseError{Name: name, Message: err.Error(), Err: err}
	if match := yamlLinePattern.FindStringSubmatch(err.Error()); match != nil {
		if line, convErr := strconv.Atoi(match[1]); convErr == nil {
			perr.Line = line
		}
	}
	return perr
}

func encodeYAML(stmts []ruleconfig.Statement) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(NewDocument(stmts)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}
