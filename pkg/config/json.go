package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

func parseJSON(name string, data []byte) (*Parsed, error) {
	plain := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(plain)) == 0 {
		return &Parsed{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(plain))
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, jsonParseError(name, plain, err)
	}
	for _, entry := range doc.Rules {
		for key, value := range entry.Options {
			entry.Options[key] = jsonNumberValue(value)
		}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		line, col := lineColumn(plain, int(decoder.InputOffset()))
		return nil, &ParseError{Name: name, Line: line, Column: col, Message: "unexpected data after style document"}
	}

	return &Parsed{Statements: doc.Statements(name, nil, nil)}, nil
}

// jsonNumberValue turns a json.Number into an int when it has no fraction
// or exponent, so integers beyond float64 precision keep every digit.
func jsonNumberValue(value any) any {
	num, ok := value.(json.Number)
	if !ok {
		return value
	}
	if n, err := num.Int64(); err == nil {
		return int(n)
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}

func jsonParseError(name string, data []byte, err error) *ParseError {
	perr := &ParseError{Name: name, Message: err.Error(), Err: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		perr.Line, perr.Column = lineColumn(data, int(syntaxErr.Offset))
	case errors.As(err, &typeErr):
		perr.Line, perr.Column = lineColumn(data, int(typeErr.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		perr.Line, perr.Column = lineColumn(data, len(data))
	}
	return perr
}

func encodeJSON(stmts []ruleconfig.Statement) ([]byte, error) {
	out, err := json.MarshalIndent(NewDocument(stmts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(out, '\n'), nil
}
