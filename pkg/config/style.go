package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/ruleconfig"
)

// Style files hold one declaration per line:
//
//	all
//	rule 'MD003', :style => :atx
//	rule 'MD029', style: :ordered
//	exclude_rule 'MD013' # comment
//	exclude_tag :line_length
//
// A line ending in a comma, "=>" or an open parenthesis continues on the
// next line.

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokLabel
	tokSymbol
	tokString
	tokNumber
	tokComma
	tokArrow
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokIdent:
		return "identifier"
	case tokLabel:
		return "label"
	case tokSymbol:
		return "symbol"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokComma:
		return "','"
	case tokArrow:
		return "'=>'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// styleParser turns style-file lines into statements.
type styleParser struct {
	name     string
	opts     ParseOptions
	result   *Parsed
	baseline bool
}

func parseStyle(name string, data []byte, opts ParseOptions) (*Parsed, error) {
	parser := &styleParser{name: name, opts: opts, result: &Parsed{}}

	var (
		pending   []token
		startLine int
		lineNo    int
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		toks, err := parser.lexLine(lineNo, scanner.Text())
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 && len(pending) == 0 {
			continue
		}
		if len(pending) == 0 {
			startLine = lineNo
		}
		pending = append(pending, toks...)
		if continues(pending) {
			continue
		}
		if err := parser.statement(startLine, pending); err != nil {
			return nil, err
		}
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Name: name, Message: "read style: " + err.Error(), Err: err}
	}
	if len(pending) > 0 {
		return nil, parser.errorf(pending[len(pending)-1], "unexpected end of input")
	}

	return parser.result, nil
}

// continues reports whether a statement carries on past the current line.
func continues(toks []token) bool {
	depth := 0
	for _, tok := range toks {
		switch tok.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		default:
		}
	}
	if depth > 0 {
		return true
	}
	switch toks[len(toks)-1].kind {
	case tokComma, tokArrow, tokLabel:
		return true
	default:
		return false
	}
}

func (p *styleParser) errorf(tok token, format string, args ...any) *ParseError {
	return &ParseError{
		Name:    p.name,
		Line:    tok.line,
		Column:  tok.col,
		Message: fmt.Sprintf(format, args...),
	}
}

//nolint:cyclop,gocognit // Single-pass lexer.
func (p *styleParser) lexLine(lineNo int, line string) ([]token, error) {
	var toks []token
	pos := 0
	for pos < len(line) {
		char := line[pos]
		start := pos
		at := func(kind tokenKind, text string) token {
			return token{kind: kind, text: text, line: lineNo, col: start + 1}
		}

		switch {
		case char == ' ' || char == '\t' || char == '\r':
			pos++
		case char == '#':
			return toks, nil
		case char == ',':
			toks = append(toks, at(tokComma, ","))
			pos++
		case char == '(':
			toks = append(toks, at(tokLParen, "("))
			pos++
		case char == ')':
			toks = append(toks, at(tokRParen, ")"))
			pos++
		case char == '=' && pos+1 < len(line) && line[pos+1] == '>':
			toks = append(toks, at(tokArrow, "=>"))
			pos += 2
		case char == '\'' || char == '"':
			text, n, err := lexString(line[pos:])
			if err != nil {
				return nil, p.errorf(at(tokString, ""), "%v", err)
			}
			toks = append(toks, at(tokString, text))
			pos += n
		case char == ':' && pos+1 < len(line) && (line[pos+1] == '\'' || line[pos+1] == '"'):
			text, n, err := lexString(line[pos+1:])
			if err != nil {
				return nil, p.errorf(at(tokSymbol, ""), "%v", err)
			}
			toks = append(toks, at(tokSymbol, text))
			pos += 1 + n
		case char == ':' && pos+1 < len(line) && isIdentStart(line[pos+1]):
			end := scanIdent(line, pos+1)
			toks = append(toks, at(tokSymbol, line[pos+1:end]))
			pos = end
		case char == '-' || char == '+' || isDigit(char):
			end := scanNumber(line, pos)
			if end == pos+1 && !isDigit(char) {
				return nil, p.errorf(at(tokNumber, ""), "unexpected character %q", char)
			}
			toks = append(toks, at(tokNumber, line[pos:end]))
			pos = end
		case isIdentStart(char):
			end := scanIdent(line, pos)
			if end < len(line) && line[end] == ':' && (end+1 == len(line) || line[end+1] != ':') {
				toks = append(toks, at(tokLabel, line[pos:end]))
				pos = end + 1
				continue
			}
			toks = append(toks, at(tokIdent, line[pos:end]))
			pos = end
		default:
			return nil, p.errorf(at(tokIdent, ""), "unexpected character %q", char)
		}
	}
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func scanIdent(line string, pos int) int {
	for pos < len(line) && (isIdentStart(line[pos]) || isDigit(line[pos])) {
		pos++
	}
	if pos < len(line) && (line[pos] == '?' || line[pos] == '!') {
		pos++
	}
	return pos
}

func scanNumber(line string, pos int) int {
	pos++
	for pos < len(line) && (isDigit(line[pos]) || strings.IndexByte("._eE", line[pos]) >= 0) {
		if (line[pos] == 'e' || line[pos] == 'E') && pos+1 < len(line) && (line[pos+1] == '-' || line[pos+1] == '+') {
			pos++
		}
		pos++
	}
	return pos
}

// lexString reads a quoted string starting at s[0] and returns its value
// and the number of bytes consumed. Single-quoted strings only unescape
// \\ and \'.
func lexString(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			switch {
			case next == quote || next == '\\':
				b.WriteByte(next)
				i++
			case quote == '"' && next == 'n':
				b.WriteByte('\n')
				i++
			case quote == '"' && next == 't':
				b.WriteByte('\t')
				i++
			case quote == '"' && next == 'r':
				b.WriteByte('\r')
				i++
			default:
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errUnterminatedString
}

var errUnterminatedString = errors.New("unterminated string")

type styleArg struct {
	key   string
	value any
	tok   token
}

func (p *styleParser) statement(line int, toks []token) error {
	head := toks[0]
	if head.kind != tokIdent {
		return p.errorf(head, "expected statement, found %s", head.kind)
	}

	args, err := p.parseArgs(head, toks[1:])
	if err != nil {
		return err
	}
	pos := ruleconfig.Position{Name: p.name, Line: line}

	switch head.text {
	case "all":
		if len(args) > 0 {
			return p.errorf(args[0].tok, "all takes no arguments")
		}
		p.result.add(ruleconfig.AllStatement().At(pos))
		p.baseline = true
	case "rule":
		return p.rule(head, pos, args)
	case "exclude_rule":
		ids, err := p.positional(head, args)
		if err != nil {
			return err
		}
		for _, id := range ids {
			p.result.add(ruleconfig.ExcludeStatement(ruleconfig.RuleID(id)).At(pos))
		}
	case "exclude_tag":
		return p.excludeTag(head, pos, args)
	default:
		return p.errorf(head, "unknown statement %q", head.text)
	}
	return nil
}

func (p *styleParser) rule(head token, pos ruleconfig.Position, args []styleArg) error {
	if len(args) == 0 || args[0].key != "" {
		return p.errorf(head, "rule requires a rule id")
	}
	id, ok := args[0].value.(string)
	if !ok {
		return p.errorf(args[0].tok, "rule id must be a string or symbol")
	}

	opts := ruleconfig.RuleOption{}
	for _, arg := range args[1:] {
		if arg.key == "" {
			return p.errorf(arg.tok, "expected option for rule %q, found positional argument", id)
		}
		opts[arg.key] = arg.value
	}

	// A bare rule line keeps the rule's defaults. Enabling a single rule
	// is not a declaration the store has, so the line has no effect.
	if len(opts) == 0 {
		if p.baseline {
			p.result.warnf("%s: rule %q has no options; it keeps its defaults", pos, id)
		} else {
			p.result.warnf("%s: rule %q has no options and no preceding all; it stays disabled", pos, id)
		}
		return nil
	}
	p.result.add(ruleconfig.StyleStatement(ruleconfig.RuleID(id), opts).At(pos))
	return nil
}

func (p *styleParser) excludeTag(head token, pos ruleconfig.Position, args []styleArg) error {
	tags, err := p.positional(head, args)
	if err != nil {
		return err
	}
	if p.opts.Tags == nil {
		return p.errorf(head, "exclude_tag needs a rule catalog")
	}
	for i, tag := range tags {
		ids := p.opts.Tags.Tag(tag)
		if len(ids) == 0 {
			return p.errorf(args[i].tok, "unknown tag %q", tag)
		}
		for _, id := range ids {
			p.result.add(ruleconfig.ExcludeStatement(id).At(pos))
		}
	}
	return nil
}

// positional returns arguments that must all be plain strings or symbols.
func (p *styleParser) positional(head token, args []styleArg) ([]string, error) {
	if len(args) == 0 {
		return nil, p.errorf(head, "%s requires an argument", head.text)
	}
	values := make([]string, 0, len(args))
	for _, arg := range args {
		text, ok := arg.value.(string)
		if arg.key != "" || !ok {
			return nil, p.errorf(arg.tok, "%s takes only strings or symbols", head.text)
		}
		values = append(values, text)
	}
	return values, nil
}

func (p *styleParser) parseArgs(head token, toks []token) ([]styleArg, error) {
	if len(toks) > 0 && toks[0].kind == tokLParen {
		if toks[len(toks)-1].kind != tokRParen {
			return nil, p.errorf(toks[0], "unbalanced parentheses")
		}
		toks = toks[1 : len(toks)-1]
	}

	var args []styleArg
	for len(toks) > 0 {
		end := 0
		for end < len(toks) && toks[end].kind != tokComma {
			end++
		}
		if end == 0 {
			return nil, p.errorf(toks[0], "unexpected %s", toks[0].kind)
		}

		arg, err := p.parseArg(toks[:end])
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if end == len(toks) {
			break
		}
		toks = toks[end+1:]
		if len(toks) == 0 {
			return nil, p.errorf(head, "trailing comma")
		}
	}
	return args, nil
}

func (p *styleParser) parseArg(part []token) (styleArg, error) {
	switch {
	case len(part) == 1:
		value, err := p.value(part[0])
		return styleArg{value: value, tok: part[0]}, err
	case len(part) == 2 && part[0].kind == tokLabel:
		value, err := p.value(part[1])
		return styleArg{key: part[0].text, value: value, tok: part[0]}, err
	case len(part) == 3 && part[1].kind == tokArrow && (part[0].kind == tokSymbol || part[0].kind == tokString):
		value, err := p.value(part[2])
		return styleArg{key: part[0].text, value: value, tok: part[0]}, err
	default:
		return styleArg{}, p.errorf(part[0], "malformed argument")
	}
}

func (p *styleParser) value(tok token) (any, error) {
	switch tok.kind {
	case tokString, tokSymbol:
		return tok.text, nil
	case tokNumber:
		text := strings.ReplaceAll(tok.text, "_", "")
		if n, err := strconv.Atoi(text); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %q", tok.text)
		}
		return f, nil
	case tokIdent:
		switch tok.text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, p.errorf(tok, "unexpected identifier %q", tok.text)
		}
	default:
		return nil, p.errorf(tok, "unexpected %s", tok.kind)
	}
}

func encodeStyle(stmts []ruleconfig.Statement) ([]byte, error) {
	var buf bytes.Buffer
	for _, stmt := range stmts {
		switch stmt.Kind {
		case ruleconfig.KindEnableAll:
			buf.WriteString("all\n")
		case ruleconfig.KindSetStyle:
			buf.WriteString("rule ")
			buf.WriteString(quoteStyle(stmt.RuleID.String()))
			for _, key := range stmt.Options.Keys() {
				value, err := styleValue(stmt.Options[key])
				if err != nil {
					return nil, fmt.Errorf("rule %s option %q: %w", stmt.RuleID, key, err)
				}
				fmt.Fprintf(&buf, ", %s => %s", styleSymbol(key), value)
			}
			buf.WriteByte('\n')
		case ruleconfig.KindExclude:
			buf.WriteString("exclude_rule ")
			buf.WriteString(quoteStyle(stmt.RuleID.String()))
			buf.WriteByte('\n')
		default:
			return nil, fmt.Errorf("encode style: unknown statement %s", stmt.Kind)
		}
	}
	return buf.Bytes(), nil
}

func styleValue(value any) (string, error) {
	switch val := value.(type) {
	case string:
		return styleSymbol(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case float64:
		text := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

// styleSymbol writes identifier-like text as a symbol, anything else quoted.
func styleSymbol(text string) string {
	if text != "" && isIdentStart(text[0]) && scanIdent(text, 0) == len(text) {
		return ":" + text
	}
	return quoteStyle(text)
}

// quoteStyle single-quotes text unless it holds control characters, which
// only double-quoted strings can escape.
func quoteStyle(text string) string {
	if strings.ContainsAny(text, "\n\t\r") {
		return `"` + doubleQuoteEscaper.Replace(text) + `"`
	}
	return "'" + singleQuoteEscaper.Replace(text) + "'"
}

var (
	singleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
)
