package recipefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Parser turns recipe file text into a config.Model.
type Parser struct {
	compiler *expr.Compiler
}

// NewParser creates a parser that compiles expressions with c.
func NewParser(c *expr.Compiler) *Parser {
	return &Parser{compiler: c}
}

// parseState carries the per-file cursor and pending annotations.
type parseState struct {
	file  string
	lines []string
	i     int
	model *config.Model

	doc     string
	private bool
}

func (st *parseState) errorf(line int, cause error, format string, args ...any) error {
	return &SyntaxError{File: st.file, Line: line, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Parse parses src, naming it file in errors and positions.
func (p *Parser) Parse(file string, src []byte) (*config.Model, error) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	st := &parseState{
		file:  file,
		lines: strings.Split(text, "\n"),
		model: &config.Model{Path: file},
	}

	for st.i < len(st.lines) {
		line := st.lines[st.i]
		lineNo := st.i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			st.doc, st.private = "", false
			st.i++
		case line[0] == ' ' || line[0] == '\t':
			return nil, st.errorf(lineNo, nil, "unexpected indented line outside of a recipe body")
		case strings.HasPrefix(line, "#"):
			st.doc = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			st.i++
		case strings.HasPrefix(line, "["):
			if err := p.parseAttributes(st, line, lineNo); err != nil {
				return nil, err
			}
			st.i++
		case strings.HasPrefix(line, "set "):
			if err := p.parseSetting(st, line[len("set "):], lineNo); err != nil {
				return nil, err
			}
			st.doc = ""
			st.i++
		case isAssignment(line):
			if err := p.parseAssignment(st, line, lineNo); err != nil {
				return nil, err
			}
			st.doc = ""
			st.i++
		default:
			if err := p.parseRecipe(st, line, lineNo); err != nil {
				return nil, err
			}
		}
	}
	return st.model, nil
}

// isAssignment reports whether line has the shape `[export] name := ...`.
func isAssignment(line string) bool {
	sc := &scanner{s: strings.TrimPrefix(line, "export ")}
	if _, err := sc.ident(); err != nil {
		return false
	}
	sc.skipSpace()
	return sc.hasPrefix(":=")
}

func (p *Parser) parseAttributes(st *parseState, line string, lineNo int) error {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, "]") {
		return st.errorf(lineNo, nil, "unterminated attribute list")
	}
	for _, attr := range strings.Split(trimmed[1:len(trimmed)-1], ",") {
		switch name := strings.TrimSpace(attr); name {
		case "private":
			st.private = true
		default:
			return st.errorf(lineNo, nil, "unknown attribute %q", name)
		}
	}
	return nil
}

func (p *Parser) parseSetting(st *parseState, text string, lineNo int) error {
	sc := &scanner{s: text}
	name, err := sc.ident()
	if err != nil {
		return st.errorf(lineNo, err, "invalid setting")
	}

	hasValue := false
	if !sc.eof() {
		if !sc.hasPrefix(":=") {
			return st.errorf(lineNo, nil, "expected ':=' after setting %q", name)
		}
		sc.pos += 2
		hasValue = true
	}

	settings := &st.model.Settings
	switch name {
	case "shell":
		if !hasValue {
			return st.errorf(lineNo, nil, "setting %q needs a value", name)
		}
		list, err := sc.stringList()
		if err != nil || len(list) == 0 {
			return st.errorf(lineNo, err, "setting %q expects a non-empty list of strings", name)
		}
		settings.Shell = list
	case "dotenv-load":
		v, err := boolSetting(sc, hasValue)
		if err != nil {
			return st.errorf(lineNo, err, "invalid value for %q", name)
		}
		settings.DotenvLoad = v
	case "export":
		v, err := boolSetting(sc, hasValue)
		if err != nil {
			return st.errorf(lineNo, err, "invalid value for %q", name)
		}
		settings.Export = v
	case "dotenv-path":
		if !hasValue {
			return st.errorf(lineNo, nil, "setting %q needs a value", name)
		}
		sc.skipSpace()
		if c := sc.peek(); c != '"' && c != '\'' {
			return st.errorf(lineNo, nil, "setting %q expects a string", name)
		}
		path, err := sc.quoted()
		if err != nil {
			return st.errorf(lineNo, err, "invalid value for %q", name)
		}
		settings.DotenvPath = path
	default:
		return st.errorf(lineNo, nil, "unknown setting %q", name)
	}

	if !sc.eof() {
		return st.errorf(lineNo, nil, "unexpected text after setting %q: %q", name, sc.rest())
	}
	return nil
}

func boolSetting(sc *scanner, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	word, err := sc.ident()
	if err != nil {
		return false, err
	}
	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false, got %q", word)
	}
}

// stringList reads `["a", "b"]`.
func (sc *scanner) stringList() ([]string, error) {
	sc.skipSpace()
	if sc.peek() != '[' {
		return nil, errors.New("expected '['")
	}
	sc.pos++
	var out []string
	for {
		sc.skipSpace()
		if sc.peek() == ']' {
			sc.pos++
			return out, nil
		}
		if c := sc.peek(); c != '"' && c != '\'' {
			return nil, fmt.Errorf("expected a string at %q", sc.rest())
		}
		s, err := sc.quoted()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		sc.skipSpace()
		if sc.peek() == ',' {
			sc.pos++
		}
	}
}

func (p *Parser) parseAssignment(st *parseState, line string, lineNo int) error {
	exported := strings.HasPrefix(line, "export ")
	sc := &scanner{s: strings.TrimPrefix(line, "export ")}
	name, _ := sc.ident()
	sc.skipSpace()
	sc.pos += len(":=")

	value, err := p.atomTemplate(sc)
	if err != nil {
		return st.errorf(lineNo, err, "invalid value for %q", name)
	}
	if !sc.eof() {
		return st.errorf(lineNo, nil, "unexpected text after value of %q: %q", name, sc.rest())
	}
	for _, a := range st.model.Assignments {
		if a.Name == name {
			return st.errorf(lineNo, nil, "variable %q is assigned more than once", name)
		}
	}

	st.model.Assignments = append(st.model.Assignments, &config.Assignment{
		Name:     name,
		Value:    value,
		Exported: exported,
		Pos:      config.Pos{File: st.file, Line: lineNo},
	})
	return nil
}

// atomTemplate reads one atom and compiles it. Quoted strings become
// literal templates and are never interpreted by the expression parser.
func (p *Parser) atomTemplate(sc *scanner) (*expr.Template, error) {
	raw, kind, err := sc.atom()
	if err != nil {
		return nil, err
	}
	if kind == atomString {
		return expr.LiteralTemplate(raw), nil
	}
	e, err := p.compiler.Expression(raw)
	if err != nil {
		return nil, err
	}
	return expr.ExpressionTemplate(e), nil
}
