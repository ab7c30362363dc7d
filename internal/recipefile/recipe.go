package recipefile

import (
	"strings"

	"github.com/specialistvlad/burstrun/internal/config"
)

// parseRecipe parses a header at st.i and the indented body that follows.
func (p *Parser) parseRecipe(st *parseState, line string, lineNo int) error {
	r := &config.Recipe{
		Doc:     st.doc,
		Private: st.private,
		Pos:     config.Pos{File: st.file, Line: lineNo},
	}
	st.doc, st.private = "", false

	sc := &scanner{s: line}
	if err := p.parseHeader(st, sc, r, lineNo); err != nil {
		return err
	}
	st.i++

	body, first, err := collectBody(st)
	if err != nil {
		return err
	}
	if err := p.parseBody(st, r, body, first); err != nil {
		return err
	}

	st.model.Recipes = append(st.model.Recipes, r)
	return nil
}

func (p *Parser) parseHeader(st *parseState, sc *scanner, r *config.Recipe, lineNo int) error {
	name, err := sc.ident()
	if err != nil {
		return st.errorf(lineNo, err, "invalid recipe header")
	}
	r.Name = name

	for {
		sc.skipSpace()
		if sc.peek() == ':' {
			if sc.hasPrefix(":=") {
				return st.errorf(lineNo, nil, "unexpected ':=' in recipe header")
			}
			sc.pos++
			break
		}
		if sc.eof() {
			return st.errorf(lineNo, nil, "expected ':' after recipe %q", name)
		}
		param, err := p.parseParameter(sc)
		if err != nil {
			return st.errorf(lineNo, err, "invalid parameter in recipe %q", name)
		}
		r.Params = append(r.Params, param)
	}

	target := &r.Before
	for !sc.eof() {
		switch {
		case sc.hasPrefix("&&"):
			if target == &r.After {
				return st.errorf(lineNo, nil, "'&&' may only appear once in recipe %q", name)
			}
			sc.pos += 2
			target = &r.After
		case sc.peek() == '#':
			// trailing comment
			sc.pos = len(sc.s)
		default:
			dep, err := p.parseDependency(sc)
			if err != nil {
				return st.errorf(lineNo, err, "invalid dependency in recipe %q", name)
			}
			*target = append(*target, dep)
		}
	}
	return nil
}

// parseParameter reads `[+|*][$]name[=value]`.
func (p *Parser) parseParameter(sc *scanner) (*config.Parameter, error) {
	param := &config.Parameter{}
	switch sc.peek() {
	case '+':
		param.Kind = config.VariadicOneOrMore
		sc.pos++
	case '*':
		param.Kind = config.VariadicZeroOrMore
		sc.pos++
	}
	if sc.peek() == '$' {
		param.Exported = true
		sc.pos++
	}
	name, err := sc.ident()
	if err != nil {
		return nil, err
	}
	param.Name = name

	if sc.peek() == '=' {
		sc.pos++
		def, err := p.atomTemplate(sc)
		if err != nil {
			return nil, err
		}
		param.Default = def
	}
	return param, nil
}

// parseDependency reads `name` or `(name arg...)`.
func (p *Parser) parseDependency(sc *scanner) (*config.Dependency, error) {
	if sc.peek() != '(' {
		name, err := sc.ident()
		if err != nil {
			return nil, err
		}
		return &config.Dependency{Recipe: name}, nil
	}

	sc.pos++
	name, err := sc.ident()
	if err != nil {
		return nil, err
	}
	dep := &config.Dependency{Recipe: name}
	for {
		sc.skipSpace()
		if sc.peek() == ')' {
			sc.pos++
			return dep, nil
		}
		if sc.eof() {
			return nil, errUnclosedDependency
		}
		arg, err := p.atomTemplate(sc)
		if err != nil {
			return nil, err
		}
		dep.Args = append(dep.Args, arg)
	}
}

// bodyLine is a body line with its indentation removed.
type bodyLine struct {
	text string
	no   int
}

// collectBody consumes the indented lines after a header. Interior blank
// lines are kept, trailing ones are not. It returns the body and the line
// number of the first body line.
func collectBody(st *parseState) ([]bodyLine, int, error) {
	var (
		body   []bodyLine
		indent string
		first  int
	)
	for st.i < len(st.lines) {
		line := st.lines[st.i]
		if strings.TrimSpace(line) == "" {
			body = append(body, bodyLine{no: st.i + 1})
			st.i++
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			break
		}
		if indent == "" {
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			first = st.i + 1
		}
		if !strings.HasPrefix(line, indent) {
			return nil, 0, st.errorf(st.i+1, nil, "inconsistent indentation in recipe body")
		}
		body = append(body, bodyLine{text: line[len(indent):], no: st.i + 1})
		st.i++
	}

	for len(body) > 0 && body[len(body)-1].text == "" {
		body = body[:len(body)-1]
	}
	for len(body) > 0 && body[0].text == "" {
		body = body[1:]
	}
	return body, first, nil
}

// parseBody compiles the body either as one interpreter script, when the
// first line is a `#!` directive, or as shell commands.
func (p *Parser) parseBody(st *parseState, r *config.Recipe, body []bodyLine, first int) error {
	if len(body) == 0 {
		return nil
	}

	if r.IsScript() || strings.HasPrefix(body[0].text, "#!") {
		if !r.IsScript() {
			r.Interpreter = strings.Fields(strings.TrimPrefix(body[0].text, "#!"))
		}
		if len(r.Interpreter) == 0 {
			return st.errorf(first, nil, "empty interpreter directive in recipe %q", r.Name)
		}
		for _, bl := range body {
			t, err := p.compiler.Template(bl.text)
			if err != nil {
				return st.errorf(bl.no, err, "invalid line in recipe %q", r.Name)
			}
			r.Body = append(r.Body, &config.Line{Text: t})
		}
		return nil
	}

	var pending []string
	pendingNo := 0
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		text := strings.Join(pending, "\n")
		pending = nil
		quiet := strings.HasPrefix(text, "@")
		t, err := p.compiler.Template(strings.TrimPrefix(text, "@"))
		if err != nil {
			return st.errorf(pendingNo, err, "invalid line in recipe %q", r.Name)
		}
		r.Body = append(r.Body, &config.Line{Text: t, Quiet: quiet})
		return nil
	}

	for _, bl := range body {
		if len(pending) == 0 {
			if bl.text == "" {
				continue
			}
			pendingNo = bl.no
		}
		pending = append(pending, bl.text)
		if !strings.HasSuffix(bl.text, `\`) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// Body compiles already-dedented body lines into r, numbering them from
// firstLine. Other loaders use it so every format shares one body model.
func (p *Parser) Body(file string, firstLine int, r *config.Recipe, lines []string) error {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
		firstLine++
	}
	body := make([]bodyLine, 0, len(lines))
	for i, text := range lines {
		if strings.TrimSpace(text) == "" {
			text = ""
		}
		body = append(body, bodyLine{text: text, no: firstLine + i})
	}
	return p.parseBody(&parseState{file: file}, r, body, firstLine)
}
