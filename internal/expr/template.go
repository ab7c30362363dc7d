package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// part is one segment of a template: literal text or an expression.
type part struct {
	text string
	expr *Expression
}

// Template is text with `{{ expr }}` interpolation markers. A literal `{{`
// is written as `{{{{`.
type Template struct {
	src   string
	parts []part
}

// ParseTemplate splits src into literal and expression parts.
func ParseTemplate(src string) (*Template, error) {
	t := &Template{src: src}
	var lit strings.Builder
	rest := src
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:i])
		rest = rest[i:]

		if strings.HasPrefix(rest, "{{{{") {
			lit.WriteString("{{")
			rest = rest[4:]
			continue
		}

		end := closingBraces(rest)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated interpolation in %q", ErrInvalidTemplate, src)
		}
		inner := rest[2:end]
		if strings.TrimSpace(inner) == "" {
			return nil, fmt.Errorf("%w: empty interpolation in %q", ErrInvalidTemplate, src)
		}
		e, err := ParseExpression(inner)
		if err != nil {
			return nil, err
		}
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{text: lit.String()})
			lit.Reset()
		}
		t.parts = append(t.parts, part{expr: e})
		rest = rest[end+2:]
	}
	if lit.Len() > 0 {
		t.parts = append(t.parts, part{text: lit.String()})
	}
	return t, nil
}

// closingBraces returns the index of the "}}" that ends the interpolation
// opened at the start of s, skipping string literals, or -1.
func closingBraces(s string) int {
	inString := false
	for i := 2; i < len(s); i++ {
		switch {
		case inString && s[i] == '\\':
			i++
		case s[i] == '"':
			inString = !inString
		case !inString && strings.HasPrefix(s[i:], "}}"):
			return i
		}
	}
	return -1
}

// ExpressionTemplate wraps a bare expression so it can be stored and
// rendered wherever a template is expected.
func ExpressionTemplate(e *Expression) *Template {
	return &Template{src: e.Source(), parts: []part{{expr: e}}}
}

// LiteralTemplate returns a template that always renders s. Its source is
// the quoted string.
func LiteralTemplate(s string) *Template {
	t := &Template{src: strconv.Quote(s)}
	if s != "" {
		t.parts = []part{{text: s}}
	}
	return t
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string { return t.src }

// IsLiteral reports whether the template contains no expressions.
func (t *Template) IsLiteral() bool {
	for _, p := range t.parts {
		if p.expr != nil {
			return false
		}
	}
	return true
}

// References returns every name read by the template's expressions.
func (t *Template) References() []string {
	seen := make(map[string]struct{})
	for _, p := range t.parts {
		if p.expr == nil {
			continue
		}
		for _, r := range p.expr.References() {
			seen[r] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Functions returns every built-in called by the template's expressions.
func (t *Template) Functions() []string {
	seen := make(map[string]struct{})
	for _, p := range t.parts {
		if p.expr == nil {
			continue
		}
		for _, f := range p.expr.Functions() {
			seen[f] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// MarshalText renders the template source, so dumps show what was written.
func (t *Template) MarshalText() ([]byte, error) {
	return []byte(t.src), nil
}
