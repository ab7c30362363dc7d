package recipefile

import (
	"fmt"
	"strconv"
	"strings"
)

// scanner walks a single line of header, setting or assignment text.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && (sc.s[sc.pos] == ' ' || sc.s[sc.pos] == '\t') {
		sc.pos++
	}
}

func (sc *scanner) eof() bool {
	sc.skipSpace()
	return sc.pos >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(sc.s[sc.pos:], p)
}

func (sc *scanner) rest() string { return sc.s[sc.pos:] }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c == '-' || (c >= '0' && c <= '9')
}

// ident reads a name: a letter or underscore followed by letters, digits,
// underscores or dashes.
func (sc *scanner) ident() (string, error) {
	sc.skipSpace()
	start := sc.pos
	if sc.pos >= len(sc.s) || !isIdentStart(sc.s[sc.pos]) {
		return "", fmt.Errorf("expected a name at %q", sc.rest())
	}
	for sc.pos < len(sc.s) && isIdentChar(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos], nil
}

// atomKind tells how the raw text of an atom must be compiled.
type atomKind int

const (
	atomString atomKind = iota
	atomExpression
)

// atom reads one value: a quoted string, a name, a call `name(...)` or a
// parenthesised expression. Strings are returned unquoted; everything else
// is returned as expression source.
func (sc *scanner) atom() (string, atomKind, error) {
	sc.skipSpace()
	switch c := sc.peek(); {
	case c == '"' || c == '\'':
		s, err := sc.quoted()
		return s, atomString, err
	case c == '(':
		s, err := sc.balanced()
		return s, atomExpression, err
	case isIdentStart(c):
		start := sc.pos
		if _, err := sc.ident(); err != nil {
			return "", 0, err
		}
		if sc.peek() == '(' {
			if _, err := sc.balanced(); err != nil {
				return "", 0, err
			}
		}
		return sc.s[start:sc.pos], atomExpression, nil
	default:
		return "", 0, fmt.Errorf("expected a value at %q", sc.rest())
	}
}

// quoted reads a double-quoted string with Go-style escapes, or a
// single-quoted raw string.
func (sc *scanner) quoted() (string, error) {
	q := sc.s[sc.pos]
	for i := sc.pos + 1; i < len(sc.s); i++ {
		switch {
		case q == '"' && sc.s[i] == '\\':
			i++
		case sc.s[i] == q:
			raw := sc.s[sc.pos : i+1]
			sc.pos = i + 1
			if q == '\'' {
				return raw[1 : len(raw)-1], nil
			}
			s, err := strconv.Unquote(raw)
			if err != nil {
				return "", fmt.Errorf("invalid string %s", raw)
			}
			return s, nil
		}
	}
	return "", fmt.Errorf("unterminated string at %q", sc.rest())
}

// balanced reads a parenthesised group, honouring nested groups and quoted
// strings, and returns it including the outer parentheses.
func (sc *scanner) balanced() (string, error) {
	start := sc.pos
	depth := 0
	for sc.pos < len(sc.s) {
		switch c := sc.s[sc.pos]; c {
		case '"', '\'':
			if _, err := sc.quoted(); err != nil {
				return "", err
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sc.pos++
				return sc.s[start:sc.pos], nil
			}
		}
		sc.pos++
	}
	return "", fmt.Errorf("unbalanced parentheses in %q", sc.s[start:])
}
