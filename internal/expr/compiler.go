package expr

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of compiled templates kept by a Compiler.
const DefaultCacheSize = 1024

// Compiler parses templates and expressions, memoizing the results by source
// text. Recipe files repeat the same lines and arguments across recipes and
// compiled forms are immutable, so one instance can be shared.
type Compiler struct {
	templates   *lru.Cache[string, *Template]
	expressions *lru.Cache[string, *Expression]
}

// NewCompiler creates a compiler with caches of the given size. A size of
// zero or less selects DefaultCacheSize.
func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	templates, err := lru.New[string, *Template](size)
	if err != nil {
		panic(err)
	}
	expressions, err := lru.New[string, *Expression](size)
	if err != nil {
		panic(err)
	}
	return &Compiler{templates: templates, expressions: expressions}
}

// Template compiles src as a `{{...}}` template.
func (c *Compiler) Template(src string) (*Template, error) {
	if t, ok := c.templates.Get(src); ok {
		return t, nil
	}
	t, err := ParseTemplate(src)
	if err != nil {
		return nil, err
	}
	c.templates.Add(src, t)
	return t, nil
}

// Expression compiles src as a bare expression.
func (c *Compiler) Expression(src string) (*Expression, error) {
	if e, ok := c.expressions.Get(src); ok {
		return e, nil
	}
	e, err := ParseExpression(src)
	if err != nil {
		return nil, err
	}
	c.expressions.Add(src, e)
	return e, nil
}

// Len reports how many templates are cached.
func (c *Compiler) Len() int { return c.templates.Len() }
