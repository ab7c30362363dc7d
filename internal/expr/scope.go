package expr

import "github.com/zclconf/go-cty/cty"

// Scope is an ordered set of name -> string bindings. A Scope may have a
// parent; lookups fall through to it, and local bindings shadow it. Recipe
// parameters live in a child scope of the top-level assignments.
type Scope struct {
	parent *Scope
	names  []string
	values map[string]string
}

// NewScope creates an empty scope on top of parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, values: make(map[string]string)}
}

// Bind sets name to value. Rebinding a name keeps its original position.
func (s *Scope) Bind(name, value string) {
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Lookup resolves name in this scope or any ancestor.
func (s *Scope) Lookup(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Names returns the names bound directly in this scope, in binding order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Values returns the values bound directly in this scope, in binding order.
func (s *Scope) Values() []string {
	out := make([]string, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.values[n])
	}
	return out
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope { return s.parent }

// variables flattens the scope chain into HCL variables, innermost wins.
func (s *Scope) variables() map[string]cty.Value {
	vars := make(map[string]cty.Value)
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, v := range chain[i].values {
			vars[name] = cty.StringVal(v)
		}
	}
	return vars
}
