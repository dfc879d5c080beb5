package evaluator

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// Env is a scoped environment for variable bindings.
// It supports parent-chained lookup for lexical scoping.
type Env struct {
	bindings map[string]Value
	parent   *Env
}

// NewEnv creates a new environment with an optional parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		bindings: make(map[string]Value),
		parent:   parent,
	}
}

// Child creates a new child scope whose parent is this environment.
func (e *Env) Child() *Env {
	return NewEnv(e)
}

// Parent returns the enclosing scope, or nil for the global scope.
func (e *Env) Parent() *Env {
	return e.parent
}

// Define binds name in this scope, shadowing any outer binding.
func (e *Env) Define(name string, val Value) {
	e.bindings[name] = val
}

// Lookup finds name in this scope or any parent.
func (e *Env) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if val, ok := s.bindings[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Get is Lookup that reports a NameError, with spelling suggestions,
// when name is not bound.
func (e *Env) Get(name string) (Value, error) {
	if val, ok := e.Lookup(name); ok {
		return val, nil
	}
	return nil, e.undefined(name)
}

// Assign rebinds name in the nearest scope that already defines it.
func (e *Env) Assign(name string, val Value) error {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.bindings[name]; ok {
			s.bindings[name] = val
			return nil
		}
	}
	return e.undefined(name)
}

// Ancestor returns the scope depth levels up, or nil if the chain is
// shorter than that.
func (e *Env) Ancestor(depth int) *Env {
	s := e
	for i := 0; i < depth && s != nil; i++ {
		s = s.parent
	}
	return s
}

// GetAt reads name directly from the scope depth levels up.
func (e *Env) GetAt(depth int, name string) (Value, error) {
	s := e.Ancestor(depth)
	if s != nil {
		if val, ok := s.bindings[name]; ok {
			return val, nil
		}
	}
	return nil, e.undefined(name)
}

// AssignAt writes name directly into the scope depth levels up.
func (e *Env) AssignAt(depth int, name string, val Value) error {
	s := e.Ancestor(depth)
	if s == nil {
		return e.undefined(name)
	}
	s.bindings[name] = val
	return nil
}

// HasLocal checks whether name is bound in this scope itself.
func (e *Env) HasLocal(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Has checks whether a variable is defined in this scope or any parent.
func (e *Env) Has(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Delete removes name from this scope.
func (e *Env) Delete(name string) bool {
	if _, ok := e.bindings[name]; !ok {
		return false
	}
	delete(e.bindings, name)
	return true
}

// Names returns every visible name, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for s := e; s != nil; s = s.parent {
		for k := range s.bindings {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (e *Env) undefined(name string) *RuntimeError {
	err := newError(diagnostics.EName, "Nama '%s' tidak ditemukan", name)
	if s := Suggest(name, e.Names()); len(s) > 0 {
		err.Hint = "Mungkin maksud Anda: " + strings.Join(s, ", ")
	}
	return err
}

// Suggest returns up to three candidates within edit distance two of
// name, closest first.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		if d := levenshtein.ComputeDistance(name, c); d <= 2 {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})
	if len(hits) > 3 {
		hits = hits[:3]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
