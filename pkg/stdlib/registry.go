// Package stdlib provides the CodingYok built-in function registry.
package stdlib

import (
	"math"
	"sort"

	"github.com/MrXploisLite/CodingYok/pkg/evaluator"
)

// Fn represents a built-in function.
type Fn struct {
	Name    string
	Doc     string
	Execute evaluator.BuiltinFunc
}

// Registry holds registered built-in functions.
type Registry struct {
	fns map[string]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[string]*Fn),
	}
}

// Register adds a built-in function to the registry.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Name] = &fn
}

// Get retrieves a built-in function by name.
func (r *Registry) Get(name string) *Fn {
	return r.fns[name]
}

// All returns all registered functions.
func (r *Registry) All() map[string]*Fn {
	return r.fns
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for n := range r.fns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Values returns the bindings to inject into the global environment:
// every registered function plus the numeric constants.
func (r *Registry) Values() map[string]evaluator.Value {
	out := make(map[string]evaluator.Value, len(r.fns)+2)
	for name, fn := range r.fns {
		out[name] = evaluator.NewBuiltin(name, fn.Execute)
	}
	out["PI"] = evaluator.Float(math.Pi)
	out["E"] = evaluator.Float(math.E)
	return out
}

// Builtins returns the default global bindings.
func Builtins() map[string]evaluator.Value {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.Values()
}
