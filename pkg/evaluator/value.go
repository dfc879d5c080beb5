// Package evaluator implements the CodingYok tree-walking interpreter.
package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

// Value is the interface for all CodingYok runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	cyvalue() // sealed marker
}

// None is the kosong sentinel.
type None struct{}

func (None) cyvalue() {}

// Bool is benar or salah.
type Bool bool

func (Bool) cyvalue() {}

// Int is a bilangan_bulat.
type Int int64

func (Int) cyvalue() {}

// Float is a bilangan_desimal.
type Float float64

func (Float) cyvalue() {}

// Str is a teks value.
type Str string

func (Str) cyvalue() {}

// List is a mutable daftar.
type List struct {
	Items []Value
}

func (*List) cyvalue() {}

// Tuple is an immutable tupel.
type Tuple struct {
	Items []Value
}

func (*Tuple) cyvalue() {}

// Function is a user-defined function or lambda together with the
// environment it closes over.
type Function struct {
	Name        string
	Params      []ast.Param
	Body        []ast.Stmt // nil for lambdas
	Expr        ast.Expr   // lambda body
	Closure     *Env
	Globals     *Env // module frame that "global" refers to
	IsGenerator bool
}

func (*Function) cyvalue() {}

// BuiltinFunc implements a built-in callable.
type BuiltinFunc func(h Host, args []Value) (Value, error)

// Builtin is a callable implemented in Go.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (*Builtin) cyvalue() {}

// Module is the namespace produced by executing a module once. It reads
// through to the module's global scope, so writes made by the module's own
// functions stay visible.
type Module struct {
	Name string
	Path string
	env  *Env
}

func (*Module) cyvalue() {}

// Get returns the binding name from the module namespace.
func (m *Module) Get(name string) (Value, bool) {
	v, ok := m.env.bindings[name]
	return v, ok
}

// Names returns the namespace's names in sorted order.
func (m *Module) Names() []string {
	names := make([]string, 0, len(m.env.bindings))
	for k := range m.env.bindings {
		names = append(names, k)
	}
	sortStrings(names)
	return names
}

// NewModule wraps the global scope a module executed in.
func NewModule(name, path string, env *Env) *Module {
	return &Module{Name: name, Path: path, env: env}
}

// NewList creates a list value.
func NewList(items []Value) *List {
	return &List{Items: items}
}

// NewTuple creates a tuple value.
func NewTuple(items []Value) *Tuple {
	return &Tuple{Items: items}
}

// NewBuiltin wraps fn as a callable value.
func NewBuiltin(name string, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

// TypeName returns the CodingYok type name of v, as reported by tipe().
func TypeName(v Value) string {
	switch val := v.(type) {
	case None, nil:
		return "kosong"
	case Bool:
		return "boolean"
	case Int:
		return "bilangan_bulat"
	case Float:
		return "bilangan_desimal"
	case Str:
		return "teks"
	case *List:
		return "daftar"
	case *Tuple:
		return "tupel"
	case *Dict:
		return "kamus"
	case *Set:
		return "himpunan"
	case *Function:
		return "fungsi"
	case *Builtin:
		return "fungsi_bawaan"
	case *BoundMethod:
		return "metode"
	case *Class:
		return "kelas"
	case *Instance:
		return val.Class.Name
	case *Module:
		return "modul"
	case *Generator:
		return "generator"
	}
	return fmt.Sprintf("%T", v)
}

// Truthy reports the truthiness of v: only salah and kosong are falsy.
// Zero, empty strings and empty collections are truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case None, nil:
		return false
	case Bool:
		return bool(val)
	}
	return true
}

// FormatFloat renders a float the way CodingYok prints it: integral values
// keep one decimal ("30.0"), others use the shortest representation.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToStr renders v as tulis prints it. Strings print without quotes.
// Instances with a __str__ method are handled by the interpreter.
func ToStr(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return Repr(v)
}

// Repr renders v the way it appears inside containers. A container that
// contains itself renders the inner occurrence as [...] or {...}.
func Repr(v Value) string {
	var r reprer
	return r.repr(v)
}

// reprer tracks the containers currently being rendered.
type reprer struct {
	active map[Value]bool
}

func (r *reprer) enter(v Value) bool {
	if r.active[v] {
		return false
	}
	if r.active == nil {
		r.active = make(map[Value]bool)
	}
	r.active[v] = true
	return true
}

func (r *reprer) repr(v Value) string {
	switch val := v.(type) {
	case None, nil:
		return "kosong"
	case Bool:
		if val {
			return "benar"
		}
		return "salah"
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return FormatFloat(float64(val))
	case Str:
		return quoteStr(string(val))
	case *List:
		if !r.enter(val) {
			return "[...]"
		}
		defer delete(r.active, v)
		return "[" + r.join(val.Items) + "]"
	case *Tuple:
		if len(val.Items) == 1 {
			return "(" + r.repr(val.Items[0]) + ",)"
		}
		return "(" + r.join(val.Items) + ")"
	case *Dict:
		if !r.enter(val) {
			return "{...}"
		}
		defer delete(r.active, v)
		entries := val.entries()
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = r.repr(e.key) + ": " + r.repr(e.val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Set:
		if val.Len() == 0 {
			return "himpunan()"
		}
		return "{" + r.join(val.Items()) + "}"
	case *Function:
		if val.Name == "" {
			return "<fungsi lambda>"
		}
		return "<fungsi " + val.Name + ">"
	case *Builtin:
		return "<fungsi bawaan " + val.Name + ">"
	case *BoundMethod:
		return "<metode " + methodName(val.Method) + " dari " + r.repr(val.Receiver) + ">"
	case *Class:
		return "<kelas " + val.Name + ">"
	case *Instance:
		if msg, ok := val.exceptionMessage(); ok {
			return val.Class.Name + "(" + quoteStr(msg) + ")"
		}
		return "<" + val.Class.Name + " objek>"
	case *Module:
		return "<modul " + val.Name + ">"
	case *Generator:
		return "<generator " + val.Name + ">"
	}
	return fmt.Sprintf("%v", v)
}

func (r *reprer) join(items []Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = r.repr(it)
	}
	return strings.Join(parts, ", ")
}

// quoteStr quotes s with single quotes unless it contains one and no double
// quote.
func quoteStr(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r == rune(q) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

func methodName(v Value) string {
	switch m := v.(type) {
	case *Function:
		return m.Name
	case *Builtin:
		return m.Name
	}
	return "?"
}

// Equal reports structural equality. Ints and floats compare numerically;
// everything without structure compares by identity. A pair of containers
// met again while it is still being compared counts as equal, so cyclic
// values terminate.
func Equal(a, b Value) bool {
	var e equaler
	return e.equal(a, b)
}

type equaler struct {
	active map[[2]Value]bool
}

// enter marks the container pair a, b as being compared. It returns false
// when the pair is already in progress.
func (e *equaler) enter(a, b Value) bool {
	pair := [2]Value{a, b}
	if e.active[pair] {
		return false
	}
	if e.active == nil {
		e.active = make(map[[2]Value]bool)
	}
	e.active[pair] = true
	return true
}

func (e *equaler) equal(a, b Value) bool {
	switch av := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int, Float:
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if !aok || !bok {
			return false
		}
		if ai, ok := a.(Int); ok {
			if bi, ok := b.(Int); ok {
				return ai == bi
			}
		}
		return af == bf
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		if !ok {
			return false
		}
		if av == bv || !e.enter(a, b) {
			return true
		}
		defer delete(e.active, [2]Value{a, b})
		return e.items(av.Items, bv.Items)
	case *Tuple:
		bv, ok := b.(*Tuple)
		return ok && e.items(av.Items, bv.Items)
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		if av == bv || !e.enter(a, b) {
			return true
		}
		defer delete(e.active, [2]Value{a, b})
		for _, entry := range av.entries() {
			other, found, _ := bv.Get(entry.key)
			if !found || !e.equal(entry.val, other) {
				return false
			}
		}
		return true
	case *Set:
		bv, ok := b.(*Set)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Items() {
			if has, _ := bv.Has(k); !has {
				return false
			}
		}
		return true
	}
	return a == b
}

func (e *equaler) items(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !e.equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// toFloat converts numeric values to float64. Booleans are not numbers.
func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}
