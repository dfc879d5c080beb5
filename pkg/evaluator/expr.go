package evaluator

import (
	"fmt"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

func (ev *evaluator) eval(expr ast.Expr) (Value, error) {
	if expr == nil {
		return None{}, nil
	}
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return Int(e.Value), nil
	case *ast.FloatLiteral:
		return Float(e.Value), nil
	case *ast.BoolLiteral:
		return Bool(e.Value), nil
	case *ast.StrLiteral:
		return Str(e.Value), nil
	case *ast.NoneLiteral:
		return None{}, nil

	case *ast.FStringExpr:
		return ev.evalFString(e)

	case *ast.FormattedValue:
		v, err := ev.eval(e.Value)
		if err != nil {
			return nil, err
		}
		s, err := ev.format(v, e.Spec)
		return Str(s), err

	case *ast.Identifier:
		v, err := ev.lookup(e.Name)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		return v, nil

	case *ast.BinaryExpr:
		return ev.evalBinary(e)

	case *ast.UnaryExpr:
		v, err := ev.eval(e.Operand)
		if err != nil {
			return nil, err
		}
		r, err := unaryOp(e.Op, v)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		return r, nil

	case *ast.CondExpr:
		cond, err := ev.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return ev.eval(e.Then)
		}
		return ev.eval(e.Else)

	case *ast.CallExpr:
		return ev.evalCall(e)

	case *ast.AttributeExpr:
		obj, err := ev.eval(e.Object)
		if err != nil {
			return nil, err
		}
		v, err := ev.getAttr(obj, e.Name)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		return v, nil

	case *ast.IndexExpr:
		obj, err := ev.eval(e.Object)
		if err != nil {
			return nil, err
		}
		idx, err := ev.eval(e.Index)
		if err != nil {
			return nil, err
		}
		v, err := ev.index(obj, idx)
		if err != nil {
			return nil, withSpan(err, e.Span)
		}
		return v, nil

	case *ast.SliceExpr:
		return ev.evalSlice(e)

	case *ast.ListExpr:
		items, err := ev.evalAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return NewList(items), nil

	case *ast.TupleExpr:
		items, err := ev.evalAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return NewTuple(items), nil

	case *ast.SetExpr:
		items, err := ev.evalAll(e.Elements)
		if err != nil {
			return nil, err
		}
		set := NewSet()
		for _, it := range items {
			if err := set.Add(it); err != nil {
				return nil, withSpan(err, e.Span)
			}
		}
		return set, nil

	case *ast.DictExpr:
		d := NewDict()
		for _, entry := range e.Entries {
			k, err := ev.eval(entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := ev.eval(entry.Value)
			if err != nil {
				return nil, err
			}
			if err := d.Set(k, v); err != nil {
				return nil, withSpan(err, e.Span)
			}
		}
		return d, nil

	case *ast.ListComp:
		list := NewList(nil)
		err := ev.comprehend(e.Clause, func() error {
			v, err := ev.eval(e.Element)
			if err != nil {
				return err
			}
			list.Items = append(list.Items, v)
			return nil
		})
		return list, err

	case *ast.SetComp:
		set := NewSet()
		err := ev.comprehend(e.Clause, func() error {
			v, err := ev.eval(e.Element)
			if err != nil {
				return err
			}
			return withSpan(set.Add(v), e.Span)
		})
		return set, err

	case *ast.DictComp:
		d := NewDict()
		err := ev.comprehend(e.Clause, func() error {
			k, err := ev.eval(e.Key)
			if err != nil {
				return err
			}
			v, err := ev.eval(e.Value)
			if err != nil {
				return err
			}
			return withSpan(d.Set(k, v), e.Span)
		})
		return d, err

	case *ast.LambdaExpr:
		return &Function{
			Params:  e.Params,
			Expr:    e.Body,
			Closure: ev.env,
			Globals: ev.globals,
		}, nil
	}
	return nil, fmt.Errorf("unknown expression %s", expr.Kind())
}

func (ev *evaluator) evalAll(exprs []ast.Expr) ([]Value, error) {
	out := make([]Value, len(exprs))
	for i, e := range exprs {
		v, err := ev.eval(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (ev *evaluator) evalFString(e *ast.FStringExpr) (Value, error) {
	var b strings.Builder
	for _, part := range e.Parts {
		if lit, ok := part.(*ast.StrLiteral); ok {
			b.WriteString(lit.Value)
			continue
		}
		v, err := ev.eval(part)
		if err != nil {
			return nil, err
		}
		s, err := ev.str(v)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return Str(b.String()), nil
}

func (ev *evaluator) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(e.Right)
	if err != nil {
		return nil, err
	}
	var v Value
	switch e.Op {
	case ast.OpAnd:
		v = Bool(Truthy(left) && Truthy(right))
	case ast.OpOr:
		v = Bool(Truthy(left) || Truthy(right))
	case ast.OpIn, ast.OpNotIn:
		var in bool
		in, err = ev.contains(right, left)
		v = Bool(in == (e.Op == ast.OpIn))
	default:
		v, err = binaryOp(e.Op, left, right)
	}
	if err != nil {
		return nil, withSpan(err, e.Span)
	}
	return v, nil
}

// comprehend runs body once per element of the clause's iterable whose
// guard holds. The loop variable lives in a child scope that is discarded
// afterwards, so it never leaks.
func (ev *evaluator) comprehend(c ast.CompClause, body func() error) error {
	iterable, err := ev.eval(c.Iter)
	if err != nil {
		return err
	}
	saved := ev.env
	ev.env = saved.Child()
	defer func() { ev.env = saved }()
	return ev.iterate(iterable, func(item Value) (bool, error) {
		ev.env.Define(c.Var, item)
		if c.Cond != nil {
			ok, err := ev.eval(c.Cond)
			if err != nil {
				return false, err
			}
			if !Truthy(ok) {
				return true, nil
			}
		}
		return true, body()
	})
}

func (ev *evaluator) evalSlice(e *ast.SliceExpr) (Value, error) {
	obj, err := ev.eval(e.Object)
	if err != nil {
		return nil, err
	}
	bounds := [3]*int64{}
	for i, b := range []ast.Expr{e.Start, e.Stop, e.Step} {
		if b == nil {
			continue
		}
		v, err := ev.eval(b)
		if err != nil {
			return nil, err
		}
		switch n := v.(type) {
		case None:
		case Int:
			x := int64(n)
			bounds[i] = &x
		default:
			return nil, withSpan(typeErrorf("Indeks slice harus bilangan bulat, bukan '%s'", TypeName(v)), e.Span)
		}
	}
	v, err := slice(obj, bounds[0], bounds[1], bounds[2])
	if err != nil {
		return nil, withSpan(err, e.Span)
	}
	return v, nil
}

func (ev *evaluator) assignSlice(t *ast.SliceExpr, val Value) error {
	obj, err := ev.eval(t.Object)
	if err != nil {
		return err
	}
	list, ok := obj.(*List)
	if !ok {
		return typeErrorf("Objek '%s' tidak mendukung assignment slice", TypeName(obj))
	}
	bounds := [3]*int64{}
	for i, b := range []ast.Expr{t.Start, t.Stop, t.Step} {
		if b == nil {
			continue
		}
		v, err := ev.eval(b)
		if err != nil {
			return err
		}
		if n, ok := v.(Int); ok {
			x := int64(n)
			bounds[i] = &x
		} else if _, ok := v.(None); !ok {
			return typeErrorf("Indeks slice harus bilangan bulat, bukan '%s'", TypeName(v))
		}
	}
	items, err := ev.collect(val)
	if err != nil {
		return err
	}
	return setSlice(list, bounds[0], bounds[1], bounds[2], items)
}
