package evaluator

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

// Host is the view of the running interpreter that built-in functions
// receive. It lets them call back into CodingYok code.
type Host interface {
	Context() context.Context
	Call(fn Value, args []Value) (Value, error)
	Iterate(v Value, fn func(item Value) (bool, error)) error
	Collect(v Value) ([]Value, error)
	Str(v Value) (string, error)
	Stdout() io.Writer
	Stdin() *bufio.Reader
	Logger() *slog.Logger
}

func (ev *evaluator) Context() context.Context { return ev.ctx }
func (ev *evaluator) Stdout() io.Writer         { return ev.in.out }
func (ev *evaluator) Stdin() *bufio.Reader      { return ev.in.in }
func (ev *evaluator) Logger() *slog.Logger      { return ev.in.logger }

func (ev *evaluator) Call(fn Value, args []Value) (Value, error) { return ev.call(fn, args) }

func (ev *evaluator) Iterate(v Value, fn func(item Value) (bool, error)) error {
	return ev.iterate(v, fn)
}

func (ev *evaluator) Collect(v Value) ([]Value, error) { return ev.collect(v) }
func (ev *evaluator) Str(v Value) (string, error)      { return ev.str(v) }

func (ev *evaluator) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := ev.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	args, err := ev.evalAll(e.Args)
	if err != nil {
		return nil, err
	}
	v, err := ev.call(callee, args)
	if err != nil {
		return nil, withSpan(err, e.Span)
	}
	return v, nil
}

func (ev *evaluator) call(callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *Function:
		return ev.callFunction(fn, args)
	case *Builtin:
		if err := ev.enterCall(); err != nil {
			return nil, err
		}
		defer ev.leaveCall()
		return fn.Fn(ev, args)
	case *BoundMethod:
		full := make([]Value, 0, len(args)+1)
		full = append(full, fn.Receiver)
		return ev.call(fn.Method, append(full, args...))
	case *Class:
		return ev.instantiate(fn, args)
	}
	return nil, typeErrorf("Objek '%s' tidak dapat dipanggil", TypeName(callee))
}

func (ev *evaluator) callFunction(fn *Function, args []Value) (Value, error) {
	name := fn.Name
	if name == "" {
		name = "lambda"
	}
	if len(args) > len(fn.Params) {
		return nil, typeErrorf("%s() menerima %d argumen tetapi %d diberikan", name, len(fn.Params), len(args))
	}
	if err := ev.enterCall(); err != nil {
		return nil, err
	}
	defer ev.leaveCall()

	env := fn.Closure.Child()
	saved, savedGlobals, savedDecls := ev.env, ev.globals, ev.decls
	ev.env, ev.globals, ev.decls = env, fn.Globals, nil
	defer func() { ev.env, ev.globals, ev.decls = saved, savedGlobals, savedDecls }()

	for i, p := range fn.Params {
		if i < len(args) {
			env.Define(p.Name, args[i])
			continue
		}
		if p.Default == nil {
			return nil, typeErrorf("Parameter '%s' tidak memiliki nilai", p.Name)
		}
		v, err := ev.eval(p.Default)
		if err != nil {
			return nil, err
		}
		env.Define(p.Name, v)
	}

	if fn.IsGenerator {
		return ev.newGenerator(fn, env), nil
	}
	if fn.Body == nil {
		return ev.eval(fn.Expr)
	}

	span := functionSpan(fn)
	ev.in.emit(TraceCallStart, span, map[string]string{"fn": name})
	start := time.Now()
	f, err := ev.execBlock(fn.Body)
	ev.in.emit(TraceCallEnd, span, map[string]string{
		"fn": name,
		"us": strconv.FormatInt(time.Since(start).Microseconds(), 10),
	})
	if err != nil {
		return nil, err
	}
	if f.kind == flowReturn {
		return f.value, nil
	}
	return None{}, nil
}

func functionSpan(fn *Function) *ast.Span {
	if len(fn.Body) == 0 {
		return nil
	}
	s := fn.Body[0].NodeSpan()
	return &s
}

func (ev *evaluator) instantiate(c *Class, args []Value) (Value, error) {
	inst := NewInstance(c)
	init, ok := c.FindMethod("__init__")
	if !ok {
		if len(args) > 0 {
			return nil, typeErrorf("%s() tidak menerima argumen", c.Name)
		}
		return inst, nil
	}
	if _, err := ev.call(&BoundMethod{Receiver: inst, Method: init}, args); err != nil {
		return nil, err
	}
	return inst, nil
}

// str renders v as tulis prints it, honoring a user-defined __str__.
func (ev *evaluator) str(v Value) (string, error) {
	inst, ok := v.(*Instance)
	if !ok {
		return ToStr(v), nil
	}
	if m, ok := inst.Class.FindMethod("__str__"); ok {
		r, err := ev.call(&BoundMethod{Receiver: inst, Method: m}, nil)
		if err != nil {
			return "", err
		}
		s, ok := r.(Str)
		if !ok {
			return "", typeErrorf("__str__ harus mengembalikan teks, bukan '%s'", TypeName(r))
		}
		return string(s), nil
	}
	if msg, ok := inst.exceptionMessage(); ok {
		return msg, nil
	}
	return Repr(v), nil
}
