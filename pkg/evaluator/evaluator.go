package evaluator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceRunStart       TraceEventType = "run_start"
	TraceRunEnd         TraceEventType = "run_end"
	TraceCallStart      TraceEventType = "call_start"
	TraceCallEnd        TraceEventType = "call_end"
	TraceModuleLoad     TraceEventType = "module_load"
	TraceRaise          TraceEventType = "raise"
	TraceBudgetExceeded TraceEventType = "budget_exceeded"
)

// TraceEvent represents a single trace event emitted during execution.
type TraceEvent struct {
	Timestamp string            `json:"ts"`
	Event     TraceEventType    `json:"event"`
	Span      *ast.Span         `json:"span,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// ExecOptions configures program execution.
type ExecOptions struct {
	Builtins    map[string]Value
	Stdout      io.Writer
	Stdin       io.Reader
	SearchPaths []string
	Limits      Limits
	Logger      *slog.Logger
	Trace       func(event TraceEvent)
	// Check runs static checks on each imported module before it executes.
	Check func(*ast.Program) []diagnostics.Diagnostic
}

// ExecResult holds the state left behind by a program execution.
type ExecResult struct {
	Globals *Env
}

// Interpreter holds the state shared by every frame of a run: the global
// environment, the module cache and the I/O streams. A single Interpreter
// may execute several programs in sequence, as the REPL does.
type Interpreter struct {
	opts       ExecOptions
	globals    *Env
	loader     *Loader
	tracker    Tracker
	out        io.Writer
	in         *bufio.Reader
	logger     *slog.Logger
	generators []*Generator
}

type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
	flowBreak
	flowContinue
)

type flow struct {
	kind  flowKind
	value Value
}

type declKind int

const (
	declGlobal declKind = iota + 1
	declNonlocal
)

// evaluator is one thread of execution: the main program, or the body of
// a running generator. It owns the scope cursor, which calls save and
// restore around each function body.
type evaluator struct {
	ctx      context.Context
	in       *Interpreter
	env      *Env
	globals  *Env
	decls    map[string]declKind
	depth    int
	handling []*RuntimeError
	gen      *Generator
}

// NewInterpreter creates an interpreter whose global environment holds
// the configured builtins and the built-in exception classes.
func NewInterpreter(opts ExecOptions) *Interpreter {
	in := &Interpreter{opts: opts, globals: NewEnv(nil)}
	in.out = opts.Stdout
	if in.out == nil {
		in.out = os.Stdout
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	in.in = bufio.NewReader(stdin)
	in.logger = opts.Logger
	if in.logger == nil {
		in.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.opts.Limits.MaxDepth <= 0 {
		in.opts.Limits.MaxDepth = DefaultMaxDepth
	}
	for name, c := range builtinExceptions {
		in.globals.Define(name, c)
	}
	for name, v := range opts.Builtins {
		in.globals.Define(name, v)
	}
	in.loader = newLoader(in, opts.SearchPaths)
	in.loader.check = opts.Check
	return in
}

// Globals returns the global environment.
func (in *Interpreter) Globals() *Env {
	return in.globals
}

// Loader returns the interpreter's module loader.
func (in *Interpreter) Loader() *Loader {
	return in.loader
}

// Exec runs program in the global environment.
func (in *Interpreter) Exec(ctx context.Context, program *ast.Program) error {
	ctx, cancel := in.opts.Limits.withTimeout(ctx)
	defer cancel()
	ev := in.newEvaluator(ctx, in.globals, 0)
	span := program.Span
	in.emit(TraceRunStart, &span, nil)
	_, err := ev.execBlock(program.Statements)
	in.emit(TraceRunEnd, &span, nil)
	return err
}

// Eval evaluates a single expression in the global environment.
func (in *Interpreter) Eval(ctx context.Context, expr ast.Expr) (Value, error) {
	ctx, cancel := in.opts.Limits.withTimeout(ctx)
	defer cancel()
	ev := in.newEvaluator(ctx, in.globals, 0)
	return ev.eval(expr)
}

// Str renders v as tulis would print it, honoring __str__.
func (in *Interpreter) Str(ctx context.Context, v Value) (string, error) {
	return in.newEvaluator(ctx, in.globals, 0).str(v)
}

// Close stops every generator that was started but not exhausted.
func (in *Interpreter) Close() {
	for _, g := range in.generators {
		g.Close()
	}
	in.generators = nil
}

// Execute runs a CodingYok program and returns its global environment.
func Execute(ctx context.Context, program *ast.Program, opts ExecOptions) (*ExecResult, error) {
	in := NewInterpreter(opts)
	defer in.Close()
	if err := in.Exec(ctx, program); err != nil {
		return &ExecResult{Globals: in.globals}, err
	}
	return &ExecResult{Globals: in.globals}, nil
}

func (in *Interpreter) newEvaluator(ctx context.Context, env *Env, depth int) *evaluator {
	return &evaluator{ctx: ctx, in: in, env: env, globals: env, depth: depth}
}

func (in *Interpreter) emit(event TraceEventType, span *ast.Span, data map[string]string) {
	if in.opts.Trace != nil {
		in.opts.Trace(TraceEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Event:     event,
			Span:      span,
			Data:      data,
		})
	}
}

func (ev *evaluator) execBlock(stmts []ast.Stmt) (flow, error) {
	for _, stmt := range stmts {
		f, err := ev.exec(stmt)
		if err != nil {
			return flow{}, err
		}
		if f.kind != flowNormal {
			return f, nil
		}
	}
	return flow{}, nil
}

func (ev *evaluator) exec(stmt ast.Stmt) (flow, error) {
	if err := ev.tick(stmt.NodeSpan()); err != nil {
		return flow{}, err
	}
	f, err := ev.execStmt(stmt)
	if err != nil {
		return flow{}, withSpan(err, stmt.NodeSpan())
	}
	return f, nil
}

func (ev *evaluator) execStmt(stmt ast.Stmt) (flow, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := ev.eval(s.Expr)
		return flow{}, err

	case *ast.PrintStmt:
		return flow{}, ev.execPrint(s)

	case *ast.AssignStmt:
		val, err := ev.eval(s.Value)
		if err != nil {
			return flow{}, err
		}
		return flow{}, ev.assign(s.Target, val)

	case *ast.IfStmt:
		return ev.execIf(s)

	case *ast.WhileStmt:
		return ev.execWhile(s)

	case *ast.ForStmt:
		return ev.execFor(s)

	case *ast.FuncDef:
		ev.env.Define(s.Name, ev.makeFunction(s))
		return flow{}, nil

	case *ast.ClassDef:
		return flow{}, ev.execClassDef(s)

	case *ast.ReturnStmt:
		var val Value = None{}
		if s.Value != nil {
			v, err := ev.eval(s.Value)
			if err != nil {
				return flow{}, err
			}
			val = v
		}
		return flow{kind: flowReturn, value: val}, nil

	case *ast.YieldStmt:
		return flow{}, ev.execYield(s)

	case *ast.BreakStmt:
		return flow{kind: flowBreak}, nil

	case *ast.ContinueStmt:
		return flow{kind: flowContinue}, nil

	case *ast.PassStmt:
		return flow{}, nil

	case *ast.RaiseStmt:
		return flow{}, ev.execRaise(s)

	case *ast.GlobalStmt:
		for _, name := range s.Names {
			ev.declare(name, declGlobal)
		}
		return flow{}, nil

	case *ast.NonlocalStmt:
		for _, name := range s.Names {
			if !ev.enclosingHas(name) {
				return flow{}, newError(diagnostics.EName, "Nama nonlokal '%s' tidak ditemukan", name)
			}
			ev.declare(name, declNonlocal)
		}
		return flow{}, nil

	case *ast.AssertStmt:
		return flow{}, ev.execAssert(s)

	case *ast.DelStmt:
		for _, t := range s.Targets {
			if err := ev.delete(t); err != nil {
				return flow{}, err
			}
		}
		return flow{}, nil

	case *ast.ImportStmt:
		mod, err := ev.in.loader.Load(ev, s.Module)
		if err != nil {
			return flow{}, err
		}
		name := s.Alias
		if name == "" {
			name = s.Module[strings.LastIndex(s.Module, ".")+1:]
		}
		return flow{}, ev.setName(name, mod)

	case *ast.FromImportStmt:
		mod, err := ev.in.loader.Load(ev, s.Module)
		if err != nil {
			return flow{}, err
		}
		for _, n := range s.Names {
			v, ok := mod.Get(n.Name)
			if !ok {
				return flow{}, newError(diagnostics.EImport,
					"Tidak dapat mengimpor '%s' dari modul '%s'", n.Name, s.Module)
			}
			name := n.Alias
			if name == "" {
				name = n.Name
			}
			if err := ev.setName(name, v); err != nil {
				return flow{}, err
			}
		}
		return flow{}, nil

	case *ast.TryStmt:
		return ev.execTry(s)

	case *ast.WithStmt:
		return ev.execWith(s)

	case *ast.MatchStmt:
		return ev.execMatch(s)
	}
	return flow{}, fmt.Errorf("unknown statement %s", stmt.Kind())
}

func (ev *evaluator) execPrint(s *ast.PrintStmt) error {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return err
		}
		if parts[i], err = ev.str(v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(ev.in.out, strings.Join(parts, " ")+"\n"); err != nil {
		return newError(diagnostics.EIO, "Gagal menulis keluaran: %v", err)
	}
	return nil
}

func (ev *evaluator) execIf(s *ast.IfStmt) (flow, error) {
	cond, err := ev.eval(s.Cond)
	if err != nil {
		return flow{}, err
	}
	if Truthy(cond) {
		return ev.execBlock(s.Body)
	}
	for _, elif := range s.Elifs {
		cond, err := ev.eval(elif.Cond)
		if err != nil {
			return flow{}, err
		}
		if Truthy(cond) {
			return ev.execBlock(elif.Body)
		}
	}
	if s.Else != nil {
		return ev.execBlock(s.Else)
	}
	return flow{}, nil
}

func (ev *evaluator) execWhile(s *ast.WhileStmt) (flow, error) {
	for {
		if err := ev.tick(s.Span); err != nil {
			return flow{}, err
		}
		cond, err := ev.eval(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if !Truthy(cond) {
			return flow{}, nil
		}
		f, err := ev.execBlock(s.Body)
		if err != nil {
			return flow{}, err
		}
		switch f.kind {
		case flowBreak:
			return flow{}, nil
		case flowReturn:
			return f, nil
		}
	}
}

func (ev *evaluator) execFor(s *ast.ForStmt) (flow, error) {
	iterable, err := ev.eval(s.Iter)
	if err != nil {
		return flow{}, err
	}
	// A generator created by the loop header is unreachable once the loop
	// ends, so leaving early closes it and runs its akhirnya blocks.
	if g, ok := iterable.(*Generator); ok {
		if _, named := s.Iter.(*ast.Identifier); !named {
			defer g.Close()
		}
	}
	var result flow
	err = ev.iterate(iterable, func(item Value) (bool, error) {
		if err := ev.bindTargets(s.Targets, item); err != nil {
			return false, err
		}
		f, err := ev.execBlock(s.Body)
		if err != nil {
			return false, err
		}
		switch f.kind {
		case flowBreak:
			return false, nil
		case flowReturn:
			result = f
			return false, nil
		}
		return true, nil
	})
	return result, err
}

func (ev *evaluator) bindTargets(names []string, item Value) error {
	if len(names) == 1 {
		return ev.setName(names[0], item)
	}
	items, err := ev.unpack(item, len(names))
	if err != nil {
		return err
	}
	for i, name := range names {
		if err := ev.setName(name, items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ev *evaluator) makeFunction(s *ast.FuncDef) *Function {
	return &Function{
		Name:        s.Name,
		Params:      s.Params,
		Body:        s.Body,
		Closure:     ev.env,
		Globals:     ev.globals,
		IsGenerator: s.IsGenerator,
	}
}

func (ev *evaluator) execClassDef(s *ast.ClassDef) error {
	class := &Class{Name: s.Name, Methods: make(map[string]Value, len(s.Methods))}
	if s.Super != nil {
		sv, err := ev.eval(s.Super)
		if err != nil {
			return err
		}
		super, ok := sv.(*Class)
		if !ok {
			return typeErrorf("Kelas induk '%s' harus berupa kelas", Repr(sv))
		}
		class.Super = super
	}
	for _, m := range s.Methods {
		class.Methods[m.Name] = ev.makeFunction(m)
	}
	ev.env.Define(s.Name, class)
	return nil
}

func (ev *evaluator) execYield(s *ast.YieldStmt) error {
	if ev.gen == nil {
		return typeErrorf("'hasilkan' hanya boleh digunakan di dalam fungsi")
	}
	var val Value = None{}
	if s.Value != nil {
		v, err := ev.eval(s.Value)
		if err != nil {
			return err
		}
		val = v
	}
	return ev.gen.yield(val)
}

func (ev *evaluator) execRaise(s *ast.RaiseStmt) error {
	if s.Value == nil {
		if len(ev.handling) == 0 {
			return newError(diagnostics.EType, "Tidak ada exception aktif untuk dilempar ulang")
		}
		return ev.handling[len(ev.handling)-1]
	}
	v, err := ev.eval(s.Value)
	if err != nil {
		return err
	}
	var inst *Instance
	switch val := v.(type) {
	case *Class:
		if !val.IsException() {
			return typeErrorf("Hanya exception yang dapat dilempar, bukan kelas '%s'", val.Name)
		}
		obj, err := ev.instantiate(val, nil)
		if err != nil {
			return err
		}
		inst = obj.(*Instance)
	case *Instance:
		if !val.Class.IsException() {
			return typeErrorf("Hanya exception yang dapat dilempar, bukan '%s'", val.Class.Name)
		}
		inst = val
	case Str:
		inst = newException("Exception", string(val))
	default:
		return typeErrorf("Hanya exception yang dapat dilempar, bukan '%s'", TypeName(v))
	}
	msg := inst.Class.Name
	if m, _ := inst.exceptionMessage(); m != "" {
		msg += ": " + m
	}
	span := s.Span
	ev.in.emit(TraceRaise, &span, map[string]string{"class": inst.Class.Name})
	return &RuntimeError{
		Code:      codeForException(inst),
		Message:   msg,
		Span:      &span,
		Exception: inst,
	}
}

func (ev *evaluator) execAssert(s *ast.AssertStmt) error {
	cond, err := ev.eval(s.Cond)
	if err != nil {
		return err
	}
	if Truthy(cond) {
		return nil
	}
	msg := "Asersi gagal"
	if s.Message != nil {
		v, err := ev.eval(s.Message)
		if err != nil {
			return err
		}
		if msg, err = ev.str(v); err != nil {
			return err
		}
	}
	return newError(diagnostics.EAssert, "%s", msg)
}

func (ev *evaluator) execTry(s *ast.TryStmt) (flow, error) {
	f, err := ev.execBlock(s.Body)
	if err != nil {
		if rt, ok := catchable(err); ok {
			handled, hf, herr := ev.handle(s.Handlers, rt)
			if handled {
				f, err = hf, herr
			}
		}
	}
	if s.Finally != nil {
		ff, ferr := ev.execBlock(s.Finally)
		if ferr != nil {
			return flow{}, ferr
		}
		if ff.kind != flowNormal {
			return ff, nil
		}
	}
	return f, err
}

// handle runs the first kecuali clause matching rt.
func (ev *evaluator) handle(handlers []ast.ExceptClause, rt *RuntimeError) (bool, flow, error) {
	exc := exceptionOf(rt)
	for _, h := range handlers {
		if h.Type != nil {
			t, err := ev.eval(h.Type)
			if err != nil {
				return true, flow{}, err
			}
			ok, err := exceptionMatches(exc, t)
			if err != nil {
				return true, flow{}, err
			}
			if !ok {
				continue
			}
		}
		if h.Name != "" {
			if err := ev.setName(h.Name, exc); err != nil {
				return true, flow{}, err
			}
		}
		ev.handling = append(ev.handling, rt)
		f, err := ev.execBlock(h.Body)
		ev.handling = ev.handling[:len(ev.handling)-1]
		return true, f, err
	}
	return false, flow{}, nil
}

func exceptionMatches(exc *Instance, t Value) (bool, error) {
	switch tv := t.(type) {
	case *Class:
		return exc.Class.IsSubclassOf(tv), nil
	case *Tuple:
		for _, it := range tv.Items {
			ok, err := exceptionMatches(exc, it)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return false, typeErrorf("Klausa kecuali membutuhkan kelas exception, bukan '%s'", TypeName(t))
}

func (ev *evaluator) execWith(s *ast.WithStmt) (flow, error) {
	ctxVal, err := ev.eval(s.Context)
	if err != nil {
		return flow{}, err
	}
	bound := ctxVal
	inst, isInst := ctxVal.(*Instance)
	if isInst {
		if enter, ok := inst.Class.FindMethod("__enter__"); ok {
			if bound, err = ev.call(&BoundMethod{Receiver: inst, Method: enter}, nil); err != nil {
				return flow{}, err
			}
		}
	}
	if s.Name != "" {
		if err := ev.setName(s.Name, bound); err != nil {
			return flow{}, err
		}
	}
	f, bodyErr := ev.execBlock(s.Body)
	if !isInst {
		return f, bodyErr
	}
	exit, ok := inst.Class.FindMethod("__exit__")
	if !ok {
		return f, bodyErr
	}
	exitArgs := []Value{None{}, None{}, None{}}
	rt, caught := catchable(bodyErr)
	if caught {
		exc := exceptionOf(rt)
		exitArgs = []Value{exc.Class, exc, None{}}
	}
	if fn, ok := exit.(*Function); ok && len(fn.Params)-1 < len(exitArgs) {
		exitArgs = exitArgs[:max(len(fn.Params)-1, 0)]
	}
	suppress, err := ev.call(&BoundMethod{Receiver: inst, Method: exit}, exitArgs)
	if err != nil {
		return flow{}, err
	}
	if caught && Truthy(suppress) {
		return flow{}, nil
	}
	return f, bodyErr
}

func (ev *evaluator) execMatch(s *ast.MatchStmt) (flow, error) {
	subject, err := ev.eval(s.Subject)
	if err != nil {
		return flow{}, err
	}
	for _, c := range s.Cases {
		binds := map[string]Value{}
		ok, err := ev.matchPattern(c.Pattern, subject, binds)
		if err != nil {
			return flow{}, err
		}
		if !ok {
			continue
		}
		for name, v := range binds {
			if err := ev.setName(name, v); err != nil {
				return flow{}, err
			}
		}
		if c.Guard != nil {
			g, err := ev.eval(c.Guard)
			if err != nil {
				return flow{}, err
			}
			if !Truthy(g) {
				continue
			}
		}
		return ev.execBlock(c.Body)
	}
	return flow{}, nil
}

// matchPattern tests subject against a kasus pattern, collecting capture
// bindings into binds. A bare name captures, "_" matches anything,
// list and tuple patterns destructure, and "a atau b" tries alternatives.
func (ev *evaluator) matchPattern(pat ast.Expr, subject Value, binds map[string]Value) (bool, error) {
	switch p := pat.(type) {
	case *ast.Identifier:
		if p.Name != "_" {
			binds[p.Name] = subject
		}
		return true, nil
	case *ast.ListExpr:
		return ev.matchSequence(p.Elements, subject, binds)
	case *ast.TupleExpr:
		return ev.matchSequence(p.Elements, subject, binds)
	case *ast.BinaryExpr:
		if p.Op == ast.OpOr {
			ok, err := ev.matchPattern(p.Left, subject, binds)
			if err != nil || ok {
				return ok, err
			}
			return ev.matchPattern(p.Right, subject, binds)
		}
	}
	v, err := ev.eval(pat)
	if err != nil {
		return false, err
	}
	return Equal(v, subject), nil
}

func (ev *evaluator) matchSequence(elems []ast.Expr, subject Value, binds map[string]Value) (bool, error) {
	var items []Value
	switch sv := subject.(type) {
	case *List:
		items = sv.Items
	case *Tuple:
		items = sv.Items
	default:
		return false, nil
	}
	if len(items) != len(elems) {
		return false, nil
	}
	for i, e := range elems {
		ok, err := ev.matchPattern(e, items[i], binds)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (ev *evaluator) declare(name string, kind declKind) {
	if ev.decls == nil {
		ev.decls = make(map[string]declKind)
	}
	ev.decls[name] = kind
}

// enclosingHas reports whether name is bound in an enclosing function
// scope. The module's global scope does not count.
func (ev *evaluator) enclosingHas(name string) bool {
	for s := ev.env.Parent(); s != nil && s != ev.globals; s = s.Parent() {
		if s.HasLocal(name) {
			return true
		}
	}
	return false
}

// setName binds name according to the current scope's declarations:
// plain assignment defines in the innermost frame.
func (ev *evaluator) setName(name string, val Value) error {
	switch ev.decls[name] {
	case declGlobal:
		ev.globals.Define(name, val)
		return nil
	case declNonlocal:
		return ev.env.Parent().Assign(name, val)
	}
	ev.env.Define(name, val)
	return nil
}

func (ev *evaluator) lookup(name string) (Value, error) {
	if ev.decls[name] == declGlobal {
		if v, ok := ev.globals.Lookup(name); ok {
			return v, nil
		}
	}
	return ev.env.Get(name)
}

func (ev *evaluator) assign(target ast.Expr, val Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return ev.setName(t.Name, val)
	case *ast.AttributeExpr:
		obj, err := ev.eval(t.Object)
		if err != nil {
			return err
		}
		return setAttr(obj, t.Name, val)
	case *ast.IndexExpr:
		obj, err := ev.eval(t.Object)
		if err != nil {
			return err
		}
		idx, err := ev.eval(t.Index)
		if err != nil {
			return err
		}
		return ev.setIndex(obj, idx, val)
	case *ast.SliceExpr:
		return ev.assignSlice(t, val)
	case *ast.TupleExpr:
		return ev.assignUnpack(t.Elements, val)
	case *ast.ListExpr:
		return ev.assignUnpack(t.Elements, val)
	}
	return typeErrorf("Tidak dapat melakukan assignment ke %s", target.Kind())
}

func (ev *evaluator) assignUnpack(targets []ast.Expr, val Value) error {
	items, err := ev.unpack(val, len(targets))
	if err != nil {
		return err
	}
	for i, t := range targets {
		if err := ev.assign(t, items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ev *evaluator) unpack(val Value, n int) ([]Value, error) {
	items, err := ev.collect(val)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, valueErrorf("Jumlah nilai untuk dibongkar tidak sesuai (diharapkan %d, didapat %d)", n, len(items))
	}
	return items, nil
}

func (ev *evaluator) delete(target ast.Expr) error {
	switch t := target.(type) {
	case *ast.Identifier:
		if !ev.env.Delete(t.Name) {
			return newError(diagnostics.EName, "Nama '%s' tidak ditemukan", t.Name)
		}
		return nil
	case *ast.IndexExpr:
		obj, err := ev.eval(t.Object)
		if err != nil {
			return err
		}
		idx, err := ev.eval(t.Index)
		if err != nil {
			return err
		}
		return deleteIndex(obj, idx)
	case *ast.AttributeExpr:
		obj, err := ev.eval(t.Object)
		if err != nil {
			return err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return attrErrorf("Tidak dapat menghapus atribut '%s' dari '%s'", t.Name, TypeName(obj))
		}
		if _, ok := inst.Fields[t.Name]; !ok {
			return attrErrorf("Objek '%s' tidak memiliki atribut '%s'", inst.Class.Name, t.Name)
		}
		delete(inst.Fields, t.Name)
		return nil
	}
	return typeErrorf("Tidak dapat menghapus %s", target.Kind())
}
