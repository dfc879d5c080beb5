package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/parser"
)

// helper: parse source and assert no diagnostics
func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, diags := parser.Parse(source, "test.cy")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnostics.FormatDiagnostics(diags, true))
	}
	if prog == nil {
		t.Fatal("expected non-nil program")
	}
	return prog
}

// helper: parse source and assert it fails; returns the diagnostics
func mustFail(t *testing.T, source string) []diagnostics.Diagnostic {
	t.Helper()
	prog, diags := parser.Parse(source, "test.cy")
	if len(diags) == 0 || prog != nil {
		t.Fatalf("expected parse of %q to fail with diagnostics, but it succeeded", source)
	}
	return diags
}

// helper: extract the single statement from a program
func singleStmt(t *testing.T, source string) ast.Stmt {
	t.Helper()
	prog := mustParse(t, source)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

// helper: extract the expression of a single expression statement
func singleExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	es, ok := singleStmt(t, source).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt for %q", source)
	}
	return es.Expr
}

// sexpr renders an expression in prefix form so precedence can be compared
// as a string.
func sexpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return fmt.Sprint(n.Value)
	case *ast.FloatLiteral:
		return fmt.Sprint(n.Value)
	case *ast.StrLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BoolLiteral:
		return fmt.Sprint(n.Value)
	case *ast.NoneLiteral:
		return "kosong"
	case *ast.Identifier:
		return n.Name
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.Left), sexpr(n.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", n.Op, sexpr(n.Operand))
	case *ast.CondExpr:
		return fmt.Sprintf("(if %s %s %s)", sexpr(n.Cond), sexpr(n.Then), sexpr(n.Else))
	case *ast.CallExpr:
		parts := []string{sexpr(n.Callee)}
		for _, a := range n.Args {
			parts = append(parts, sexpr(a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	case *ast.AttributeExpr:
		return fmt.Sprintf("(. %s %s)", sexpr(n.Object), n.Name)
	case *ast.IndexExpr:
		return fmt.Sprintf("([] %s %s)", sexpr(n.Object), sexpr(n.Index))
	case *ast.SliceExpr:
		b := func(x ast.Expr) string {
			if x == nil {
				return "_"
			}
			return sexpr(x)
		}
		return fmt.Sprintf("([:] %s %s %s %s)", sexpr(n.Object), b(n.Start), b(n.Stop), b(n.Step))
	case *ast.ListExpr:
		return "[" + joinExprs(n.Elements) + "]"
	case *ast.TupleExpr:
		return "(tuple " + joinExprs(n.Elements) + ")"
	case *ast.SetExpr:
		return "{set " + joinExprs(n.Elements) + "}"
	case *ast.DictExpr:
		var parts []string
		for _, en := range n.Entries {
			parts = append(parts, sexpr(en.Key)+":"+sexpr(en.Value))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case *ast.LambdaExpr:
		var names []string
		for _, p := range n.Params {
			names = append(names, p.Name)
		}
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(names, " "), sexpr(n.Body))
	}
	return n0(e)
}

func n0(e ast.Expr) string { return "<" + e.Kind() + ">" }

func joinExprs(list []ast.Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = sexpr(e)
	}
	return strings.Join(parts, " ")
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"-2 ** 2", "(- (** 2 2))"},
		{"2 ** -1", "(** 2 (- 1))"},
		{"a // b % c", "(% (// a b) c)"},
		{"a atau b dan c", "(atau a (dan b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"bukan a == b", "(== (bukan a) b)"},
		{"x dalam xs dan y bukan dalam ys", "(dan (dalam x xs) (bukan dalam y ys))"},
		{"a adalah kosong", "(adalah a kosong)"},
		{"a adalah bukan kosong", "(adalah bukan a kosong)"},
		{"f(x)(y).z[0]", "([] (. (call (call f x) y) z) 0)"},
		{"a jika c kalau_tidak b", "(if c a b)"},
		{"xs[1:]", "([:] xs 1 _ _)"},
		{"xs[::2]", "([:] xs _ _ 2)"},
		{"xs[a:b:c]", "([:] xs a b c)"},
		{"lambda x, y=1: x + y", "(lambda (x y) (+ x y))"},
		{"'a' 'b'", `"ab"`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := sexpr(singleExpr(t, tt.src))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCollections(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"[]", "[]"},
		{"[1, 2, 3,]", "[1 2 3]"},
		{"()", "(tuple )"},
		{"(1,)", "(tuple 1)"},
		{"(1, 2)", "(tuple 1 2)"},
		{"{}", "{}"},
		{"{'a': 1, 'b': 2}", `{"a":1 "b":2}`},
		{"{1, 2}", "{set 1 2}"},
		{"[\n  1,\n  2\n]", "[1 2]"},
	}
	for _, tt := range tests {
		got := sexpr(singleExpr(t, tt.src))
		if got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestComprehensions(t *testing.T) {
	lc, ok := singleExpr(t, "[x * 2 untuk x dalam xs jika x > 1]").(*ast.ListComp)
	if !ok {
		t.Fatal("expected ListComp")
	}
	if lc.Clause.Var != "x" || sexpr(lc.Clause.Iter) != "xs" || sexpr(lc.Clause.Cond) != "(> x 1)" {
		t.Errorf("unexpected clause: %+v", lc.Clause)
	}
	if _, ok := singleExpr(t, "{x untuk x dalam xs}").(*ast.SetComp); !ok {
		t.Error("expected SetComp")
	}
	dc, ok := singleExpr(t, "{k: k * k untuk k dalam rentang(3)}").(*ast.DictComp)
	if !ok {
		t.Fatal("expected DictComp")
	}
	if sexpr(dc.Value) != "(* k k)" {
		t.Errorf("got value %s", sexpr(dc.Value))
	}
	call := singleExpr(t, "jumlah(x untuk x dalam xs)").(*ast.CallExpr)
	if _, ok := call.Args[0].(*ast.ListComp); !ok {
		t.Errorf("expected comprehension argument, got %T", call.Args[0])
	}
}

func TestFString(t *testing.T) {
	fs, ok := singleExpr(t, `f"Halo {nama}! {a + b:.2f}"`).(*ast.FStringExpr)
	if !ok {
		t.Fatal("expected FStringExpr")
	}
	if len(fs.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(fs.Parts))
	}
	if id, ok := fs.Parts[1].(*ast.Identifier); !ok || id.Name != "nama" {
		t.Errorf("part 1 = %#v, want identifier nama", fs.Parts[1])
	}
	fv, ok := fs.Parts[3].(*ast.FormattedValue)
	if !ok {
		t.Fatalf("part 3 = %T, want FormattedValue", fs.Parts[3])
	}
	if fv.Spec != ".2f" || sexpr(fv.Value) != "(+ a b)" {
		t.Errorf("got spec %q value %s", fv.Spec, sexpr(fv.Value))
	}
}

func TestFStringErrorPosition(t *testing.T) {
	diags := mustFail(t, "x = 1\ny = f\"ab{x +}\"")
	if diags[0].Line() != 2 {
		t.Errorf("got line %d, want 2", diags[0].Line())
	}
	if diags[0].Column() < 10 {
		t.Errorf("got column %d, want position inside the f-string", diags[0].Column())
	}
}

func TestAssignments(t *testing.T) {
	as := singleStmt(t, "x = 1").(*ast.AssignStmt)
	if sexpr(as.Target) != "x" || as.Op != "" {
		t.Errorf("unexpected assignment %+v", as)
	}

	as = singleStmt(t, "x += 2").(*ast.AssignStmt)
	if as.Op != ast.OpAdd || sexpr(as.Value) != "(+ x 2)" {
		t.Errorf("compound assignment not desugared: %s", sexpr(as.Value))
	}

	as = singleStmt(t, "diri.nilai = 3").(*ast.AssignStmt)
	if _, ok := as.Target.(*ast.AttributeExpr); !ok {
		t.Errorf("expected attribute target, got %T", as.Target)
	}
	as = singleStmt(t, "xs[0] = 3").(*ast.AssignStmt)
	if _, ok := as.Target.(*ast.IndexExpr); !ok {
		t.Errorf("expected index target, got %T", as.Target)
	}
	as = singleStmt(t, "xs[1:2] = [9]").(*ast.AssignStmt)
	if _, ok := as.Target.(*ast.SliceExpr); !ok {
		t.Errorf("expected slice target, got %T", as.Target)
	}
	as = singleStmt(t, "a, b = b, a").(*ast.AssignStmt)
	if sexpr(as.Target) != "(tuple a b)" || sexpr(as.Value) != "(tuple b a)" {
		t.Errorf("got %s = %s", sexpr(as.Target), sexpr(as.Value))
	}
}

func TestInvalidAssignmentTargets(t *testing.T) {
	for _, src := range []string{"1 = x", "f() = 1", "a + b = 1", "xs[1:2] += [1]", "(a, 1) = t"} {
		diags := mustFail(t, src)
		if diags[0].Code != diagnostics.EParse {
			t.Errorf("%q: got code %s", src, diags[0].Code)
		}
	}
}

func TestStatements(t *testing.T) {
	src := `impor matematika sebagai m
dari util impor a, b sebagai c
tulis("x", 1)
tulis
global g
tegas x > 0, "harus positif"
hapus d["k"], xs[0]
lempar ValueError("salah")
lempar
x = 1; y = 2
`
	prog := mustParse(t, src)
	var kinds []string
	for _, s := range prog.Statements {
		kinds = append(kinds, s.Kind())
	}
	want := []string{
		"ImportStmt", "FromImportStmt", "PrintStmt", "PrintStmt", "GlobalStmt", "AssertStmt",
		"DelStmt", "RaiseStmt", "RaiseStmt", "AssignStmt", "AssignStmt",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("statement kinds mismatch (-want +got):\n%s", diff)
	}
	imp := prog.Statements[0].(*ast.ImportStmt)
	if imp.Module != "matematika" || imp.Alias != "m" {
		t.Errorf("got import %+v", imp)
	}
	from := prog.Statements[1].(*ast.FromImportStmt)
	if diff := cmp.Diff([]ast.ImportName{{Name: "a"}, {Name: "b", Alias: "c"}}, from.Names); diff != "" {
		t.Errorf("from-import names mismatch (-want +got):\n%s", diff)
	}
}

func TestIfElifElse(t *testing.T) {
	src := `jika a:
    x = 1
kalau_tidak_jika b:
    x = 2
kalau_tidak_jika c:
    x = 3
kalau_tidak:
    x = 4
`
	st := singleStmt(t, src).(*ast.IfStmt)
	if len(st.Elifs) != 2 || len(st.Else) != 1 {
		t.Errorf("got %d elifs and %d else statements", len(st.Elifs), len(st.Else))
	}
}

func TestInlineBlock(t *testing.T) {
	st := singleStmt(t, "jika a: x = 1; y = 2\n").(*ast.IfStmt)
	if len(st.Body) != 2 {
		t.Errorf("got %d body statements, want 2", len(st.Body))
	}
}

func TestLoops(t *testing.T) {
	fs := singleStmt(t, "untuk k, v dalam d.items():\n    tulis(k)\n").(*ast.ForStmt)
	if diff := cmp.Diff([]string{"k", "v"}, fs.Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	ws := singleStmt(t, "selama benar:\n    berhenti\n").(*ast.WhileStmt)
	if _, ok := ws.Body[0].(*ast.BreakStmt); !ok {
		t.Errorf("expected break, got %T", ws.Body[0])
	}
}

func TestFuncDef(t *testing.T) {
	fn := singleStmt(t, "fungsi f(a, b=2, c=a):\n    kembalikan a + b\n").(*ast.FuncDef)
	if fn.Name != "f" || len(fn.Params) != 3 {
		t.Fatalf("got %s with %d params", fn.Name, len(fn.Params))
	}
	if fn.Params[0].Default != nil || fn.Params[1].Default == nil || sexpr(fn.Params[2].Default) != "a" {
		t.Error("unexpected parameter defaults")
	}
	if fn.IsGenerator {
		t.Error("plain function tagged as generator")
	}

	gen := singleStmt(t, "fungsi g(n):\n    untuk i dalam rentang(n):\n        jika i > 0:\n            hasilkan i\n").(*ast.FuncDef)
	if !gen.IsGenerator {
		t.Error("expected nested yield to tag generator")
	}

	mustFail(t, "fungsi f(a=1, b):\n    lewati\n")
}

func TestClassDef(t *testing.T) {
	src := `kelas B(A):
    fungsi __init__(diri, x):
        diri.x = x

    fungsi m(diri):
        kembalikan diri.x
`
	cd := singleStmt(t, src).(*ast.ClassDef)
	if cd.Name != "B" || sexpr(cd.Super) != "A" || len(cd.Methods) != 2 {
		t.Errorf("unexpected class %s(%v) with %d methods", cd.Name, cd.Super, len(cd.Methods))
	}

	plain := singleStmt(t, "kelas K:\n    fungsi f(diri):\n        lewati\n").(*ast.ClassDef)
	if plain.Super != nil || len(plain.Methods) != 1 {
		t.Error("expected a class without a superclass")
	}
}

func TestClassBodyOnlyMethods(t *testing.T) {
	for _, src := range []string{
		"kelas K:\n    x = 1\n",
		"kelas K:\n    lewati\n",
		"kelas K: lewati\n",
		"kelas K:\n    fungsi f(diri):\n        lewati\n    lewati\n",
	} {
		diags := mustFail(t, src)
		if !strings.Contains(diags[0].Message, "hanya boleh berisi definisi fungsi") {
			t.Errorf("%q: got %q", src, diags[0].Message)
		}
	}
}

func TestTry(t *testing.T) {
	src := `coba:
    x = 1 / 0
kecuali ZeroDivisionError sebagai e:
    tulis(e)
kecuali (ValueError, TypeError):
    lewati
kecuali:
    lewati
akhirnya:
    tulis("selesai")
`
	ts := singleStmt(t, src).(*ast.TryStmt)
	if len(ts.Handlers) != 3 || ts.Finally == nil {
		t.Fatalf("got %d handlers", len(ts.Handlers))
	}
	if ts.Handlers[0].Name != "e" || sexpr(ts.Handlers[0].Type) != "ZeroDivisionError" {
		t.Errorf("unexpected first handler %+v", ts.Handlers[0])
	}
	if ts.Handlers[2].Type != nil {
		t.Error("bare kecuali should have nil type")
	}
	mustFail(t, "coba:\n    lewati\nx = 1\n")
}

func TestWithAndMatch(t *testing.T) {
	ws := singleStmt(t, "dengan buka() sebagai f:\n    lewati\n").(*ast.WithStmt)
	if ws.Name != "f" {
		t.Errorf("got name %q", ws.Name)
	}

	src := `cocokkan x:
    kasus 1 atau 2:
        tulis("kecil")
    kasus [a, b]:
        tulis(a)
    kasus n jika n > 10:
        tulis("besar")
    kasus _:
        lewati
`
	ms := singleStmt(t, src).(*ast.MatchStmt)
	if len(ms.Cases) != 4 {
		t.Fatalf("got %d cases", len(ms.Cases))
	}
	if ms.Cases[2].Guard == nil || sexpr(ms.Cases[2].Pattern) != "n" {
		t.Error("expected guard on third case")
	}
}

func TestResyncCollectsMultipleErrors(t *testing.T) {
	src := "x = 1 +\ny = 2\nz = * 3\ntulis(z)\n"
	diags := mustFail(t, src)
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].Line() != 1 || diags[1].Line() != 3 {
		t.Errorf("got diagnostics on lines %d and %d, want 1 and 3", diags[0].Line(), diags[1].Line())
	}
}

func TestErrorPositions(t *testing.T) {
	diags := mustFail(t, "x = 1\njika x\n    y = 2\n")
	if diags[0].Line() != 2 {
		t.Errorf("got line %d, want 2", diags[0].Line())
	}
	if !strings.Contains(diags[0].Message, "':'") {
		t.Errorf("expected message to mention ':', got %q", diags[0].Message)
	}
}

func TestLexErrorSurfacesAsDiagnostic(t *testing.T) {
	diags := mustFail(t, "x = \"abc\n")
	if diags[0].Code != diagnostics.ELex {
		t.Errorf("got code %s, want %s", diags[0].Code, diagnostics.ELex)
	}
}

func TestParseExpression(t *testing.T) {
	e, diags := parser.ParseExpression("  1 + x  ", "repl")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if sexpr(e) != "(+ 1 x)" {
		t.Errorf("got %s", sexpr(e))
	}
	if _, diags := parser.ParseExpression("x = 1", "repl"); len(diags) == 0 {
		t.Error("expected assignment to be rejected as an expression")
	}
}

func TestTrailingTokenAfterStatement(t *testing.T) {
	diags := mustFail(t, "x = 1 2\n")
	if !strings.Contains(diags[0].Message, "Diharapkan baris baru setelah pernyataan") {
		t.Fatalf("unexpected message %q", diags[0].Message)
	}
	if diags[0].Line() != 1 || diags[0].Column() != 7 {
		t.Errorf("got %d:%d, want 1:7", diags[0].Line(), diags[0].Column())
	}
}
