package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

func TestNodeKinds(t *testing.T) {
	nodes := []ast.Node{
		&ast.IntLiteral{Value: 42},
		&ast.FloatLiteral{Value: 3.14},
		&ast.BoolLiteral{Value: true},
		&ast.StrLiteral{Value: "halo"},
		&ast.NoneLiteral{},
		&ast.Identifier{Name: "x"},
		&ast.DictExpr{},
		&ast.ListExpr{},
		&ast.FuncDef{Name: "f"},
		&ast.MatchStmt{},
	}

	expected := []string{
		"IntLiteral", "FloatLiteral", "BoolLiteral", "StrLiteral",
		"NoneLiteral", "Identifier", "DictExpr", "ListExpr", "FuncDef", "MatchStmt",
	}

	for i, node := range nodes {
		if got := node.Kind(); got != expected[i] {
			t.Errorf("node %d: got Kind() = %q, want %q", i, got, expected[i])
		}
	}
}

func TestInspectOrder(t *testing.T) {
	// jika x: tulis(y) kalau_tidak: tulis(z)
	prog := &ast.Program{Statements: []ast.Stmt{
		&ast.IfStmt{
			Cond: &ast.Identifier{Name: "x"},
			Body: []ast.Stmt{&ast.PrintStmt{Args: []ast.Expr{&ast.Identifier{Name: "y"}}}},
			Else: []ast.Stmt{&ast.PrintStmt{Args: []ast.Expr{&ast.Identifier{Name: "z"}}}},
		},
	}}

	var names []string
	ast.Inspect(prog, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	if diff := cmp.Diff([]string{"x", "y", "z"}, names); diff != "" {
		t.Errorf("identifier order mismatch (-want +got):\n%s", diff)
	}
}

func TestContainsYield(t *testing.T) {
	yield := &ast.YieldStmt{Value: &ast.IntLiteral{Value: 1}}
	tests := []struct {
		name string
		body []ast.Stmt
		want bool
	}{
		{"empty", nil, false},
		{"top level", []ast.Stmt{yield}, true},
		{"inside loop", []ast.Stmt{&ast.WhileStmt{
			Cond: &ast.BoolLiteral{Value: true},
			Body: []ast.Stmt{&ast.IfStmt{Cond: &ast.BoolLiteral{Value: true}, Body: []ast.Stmt{yield}}},
		}}, true},
		{"inside try handler", []ast.Stmt{&ast.TryStmt{
			Body:     []ast.Stmt{&ast.PassStmt{}},
			Handlers: []ast.ExceptClause{{Body: []ast.Stmt{yield}}},
		}}, true},
		{"nested function only", []ast.Stmt{&ast.FuncDef{Name: "g", Body: []ast.Stmt{yield}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.ContainsYield(tt.body); got != tt.want {
				t.Errorf("ContainsYield = %v, want %v", got, tt.want)
			}
		})
	}
}
