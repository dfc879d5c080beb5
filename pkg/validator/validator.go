// Package validator implements static checks on parsed CodingYok programs.
package validator

import (
	"fmt"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// block describes where a statement sits.
type block struct {
	inFunc bool
	inLoop bool
}

type validator struct {
	diags []diagnostics.Diagnostic
}

// Validate checks program for constructs the parser accepts but that can
// never run correctly, and returns them as E_VALIDATE diagnostics.
func Validate(program *ast.Program) []diagnostics.Diagnostic {
	v := &validator{}
	v.validateStatements(program.Statements, block{})
	return v.diags
}

func (v *validator) addDiag(msg string, span ast.Span, hint string) {
	v.diags = append(v.diags, diagnostics.MakeDiag(diagnostics.EValidate, msg, &span, hint))
}

func (v *validator) validateStatements(stmts []ast.Stmt, b block) {
	for _, stmt := range stmts {
		v.validateStmt(stmt, b)
	}
}

func (v *validator) validateStmt(stmt ast.Stmt, b block) {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		if !b.inFunc {
			v.addDiag("'kembalikan' di luar fungsi", s.Span, "")
		}
		v.validateExpr(s.Value)

	case *ast.YieldStmt:
		if !b.inFunc {
			v.addDiag("'hasilkan' di luar fungsi", s.Span, "")
		}
		v.validateExpr(s.Value)

	case *ast.BreakStmt:
		if !b.inLoop {
			v.addDiag("'berhenti' di luar perulangan", s.Span, "")
		}

	case *ast.ContinueStmt:
		if !b.inLoop {
			v.addDiag("'lanjut' di luar perulangan", s.Span, "")
		}

	case *ast.NonlocalStmt:
		if !b.inFunc {
			v.addDiag("'nonlokal' tidak diizinkan di tingkat modul", s.Span, "Gunakan 'global' untuk variabel modul")
		}

	case *ast.FuncDef:
		v.validateFunc(s)

	case *ast.ClassDef:
		v.validateExpr(s.Super)
		seen := make(map[string]bool, len(s.Methods))
		for _, m := range s.Methods {
			if seen[m.Name] {
				v.addDiag(fmt.Sprintf("Metode duplikat '%s' dalam kelas '%s'", m.Name, s.Name), m.Span, "")
			}
			seen[m.Name] = true
			v.validateFunc(m)
		}

	case *ast.IfStmt:
		v.validateExpr(s.Cond)
		v.validateStatements(s.Body, b)
		for _, c := range s.Elifs {
			v.validateExpr(c.Cond)
			v.validateStatements(c.Body, b)
		}
		v.validateStatements(s.Else, b)

	case *ast.WhileStmt:
		v.validateExpr(s.Cond)
		v.validateStatements(s.Body, loop(b))

	case *ast.ForStmt:
		v.validateExpr(s.Iter)
		v.validateStatements(s.Body, loop(b))

	case *ast.TryStmt:
		v.validateStatements(s.Body, b)
		for i, h := range s.Handlers {
			if h.Type == nil && i != len(s.Handlers)-1 {
				v.addDiag("'kecuali' tanpa tipe harus menjadi handler terakhir", h.Span, "")
			}
			v.validateExpr(h.Type)
			v.validateStatements(h.Body, b)
		}
		v.validateStatements(s.Finally, b)

	case *ast.WithStmt:
		v.validateExpr(s.Context)
		v.validateStatements(s.Body, b)

	case *ast.MatchStmt:
		v.validateExpr(s.Subject)
		for _, c := range s.Cases {
			v.validateExpr(c.Pattern)
			v.validateExpr(c.Guard)
			v.validateStatements(c.Body, b)
		}

	case *ast.ExprStmt:
		v.validateExpr(s.Expr)
	case *ast.PrintStmt:
		for _, a := range s.Args {
			v.validateExpr(a)
		}
	case *ast.AssignStmt:
		v.validateExpr(s.Value)
	case *ast.RaiseStmt:
		v.validateExpr(s.Value)
	case *ast.AssertStmt:
		v.validateExpr(s.Cond)
		v.validateExpr(s.Message)
	}
}

func (v *validator) validateFunc(fn *ast.FuncDef) {
	v.checkParams(fn.Params, fmt.Sprintf("fungsi '%s'", fn.Name))
	for _, p := range fn.Params {
		v.validateExpr(p.Default)
	}
	v.validateStatements(fn.Body, block{inFunc: true})
}

func (v *validator) checkParams(params []ast.Param, owner string) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			v.addDiag(fmt.Sprintf("Parameter duplikat '%s' dalam %s", p.Name, owner), p.Span, "")
		}
		seen[p.Name] = true
	}
}

// validateExpr only needs to reach lambdas; every other rule is about
// statements.
func (v *validator) validateExpr(expr ast.Expr) {
	if expr == nil {
		return
	}
	ast.Inspect(expr, func(n ast.Node) bool {
		if l, ok := n.(*ast.LambdaExpr); ok {
			v.checkParams(l.Params, "lambda")
		}
		return true
	})
}

func loop(b block) block {
	b.inLoop = true
	return b
}
