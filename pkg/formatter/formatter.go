// Package formatter prints CodingYok programs in canonical form.
package formatter

import (
	"strconv"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

const indent = "    "

// Precedence levels, loosest first. They follow the parser's ladder.
const (
	precLambda = iota // lambda, a jika c kalau_tidak b
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPower
	precPostfix
)

var precedence = map[ast.BinaryOp]int{
	ast.OpOr:  precOr,
	ast.OpAnd: precAnd,
	ast.OpEqEq: precEquality, ast.OpNeq: precEquality,
	ast.OpLt: precComparison, ast.OpLtEq: precComparison,
	ast.OpGt: precComparison, ast.OpGtEq: precComparison,
	ast.OpIn: precComparison, ast.OpNotIn: precComparison,
	ast.OpIs: precComparison, ast.OpIsNot: precComparison,
	ast.OpAdd: precAdditive, ast.OpSub: precAdditive,
	ast.OpMul: precMultiplicative, ast.OpDiv: precMultiplicative,
	ast.OpFloorDiv: precMultiplicative, ast.OpMod: precMultiplicative,
	ast.OpPow: precPower,
}

func exprPrec(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.LambdaExpr, *ast.CondExpr:
		return precLambda
	case *ast.BinaryExpr:
		return precedence[n.Op]
	case *ast.UnaryExpr:
		return precUnary
	}
	return precPostfix
}

// Format pretty-prints a program. Comments are not preserved.
func Format(program *ast.Program) string {
	p := &printer{quote: '"'}
	p.block(program.Statements, 0, true)
	return p.b.String()
}

// FormatExpr prints a single expression.
func FormatExpr(e ast.Expr) string {
	p := &printer{quote: '"'}
	return p.expr(e, precLambda)
}

// HasComments reports whether source contains a '#' comment outside
// string literals.
func HasComments(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		var quote byte
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case quote != 0:
				if c == '\\' {
					i++
				} else if c == quote {
					quote = 0
				}
			case c == '"' || c == '\'':
				quote = c
			case c == '#':
				return true
			}
		}
	}
	return false
}

type printer struct {
	b strings.Builder
	// quote is the delimiter for string literals; f-string expressions
	// switch to the other one.
	quote byte
}

func (p *printer) line(depth int, text string) {
	p.b.WriteString(strings.Repeat(indent, depth))
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

// block prints stmts. Top-level definitions are set off by blank lines.
func (p *printer) block(stmts []ast.Stmt, depth int, top bool) {
	if len(stmts) == 0 {
		p.line(depth, "lewati")
		return
	}
	prevDef := false
	for i, s := range stmts {
		isDef := isDefinition(s)
		if top && i > 0 && (isDef || prevDef) {
			p.b.WriteByte('\n')
		}
		p.stmt(s, depth)
		prevDef = isDef
	}
}

func isDefinition(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.FuncDef, *ast.ClassDef:
		return true
	}
	return false
}

func (p *printer) stmt(s ast.Stmt, depth int) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		p.line(depth, p.list(n.Expr))
	case *ast.PrintStmt:
		p.line(depth, "tulis("+p.exprList(n.Args)+")")
	case *ast.AssignStmt:
		if n.Op != "" {
			rhs := n.Value
			if bin, ok := n.Value.(*ast.BinaryExpr); ok {
				rhs = bin.Right
			}
			p.line(depth, p.expr(n.Target, precLambda)+" "+string(n.Op)+"= "+p.expr(rhs, precLambda))
			return
		}
		p.line(depth, p.list(n.Target)+" = "+p.list(n.Value))
	case *ast.ReturnStmt:
		p.line(depth, withValue("kembalikan", p.list(n.Value)))
	case *ast.YieldStmt:
		p.line(depth, withValue("hasilkan", p.list(n.Value)))
	case *ast.RaiseStmt:
		p.line(depth, withValue("lempar", p.optExpr(n.Value)))
	case *ast.BreakStmt:
		p.line(depth, "berhenti")
	case *ast.ContinueStmt:
		p.line(depth, "lanjut")
	case *ast.PassStmt:
		p.line(depth, "lewati")
	case *ast.GlobalStmt:
		p.line(depth, "global "+strings.Join(n.Names, ", "))
	case *ast.NonlocalStmt:
		p.line(depth, "nonlokal "+strings.Join(n.Names, ", "))
	case *ast.AssertStmt:
		text := "tegas " + p.expr(n.Cond, precLambda)
		if n.Message != nil {
			text += ", " + p.expr(n.Message, precLambda)
		}
		p.line(depth, text)
	case *ast.DelStmt:
		p.line(depth, "hapus "+p.exprList(n.Targets))
	case *ast.ImportStmt:
		p.line(depth, "impor "+n.Module+alias(n.Alias))
	case *ast.FromImportStmt:
		names := make([]string, len(n.Names))
		for i, in := range n.Names {
			names[i] = in.Name + alias(in.Alias)
		}
		p.line(depth, "dari "+n.Module+" impor "+strings.Join(names, ", "))
	case *ast.IfStmt:
		p.line(depth, "jika "+p.expr(n.Cond, precLambda)+":")
		p.block(n.Body, depth+1, false)
		for _, c := range n.Elifs {
			p.line(depth, "kalau_tidak_jika "+p.expr(c.Cond, precLambda)+":")
			p.block(c.Body, depth+1, false)
		}
		if len(n.Else) > 0 {
			p.line(depth, "kalau_tidak:")
			p.block(n.Else, depth+1, false)
		}
	case *ast.WhileStmt:
		p.line(depth, "selama "+p.expr(n.Cond, precLambda)+":")
		p.block(n.Body, depth+1, false)
	case *ast.ForStmt:
		p.line(depth, "untuk "+strings.Join(n.Targets, ", ")+" dalam "+p.list(n.Iter)+":")
		p.block(n.Body, depth+1, false)
	case *ast.FuncDef:
		p.funcDef(n, depth)
	case *ast.ClassDef:
		head := "kelas " + n.Name
		if n.Super != nil {
			head += "(" + p.expr(n.Super, precLambda) + ")"
		}
		p.line(depth, head+":")
		for i, m := range n.Methods {
			if i > 0 {
				p.b.WriteByte('\n')
			}
			p.funcDef(m, depth+1)
		}
	case *ast.TryStmt:
		p.line(depth, "coba:")
		p.block(n.Body, depth+1, false)
		for _, h := range n.Handlers {
			head := "kecuali"
			if h.Type != nil {
				head += " " + p.expr(h.Type, precOr)
				if h.Name != "" {
					head += " sebagai " + h.Name
				}
			}
			p.line(depth, head+":")
			p.block(h.Body, depth+1, false)
		}
		if len(n.Finally) > 0 {
			p.line(depth, "akhirnya:")
			p.block(n.Finally, depth+1, false)
		}
	case *ast.WithStmt:
		head := "dengan " + p.expr(n.Context, precLambda)
		if n.Name != "" {
			head += " sebagai " + n.Name
		}
		p.line(depth, head+":")
		p.block(n.Body, depth+1, false)
	case *ast.MatchStmt:
		p.line(depth, "cocokkan "+p.list(n.Subject)+":")
		for _, c := range n.Cases {
			head := "kasus " + p.expr(c.Pattern, precOr)
			if c.Guard != nil {
				head += " jika " + p.expr(c.Guard, precOr)
			}
			p.line(depth+1, head+":")
			p.block(c.Body, depth+2, false)
		}
	}
}

func (p *printer) funcDef(fn *ast.FuncDef, depth int) {
	p.line(depth, "fungsi "+fn.Name+"("+p.params(fn.Params)+"):")
	p.block(fn.Body, depth+1, false)
}

func (p *printer) params(params []ast.Param) string {
	out := make([]string, len(params))
	for i, prm := range params {
		out[i] = prm.Name
		if prm.Default != nil {
			out[i] += "=" + p.expr(prm.Default, precLambda)
		}
	}
	return strings.Join(out, ", ")
}

func withValue(keyword, value string) string {
	if value == "" {
		return keyword
	}
	return keyword + " " + value
}

func alias(name string) string {
	if name == "" {
		return ""
	}
	return " sebagai " + name
}

func (p *printer) optExpr(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return p.expr(e, precLambda)
}

// list prints an expression in a position that accepts a bare tuple,
// such as either side of '='.
func (p *printer) list(e ast.Expr) string {
	if e == nil {
		return ""
	}
	if t, ok := e.(*ast.TupleExpr); ok && len(t.Elements) > 1 {
		return p.exprList(t.Elements)
	}
	return p.expr(e, precLambda)
}

func (p *printer) exprList(list []ast.Expr) string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = p.expr(e, precLambda)
	}
	return strings.Join(out, ", ")
}

// expr prints e, parenthesized when it binds looser than min.
func (p *printer) expr(e ast.Expr, min int) string {
	text := p.bare(e)
	if exprPrec(e) < min {
		return "(" + text + ")"
	}
	return text
}

func (p *printer) bare(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.FloatLiteral:
		return formatFloatLiteral(n.Value)
	case *ast.BoolLiteral:
		if n.Value {
			return "benar"
		}
		return "salah"
	case *ast.NoneLiteral:
		return "kosong"
	case *ast.StrLiteral:
		return p.quoteString(n.Value)
	case *ast.FStringExpr:
		return p.fstring(n)
	case *ast.FormattedValue:
		return p.expr(n.Value, precLambda)
	case *ast.Identifier:
		return n.Name
	case *ast.BinaryExpr:
		prec := precedence[n.Op]
		if n.Op == ast.OpPow {
			return p.expr(n.Left, precPostfix) + " ** " + p.expr(n.Right, precUnary)
		}
		return p.expr(n.Left, prec) + " " + string(n.Op) + " " + p.expr(n.Right, prec+1)
	case *ast.UnaryExpr:
		if n.Op == ast.OpNot {
			return "bukan " + p.expr(n.Operand, precUnary)
		}
		operand := p.expr(n.Operand, precUnary)
		if _, ok := n.Operand.(*ast.UnaryExpr); ok {
			operand = "(" + operand + ")"
		}
		return string(n.Op) + operand
	case *ast.CondExpr:
		return p.expr(n.Then, precOr) + " jika " + p.expr(n.Cond, precOr) + " kalau_tidak " + p.expr(n.Else, precLambda)
	case *ast.LambdaExpr:
		if len(n.Params) == 0 {
			return "lambda: " + p.expr(n.Body, precLambda)
		}
		return "lambda " + p.params(n.Params) + ": " + p.expr(n.Body, precLambda)
	case *ast.CallExpr:
		return p.expr(n.Callee, precPostfix) + "(" + p.exprList(n.Args) + ")"
	case *ast.AttributeExpr:
		return p.expr(n.Object, precPostfix) + "." + n.Name
	case *ast.IndexExpr:
		return p.expr(n.Object, precPostfix) + "[" + p.expr(n.Index, precLambda) + "]"
	case *ast.SliceExpr:
		text := p.expr(n.Object, precPostfix) + "[" + p.optExpr(n.Start) + ":" + p.optExpr(n.Stop)
		if n.Step != nil {
			text += ":" + p.expr(n.Step, precLambda)
		}
		return text + "]"
	case *ast.ListExpr:
		return "[" + p.exprList(n.Elements) + "]"
	case *ast.TupleExpr:
		if len(n.Elements) == 1 {
			return "(" + p.expr(n.Elements[0], precLambda) + ",)"
		}
		return "(" + p.exprList(n.Elements) + ")"
	case *ast.SetExpr:
		if len(n.Elements) == 0 {
			return "himpunan()"
		}
		return "{" + p.exprList(n.Elements) + "}"
	case *ast.DictExpr:
		entries := make([]string, len(n.Entries))
		for i, entry := range n.Entries {
			entries[i] = p.expr(entry.Key, precLambda) + ": " + p.expr(entry.Value, precLambda)
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *ast.ListComp:
		return "[" + p.expr(n.Element, precLambda) + p.clause(n.Clause) + "]"
	case *ast.SetComp:
		return "{" + p.expr(n.Element, precLambda) + p.clause(n.Clause) + "}"
	case *ast.DictComp:
		return "{" + p.expr(n.Key, precLambda) + ": " + p.expr(n.Value, precLambda) + p.clause(n.Clause) + "}"
	}
	return ""
}

func (p *printer) clause(c ast.CompClause) string {
	text := " untuk " + c.Var + " dalam " + p.expr(c.Iter, precOr)
	if c.Cond != nil {
		text += " jika " + p.expr(c.Cond, precOr)
	}
	return text
}

// fstring prints an f-string with double quotes. Expressions inside it
// use single-quoted strings, since the lexer ends the f-string at its own
// quote character.
func (p *printer) fstring(n *ast.FStringExpr) string {
	var b strings.Builder
	b.WriteString(`f"`)
	for _, part := range n.Parts {
		if lit, ok := part.(*ast.StrLiteral); ok {
			text := escapeString(lit.Value, '"')
			text = strings.ReplaceAll(text, "{", "{{")
			text = strings.ReplaceAll(text, "}", "}}")
			b.WriteString(text)
			continue
		}
		inner := &printer{quote: '\''}
		value, spec := part, ""
		if fv, ok := part.(*ast.FormattedValue); ok {
			value, spec = fv.Value, fv.Spec
		}
		// A top-level lambda would put its ':' where the format spec goes.
		b.WriteString("{" + inner.expr(value, precOr))
		if spec != "" {
			b.WriteString(":" + spec)
		}
		b.WriteString("}")
	}
	b.WriteString(`"`)
	return b.String()
}

func (p *printer) quoteString(s string) string {
	return string(p.quote) + escapeString(s, p.quote) + string(p.quote)
}

func escapeString(s string, quote byte) string {
	var b strings.Builder
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
		case 0:
			b.WriteString(`\0`)
		case rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatFloatLiteral prints v in a form the lexer reads back as a float:
// plain digits with a decimal point, no exponent.
func formatFloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
