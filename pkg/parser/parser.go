// Package parser implements the CodingYok parser.
package parser

import (
	"fmt"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
	"github.com/MrXploisLite/CodingYok/pkg/lexer"
)

type parser struct {
	tokens   []lexer.Token
	pos      int
	diags    []diagnostics.Diagnostic
	filename string
}

// Parse tokenizes source and parses it into an AST.
//
// After a statement-level syntax error the parser resynchronizes and keeps
// going so that later errors are reported too. Any diagnostic means the parse
// failed; the first diagnostic is always the error that stopped the first
// bad statement.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, diags := tokenize(source, filename)
	if diags != nil {
		return nil, diags
	}

	p := &parser{tokens: tokens, pos: 0, filename: filename}
	prog := p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return prog, nil
}

// ParseExpression parses source as a single expression.
func ParseExpression(source, filename string) (ast.Expr, []diagnostics.Diagnostic) {
	tokens, diags := tokenize(strings.TrimSpace(source), filename)
	if diags != nil {
		return nil, diags
	}
	p := &parser{tokens: tokens, filename: filename}
	expr := p.parseExprEOF()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return expr, nil
}

func tokenize(source, filename string) ([]lexer.Token, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}
	return tokens, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) peekAt(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.TokEOF
	}
	return p.tokens[idx].Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) match(typ lexer.TokenType) bool {
	if p.peek() == typ {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.addError(fmt.Sprintf("Diharapkan %s, ditemukan %s", tokenName(typ), describe(tok)), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) addError(msg string, span *ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, span, ""))
}

func (p *parser) errorAtCurrent(msg string) {
	tok := p.current()
	p.addError(msg, &tok.Span)
}

func (p *parser) spanFrom(start ast.Span) ast.Span {
	end := start
	if p.pos > 0 {
		end = p.tokens[p.pos-1].Span
	}
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokIdent, lexer.TokNewline, lexer.TokIndent, lexer.TokDedent, lexer.TokEOF,
		lexer.TokIntLit, lexer.TokFloatLit, lexer.TokStringLit, lexer.TokFStringLit:
		return t.String()
	}
	return "'" + t.String() + "'"
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokNewline, lexer.TokIndent, lexer.TokDedent, lexer.TokEOF:
		return tok.Type.String()
	}
	return "'" + tok.Value + "'"
}

// syncKeywords start a statement; resynchronization stops in front of them.
var syncKeywords = map[lexer.TokenType]bool{
	lexer.TokKelas:      true,
	lexer.TokFungsi:     true,
	lexer.TokJika:       true,
	lexer.TokUntuk:      true,
	lexer.TokSelama:     true,
	lexer.TokTulis:      true,
	lexer.TokKembalikan: true,
}

// synchronize skips tokens after a syntax error up to the next newline or
// statement keyword. It always makes progress.
func (p *parser) synchronize() {
	start := p.pos
	for p.peek() != lexer.TokEOF {
		if p.peek() == lexer.TokNewline {
			p.advance()
			return
		}
		if p.pos > start && syncKeywords[p.peek()] {
			return
		}
		p.advance()
	}
}

// --- Program ---

func (p *parser) parseProgram() *ast.Program {
	startSpan := p.current().Span
	var stmts []ast.Stmt

	for p.peek() != lexer.TokEOF {
		// Stray layout tokens only appear after a resynchronization.
		if p.peek() == lexer.TokNewline || (p.peek() == lexer.TokDedent && len(p.diags) > 0) {
			p.advance()
			continue
		}
		parsed, ok := p.parseStatement()
		if !ok {
			p.synchronize()
			continue
		}
		stmts = append(stmts, parsed...)
	}

	return &ast.Program{Span: p.spanFrom(startSpan), Statements: stmts}
}

// parseStatement parses one logical statement. Simple statements joined by
// ';' come back as several nodes.
func (p *parser) parseStatement() ([]ast.Stmt, bool) {
	var stmt ast.Stmt
	switch p.peek() {
	case lexer.TokJika:
		stmt = p.parseIf()
	case lexer.TokSelama:
		stmt = p.parseWhile()
	case lexer.TokUntuk:
		stmt = p.parseFor()
	case lexer.TokFungsi:
		fn := p.parseFuncDef()
		if fn == nil {
			return nil, false
		}
		stmt = fn
	case lexer.TokKelas:
		stmt = p.parseClassDef()
	case lexer.TokCoba:
		stmt = p.parseTry()
	case lexer.TokDengan:
		stmt = p.parseWith()
	case lexer.TokCocokkan:
		stmt = p.parseMatch()
	case lexer.TokIndent:
		p.errorAtCurrent("Indentasi tidak terduga")
		return nil, false
	default:
		return p.parseSimpleLine()
	}
	if stmt == nil {
		return nil, false
	}
	return []ast.Stmt{stmt}, true
}

// parseSimpleLine parses "simple (';' simple)* NEWLINE".
func (p *parser) parseSimpleLine() ([]ast.Stmt, bool) {
	var stmts []ast.Stmt
	for {
		stmt := p.parseSimpleStatement()
		if stmt == nil {
			return nil, false
		}
		stmts = append(stmts, stmt)
		if !p.match(lexer.TokSemicolon) {
			break
		}
		if p.atStatementEnd() {
			break
		}
	}
	if !p.endStatement() {
		return nil, false
	}
	return stmts, true
}

func (p *parser) atStatementEnd() bool {
	switch p.peek() {
	case lexer.TokNewline, lexer.TokEOF, lexer.TokDedent, lexer.TokSemicolon:
		return true
	}
	return false
}

func (p *parser) endStatement() bool {
	switch p.peek() {
	case lexer.TokNewline:
		p.advance()
		return true
	case lexer.TokEOF, lexer.TokDedent:
		return true
	}
	tok := p.current()
	p.addError(fmt.Sprintf("Diharapkan baris baru setelah pernyataan, ditemukan %s", describe(tok)), &tok.Span)
	return false
}

func (p *parser) parseSimpleStatement() ast.Stmt {
	start := p.current()
	switch start.Type {
	case lexer.TokTulis:
		return p.parsePrint()
	case lexer.TokKembalikan:
		p.advance()
		var value ast.Expr
		if !p.atStatementEnd() {
			if value = p.parseExprList(); value == nil {
				return nil
			}
		}
		return &ast.ReturnStmt{Span: p.spanFrom(start.Span), Value: value}
	case lexer.TokHasilkan:
		p.advance()
		var value ast.Expr
		if !p.atStatementEnd() {
			if value = p.parseExprList(); value == nil {
				return nil
			}
		}
		return &ast.YieldStmt{Span: p.spanFrom(start.Span), Value: value}
	case lexer.TokBerhenti:
		p.advance()
		return &ast.BreakStmt{Span: start.Span}
	case lexer.TokLanjut:
		p.advance()
		return &ast.ContinueStmt{Span: start.Span}
	case lexer.TokLewati:
		p.advance()
		return &ast.PassStmt{Span: start.Span}
	case lexer.TokImpor:
		return p.parseImport()
	case lexer.TokDari:
		return p.parseFromImport()
	case lexer.TokLempar:
		p.advance()
		var value ast.Expr
		if !p.atStatementEnd() {
			if value = p.parseExpression(); value == nil {
				return nil
			}
		}
		return &ast.RaiseStmt{Span: p.spanFrom(start.Span), Value: value}
	case lexer.TokGlobal, lexer.TokNonlokal:
		p.advance()
		names := p.parseNameList()
		if names == nil {
			return nil
		}
		if start.Type == lexer.TokGlobal {
			return &ast.GlobalStmt{Span: p.spanFrom(start.Span), Names: names}
		}
		return &ast.NonlocalStmt{Span: p.spanFrom(start.Span), Names: names}
	case lexer.TokTegas:
		p.advance()
		cond := p.parseExpression()
		if cond == nil {
			return nil
		}
		var msg ast.Expr
		if p.match(lexer.TokComma) {
			if msg = p.parseExpression(); msg == nil {
				return nil
			}
		}
		return &ast.AssertStmt{Span: p.spanFrom(start.Span), Cond: cond, Message: msg}
	case lexer.TokHapus:
		p.advance()
		var targets []ast.Expr
		for {
			target := p.parsePostfix()
			if target == nil {
				return nil
			}
			switch target.(type) {
			case *ast.Identifier, *ast.IndexExpr, *ast.AttributeExpr:
			default:
				p.addError("Target hapus tidak valid", spanPtr(target.NodeSpan()))
				return nil
			}
			targets = append(targets, target)
			if !p.match(lexer.TokComma) {
				break
			}
		}
		return &ast.DelStmt{Span: p.spanFrom(start.Span), Targets: targets}
	}
	return p.parseExprOrAssign()
}

func spanPtr(s ast.Span) *ast.Span {
	return &s
}

func (p *parser) parseNameList() []string {
	var names []string
	for {
		tok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		names = append(names, tok.Value)
		if !p.match(lexer.TokComma) {
			return names
		}
	}
}

func (p *parser) parsePrint() ast.Stmt {
	start := p.advance() // tulis
	var args []ast.Expr
	if p.peek() == lexer.TokLParen {
		p.advance()
		var ok bool
		if args, ok = p.parseArgs(lexer.TokRParen); !ok {
			return nil
		}
		// tulis(a) + b is not a print statement any more.
		if !p.atStatementEnd() {
			p.errorAtCurrent(fmt.Sprintf("Diharapkan baris baru setelah tulis(...), ditemukan %s", describe(p.current())))
			return nil
		}
	} else if !p.atStatementEnd() {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	return &ast.PrintStmt{Span: p.spanFrom(start.Span), Args: args}
}

func (p *parser) parseDottedName() (string, bool) {
	tok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return "", false
	}
	name := tok.Value
	for p.peek() == lexer.TokDot {
		p.advance()
		part, ok := p.expect(lexer.TokIdent)
		if !ok {
			return "", false
		}
		name += "." + part.Value
	}
	return name, true
}

func (p *parser) parseImport() ast.Stmt {
	start := p.advance() // impor
	name, ok := p.parseDottedName()
	if !ok {
		return nil
	}
	stmt := &ast.ImportStmt{Module: name}
	if p.match(lexer.TokSebagai) {
		alias, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		stmt.Alias = alias.Value
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}

func (p *parser) parseFromImport() ast.Stmt {
	start := p.advance() // dari
	module, ok := p.parseDottedName()
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokImpor); !ok {
		return nil
	}
	paren := p.match(lexer.TokLParen)
	var names []ast.ImportName
	for {
		tok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		in := ast.ImportName{Name: tok.Value}
		if p.match(lexer.TokSebagai) {
			alias, ok := p.expect(lexer.TokIdent)
			if !ok {
				return nil
			}
			in.Alias = alias.Value
		}
		names = append(names, in)
		if !p.match(lexer.TokComma) {
			break
		}
		if paren && p.peek() == lexer.TokRParen {
			break
		}
	}
	if paren {
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
	}
	return &ast.FromImportStmt{Span: p.spanFrom(start.Span), Module: module, Names: names}
}

var compoundOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.TokPlusEq:        ast.OpAdd,
	lexer.TokMinusEq:       ast.OpSub,
	lexer.TokStarEq:        ast.OpMul,
	lexer.TokSlashEq:       ast.OpDiv,
	lexer.TokDoubleSlashEq: ast.OpFloorDiv,
	lexer.TokPercentEq:     ast.OpMod,
	lexer.TokDoubleStarEq:  ast.OpPow,
}

func (p *parser) parseExprOrAssign() ast.Stmt {
	start := p.current()
	expr := p.parseExprList()
	if expr == nil {
		return nil
	}

	if p.peek() == lexer.TokEquals {
		p.advance()
		if !p.checkTarget(expr, true) {
			return nil
		}
		value := p.parseExprList()
		if value == nil {
			return nil
		}
		return &ast.AssignStmt{Span: p.spanFrom(start.Span), Target: expr, Value: value}
	}

	if op, ok := compoundOps[p.peek()]; ok {
		opTok := p.advance()
		switch expr.(type) {
		case *ast.Identifier, *ast.AttributeExpr, *ast.IndexExpr:
		default:
			p.addError(fmt.Sprintf("Target assignment '%s' tidak valid", opTok.Value), spanPtr(expr.NodeSpan()))
			return nil
		}
		rhs := p.parseExpression()
		if rhs == nil {
			return nil
		}
		value := &ast.BinaryExpr{Span: p.spanFrom(start.Span), Op: op, Left: expr, Right: rhs}
		return &ast.AssignStmt{Span: p.spanFrom(start.Span), Target: expr, Op: op, Value: value}
	}

	return &ast.ExprStmt{Span: p.spanFrom(start.Span), Expr: expr}
}

// checkTarget reports whether e may appear on the left of '='.
func (p *parser) checkTarget(e ast.Expr, allowTuple bool) bool {
	switch t := e.(type) {
	case *ast.Identifier, *ast.AttributeExpr, *ast.IndexExpr, *ast.SliceExpr:
		return true
	case *ast.TupleExpr:
		if allowTuple {
			for _, el := range t.Elements {
				if !p.checkTarget(el, false) {
					return false
				}
			}
			return true
		}
	case *ast.ListExpr:
		if allowTuple {
			for _, el := range t.Elements {
				if !p.checkTarget(el, false) {
					return false
				}
			}
			return true
		}
	}
	p.addError("Target assignment tidak valid", spanPtr(e.NodeSpan()))
	return false
}

// --- Blocks and compound statements ---

// parseBlock parses ':' followed by either an indented block or simple
// statements on the same line.
func (p *parser) parseBlock() []ast.Stmt {
	if _, ok := p.expect(lexer.TokColon); !ok {
		return nil
	}
	if p.peek() != lexer.TokNewline {
		stmts, ok := p.parseSimpleLine()
		if !ok {
			return nil
		}
		return stmts
	}
	p.advance()
	if _, ok := p.expect(lexer.TokIndent); !ok {
		return nil
	}
	var body []ast.Stmt
	for p.peek() != lexer.TokDedent && p.peek() != lexer.TokEOF {
		if p.match(lexer.TokNewline) {
			continue
		}
		stmts, ok := p.parseStatement()
		if !ok {
			return nil
		}
		body = append(body, stmts...)
	}
	p.match(lexer.TokDedent)
	return body
}

func (p *parser) parseIf() ast.Stmt {
	start := p.advance() // jika
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	stmt := &ast.IfStmt{Cond: cond, Body: body}
	for p.peek() == lexer.TokKalauTidakJika {
		elifTok := p.advance()
		c := p.parseExpression()
		if c == nil {
			return nil
		}
		b := p.parseBlock()
		if b == nil {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, ast.ElifClause{Span: p.spanFrom(elifTok.Span), Cond: c, Body: b})
	}
	if p.match(lexer.TokKalauTidak) {
		if stmt.Else = p.parseBlock(); stmt.Else == nil {
			return nil
		}
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.advance() // selama
	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Span: p.spanFrom(start.Span), Cond: cond, Body: body}
}

func (p *parser) parseFor() ast.Stmt {
	start := p.advance() // untuk
	paren := p.match(lexer.TokLParen)
	targets := p.parseNameList()
	if targets == nil {
		return nil
	}
	if paren {
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokDalam); !ok {
		return nil
	}
	iter := p.parseExprList()
	if iter == nil {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.ForStmt{Span: p.spanFrom(start.Span), Targets: targets, Iter: iter, Body: body}
}

// parseParams parses parameters up to (and including) the closing token.
func (p *parser) parseParams(closing lexer.TokenType) ([]ast.Param, bool) {
	var params []ast.Param
	seenDefault := false
	for p.peek() != closing {
		tok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil, false
		}
		param := ast.Param{Span: tok.Span, Name: tok.Value}
		if p.match(lexer.TokEquals) {
			if param.Default = p.parseExpression(); param.Default == nil {
				return nil, false
			}
			seenDefault = true
		} else if seenDefault {
			p.addError(fmt.Sprintf("Parameter '%s' tanpa nilai default tidak boleh setelah parameter dengan default", tok.Value), &tok.Span)
			return nil, false
		}
		params = append(params, param)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, ok := p.expect(closing); !ok {
		return nil, false
	}
	return params, true
}

func (p *parser) parseFuncDef() *ast.FuncDef {
	start := p.advance() // fungsi
	name, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}
	params, ok := p.parseParams(lexer.TokRParen)
	if !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.FuncDef{
		Span:        p.spanFrom(start.Span),
		Name:        name.Value,
		Params:      params,
		Body:        body,
		IsGenerator: ast.ContainsYield(body),
	}
}

func (p *parser) parseClassDef() ast.Stmt {
	start := p.advance() // kelas
	name, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	stmt := &ast.ClassDef{Name: name.Value}
	if p.match(lexer.TokLParen) {
		if p.peek() != lexer.TokRParen {
			if stmt.Super = p.parseExpression(); stmt.Super == nil {
				return nil
			}
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokColon); !ok {
		return nil
	}
	if p.peek() != lexer.TokNewline {
		p.errorAtCurrent(fmt.Sprintf("Badan kelas '%s' hanya boleh berisi definisi fungsi", name.Value))
		return nil
	}
	p.advance()
	if _, ok := p.expect(lexer.TokIndent); !ok {
		return nil
	}
	for p.peek() != lexer.TokDedent && p.peek() != lexer.TokEOF {
		switch p.peek() {
		case lexer.TokNewline:
			p.advance()
		case lexer.TokFungsi:
			fn := p.parseFuncDef()
			if fn == nil {
				return nil
			}
			stmt.Methods = append(stmt.Methods, fn)
		default:
			p.errorAtCurrent(fmt.Sprintf("Badan kelas '%s' hanya boleh berisi definisi fungsi", name.Value))
			return nil
		}
	}
	p.match(lexer.TokDedent)
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}

func (p *parser) parseTry() ast.Stmt {
	start := p.advance() // coba
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	stmt := &ast.TryStmt{Body: body}
	for p.peek() == lexer.TokKecuali {
		exTok := p.advance()
		clause := ast.ExceptClause{}
		if p.peek() != lexer.TokColon {
			if clause.Type = p.parseOr(); clause.Type == nil {
				return nil
			}
			if p.match(lexer.TokSebagai) {
				alias, ok := p.expect(lexer.TokIdent)
				if !ok {
					return nil
				}
				clause.Name = alias.Value
			}
		}
		if clause.Body = p.parseBlock(); clause.Body == nil {
			return nil
		}
		clause.Span = p.spanFrom(exTok.Span)
		stmt.Handlers = append(stmt.Handlers, clause)
	}
	if p.match(lexer.TokAkhirnya) {
		if stmt.Finally = p.parseBlock(); stmt.Finally == nil {
			return nil
		}
	}
	if len(stmt.Handlers) == 0 && stmt.Finally == nil {
		p.errorAtCurrent("Blok 'coba' memerlukan 'kecuali' atau 'akhirnya'")
		return nil
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}

func (p *parser) parseWith() ast.Stmt {
	start := p.advance() // dengan
	ctx := p.parseExpression()
	if ctx == nil {
		return nil
	}
	stmt := &ast.WithStmt{Context: ctx}
	if p.match(lexer.TokSebagai) {
		name, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		stmt.Name = name.Value
	}
	if stmt.Body = p.parseBlock(); stmt.Body == nil {
		return nil
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}

func (p *parser) parseMatch() ast.Stmt {
	start := p.advance() // cocokkan
	subject := p.parseExprList()
	if subject == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokColon); !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokNewline); !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokIndent); !ok {
		return nil
	}
	stmt := &ast.MatchStmt{Subject: subject}
	for p.peek() != lexer.TokDedent && p.peek() != lexer.TokEOF {
		if p.match(lexer.TokNewline) {
			continue
		}
		caseTok, ok := p.expect(lexer.TokKasus)
		if !ok {
			return nil
		}
		clause := ast.CaseClause{}
		if clause.Pattern = p.parseOr(); clause.Pattern == nil {
			return nil
		}
		if p.match(lexer.TokJika) {
			if clause.Guard = p.parseOr(); clause.Guard == nil {
				return nil
			}
		}
		if clause.Body = p.parseBlock(); clause.Body == nil {
			return nil
		}
		clause.Span = p.spanFrom(caseTok.Span)
		stmt.Cases = append(stmt.Cases, clause)
	}
	p.match(lexer.TokDedent)
	if len(stmt.Cases) == 0 {
		p.addError("Blok 'cocokkan' memerlukan setidaknya satu 'kasus'", &start.Span)
		return nil
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt
}
