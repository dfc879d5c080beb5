package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/lexer"
)

// parseExprEOF parses an expression list that must make up all remaining
// input.
func (p *parser) parseExprEOF() ast.Expr {
	expr := p.parseExprList()
	if expr == nil {
		return nil
	}
	p.match(lexer.TokNewline)
	if p.peek() != lexer.TokEOF {
		p.errorAtCurrent(fmt.Sprintf("Token tidak terduga %s setelah ekspresi", describe(p.current())))
		return nil
	}
	return expr
}

// parseExprList parses "expr (',' expr)* [',']"; more than one element (or a
// trailing comma) yields a tuple.
func (p *parser) parseExprList() ast.Expr {
	start := p.current()
	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if p.peek() != lexer.TokComma {
		return first
	}
	elems := []ast.Expr{first}
	for p.match(lexer.TokComma) {
		if p.atExprListEnd() {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	return &ast.TupleExpr{Span: p.spanFrom(start.Span), Elements: elems}
}

func (p *parser) atExprListEnd() bool {
	switch p.peek() {
	case lexer.TokNewline, lexer.TokEOF, lexer.TokDedent, lexer.TokSemicolon,
		lexer.TokEquals, lexer.TokColon, lexer.TokRParen:
		return true
	}
	_, compound := compoundOps[p.peek()]
	return compound
}

// parseExpression parses a full expression including lambdas and the
// conditional form "a jika c kalau_tidak b".
func (p *parser) parseExpression() ast.Expr {
	if p.peek() == lexer.TokLambda {
		return p.parseLambda()
	}
	start := p.current()
	expr := p.parseOr()
	if expr == nil {
		return nil
	}
	if p.peek() != lexer.TokJika {
		return expr
	}
	p.advance()
	cond := p.parseOr()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokKalauTidak); !ok {
		return nil
	}
	other := p.parseExpression()
	if other == nil {
		return nil
	}
	return &ast.CondExpr{Span: p.spanFrom(start.Span), Cond: cond, Then: expr, Else: other}
}

func (p *parser) parseLambda() ast.Expr {
	start := p.advance() // lambda
	params, ok := p.parseParams(lexer.TokColon)
	if !ok {
		return nil
	}
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	return &ast.LambdaExpr{Span: p.spanFrom(start.Span), Params: params, Body: body}
}

// binaryLevel parses a left-associative level of the precedence ladder.
func (p *parser) binaryLevel(next func() ast.Expr, ops map[lexer.TokenType]ast.BinaryOp) ast.Expr {
	start := p.current()
	left := next()
	if left == nil {
		return nil
	}
	for {
		op, ok := ops[p.peek()]
		if !ok {
			return left
		}
		p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{Span: p.spanFrom(start.Span), Op: op, Left: left, Right: right}
	}
}

var (
	orOps             = map[lexer.TokenType]ast.BinaryOp{lexer.TokAtau: ast.OpOr}
	andOps            = map[lexer.TokenType]ast.BinaryOp{lexer.TokDan: ast.OpAnd}
	equalityOps       = map[lexer.TokenType]ast.BinaryOp{lexer.TokEqEq: ast.OpEqEq, lexer.TokBangEq: ast.OpNeq}
	additiveOps       = map[lexer.TokenType]ast.BinaryOp{lexer.TokPlus: ast.OpAdd, lexer.TokMinus: ast.OpSub}
	multiplicativeOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokStar:        ast.OpMul,
		lexer.TokSlash:       ast.OpDiv,
		lexer.TokDoubleSlash: ast.OpFloorDiv,
		lexer.TokPercent:     ast.OpMod,
	}
)

func (p *parser) parseOr() ast.Expr {
	return p.binaryLevel(p.parseAnd, orOps)
}

func (p *parser) parseAnd() ast.Expr {
	return p.binaryLevel(p.parseEquality, andOps)
}

func (p *parser) parseEquality() ast.Expr {
	return p.binaryLevel(p.parseComparison, equalityOps)
}

// parseComparison handles < <= > >= plus membership (dalam, bukan dalam)
// and identity (adalah, adalah bukan).
func (p *parser) parseComparison() ast.Expr {
	start := p.current()
	left := p.parseAdditive()
	if left == nil {
		return nil
	}
	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokLt:
			op = ast.OpLt
		case lexer.TokLtEq:
			op = ast.OpLtEq
		case lexer.TokGt:
			op = ast.OpGt
		case lexer.TokGtEq:
			op = ast.OpGtEq
		case lexer.TokDalam:
			op = ast.OpIn
		case lexer.TokBukan:
			if p.peekAt(1) != lexer.TokDalam {
				return left
			}
			p.advance()
			op = ast.OpNotIn
		case lexer.TokAdalah:
			op = ast.OpIs
			if p.peekAt(1) == lexer.TokBukan {
				p.advance()
				op = ast.OpIsNot
			}
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{Span: p.spanFrom(start.Span), Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	return p.binaryLevel(p.parseMultiplicative, additiveOps)
}

func (p *parser) parseMultiplicative() ast.Expr {
	return p.binaryLevel(p.parseUnary, multiplicativeOps)
}

func (p *parser) parseUnary() ast.Expr {
	start := p.current()
	var op ast.UnaryOp
	switch start.Type {
	case lexer.TokMinus:
		op = ast.OpNeg
	case lexer.TokPlus:
		op = ast.OpPos
	case lexer.TokBukan:
		op = ast.OpNot
	default:
		return p.parsePower()
	}
	p.advance()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{Span: p.spanFrom(start.Span), Op: op, Operand: operand}
}

// parsePower is right-associative: 2 ** 3 ** 2 == 2 ** 9. The exponent may
// carry its own sign.
func (p *parser) parsePower() ast.Expr {
	start := p.current()
	base := p.parsePostfix()
	if base == nil {
		return nil
	}
	if p.peek() != lexer.TokDoubleStar {
		return base
	}
	p.advance()
	exp := p.parseUnary()
	if exp == nil {
		return nil
	}
	return &ast.BinaryExpr{Span: p.spanFrom(start.Span), Op: ast.OpPow, Left: base, Right: exp}
}

func (p *parser) parsePostfix() ast.Expr {
	start := p.current()
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.peek() {
		case lexer.TokLParen:
			p.advance()
			args, ok := p.parseArgs(lexer.TokRParen)
			if !ok {
				return nil
			}
			expr = &ast.CallExpr{Span: p.spanFrom(start.Span), Callee: expr, Args: args}
		case lexer.TokDot:
			p.advance()
			tok := p.current()
			if tok.Type != lexer.TokIdent && !tok.Type.IsKeyword() {
				p.errorAtCurrent(fmt.Sprintf("Diharapkan nama atribut, ditemukan %s", describe(tok)))
				return nil
			}
			p.advance()
			expr = &ast.AttributeExpr{Span: p.spanFrom(start.Span), Object: expr, Name: tok.Value}
		case lexer.TokLBracket:
			p.advance()
			if expr = p.parseSubscript(expr, start.Span); expr == nil {
				return nil
			}
		default:
			return expr
		}
	}
}

// parseArgs parses call arguments up to the closing token. A single
// argument followed by "untuk" is a comprehension argument.
func (p *parser) parseArgs(closing lexer.TokenType) ([]ast.Expr, bool) {
	var args []ast.Expr
	for p.peek() != closing {
		start := p.current()
		arg := p.parseExpression()
		if arg == nil {
			return nil, false
		}
		if p.peek() == lexer.TokUntuk && len(args) == 0 {
			clause, ok := p.parseCompClause()
			if !ok {
				return nil, false
			}
			arg = &ast.ListComp{Span: p.spanFrom(start.Span), Element: arg, Clause: clause}
		}
		args = append(args, arg)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, ok := p.expect(closing); !ok {
		return nil, false
	}
	return args, true
}

// parseSubscript parses the part after '[' : an index or a slice.
func (p *parser) parseSubscript(object ast.Expr, start ast.Span) ast.Expr {
	var bounds [3]ast.Expr
	colons := 0
	for {
		if p.peek() != lexer.TokColon && p.peek() != lexer.TokRBracket {
			e := p.parseExpression()
			if e == nil {
				return nil
			}
			bounds[colons] = e
		}
		if p.peek() == lexer.TokColon && colons < 2 {
			p.advance()
			colons++
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.TokRBracket); !ok {
		return nil
	}
	if colons == 0 {
		if bounds[0] == nil {
			p.addError("Indeks kosong", &start)
			return nil
		}
		return &ast.IndexExpr{Span: p.spanFrom(start), Object: object, Index: bounds[0]}
	}
	return &ast.SliceExpr{Span: p.spanFrom(start), Object: object, Start: bounds[0], Stop: bounds[1], Step: bounds[2]}
}

func (p *parser) parseCompClause() (ast.CompClause, bool) {
	if _, ok := p.expect(lexer.TokUntuk); !ok {
		return ast.CompClause{}, false
	}
	name, ok := p.expect(lexer.TokIdent)
	if !ok {
		return ast.CompClause{}, false
	}
	if _, ok := p.expect(lexer.TokDalam); !ok {
		return ast.CompClause{}, false
	}
	iter := p.parseOr()
	if iter == nil {
		return ast.CompClause{}, false
	}
	clause := ast.CompClause{Var: name.Value, Iter: iter}
	if p.match(lexer.TokJika) {
		if clause.Cond = p.parseOr(); clause.Cond == nil {
			return ast.CompClause{}, false
		}
	}
	return clause, true
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.current()
	switch tok.Type {
	case lexer.TokIntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			p.addError(fmt.Sprintf("Bilangan bulat terlalu besar: %s", tok.Value), &tok.Span)
			return nil
		}
		return &ast.IntLiteral{Span: tok.Span, Value: v}
	case lexer.TokFloatLit:
		p.advance()
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.addError(fmt.Sprintf("Bilangan desimal tidak valid: %s", tok.Value), &tok.Span)
			return nil
		}
		return &ast.FloatLiteral{Span: tok.Span, Value: v}
	case lexer.TokStringLit:
		p.advance()
		value := tok.Value
		// Adjacent literals concatenate: "a" "b" == "ab".
		for p.peek() == lexer.TokStringLit {
			value += p.advance().Value
		}
		return &ast.StrLiteral{Span: p.spanFrom(tok.Span), Value: value}
	case lexer.TokFStringLit:
		p.advance()
		return p.parseFString(tok)
	case lexer.TokBenar, lexer.TokSalah:
		p.advance()
		return &ast.BoolLiteral{Span: tok.Span, Value: tok.Type == lexer.TokBenar}
	case lexer.TokKosong:
		p.advance()
		return &ast.NoneLiteral{Span: tok.Span}
	case lexer.TokIdent:
		p.advance()
		return &ast.Identifier{Span: tok.Span, Name: tok.Value}
	case lexer.TokLParen:
		return p.parseParen()
	case lexer.TokLBracket:
		return p.parseListExpr()
	case lexer.TokLBrace:
		return p.parseBraceExpr()
	case lexer.TokLambda:
		return p.parseLambda()
	}
	p.addError(fmt.Sprintf("Ekspresi tidak terduga: %s", describe(tok)), &tok.Span)
	return nil
}

func (p *parser) parseParen() ast.Expr {
	start := p.advance() // (
	if p.match(lexer.TokRParen) {
		return &ast.TupleExpr{Span: p.spanFrom(start.Span)}
	}
	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if p.peek() == lexer.TokUntuk {
		clause, ok := p.parseCompClause()
		if !ok {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return &ast.ListComp{Span: p.spanFrom(start.Span), Element: first, Clause: clause}
	}
	if p.match(lexer.TokRParen) {
		return first
	}
	elems := []ast.Expr{first}
	for p.match(lexer.TokComma) {
		if p.peek() == lexer.TokRParen {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}
	return &ast.TupleExpr{Span: p.spanFrom(start.Span), Elements: elems}
}

func (p *parser) parseListExpr() ast.Expr {
	start := p.advance() // [
	if p.match(lexer.TokRBracket) {
		return &ast.ListExpr{Span: p.spanFrom(start.Span)}
	}
	first := p.parseExpression()
	if first == nil {
		return nil
	}
	if p.peek() == lexer.TokUntuk {
		clause, ok := p.parseCompClause()
		if !ok {
			return nil
		}
		if _, ok := p.expect(lexer.TokRBracket); !ok {
			return nil
		}
		return &ast.ListComp{Span: p.spanFrom(start.Span), Element: first, Clause: clause}
	}
	elems := []ast.Expr{first}
	for p.match(lexer.TokComma) {
		if p.peek() == lexer.TokRBracket {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	if _, ok := p.expect(lexer.TokRBracket); !ok {
		return nil
	}
	return &ast.ListExpr{Span: p.spanFrom(start.Span), Elements: elems}
}

// parseBraceExpr parses dict and set literals and their comprehensions.
// "{}" is an empty dict.
func (p *parser) parseBraceExpr() ast.Expr {
	start := p.advance() // {
	if p.match(lexer.TokRBrace) {
		return &ast.DictExpr{Span: p.spanFrom(start.Span)}
	}
	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if p.match(lexer.TokColon) {
		value := p.parseExpression()
		if value == nil {
			return nil
		}
		if p.peek() == lexer.TokUntuk {
			clause, ok := p.parseCompClause()
			if !ok {
				return nil
			}
			if _, ok := p.expect(lexer.TokRBrace); !ok {
				return nil
			}
			return &ast.DictComp{Span: p.spanFrom(start.Span), Key: first, Value: value, Clause: clause}
		}
		entries := []ast.DictEntry{{Key: first, Value: value}}
		for p.match(lexer.TokComma) {
			if p.peek() == lexer.TokRBrace {
				break
			}
			k := p.parseExpression()
			if k == nil {
				return nil
			}
			if _, ok := p.expect(lexer.TokColon); !ok {
				return nil
			}
			v := p.parseExpression()
			if v == nil {
				return nil
			}
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		if _, ok := p.expect(lexer.TokRBrace); !ok {
			return nil
		}
		return &ast.DictExpr{Span: p.spanFrom(start.Span), Entries: entries}
	}

	if p.peek() == lexer.TokUntuk {
		clause, ok := p.parseCompClause()
		if !ok {
			return nil
		}
		if _, ok := p.expect(lexer.TokRBrace); !ok {
			return nil
		}
		return &ast.SetComp{Span: p.spanFrom(start.Span), Element: first, Clause: clause}
	}
	elems := []ast.Expr{first}
	for p.match(lexer.TokComma) {
		if p.peek() == lexer.TokRBrace {
			break
		}
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	if _, ok := p.expect(lexer.TokRBrace); !ok {
		return nil
	}
	return &ast.SetExpr{Span: p.spanFrom(start.Span), Elements: elems}
}

// parseFString turns the lexer's raw parts into an FStringExpr. Each
// expression part is parsed by a nested parser.
func (p *parser) parseFString(tok lexer.Token) ast.Expr {
	fs := &ast.FStringExpr{Span: tok.Span}
	for _, part := range tok.Parts {
		if !part.IsExpr {
			fs.Parts = append(fs.Parts, &ast.StrLiteral{Span: part.Span, Value: part.Text})
			continue
		}
		text, spec := splitFormatSpec(part.Text)
		expr := p.parseSubExpression(text, part.Span)
		if expr == nil {
			return nil
		}
		if spec != "" {
			expr = &ast.FormattedValue{Span: part.Span, Value: expr, Spec: spec}
		}
		fs.Parts = append(fs.Parts, expr)
	}
	return fs
}

// parseSubExpression parses text found at base inside another token,
// reporting positions relative to the enclosing source.
func (p *parser) parseSubExpression(text string, base ast.Span) ast.Expr {
	trimmed := strings.TrimLeft(text, " \t")
	offset := len(text) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t")
	if trimmed == "" {
		p.addError("Ekspresi kosong dalam f-string", &base)
		return nil
	}
	shift := func(s ast.Span) ast.Span {
		if s.StartLine == 1 {
			s.StartCol += base.StartCol - 1 + offset
		}
		if s.EndLine == 1 {
			s.EndCol += base.StartCol - 1 + offset
		}
		s.StartLine += base.StartLine - 1
		s.EndLine += base.StartLine - 1
		s.File = base.File
		return s
	}

	tokens, diags := tokenize(trimmed, p.filename)
	if diags != nil {
		for _, d := range diags {
			if d.Span != nil {
				shifted := shift(*d.Span)
				d.Span = &shifted
			}
			p.diags = append(p.diags, d)
		}
		return nil
	}
	for i := range tokens {
		tokens[i].Span = shift(tokens[i].Span)
	}
	sub := &parser{tokens: tokens, filename: p.filename}
	expr := sub.parseExprEOF()
	if len(sub.diags) > 0 {
		p.diags = append(p.diags, sub.diags...)
		return nil
	}
	return expr
}

// splitFormatSpec splits "expr:spec" at the first ':' outside brackets and
// string literals.
func splitFormatSpec(text string) (string, string) {
	depth := 0
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ':' && depth == 0:
			return text[:i], text[i+1:]
		}
	}
	return text, ""
}
