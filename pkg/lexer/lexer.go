// Package lexer implements the CodingYok tokenizer.
//
// The tokenizer is indentation sensitive: at the start of every logical line
// (outside of brackets) the indent width is compared with a stack of open
// block widths and INDENT/DEDENT tokens are emitted accordingly.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
	"github.com/MrXploisLite/CodingYok/pkg/diagnostics"
)

// TabWidth is the number of indent columns a tab counts for.
const TabWidth = 8

type scanner struct {
	source   string
	filename string
	pos      int
	line     int
	col      int

	indents     []int
	depth       int // open ( [ { count
	atLineStart bool
	tokens      []Token
}

func newScanner(source, filename string) *scanner {
	return &scanner{
		source:      source,
		filename:    filename,
		pos:         0,
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	p := s.pos + offset
	if p >= len(s.source) {
		return 0
	}
	return s.source[p]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else if utf8.RuneStart(ch) {
		// Columns count runes, not bytes.
		s.col++
	}
	return ch
}

// advanceRune consumes one full UTF-8 encoded rune.
func (s *scanner) advanceRune() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.pos:])
	for i := 0; i < size; i++ {
		s.advance()
	}
	return r
}

func (s *scanner) span(startLine, startCol int) ast.Span {
	return ast.Span{
		File:      s.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   s.line,
		EndCol:    s.col,
	}
}

func (s *scanner) emit(typ TokenType, value string, span ast.Span) {
	s.tokens = append(s.tokens, Token{Type: typ, Value: value, Span: span})
}

func (s *scanner) lastType() (TokenType, bool) {
	if len(s.tokens) == 0 {
		return 0, false
	}
	return s.tokens[len(s.tokens)-1].Type, true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (s *scanner) lexError(line, col int, msg string) error {
	diag := diagnostics.MakeDiag(
		diagnostics.ELex,
		msg,
		&ast.Span{File: s.filename, StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1},
		"",
	)
	return &LexError{Diag: diag}
}

// LexError wraps a diagnostic for lex errors.
type LexError struct {
	Diag diagnostics.Diagnostic
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s (baris %d, kolom %d)", e.Diag.Message, e.Diag.Line(), e.Diag.Column())
}

// Tokenize breaks source code into a slice of tokens. The last token is
// always TokEOF, preceded by any DEDENTs needed to close open blocks.
func Tokenize(source, filename string) ([]Token, error) {
	if !utf8.ValidString(source) {
		line, col := invalidUTF8Position(source)
		s := newScanner(source, filename)
		return nil, s.lexError(line, col, "Sumber bukan UTF-8 yang valid")
	}
	s := newScanner(source, filename)
	for {
		if s.atLineStart && s.depth == 0 {
			if err := s.scanIndentation(); err != nil {
				return nil, err
			}
		}
		if s.atEnd() {
			break
		}
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}

	if last, ok := s.lastType(); ok && last != TokNewline && last != TokDedent && last != TokIndent {
		s.emit(TokNewline, "", s.span(s.line, s.col))
	}
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.emit(TokDedent, "", s.span(s.line, s.col))
	}
	s.emit(TokEOF, "", s.span(s.line, s.col))
	return s.tokens, nil
}

// scanIndentation measures the leading whitespace of a logical line and
// emits INDENT/DEDENT tokens. Blank and comment-only lines are skipped
// entirely.
func (s *scanner) scanIndentation() error {
	for {
		width := 0
		for !s.atEnd() && (s.peek() == ' ' || s.peek() == '\t') {
			if s.advance() == '\t' {
				width += TabWidth
			} else {
				width++
			}
		}
		switch ch := s.peek(); {
		case s.atEnd():
			return nil
		case ch == '\n' || ch == '\r':
			s.advance()
			continue
		case ch == '#':
			s.skipComment()
			continue
		}

		s.atLineStart = false
		top := s.indents[len(s.indents)-1]
		if width > top {
			s.indents = append(s.indents, width)
			s.emit(TokIndent, "", s.span(s.line, 1))
			return nil
		}
		for width < s.indents[len(s.indents)-1] {
			s.indents = s.indents[:len(s.indents)-1]
			s.emit(TokDedent, "", s.span(s.line, s.col))
		}
		if width != s.indents[len(s.indents)-1] {
			return s.lexError(s.line, s.col, "Indentasi tidak konsisten")
		}
		return nil
	}
}

func (s *scanner) skipComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *scanner) scanToken() error {
	ch := s.peek()
	startLine, startCol := s.line, s.col

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f':
		s.advance()
		return nil
	case ch == '#':
		s.skipComment()
		return nil
	case ch == '\\' && (s.peekAt(1) == '\n' || (s.peekAt(1) == '\r' && s.peekAt(2) == '\n')):
		// Explicit line continuation.
		for s.peek() != '\n' {
			s.advance()
		}
		s.advance()
		return nil
	case ch == '\n':
		s.advance()
		if s.depth == 0 {
			if last, ok := s.lastType(); ok && last != TokNewline && last != TokIndent && last != TokDedent {
				s.emit(TokNewline, "", s.span(startLine, startCol))
			}
			s.atLineStart = true
		}
		return nil
	case isDigit(ch):
		s.scanNumber()
		return nil
	case ch == '"' || ch == '\'':
		return s.scanString(startLine, startCol, false)
	}

	if (ch == 'f' || ch == 'F') && (s.peekAt(1) == '"' || s.peekAt(1) == '\'') {
		s.advance()
		return s.scanFString(startLine, startCol)
	}
	if (ch == 'r' || ch == 'R') && (s.peekAt(1) == '"' || s.peekAt(1) == '\'') {
		s.advance()
		return s.scanString(startLine, startCol, true)
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
	if isIdentStart(r) {
		s.scanIdentOrKeyword()
		return nil
	}

	for _, op := range operators {
		if strings.HasPrefix(s.source[s.pos:], op.text) {
			for range op.text {
				s.advance()
			}
			switch op.typ {
			case TokLParen, TokLBracket, TokLBrace:
				s.depth++
			case TokRParen, TokRBracket, TokRBrace:
				if s.depth > 0 {
					s.depth--
				}
			}
			s.emit(op.typ, op.text, s.span(startLine, startCol))
			return nil
		}
	}

	if ch == '!' {
		return s.lexError(startLine, startCol, "Karakter tidak dikenal '!', gunakan 'bukan' atau '!='")
	}
	return s.lexError(startLine, startCol, fmt.Sprintf("Karakter tidak dikenal '%c'", r))
}

// scanNumber reads a decimal literal with at most one fractional part.
func (s *scanner) scanNumber() {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	isFloat := false

	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		isFloat = true
		s.advance()
		for !s.atEnd() && isDigit(s.peek()) {
			s.advance()
		}
	}

	typ := TokIntLit
	if isFloat {
		typ = TokFloatLit
	}
	s.emit(typ, s.source[startPos:s.pos], s.span(startLine, startCol))
}

func (s *scanner) scanIdentOrKeyword() {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	for !s.atEnd() {
		r, _ := utf8.DecodeRuneInString(s.source[s.pos:])
		if !isIdentPart(r) {
			break
		}
		s.advanceRune()
	}

	text := s.source[startPos:s.pos]
	if typ, ok := keywords[text]; ok {
		s.emit(typ, text, s.span(startLine, startCol))
		return
	}
	s.emit(TokIdent, text, s.span(startLine, startCol))
}

// escape maps the character after a backslash to its value.
func escape(ch rune) (string, bool) {
	switch ch {
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'r':
		return "\r", true
	case '0':
		return "\x00", true
	case '\\':
		return "\\", true
	case '\'':
		return "'", true
	case '"':
		return "\"", true
	}
	return "", false
}

// scanString reads a quoted literal. The opening quote is the current byte.
func (s *scanner) scanString(startLine, startCol int, raw bool) error {
	quote := s.advance()
	var buf strings.Builder
	for !s.atEnd() {
		ch := s.peek()
		switch {
		case ch == quote:
			s.advance()
			s.emit(TokStringLit, buf.String(), s.span(startLine, startCol))
			return nil
		case ch == '\n':
			return s.unterminated(startLine, startCol, raw)
		case ch == '\\' && !raw:
			s.advance()
			if s.atEnd() {
				return s.unterminated(startLine, startCol, raw)
			}
			esc := s.advanceRune()
			if v, ok := escape(esc); ok {
				buf.WriteString(v)
			} else {
				buf.WriteByte('\\')
				buf.WriteRune(esc)
			}
		case ch == '\\' && raw && s.peekAt(1) == quote:
			// A raw string still cannot end on an escaped quote.
			buf.WriteByte(s.advance())
			buf.WriteByte(s.advance())
		default:
			buf.WriteRune(s.advanceRune())
		}
	}
	return s.unterminated(startLine, startCol, raw)
}

func (s *scanner) unterminated(line, col int, raw bool) error {
	if raw {
		return s.lexError(line, col, "Raw string tidak ditutup")
	}
	return s.lexError(line, col, "String tidak ditutup")
}

// scanFString reads an interpolated string into alternating literal and
// expression parts. Expression text is captured verbatim by brace matching.
func (s *scanner) scanFString(startLine, startCol int) error {
	quote := s.advance()
	var parts []FStringPart
	var lit strings.Builder
	var raw strings.Builder
	litLine, litCol := s.line, s.col

	flushLit := func() {
		if lit.Len() > 0 {
			parts = append(parts, FStringPart{Text: lit.String(), Span: s.span(litLine, litCol)})
			lit.Reset()
		}
	}
	unterminated := func() error {
		return s.lexError(startLine, startCol, "F-string tidak ditutup")
	}

	for !s.atEnd() {
		ch := s.peek()
		switch {
		case ch == quote:
			s.advance()
			flushLit()
			s.tokens = append(s.tokens, Token{
				Type:  TokFStringLit,
				Value: raw.String(),
				Span:  s.span(startLine, startCol),
				Parts: parts,
			})
			return nil
		case ch == '\n':
			return unterminated()
		case ch == '{' && s.peekAt(1) == '{', ch == '}' && s.peekAt(1) == '}':
			s.advance()
			s.advance()
			lit.WriteByte(ch)
			raw.WriteString(string([]byte{ch, ch}))
		case ch == '{':
			flushLit()
			s.advance()
			exprLine, exprCol := s.line, s.col
			exprStart := s.pos
			nesting := 0
		expr:
			for {
				if s.atEnd() {
					return unterminated()
				}
				c := s.peek()
				switch {
				case c == '\n' || c == quote:
					return unterminated()
				case c == '"' || c == '\'':
					inner := s.advance()
					for !s.atEnd() && s.peek() != inner {
						if s.peek() == '\n' {
							return unterminated()
						}
						s.advance()
					}
					if s.atEnd() {
						return unterminated()
					}
					s.advance()
				case c == '{' || c == '(' || c == '[':
					nesting++
					s.advance()
				case c == ')' || c == ']':
					nesting--
					s.advance()
				case c == '}':
					if nesting == 0 {
						break expr
					}
					nesting--
					s.advance()
				default:
					s.advanceRune()
				}
			}
			text := s.source[exprStart:s.pos]
			parts = append(parts, FStringPart{IsExpr: true, Text: text, Span: s.span(exprLine, exprCol)})
			raw.WriteString("{" + text + "}")
			s.advance() // closing }
			litLine, litCol = s.line, s.col
		case ch == '\\':
			s.advance()
			if s.atEnd() {
				return unterminated()
			}
			esc := s.advanceRune()
			if v, ok := escape(esc); ok {
				lit.WriteString(v)
			} else {
				lit.WriteByte('\\')
				lit.WriteRune(esc)
			}
			raw.WriteByte('\\')
			raw.WriteRune(esc)
		default:
			r := s.advanceRune()
			lit.WriteRune(r)
			raw.WriteRune(r)
		}
	}
	return unterminated()
}

func invalidUTF8Position(source string) (int, int) {
	line, col := 1, 1
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRuneInString(source[i:])
		if r == utf8.RuneError && size <= 1 {
			return line, col
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return line, col
}
