package lexer

import (
	"fmt"

	"github.com/MrXploisLite/CodingYok/pkg/ast"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Keywords
	TokTulis TokenType = iota
	TokJika
	TokKalauTidakJika
	TokKalauTidak
	TokSelama
	TokUntuk
	TokDalam
	TokFungsi
	TokKelas
	TokKembalikan
	TokHasilkan
	TokBerhenti
	TokLanjut
	TokLewati
	TokImpor
	TokDari
	TokSebagai
	TokCoba
	TokKecuali
	TokAkhirnya
	TokLempar
	TokDengan
	TokCocokkan
	TokKasus
	TokDan
	TokAtau
	TokBukan
	TokAdalah
	TokLambda
	TokGlobal
	TokNonlokal
	TokTegas
	TokHapus
	TokBenar
	TokSalah
	TokKosong

	// Literals
	TokIntLit
	TokFloatLit
	TokStringLit
	TokFStringLit

	// Identifiers
	TokIdent

	// Delimiters
	TokLParen    // (
	TokRParen    // )
	TokLBracket  // [
	TokRBracket  // ]
	TokLBrace    // {
	TokRBrace    // }
	TokComma     // ,
	TokDot       // .
	TokColon     // :
	TokSemicolon // ;

	// Assignment
	TokEquals        // =
	TokPlusEq        // +=
	TokMinusEq       // -=
	TokStarEq        // *=
	TokSlashEq       // /=
	TokDoubleSlashEq // //=
	TokPercentEq     // %=
	TokDoubleStarEq  // **=

	// Comparison operators
	TokEqEq   // ==
	TokBangEq // !=
	TokLt     // <
	TokLtEq   // <=
	TokGt     // >
	TokGtEq   // >=

	// Arithmetic operators
	TokPlus        // +
	TokMinus       // -
	TokStar        // *
	TokSlash       // /
	TokDoubleSlash // //
	TokPercent     // %
	TokDoubleStar  // **

	// Layout
	TokNewline
	TokIndent
	TokDedent
	TokEOF
)

// FStringPart is one span of an interpolated string. Expression parts hold
// the raw expression text; it is parsed later by the parser.
type FStringPart struct {
	IsExpr bool
	Text   string
	Span   ast.Span
}

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  ast.Span
	Parts []FStringPart // only for TokFStringLit
}

// Line returns the 1-based line the token starts on.
func (t Token) Line() int { return t.Span.StartLine }

// Column returns the 1-based column the token starts on.
func (t Token) Column() int { return t.Span.StartCol }

var keywords = map[string]TokenType{
	"tulis":            TokTulis,
	"jika":             TokJika,
	"kalau_tidak_jika": TokKalauTidakJika,
	"kalau_tidak":      TokKalauTidak,
	"selama":           TokSelama,
	"untuk":            TokUntuk,
	"dalam":            TokDalam,
	"fungsi":           TokFungsi,
	"kelas":            TokKelas,
	"kembalikan":       TokKembalikan,
	"hasilkan":         TokHasilkan,
	"berhenti":         TokBerhenti,
	"lanjut":           TokLanjut,
	"lewati":           TokLewati,
	"impor":            TokImpor,
	"dari":             TokDari,
	"sebagai":          TokSebagai,
	"coba":             TokCoba,
	"kecuali":          TokKecuali,
	"akhirnya":         TokAkhirnya,
	"lempar":           TokLempar,
	"dengan":           TokDengan,
	"cocokkan":         TokCocokkan,
	"kasus":            TokKasus,
	"dan":              TokDan,
	"atau":             TokAtau,
	"bukan":            TokBukan,
	"adalah":           TokAdalah,
	"lambda":           TokLambda,
	"global":           TokGlobal,
	"nonlokal":         TokNonlokal,
	"tegas":            TokTegas,
	"hapus":            TokHapus,
	"benar":            TokBenar,
	"salah":            TokSalah,
	"kosong":           TokKosong,
}

// operators is ordered longest first so that two- and three-character
// operators win over their one-character prefixes.
var operators = []struct {
	text string
	typ  TokenType
}{
	{"//=", TokDoubleSlashEq},
	{"**=", TokDoubleStarEq},
	{"**", TokDoubleStar},
	{"//", TokDoubleSlash},
	{"==", TokEqEq},
	{"!=", TokBangEq},
	{"<=", TokLtEq},
	{">=", TokGtEq},
	{"+=", TokPlusEq},
	{"-=", TokMinusEq},
	{"*=", TokStarEq},
	{"/=", TokSlashEq},
	{"%=", TokPercentEq},
	{"+", TokPlus},
	{"-", TokMinus},
	{"*", TokStar},
	{"/", TokSlash},
	{"%", TokPercent},
	{"<", TokLt},
	{">", TokGt},
	{"=", TokEquals},
	{"(", TokLParen},
	{")", TokRParen},
	{"[", TokLBracket},
	{"]", TokRBracket},
	{"{", TokLBrace},
	{"}", TokRBrace},
	{",", TokComma},
	{".", TokDot},
	{":", TokColon},
	{";", TokSemicolon},
}

// LookupKeyword returns the keyword token type for word, if any.
func LookupKeyword(word string) (TokenType, bool) {
	t, ok := keywords[word]
	return t, ok
}

// IsKeyword returns true if the token type is a keyword.
func (t TokenType) IsKeyword() bool {
	return t >= TokTulis && t <= TokKosong
}

func (t TokenType) String() string {
	if t.IsKeyword() {
		for word, typ := range keywords {
			if typ == t {
				return word
			}
		}
	}
	for _, op := range operators {
		if op.typ == t {
			return op.text
		}
	}
	switch t {
	case TokIntLit:
		return "bilangan bulat"
	case TokFloatLit:
		return "bilangan desimal"
	case TokStringLit:
		return "teks"
	case TokFStringLit:
		return "f-string"
	case TokIdent:
		return "nama"
	case TokNewline:
		return "baris baru"
	case TokIndent:
		return "INDENT"
	case TokDedent:
		return "DEDENT"
	case TokEOF:
		return "akhir file"
	}
	return fmt.Sprintf("token(%d)", int(t))
}
