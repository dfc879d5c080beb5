// Package ast defines the CodingYok AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd      BinaryOp = "+"
	OpSub      BinaryOp = "-"
	OpMul      BinaryOp = "*"
	OpDiv      BinaryOp = "/"
	OpFloorDiv BinaryOp = "//"
	OpMod      BinaryOp = "%"
	OpPow      BinaryOp = "**"
	OpGt       BinaryOp = ">"
	OpLt       BinaryOp = "<"
	OpGtEq     BinaryOp = ">="
	OpLtEq     BinaryOp = "<="
	OpEqEq     BinaryOp = "=="
	OpNeq      BinaryOp = "!="
	OpAnd      BinaryOp = "dan"
	OpOr       BinaryOp = "atau"
	OpIn       BinaryOp = "dalam"
	OpNotIn    BinaryOp = "bukan dalam"
	OpIs       BinaryOp = "adalah"
	OpIsNot    BinaryOp = "adalah bukan"
)

// UnaryOp represents a unary operator.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpPos UnaryOp = "+"
	OpNot UnaryOp = "bukan"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Literal Expressions ---

type IntLiteral struct {
	Span  Span
	Value int64
}

func (n *IntLiteral) Kind() string   { return "IntLiteral" }
func (n *IntLiteral) NodeSpan() Span { return n.Span }
func (n *IntLiteral) exprNode()      {}

type FloatLiteral struct {
	Span  Span
	Value float64
}

func (n *FloatLiteral) Kind() string   { return "FloatLiteral" }
func (n *FloatLiteral) NodeSpan() Span { return n.Span }
func (n *FloatLiteral) exprNode()      {}

type BoolLiteral struct {
	Span  Span
	Value bool
}

func (n *BoolLiteral) Kind() string   { return "BoolLiteral" }
func (n *BoolLiteral) NodeSpan() Span { return n.Span }
func (n *BoolLiteral) exprNode()      {}

type StrLiteral struct {
	Span  Span
	Value string
}

func (n *StrLiteral) Kind() string   { return "StrLiteral" }
func (n *StrLiteral) NodeSpan() Span { return n.Span }
func (n *StrLiteral) exprNode()      {}

type NoneLiteral struct {
	Span Span
}

func (n *NoneLiteral) Kind() string   { return "NoneLiteral" }
func (n *NoneLiteral) NodeSpan() Span { return n.Span }
func (n *NoneLiteral) exprNode()      {}

// FStringExpr is an interpolated string. Literal spans are *StrLiteral parts;
// every other part is an expression whose stringified value is spliced in.
type FStringExpr struct {
	Span  Span
	Parts []Expr
}

func (n *FStringExpr) Kind() string   { return "FStringExpr" }
func (n *FStringExpr) NodeSpan() Span { return n.Span }
func (n *FStringExpr) exprNode()      {}

// FormattedValue is an f-string expression part with an optional format
// spec, as in f"{harga:.2f}".
type FormattedValue struct {
	Span  Span
	Value Expr
	Spec  string
}

func (n *FormattedValue) Kind() string   { return "FormattedValue" }
func (n *FormattedValue) NodeSpan() Span { return n.Span }
func (n *FormattedValue) exprNode()      {}

// --- Identifiers and operators ---

type Identifier struct {
	Span Span
	Name string
}

func (n *Identifier) Kind() string   { return "Identifier" }
func (n *Identifier) NodeSpan() Span { return n.Span }
func (n *Identifier) exprNode()      {}

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) exprNode()      {}

type UnaryExpr struct {
	Span    Span
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) Kind() string   { return "UnaryExpr" }
func (n *UnaryExpr) NodeSpan() Span { return n.Span }
func (n *UnaryExpr) exprNode()      {}

// CondExpr is "Then jika Cond kalau_tidak Else".
type CondExpr struct {
	Span Span
	Cond Expr
	Then Expr
	Else Expr
}

func (n *CondExpr) Kind() string   { return "CondExpr" }
func (n *CondExpr) NodeSpan() Span { return n.Span }
func (n *CondExpr) exprNode()      {}

// --- Postfix ---

type CallExpr struct {
	Span   Span
	Callee Expr
	Args   []Expr
}

func (n *CallExpr) Kind() string   { return "CallExpr" }
func (n *CallExpr) NodeSpan() Span { return n.Span }
func (n *CallExpr) exprNode()      {}

type AttributeExpr struct {
	Span   Span
	Object Expr
	Name   string
}

func (n *AttributeExpr) Kind() string   { return "AttributeExpr" }
func (n *AttributeExpr) NodeSpan() Span { return n.Span }
func (n *AttributeExpr) exprNode()      {}

type IndexExpr struct {
	Span   Span
	Object Expr
	Index  Expr
}

func (n *IndexExpr) Kind() string   { return "IndexExpr" }
func (n *IndexExpr) NodeSpan() Span { return n.Span }
func (n *IndexExpr) exprNode()      {}

// SliceExpr is obj[start:stop:step]; any bound may be nil.
type SliceExpr struct {
	Span   Span
	Object Expr
	Start  Expr
	Stop   Expr
	Step   Expr
}

func (n *SliceExpr) Kind() string   { return "SliceExpr" }
func (n *SliceExpr) NodeSpan() Span { return n.Span }
func (n *SliceExpr) exprNode()      {}

// --- Collections ---

type ListExpr struct {
	Span     Span
	Elements []Expr
}

func (n *ListExpr) Kind() string   { return "ListExpr" }
func (n *ListExpr) NodeSpan() Span { return n.Span }
func (n *ListExpr) exprNode()      {}

type TupleExpr struct {
	Span     Span
	Elements []Expr
}

func (n *TupleExpr) Kind() string   { return "TupleExpr" }
func (n *TupleExpr) NodeSpan() Span { return n.Span }
func (n *TupleExpr) exprNode()      {}

type SetExpr struct {
	Span     Span
	Elements []Expr
}

func (n *SetExpr) Kind() string   { return "SetExpr" }
func (n *SetExpr) NodeSpan() Span { return n.Span }
func (n *SetExpr) exprNode()      {}

type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictExpr struct {
	Span    Span
	Entries []DictEntry
}

func (n *DictExpr) Kind() string   { return "DictExpr" }
func (n *DictExpr) NodeSpan() Span { return n.Span }
func (n *DictExpr) exprNode()      {}

// CompClause is the single "untuk v dalam iter [jika cond]" clause of a
// comprehension.
type CompClause struct {
	Var  string
	Iter Expr
	Cond Expr
}

type ListComp struct {
	Span    Span
	Element Expr
	Clause  CompClause
}

func (n *ListComp) Kind() string   { return "ListComp" }
func (n *ListComp) NodeSpan() Span { return n.Span }
func (n *ListComp) exprNode()      {}

type SetComp struct {
	Span    Span
	Element Expr
	Clause  CompClause
}

func (n *SetComp) Kind() string   { return "SetComp" }
func (n *SetComp) NodeSpan() Span { return n.Span }
func (n *SetComp) exprNode()      {}

type DictComp struct {
	Span   Span
	Key    Expr
	Value  Expr
	Clause CompClause
}

func (n *DictComp) Kind() string   { return "DictComp" }
func (n *DictComp) NodeSpan() Span { return n.Span }
func (n *DictComp) exprNode()      {}

// Param is a function parameter. Default is evaluated at call time.
type Param struct {
	Span    Span
	Name    string
	Default Expr
}

type LambdaExpr struct {
	Span   Span
	Params []Param
	Body   Expr
}

func (n *LambdaExpr) Kind() string   { return "LambdaExpr" }
func (n *LambdaExpr) NodeSpan() Span { return n.Span }
func (n *LambdaExpr) exprNode()      {}

// --- Simple statements ---

type ExprStmt struct {
	Span Span
	Expr Expr
}

func (n *ExprStmt) Kind() string   { return "ExprStmt" }
func (n *ExprStmt) NodeSpan() Span { return n.Span }
func (n *ExprStmt) stmtNode()      {}

type PrintStmt struct {
	Span Span
	Args []Expr
}

func (n *PrintStmt) Kind() string   { return "PrintStmt" }
func (n *PrintStmt) NodeSpan() Span { return n.Span }
func (n *PrintStmt) stmtNode()      {}

// AssignStmt stores Value into Target. Target is an *Identifier,
// *AttributeExpr, *IndexExpr, *SliceExpr or a *TupleExpr of those.
// For compound assignment Op holds the operator and Value is already the
// desugared "target op rhs" expression.
type AssignStmt struct {
	Span   Span
	Target Expr
	Op     BinaryOp
	Value  Expr
}

func (n *AssignStmt) Kind() string   { return "AssignStmt" }
func (n *AssignStmt) NodeSpan() Span { return n.Span }
func (n *AssignStmt) stmtNode()      {}

type ReturnStmt struct {
	Span  Span
	Value Expr
}

func (n *ReturnStmt) Kind() string   { return "ReturnStmt" }
func (n *ReturnStmt) NodeSpan() Span { return n.Span }
func (n *ReturnStmt) stmtNode()      {}

type YieldStmt struct {
	Span  Span
	Value Expr
}

func (n *YieldStmt) Kind() string   { return "YieldStmt" }
func (n *YieldStmt) NodeSpan() Span { return n.Span }
func (n *YieldStmt) stmtNode()      {}

type BreakStmt struct {
	Span Span
}

func (n *BreakStmt) Kind() string   { return "BreakStmt" }
func (n *BreakStmt) NodeSpan() Span { return n.Span }
func (n *BreakStmt) stmtNode()      {}

type ContinueStmt struct {
	Span Span
}

func (n *ContinueStmt) Kind() string   { return "ContinueStmt" }
func (n *ContinueStmt) NodeSpan() Span { return n.Span }
func (n *ContinueStmt) stmtNode()      {}

type PassStmt struct {
	Span Span
}

func (n *PassStmt) Kind() string   { return "PassStmt" }
func (n *PassStmt) NodeSpan() Span { return n.Span }
func (n *PassStmt) stmtNode()      {}

// RaiseStmt with a nil Value re-raises the exception being handled.
type RaiseStmt struct {
	Span  Span
	Value Expr
}

func (n *RaiseStmt) Kind() string   { return "RaiseStmt" }
func (n *RaiseStmt) NodeSpan() Span { return n.Span }
func (n *RaiseStmt) stmtNode()      {}

type GlobalStmt struct {
	Span  Span
	Names []string
}

func (n *GlobalStmt) Kind() string   { return "GlobalStmt" }
func (n *GlobalStmt) NodeSpan() Span { return n.Span }
func (n *GlobalStmt) stmtNode()      {}

type NonlocalStmt struct {
	Span  Span
	Names []string
}

func (n *NonlocalStmt) Kind() string   { return "NonlocalStmt" }
func (n *NonlocalStmt) NodeSpan() Span { return n.Span }
func (n *NonlocalStmt) stmtNode()      {}

type AssertStmt struct {
	Span    Span
	Cond    Expr
	Message Expr
}

func (n *AssertStmt) Kind() string   { return "AssertStmt" }
func (n *AssertStmt) NodeSpan() Span { return n.Span }
func (n *AssertStmt) stmtNode()      {}

type DelStmt struct {
	Span    Span
	Targets []Expr
}

func (n *DelStmt) Kind() string   { return "DelStmt" }
func (n *DelStmt) NodeSpan() Span { return n.Span }
func (n *DelStmt) stmtNode()      {}

type ImportStmt struct {
	Span   Span
	Module string
	Alias  string
}

func (n *ImportStmt) Kind() string   { return "ImportStmt" }
func (n *ImportStmt) NodeSpan() Span { return n.Span }
func (n *ImportStmt) stmtNode()      {}

type ImportName struct {
	Name  string
	Alias string
}

type FromImportStmt struct {
	Span   Span
	Module string
	Names  []ImportName
}

func (n *FromImportStmt) Kind() string   { return "FromImportStmt" }
func (n *FromImportStmt) NodeSpan() Span { return n.Span }
func (n *FromImportStmt) stmtNode()      {}

// --- Compound statements ---

type ElifClause struct {
	Span Span
	Cond Expr
	Body []Stmt
}

type IfStmt struct {
	Span  Span
	Cond  Expr
	Body  []Stmt
	Elifs []ElifClause
	Else  []Stmt
}

func (n *IfStmt) Kind() string   { return "IfStmt" }
func (n *IfStmt) NodeSpan() Span { return n.Span }
func (n *IfStmt) stmtNode()      {}

type WhileStmt struct {
	Span Span
	Cond Expr
	Body []Stmt
}

func (n *WhileStmt) Kind() string   { return "WhileStmt" }
func (n *WhileStmt) NodeSpan() Span { return n.Span }
func (n *WhileStmt) stmtNode()      {}

// ForStmt iterates Iter; with more than one target each item is unpacked.
type ForStmt struct {
	Span    Span
	Targets []string
	Iter    Expr
	Body    []Stmt
}

func (n *ForStmt) Kind() string   { return "ForStmt" }
func (n *ForStmt) NodeSpan() Span { return n.Span }
func (n *ForStmt) stmtNode()      {}

type FuncDef struct {
	Span        Span
	Name        string
	Params      []Param
	Body        []Stmt
	IsGenerator bool
}

func (n *FuncDef) Kind() string   { return "FuncDef" }
func (n *FuncDef) NodeSpan() Span { return n.Span }
func (n *FuncDef) stmtNode()      {}

type ClassDef struct {
	Span    Span
	Name    string
	Super   Expr
	Methods []*FuncDef
}

func (n *ClassDef) Kind() string   { return "ClassDef" }
func (n *ClassDef) NodeSpan() Span { return n.Span }
func (n *ClassDef) stmtNode()      {}

// ExceptClause is one "kecuali [Type [sebagai name]]:" handler. A nil Type
// catches everything.
type ExceptClause struct {
	Span Span
	Type Expr
	Name string
	Body []Stmt
}

type TryStmt struct {
	Span     Span
	Body     []Stmt
	Handlers []ExceptClause
	Finally  []Stmt
}

func (n *TryStmt) Kind() string   { return "TryStmt" }
func (n *TryStmt) NodeSpan() Span { return n.Span }
func (n *TryStmt) stmtNode()      {}

type WithStmt struct {
	Span    Span
	Context Expr
	Name    string
	Body    []Stmt
}

func (n *WithStmt) Kind() string   { return "WithStmt" }
func (n *WithStmt) NodeSpan() Span { return n.Span }
func (n *WithStmt) stmtNode()      {}

type CaseClause struct {
	Span    Span
	Pattern Expr
	Guard   Expr
	Body    []Stmt
}

type MatchStmt struct {
	Span    Span
	Subject Expr
	Cases   []CaseClause
}

func (n *MatchStmt) Kind() string   { return "MatchStmt" }
func (n *MatchStmt) NodeSpan() Span { return n.Span }
func (n *MatchStmt) stmtNode()      {}

// --- Program ---

type Program struct {
	Span       Span
	Statements []Stmt
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
