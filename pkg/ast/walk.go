package ast

// Inspect traverses the tree rooted at node in depth-first order. fn is
// called for each node; if it returns false the node's children are skipped.
// Nil children are never visited.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || isNilNode(node) || !fn(node) {
		return
	}
	exprs := func(list ...Expr) {
		for _, e := range list {
			if e != nil {
				Inspect(e, fn)
			}
		}
	}
	stmts := func(list []Stmt) {
		for _, s := range list {
			Inspect(s, fn)
		}
	}
	params := func(list []Param) {
		for _, p := range list {
			if p.Default != nil {
				Inspect(p.Default, fn)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		stmts(n.Statements)
	case *FStringExpr:
		exprs(n.Parts...)
	case *FormattedValue:
		exprs(n.Value)
	case *BinaryExpr:
		exprs(n.Left, n.Right)
	case *UnaryExpr:
		exprs(n.Operand)
	case *CondExpr:
		exprs(n.Cond, n.Then, n.Else)
	case *CallExpr:
		exprs(n.Callee)
		exprs(n.Args...)
	case *AttributeExpr:
		exprs(n.Object)
	case *IndexExpr:
		exprs(n.Object, n.Index)
	case *SliceExpr:
		exprs(n.Object, n.Start, n.Stop, n.Step)
	case *ListExpr:
		exprs(n.Elements...)
	case *TupleExpr:
		exprs(n.Elements...)
	case *SetExpr:
		exprs(n.Elements...)
	case *DictExpr:
		for _, e := range n.Entries {
			exprs(e.Key, e.Value)
		}
	case *ListComp:
		exprs(n.Clause.Iter, n.Element, n.Clause.Cond)
	case *SetComp:
		exprs(n.Clause.Iter, n.Element, n.Clause.Cond)
	case *DictComp:
		exprs(n.Clause.Iter, n.Key, n.Value, n.Clause.Cond)
	case *LambdaExpr:
		params(n.Params)
		exprs(n.Body)
	case *ExprStmt:
		exprs(n.Expr)
	case *PrintStmt:
		exprs(n.Args...)
	case *AssignStmt:
		exprs(n.Target, n.Value)
	case *ReturnStmt:
		exprs(n.Value)
	case *YieldStmt:
		exprs(n.Value)
	case *RaiseStmt:
		exprs(n.Value)
	case *AssertStmt:
		exprs(n.Cond, n.Message)
	case *DelStmt:
		exprs(n.Targets...)
	case *IfStmt:
		exprs(n.Cond)
		stmts(n.Body)
		for _, c := range n.Elifs {
			exprs(c.Cond)
			stmts(c.Body)
		}
		stmts(n.Else)
	case *WhileStmt:
		exprs(n.Cond)
		stmts(n.Body)
	case *ForStmt:
		exprs(n.Iter)
		stmts(n.Body)
	case *FuncDef:
		params(n.Params)
		stmts(n.Body)
	case *ClassDef:
		exprs(n.Super)
		for _, m := range n.Methods {
			Inspect(m, fn)
		}
	case *TryStmt:
		stmts(n.Body)
		for _, h := range n.Handlers {
			exprs(h.Type)
			stmts(h.Body)
		}
		stmts(n.Finally)
	case *WithStmt:
		exprs(n.Context)
		stmts(n.Body)
	case *MatchStmt:
		exprs(n.Subject)
		for _, c := range n.Cases {
			exprs(c.Pattern, c.Guard)
			stmts(c.Body)
		}
	}
}

// ContainsYield reports whether body contains a yield statement, looking
// through nested blocks but not into nested function, class or lambda
// definitions.
func ContainsYield(body []Stmt) bool {
	found := false
	for _, s := range body {
		Inspect(s, func(n Node) bool {
			if found {
				return false
			}
			switch n.(type) {
			case *YieldStmt:
				found = true
				return false
			case *FuncDef, *ClassDef, *LambdaExpr:
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

// isNilNode catches typed nil pointers stored in a Node interface.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *FuncDef:
		return v == nil
	case *Program:
		return v == nil
	}
	return false
}
