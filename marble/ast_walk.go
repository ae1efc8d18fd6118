package marble

// Inspect traverses the tree rooted at node in depth-first pre-order,
// calling fn for each non-nil node. When fn returns false the children of
// that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	case *LetStmt:
		if n.Name != nil {
			Inspect(n.Name, fn)
		}
		inspectExpr(n.Value, fn)
	case *ReturnStmt:
		inspectExpr(n.Value, fn)
	case *ExprStmt:
		inspectExpr(n.Expr, fn)
	case *BlockStmt:
		for _, stmt := range n.Statements {
			Inspect(stmt, fn)
		}
	case *PrefixExpr:
		inspectExpr(n.Right, fn)
	case *InfixExpr:
		inspectExpr(n.Left, fn)
		inspectExpr(n.Right, fn)
	case *IfExpr:
		inspectExpr(n.Condition, fn)
		if n.Consequence != nil {
			Inspect(n.Consequence, fn)
		}
		if n.Alternative != nil {
			Inspect(n.Alternative, fn)
		}
	case *FunctionLiteral:
		for _, param := range n.Params {
			Inspect(param, fn)
		}
		if n.Body != nil {
			Inspect(n.Body, fn)
		}
	case *CallExpr:
		inspectExpr(n.Callee, fn)
		for _, arg := range n.Args {
			inspectExpr(arg, fn)
		}
	case *Identifier, *IntegerLiteral, *BoolLiteral:
	}
}

func inspectExpr(expr Expression, fn func(Node) bool) {
	if expr == nil {
		return
	}
	Inspect(expr, fn)
}
