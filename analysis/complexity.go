package analysis

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Tree-sitter node types the scanner dispatches on.
const (
	nodeFunctionDef = "function_definition"
	nodeClassDef    = "class_definition"
	nodeIf          = "if_statement"
	nodeElif        = "elif_clause"
	nodeFor         = "for_statement"
	nodeWhile       = "while_statement"
	nodeExcept      = "except_clause"
	nodeCall        = "call"
	nodeBlock       = "block"
	nodeComment     = "comment"
	nodeExprStmt    = "expression_statement"
	nodeString      = "string"
	nodeIdentifier  = "identifier"
	nodeAsPattern   = "as_pattern"
	nodeError       = "ERROR"
)

// functionComplexity computes McCabe cyclomatic complexity for one function
// body: a base of 1, plus one per conditional branch (if/elif), one per loop,
// and one per exception handler. Nested function definitions are treated as
// opaque leaves so a closure's internal branching never inflates the
// enclosing function's count; the outer scan visits them independently.
func functionComplexity(body *sitter.Node) int {
	complexity := 1
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case nodeFunctionDef:
			return
		case nodeIf, nodeElif, nodeFor, nodeWhile, nodeExcept:
			complexity++
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		walk(body.NamedChild(i))
	}
	return complexity
}
