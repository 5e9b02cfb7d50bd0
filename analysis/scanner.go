// Package analysis implements the static-analysis and scoring engine for
// Python source files. A scan parses the source with tree-sitter, walks the
// tree once applying a fixed rule set, records per-function metrics, and
// folds everything into a 0-100 quality score. Scans are pure: no state
// survives across calls, and concurrent scans are safe.
package analysis

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Rule thresholds. A function is flagged when it crosses one of these.
const (
	maxComplexity = 10
	maxArgs       = 6
	maxLength     = 60
)

// Scan analyzes a single Python source text and returns findings, metrics
// and score. The filename is used for display only. Scan always returns a
// Result: malformed input yields a single SYNTAX_ERR finding with empty
// metrics instead of an error.
func Scan(source []byte, filename string) Result {
	s := &scanner{src: source, filename: filename}
	return s.run()
}

// scanner is the per-call accumulator. One is created per Scan invocation
// and never shared.
type scanner struct {
	src      []byte
	filename string
	issues   []Issue
	metrics  []FunctionMetric
}

func (s *scanner) run() Result {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, s.src)
	if err != nil {
		s.report(CodeSyntaxErr, 0, SeverityHigh, "Syntax error: %v", err)
		return s.result()
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// The only early-exit path: one HIGH finding, no metrics.
		s.report(CodeSyntaxErr, firstErrorLine(root), SeverityHigh, "Syntax error: invalid syntax")
		return s.result()
	}

	s.walk(root)
	return s.result()
}

func (s *scanner) result() Result {
	return Result{
		Issues:  s.issues,
		Metrics: s.metrics,
		Score:   computeScore(s.issues, s.metrics),
	}
}

func (s *scanner) report(code string, line int, severity Severity, format string, args ...interface{}) {
	s.issues = append(s.issues, Issue{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Severity: severity,
	})
}

// walk dispatches rules on the current node, then descends into every child
// regardless of whether a rule fired. Rules never suppress one another.
func (s *scanner) walk(n *sitter.Node) {
	switch n.Type() {
	case nodeFunctionDef:
		s.checkFunction(n)
	case nodeClassDef:
		s.checkClass(n)
	case nodeExcept:
		s.checkExceptClause(n)
	case nodeCall:
		s.checkCall(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		s.walk(n.NamedChild(i))
	}
}

func (s *scanner) checkFunction(n *sitter.Node) {
	name := s.nodeText(n.ChildByFieldName("name"))
	line := int(n.StartPoint().Row) + 1
	length := int(n.EndPoint().Row) - int(n.StartPoint().Row)
	args := positionalParamCount(n.ChildByFieldName("parameters"))

	complexity := 1
	body := n.ChildByFieldName("body")
	if body != nil {
		complexity = functionComplexity(body)
	}

	s.metrics = append(s.metrics, FunctionMetric{
		Name:       name,
		Line:       line,
		Complexity: complexity,
		Length:     length,
		ArgsCount:  args,
	})

	if complexity > maxComplexity {
		s.report(CodeComplexity, line, SeverityMedium,
			"Function %q is too complex (cyclomatic: %d). Refactor logic.", name, complexity)
	}
	if body != nil && !hasDocstring(body) && statementCount(body) > 1 {
		s.report(CodeNoDoc, line, SeverityLow, "Function %q is missing a docstring.", name)
	}
	if args > maxArgs {
		s.report(CodeArgs, line, SeverityLow,
			"Function %q has %d arguments (max recommended: %d).", name, args, maxArgs)
	}
	if length > maxLength {
		s.report(CodeLength, line, SeverityLow, "Function %q is too long (%d lines).", name, length)
	}
}

func (s *scanner) checkClass(n *sitter.Node) {
	body := n.ChildByFieldName("body")
	if body == nil || !hasDocstring(body) {
		name := s.nodeText(n.ChildByFieldName("name"))
		s.report(CodeNoDoc, int(n.StartPoint().Row)+1, SeverityLow,
			"Class %q is missing a docstring.", name)
	}
}

func (s *scanner) checkExceptClause(n *sitter.Node) {
	line := int(n.StartPoint().Row) + 1

	caught := caughtExpression(n)
	if caught == nil {
		s.report(CodeBroadExcept, line, SeverityHigh,
			"Avoid bare 'except:'. Catch specific errors.")
		return
	}
	// "except Exception as e" wraps the name in an as_pattern.
	if caught.Type() == nodeAsPattern && caught.NamedChildCount() > 0 {
		caught = caught.NamedChild(0)
	}
	if caught.Type() == nodeIdentifier && s.nodeText(caught) == "Exception" {
		s.report(CodeBroadExcept, line, SeverityMedium,
			"Catching generic 'Exception' can hide bugs.")
	}
}

func (s *scanner) checkCall(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn != nil && fn.Type() == nodeIdentifier && s.nodeText(fn) == "print" {
		s.report(CodePrintStmt, int(n.StartPoint().Row)+1, SeverityLow,
			"Found 'print()' statement. Use logging instead?")
	}
}

func (s *scanner) nodeText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(s.src)
}

// caughtExpression returns the exception expression of an except clause, or
// nil for a bare "except:".
func caughtExpression(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case nodeBlock, nodeComment:
			continue
		}
		return c
	}
	return nil
}

// statementCount counts statements in a block, excluding comments so that
// the count matches what the grammar considers executable body entries.
func statementCount(body *sitter.Node) int {
	count := 0
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if body.NamedChild(i).Type() != nodeComment {
			count++
		}
	}
	return count
}

// hasDocstring reports whether the first statement of a block is a bare
// string literal.
func hasDocstring(body *sitter.Node) bool {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == nodeComment {
			continue
		}
		if c.Type() != nodeExprStmt || c.NamedChildCount() == 0 {
			return false
		}
		return c.NamedChild(0).Type() == nodeString
	}
	return false
}

// positionalParamCount counts declared positional parameters: plain,
// typed and defaulted names. Parameters after a bare "*" or "*args" are
// keyword-only and excluded, as are the splats themselves.
func positionalParamCount(params *sitter.Node) int {
	if params == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		switch params.NamedChild(i).Type() {
		case nodeIdentifier, "typed_parameter", "default_parameter", "typed_default_parameter":
			count++
		case "list_splat_pattern", "keyword_separator":
			return count
		}
	}
	return count
}

// firstErrorLine locates the first syntax-error node in document order and
// returns its 1-based line, or 0 when no reliable position exists.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == nodeError || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if line := firstErrorLine(n.Child(i)); line > 0 {
			return line
		}
	}
	return 0
}
