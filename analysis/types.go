package analysis

// Severity classifies how strongly a finding should weigh on the score.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Weight returns the score deduction for a severity. Unknown severities
// weigh the same as LOW.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 10
	case SeverityMedium:
		return 5
	default:
		return 2
	}
}

// Issue codes reported by the scanner.
const (
	CodeSyntaxErr   = "SYNTAX_ERR"
	CodeComplexity  = "COMPLEXITY"
	CodeNoDoc       = "NO_DOC"
	CodeArgs        = "ARGS"
	CodeLength      = "LENGTH"
	CodeBroadExcept = "BROAD_EXCEPT"
	CodePrintStmt   = "PRINT_STMT"
)

// Issue is a single static finding. Message is display-only; no decision
// logic downstream may depend on it.
type Issue struct {
	Code     string   `json:"issue_code"`
	Message  string   `json:"issue_text"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
}

// FunctionMetric is the quantitative profile of one function definition.
// Names are not guaranteed unique within a file.
type FunctionMetric struct {
	Name       string `json:"name"`
	Line       int    `json:"line"`
	Complexity int    `json:"complexity"`
	Length     int    `json:"length"`
	ArgsCount  int    `json:"args_count"`
}

// Result is the aggregate returned per scan: findings and metrics in
// document order, plus a quality score in [0,100].
type Result struct {
	Issues  []Issue          `json:"issues"`
	Metrics []FunctionMetric `json:"metrics"`
	Score   int              `json:"score"`
}
