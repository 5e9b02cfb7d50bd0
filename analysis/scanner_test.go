package analysis

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestScanMalformedSource(t *testing.T) {
	result := Scan([]byte("def broken(:\n    pass\n"), "broken.py")

	if len(result.Issues) != 1 {
		t.Fatalf("expected exactly one issue, got %d: %v", len(result.Issues), result.Issues)
	}
	issue := result.Issues[0]
	if issue.Code != CodeSyntaxErr {
		t.Errorf("expected %s, got %s", CodeSyntaxErr, issue.Code)
	}
	if issue.Severity != SeverityHigh {
		t.Errorf("expected HIGH severity, got %s", issue.Severity)
	}
	if len(result.Metrics) != 0 {
		t.Errorf("expected no metrics after a parse failure, got %d", len(result.Metrics))
	}
	if result.Score != 90 {
		t.Errorf("expected score 90 (100 - one HIGH), got %d", result.Score)
	}
}

func TestScanBareExceptScenario(t *testing.T) {
	src := "def risky():\n" +
		"    x = 1\n" +
		"    try:\n" +
		"        x = 2\n" +
		"    except:\n" +
		"        pass\n"

	result := Scan([]byte(src), "risky.py")

	want := []Issue{
		{Code: CodeNoDoc, Message: `Function "risky" is missing a docstring.`, Line: 1, Severity: SeverityLow},
		{Code: CodeBroadExcept, Message: "Avoid bare 'except:'. Catch specific errors.", Line: 5, Severity: SeverityHigh},
	}
	if diff := deep.Equal(result.Issues, want); diff != nil {
		t.Errorf("issues mismatch: %v", diff)
	}

	wantMetrics := []FunctionMetric{
		{Name: "risky", Line: 1, Complexity: 2, Length: 5, ArgsCount: 0},
	}
	if diff := deep.Equal(result.Metrics, wantMetrics); diff != nil {
		t.Errorf("metrics mismatch: %v", diff)
	}

	if result.Score != 88 {
		t.Errorf("expected score 88 (100 - 2 - 10), got %d", result.Score)
	}
}

func TestScanCatchingGenericException(t *testing.T) {
	src := "def guarded():\n" +
		"    \"\"\"Docstring.\"\"\"\n" +
		"    try:\n" +
		"        work()\n" +
		"    except Exception as exc:\n" +
		"        raise exc\n"

	result := Scan([]byte(src), "guarded.py")

	if len(result.Issues) != 1 {
		t.Fatalf("expected one issue, got %v", result.Issues)
	}
	issue := result.Issues[0]
	if issue.Code != CodeBroadExcept || issue.Severity != SeverityMedium || issue.Line != 5 {
		t.Errorf("unexpected issue: %+v", issue)
	}
}

func TestScanNarrowExceptIsClean(t *testing.T) {
	src := "def guarded():\n" +
		"    \"\"\"Docstring.\"\"\"\n" +
		"    try:\n" +
		"        work()\n" +
		"    except ValueError:\n" +
		"        pass\n"

	result := Scan([]byte(src), "guarded.py")

	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
}

func TestScanOversizedFunction(t *testing.T) {
	var b strings.Builder
	b.WriteString("def big(a1, a2, a3, a4, a5, a6, a7, a8):\n")
	for i := 0; i < 11; i++ {
		b.WriteString("    if a1:\n")
		b.WriteString("        a1 = a1 + 1\n")
	}
	for i := 0; i < 48; i++ {
		b.WriteString("    a1 = a1 + 1\n")
	}

	result := Scan([]byte(b.String()), "big.py")

	wantMetrics := []FunctionMetric{
		{Name: "big", Line: 1, Complexity: 12, Length: 70, ArgsCount: 8},
	}
	if diff := deep.Equal(result.Metrics, wantMetrics); diff != nil {
		t.Fatalf("metrics mismatch: %v", diff)
	}

	var codes []string
	for _, issue := range result.Issues {
		codes = append(codes, issue.Code)
	}
	wantCodes := []string{CodeComplexity, CodeNoDoc, CodeArgs, CodeLength}
	if diff := deep.Equal(codes, wantCodes); diff != nil {
		t.Errorf("issue codes mismatch: %v", diff)
	}

	// Issues: 5 + 2 + 2 + 2. Metrics: (12-10)*2 + 2 + 3.
	if result.Score != 80 {
		t.Errorf("expected score 80, got %d", result.Score)
	}
}

func TestScanClassDocstrings(t *testing.T) {
	documented := "class Documented:\n" +
		"    \"\"\"Has a docstring.\"\"\"\n" +
		"    def f(self):\n" +
		"        return 1\n"

	result := Scan([]byte(documented), "documented.py")
	if len(result.Issues) != 0 {
		t.Errorf("documented class should produce no findings, got %v", result.Issues)
	}

	bare := "class Bare:\n" +
		"    def f(self):\n" +
		"        return 1\n"

	result = Scan([]byte(bare), "bare.py")
	if len(result.Issues) != 1 || result.Issues[0].Code != CodeNoDoc || result.Issues[0].Line != 1 {
		t.Errorf("expected one NO_DOC on line 1, got %v", result.Issues)
	}
}

func TestScanPrintAtAnyDepth(t *testing.T) {
	src := "def outer():\n" +
		"    def inner():\n" +
		"        print(\"a\")\n" +
		"    print(\"b\")\n" +
		"print(\"c\")\n"

	result := Scan([]byte(src), "prints.py")

	var lines []int
	for _, issue := range result.Issues {
		if issue.Code == CodePrintStmt {
			lines = append(lines, issue.Line)
		}
	}
	if diff := deep.Equal(lines, []int{3, 4, 5}); diff != nil {
		t.Errorf("print lines mismatch: %v", diff)
	}
}

func TestScanMethodCallIsNotPrint(t *testing.T) {
	src := "def log(console):\n" +
		"    console.print(\"styled\")\n"

	result := Scan([]byte(src), "method.py")
	for _, issue := range result.Issues {
		if issue.Code == CodePrintStmt {
			t.Errorf("attribute call flagged as print: %+v", issue)
		}
	}
}

func TestScanIdempotent(t *testing.T) {
	src := "class Thing:\n" +
		"    def run(self, a, b):\n" +
		"        if a:\n" +
		"            print(b)\n" +
		"        return a\n"

	first := Scan([]byte(src), "thing.py")
	second := Scan([]byte(src), "thing.py")

	if diff := deep.Equal(first, second); diff != nil {
		t.Errorf("scan is not idempotent: %v", diff)
	}
}

func TestScanEmptySource(t *testing.T) {
	result := Scan([]byte(""), "empty.py")

	if len(result.Issues) != 0 || len(result.Metrics) != 0 {
		t.Errorf("empty source should scan clean, got %+v", result)
	}
	if result.Score != 100 {
		t.Errorf("expected score 100, got %d", result.Score)
	}
}
