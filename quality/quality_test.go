package quality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMissingTool(t *testing.T) {
	r := NewRunner()
	result := r.run(context.Background(), "definitely-not-a-real-linter-xyz")

	assert.Equal(t, StatusMissing, result.Status)
	assert.Contains(t, result.Output, "not installed")
}

func TestRunCleanExit(t *testing.T) {
	r := NewRunner()
	result := r.run(context.Background(), "sh", "-c", "echo all good")

	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Output, "all good")
}

func TestRunNonzeroExitIsIssue(t *testing.T) {
	r := NewRunner()
	result := r.run(context.Background(), "sh", "-c", "echo found problems; exit 1")

	assert.Equal(t, StatusIssue, result.Status)
	assert.Contains(t, result.Output, "found problems")
}

func TestRunAllNeverFaults(t *testing.T) {
	r := NewRunner()
	results := r.RunAll(context.Background(), "does-not-exist.py")

	require.Len(t, results, 3)
	for _, result := range results {
		assert.NotEmpty(t, result.Tool)
		assert.Contains(t, []Status{StatusOK, StatusIssue, StatusMissing, StatusError}, result.Status)
	}
}

func TestLineProcessorParsesLinterOutput(t *testing.T) {
	output := "app.py:3:1: E302 expected 2 blank lines, got 1\n" +
		"app.py:10:5: F401 'os' imported but unused\n" +
		"Found 2 errors.\n"

	findings, err := NewLineProcessor().Process(output)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, Finding{
		Path:    "app.py",
		Line:    3,
		Column:  1,
		Code:    "E302",
		Message: "expected 2 blank lines, got 1",
	}, findings[0])
	assert.Equal(t, "F401", findings[1].Code)
	assert.Equal(t, 10, findings[1].Line)
}

func TestLineProcessorBadPattern(t *testing.T) {
	p := &LineProcessor{Pattern: "("}
	_, err := p.Process("anything")
	assert.Error(t, err)
}
