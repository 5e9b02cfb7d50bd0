// Package agent wraps a locally hosted language model behind a small
// conversational assistant for code review tasks. Static-analysis findings
// are linearized into the prompt so the model sees the same evidence the
// scanner reported.
package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Nexaaman/CodeDoc/analysis"
)

const systemPrompt = "You are a senior software engineer reviewing code. " +
	"Be concrete, cite line numbers, and format responses in Markdown."

// maxHistoryPairs bounds conversation memory: besides the system prompt and
// the initial request, only the last N user/assistant exchanges are kept.
const maxHistoryPairs = 2

// Agent drives the chat client for file analysis and fix suggestions.
type Agent struct {
	client  *Client
	history []Message
	log     *zap.Logger
}

// New creates an agent backed by the given chat client.
func New(client *Client, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{client: client, log: log}
}

// AnalyzeFile reads a source file, scans it, and asks the model for a
// narrative review grounded in the static findings.
func (a *Agent) AnalyzeFile(ctx context.Context, path string) (string, error) {
	code, err := readCapped(path)
	if err != nil {
		return "", err
	}

	result := analysis.Scan([]byte(code), path)
	prompt := buildAnalysisPrompt(path, code, result)

	return a.ask(ctx, prompt)
}

// SuggestFix asks the model for a corrected version of the whole file and
// returns the code block from its reply.
func (a *Agent) SuggestFix(ctx context.Context, path string) (string, error) {
	code, err := readCapped(path)
	if err != nil {
		return "", err
	}

	result := analysis.Scan([]byte(code), path)

	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite the file %s so that the issues below are fixed. ", path)
	b.WriteString("Reply with the complete corrected file in a single ```python code block.\n\n")
	b.WriteString("Issues:\n")
	b.WriteString(linearizeFindings(result.Issues))
	b.WriteString("\nCode:\n```python\n")
	b.WriteString(code)
	b.WriteString("\n```\n")

	reply, err := a.ask(ctx, b.String())
	if err != nil {
		return "", err
	}

	fixed := extractCodeBlock(reply)
	if fixed == "" {
		return "", fmt.Errorf("model reply contained no code block")
	}
	return fixed, nil
}

// ask appends the prompt to the conversation, truncates memory, and sends
// the request.
func (a *Agent) ask(ctx context.Context, prompt string) (string, error) {
	a.history = append(a.history, Message{Role: "user", Content: prompt})

	messages := append([]Message{{Role: "system", Content: systemPrompt}}, a.truncatedHistory()...)

	a.log.Debug("sending prompt", zap.Int("messages", len(messages)), zap.Int("prompt_len", len(prompt)))
	reply, err := a.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	a.history = append(a.history, Message{Role: "assistant", Content: reply})
	return reply, nil
}

// truncatedHistory keeps the first user message plus the last
// maxHistoryPairs exchanges.
func (a *Agent) truncatedHistory() []Message {
	keep := maxHistoryPairs * 2
	if len(a.history) <= 1+keep {
		return a.history
	}
	truncated := make([]Message, 0, 1+keep)
	truncated = append(truncated, a.history[0])
	truncated = append(truncated, a.history[len(a.history)-keep:]...)
	return truncated
}

// buildAnalysisPrompt combines the source text with linearized findings.
func buildAnalysisPrompt(path, code string, result analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following source code.\n\nFile: %s\n", path)
	fmt.Fprintf(&b, "Static quality score: %d/100\n\n", result.Score)

	if len(result.Issues) > 0 {
		b.WriteString("Static analysis findings:\n")
		b.WriteString(linearizeFindings(result.Issues))
		b.WriteString("\n")
	}

	b.WriteString("Code:\n```python\n")
	b.WriteString(code)
	b.WriteString("\n```\n\n")
	b.WriteString("Please provide:\n")
	b.WriteString("1. A brief summary of what the code does.\n")
	b.WriteString("2. Potential bugs or security risks.\n")
	b.WriteString("3. Suggestions for improvement (style or performance).\n")

	return b.String()
}

// linearizeFindings renders issues as "Line L [SEVERITY]: message" lines.
func linearizeFindings(issues []analysis.Issue) string {
	var b strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&b, "Line %d [%s]: %s\n", issue.Line, issue.Severity, issue.Message)
	}
	return b.String()
}

// extractCodeBlock returns the contents of the first fenced code block.
func extractCodeBlock(reply string) string {
	start := strings.Index(reply, "```")
	if start == -1 {
		return ""
	}
	rest := reply[start+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// drop the language tag line
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimRight(rest[:end], "\n") + "\n"
}

// readCapped reads a file, truncating oversized content so a single file
// cannot blow the model's context window.
func readCapped(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(content) > maxReadChars {
		return string(content[:maxReadChars]) + "\n... [TRUNCATED: file too large] ...\n", nil
	}
	return string(content), nil
}
