// Package report renders scan results for the terminal: a findings table,
// a colored score panel, external tool statuses, and markdown from the
// assistant. It also exports results as JSON for machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nexaaman/CodeDoc/analysis"
	"github.com/Nexaaman/CodeDoc/quality"
)

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(14)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func severityStyle(s analysis.Severity) lipgloss.Style {
	switch s {
	case analysis.SeverityHigh:
		return highStyle
	case analysis.SeverityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

// Issues renders the findings as an aligned table, one finding per line.
func Issues(result analysis.Result) string {
	if len(result.Issues) == 0 {
		return goodStyle.Render("No static issues found.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-14s %-8s %s", "LINE", "CODE", "SEV", "MESSAGE")))
	b.WriteString("\n")

	for _, issue := range result.Issues {
		style := severityStyle(issue.Severity)
		fmt.Fprintf(&b, "%-6d %s %s %s\n",
			issue.Line,
			codeStyle.Render(issue.Code),
			style.Render(fmt.Sprintf("%-8s", issue.Severity)),
			issue.Message,
		)
	}
	return b.String()
}

// Score renders the 0-100 quality score as a colored panel: green at 80+,
// yellow at 50+, red below.
func Score(score int) string {
	var style lipgloss.Style
	switch {
	case score >= 80:
		style = goodStyle
	case score >= 50:
		style = okStyle
	default:
		style = badStyle
	}

	label := fmt.Sprintf("Quality Score: %s", style.Render(fmt.Sprintf("%d/100", score)))
	return panelStyle.Render(label)
}

// Tools renders external linter statuses. Statuses never feed the score;
// this is display only.
func Tools(results []quality.ToolResult) string {
	var b strings.Builder
	for _, result := range results {
		var status string
		switch result.Status {
		case quality.StatusOK:
			status = goodStyle.Render("ok")
		case quality.StatusIssue:
			status = okStyle.Render("issue")
		case quality.StatusMissing:
			status = lowStyle.Render("missing")
		default:
			status = badStyle.Render("error")
		}
		fmt.Fprintf(&b, "%-10s %s\n", result.Tool, status)
	}
	return b.String()
}

// Markdown renders assistant output for the terminal.
func Markdown(content string) (string, error) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// ExportJSON saves a scan result to the local filesystem as indented JSON.
func ExportJSON(result analysis.Result, filename string) error {
	data, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
