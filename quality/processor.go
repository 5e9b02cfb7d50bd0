package quality

import (
	"regexp"
	"strconv"
	"strings"
)

// Finding is one line-level diagnostic parsed from a linter's output.
type Finding struct {
	Path    string
	Line    int
	Column  int
	Code    string
	Message string
}

// LineProcessor extracts findings from "path:line:col: CODE message" style
// linter output using a pattern with named capture groups. Both ruff's
// concise format and flake8's default format match the default pattern.
type LineProcessor struct {
	Pattern string
}

const defaultPattern = `^(?P<filename>[^:]+):(?P<line>\d+):(?P<column>\d+):? (?P<issue_code>[A-Z]+\d+) (?P<message>.+)$`

// NewLineProcessor returns a processor for the common linter output shape.
func NewLineProcessor() *LineProcessor {
	return &LineProcessor{Pattern: defaultPattern}
}

// Process parses tool output line by line. Lines that do not match the
// pattern are skipped rather than failing the whole parse: tool banners and
// summaries are noise, not errors.
func (p *LineProcessor) Process(output string) ([]Finding, error) {
	exp, err := regexp.Compile(p.Pattern)
	if err != nil {
		return nil, err
	}
	groupNames := exp.SubexpNames()

	var findings []Finding
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		groups := exp.FindStringSubmatch(line)
		if groups == nil {
			continue
		}

		var finding Finding
		for idx, content := range groups {
			switch groupNames[idx] {
			case "filename":
				finding.Path = content
			case "line":
				finding.Line, _ = strconv.Atoi(content)
			case "column":
				finding.Column, _ = strconv.Atoi(content)
			case "issue_code":
				finding.Code = content
			case "message":
				finding.Message = content
			}
		}
		findings = append(findings, finding)
	}

	return findings, nil
}
