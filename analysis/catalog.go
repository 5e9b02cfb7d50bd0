package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed issues/*.toml
var issueFS embed.FS

// IssueMeta is the catalog entry for one issue code: a short title and a
// longer markdown description explaining the finding and how to fix it.
// HTML carries the description rendered and sanitized for embedding in
// generated reports.
type IssueMeta struct {
	Code             string `toml:"Code"`
	Title            string `toml:"Title"`
	ShortDescription string `toml:"ShortDescription"`
	Description      string `toml:"Description"`
	HTML             string `toml:"-"`
}

// Catalog loads the embedded issue metadata, renders each description from
// markdown to sanitized HTML, and returns the entries sorted by code.
func Catalog() ([]IssueMeta, error) {
	entries, err := issueFS.ReadDir("issues")
	if err != nil {
		return nil, err
	}

	var issues []IssueMeta
	for _, entry := range entries {
		content, err := issueFS.ReadFile("issues/" + entry.Name())
		if err != nil {
			return nil, err
		}

		var meta IssueMeta
		if err := toml.Unmarshal(content, &meta); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if meta.Code == "" {
			return nil, fmt.Errorf("issue file %s has an empty code", entry.Name())
		}

		html, err := renderMarkdown(meta.Description)
		if err != nil {
			return nil, err
		}
		meta.HTML = html

		issues = append(issues, meta)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Code < issues[j].Code
	})

	return issues, nil
}

// LookupIssue returns the catalog entry for a code, or an error when the
// code is unknown.
func LookupIssue(code string) (IssueMeta, error) {
	issues, err := Catalog()
	if err != nil {
		return IssueMeta{}, err
	}
	for _, meta := range issues {
		if meta.Code == code {
			return meta, nil
		}
	}
	return IssueMeta{}, fmt.Errorf("unknown issue code: %s", code)
}

// renderMarkdown converts a markdown description using GitHub-flavored
// markdown and sanitizes the result.
func renderMarkdown(content string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}

	return bluemonday.UGCPolicy().Sanitize(buf.String()), nil
}
