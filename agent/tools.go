package agent

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Caps keep tool output small enough for a limited context window.
const (
	maxListedFiles   = 500
	maxReadChars     = 40000
	maxSearchMatches = 50
)

// Directories that add noise without adding information.
var ignoredDirs = map[string]bool{
	"__pycache__":   true,
	"node_modules":  true,
	"venv":          true,
	"env":           true,
	"dist":          true,
	"build":         true,
	"target":        true,
	"site-packages": true,
}

var ignoredExtensions = map[string]bool{
	".pyc":   true,
	".pyo":   true,
	".exe":   true,
	".dll":   true,
	".so":    true,
	".dylib": true,
}

// ListFiles lists all files under a directory recursively, skipping hidden
// entries, ignored directories, and binary artifacts. Output is capped at
// 500 entries.
func ListFiles(directory string) (string, error) {
	if _, err := os.Stat(directory); err != nil {
		return "", fmt.Errorf("directory %s does not exist", directory)
	}

	var files []string
	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != directory && (strings.HasPrefix(name, ".") || ignoredDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || ignoredExtensions[filepath.Ext(name)] {
			return nil
		}
		rel, err := filepath.Rel(directory, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(files) > maxListedFiles {
		return strings.Join(files[:maxListedFiles], "\n") +
			fmt.Sprintf("\n... (and %d more files)", len(files)-maxListedFiles), nil
	}
	return strings.Join(files, "\n"), nil
}

// ReadFile returns a file's content, truncated at 40k characters.
func ReadFile(path string) (string, error) {
	return readCapped(path)
}

// WriteFile writes content to a file, creating parent directories as
// needed. Existing content is overwritten.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directories for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SearchInFiles greps for a regex pattern across all listed files and
// returns "path:line: text" matches, capped at 50.
func SearchInFiles(pattern, directory string) (string, error) {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex: %w", err)
	}

	listing, err := ListFiles(directory)
	if err != nil {
		return "", err
	}

	var results []string
	for _, rel := range strings.Split(listing, "\n") {
		if rel == "" || strings.HasPrefix(rel, "...") {
			continue
		}
		path := filepath.Join(directory, rel)
		f, err := os.Open(path)
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(f)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			if regex.MatchString(scanner.Text()) {
				results = append(results, fmt.Sprintf("%s:%d: %s", rel, lineNum, strings.TrimSpace(scanner.Text())))
			}
		}
		f.Close()

		if len(results) >= maxSearchMatches {
			results = results[:maxSearchMatches]
			break
		}
	}

	if len(results) == 0 {
		return "No matches found.", nil
	}
	return strings.Join(results, "\n"), nil
}

// InspectStructure returns only the definition lines of a file, which is
// enough for the model to navigate large sources.
func InspectStructure(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var structure []string
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "def ") ||
			strings.HasPrefix(trimmed, "class ") ||
			strings.HasPrefix(trimmed, "@") {
			structure = append(structure, fmt.Sprintf("%d: %s", i+1, trimmed))
		}
	}

	if len(structure) == 0 {
		return "No definitions found.", nil
	}
	return strings.Join(structure, "\n"), nil
}
