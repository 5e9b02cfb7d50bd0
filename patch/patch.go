// Package patch computes unified diffs between an original file and a
// proposed fix, and applies fixes by overwriting the target file.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const contextLines = 3

type lineDiff struct {
	op   diffmatchpatch.Operation
	text string
}

// Unified returns a unified diff between original and fixed content, with
// "a/<filename>" and "b/<filename>" headers. Identical inputs yield an
// empty string.
func Unified(original, fixed, filename string) string {
	if original == fixed {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(original, fixed)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []lineDiff
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			lines = append(lines, lineDiff{op: d.Type, text: text})
		}
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- a/%s\n+++ b/%s\n", filename, filename)

	oldLine, newLine := 1, 1
	i := 0
	for i < len(lines) {
		if lines[i].op == diffmatchpatch.DiffEqual {
			oldLine++
			newLine++
			i++
			continue
		}

		// pull in up to contextLines of leading context
		start := i
		ctxBefore := 0
		for start > 0 && ctxBefore < contextLines && lines[start-1].op == diffmatchpatch.DiffEqual {
			start--
			ctxBefore++
		}

		// extend over nearby changes: a gap wider than twice the context
		// starts a new hunk
		lastChange := i
		equalRun := 0
		for j := i; j < len(lines); j++ {
			if lines[j].op == diffmatchpatch.DiffEqual {
				equalRun++
				if equalRun > contextLines*2 {
					break
				}
			} else {
				equalRun = 0
				lastChange = j
			}
		}

		end := lastChange + 1
		ctxAfter := 0
		for end < len(lines) && ctxAfter < contextLines && lines[end].op == diffmatchpatch.DiffEqual {
			end++
			ctxAfter++
		}

		var body strings.Builder
		oldCount, newCount := 0, 0
		for k := start; k < end; k++ {
			switch lines[k].op {
			case diffmatchpatch.DiffEqual:
				body.WriteString(" " + lines[k].text)
				oldCount++
				newCount++
			case diffmatchpatch.DiffDelete:
				body.WriteString("-" + lines[k].text)
				oldCount++
			case diffmatchpatch.DiffInsert:
				body.WriteString("+" + lines[k].text)
				newCount++
			}
		}

		fmt.Fprintf(&buf, "@@ -%d,%d +%d,%d @@\n", oldLine-ctxBefore, oldCount, newLine-ctxBefore, newCount)
		buf.WriteString(body.String())

		for k := i; k < end; k++ {
			switch lines[k].op {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				oldLine++
			case diffmatchpatch.DiffInsert:
				newLine++
			}
		}
		i = end
	}

	return buf.String()
}

// splitLines splits text into lines that keep their trailing newline. A
// final line without one gets a newline appended so every diff line is
// terminated.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}

// Apply overwrites the file with the fixed content.
func Apply(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("apply fix to %s: %w", path, err)
	}
	return nil
}
