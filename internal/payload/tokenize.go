// =============================================================================
// Transfer Payload Converter - Line Tokenizer
// =============================================================================
//
// This module splits pasted text into lines and lines into tokens. Users paste
// either genuinely tab-separated data (copied from a spreadsheet) or
// space-aligned data (copied from a terminal or a log), so each line is split
// in two stages:
//
//   1. Split on the tab character.
//   2. If that yields fewer than two tokens, split on runs of whitespace.
//
// Tab splitting is tried first because it is the documented format and keeps
// tokens that contain spaces intact.
//
// =============================================================================

package payload

import (
	"regexp"
	"strings"
)

// whitespaceRun matches the separator used by the fallback split.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Line is one non-blank input line.
type Line struct {
	// Number is the 1-based line number within the trimmed input.
	Number int

	// Text is the raw line.
	Text string
}

// SplitLines trims the input, splits it on newlines and drops lines that are
// blank after trimming.
func SplitLines(raw string) []Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var lines []Line
	for i, text := range strings.Split(trimmed, "\n") {
		if isLineBlank(text) {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}

// Tokenize splits a line using the tab-then-whitespace strategy.
//
// Tokens are returned untrimmed. The whitespace fallback keeps the empty token
// produced by leading whitespace, so " A B" yields ["", "A", "B"].
func Tokenize(line string) []string {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		parts = whitespaceRun.Split(line, -1)
	}
	return parts
}

// isLineBlank checks if a line contains only whitespace.
func isLineBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
