package analysis

import (
	"regexp"
	"strings"
)

var spaceRunPattern = regexp.MustCompile(` {2,}`)

// normalizeText prepares raw extracted text for pattern matching: line endings
// are unified to LF, tabs become spaces, and runs of spaces collapse to one.
// Line structure is preserved because bullet and section detection work per line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = spaceRunPattern.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// countWords counts whitespace-separated tokens.
func countWords(text string) int {
	return len(strings.Fields(text))
}
