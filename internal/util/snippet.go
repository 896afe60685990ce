package util

import (
	"strings"
)

// ExtractSnippet returns up to maxLines lines around the 1-based line.
func ExtractSnippet(content string, line, maxLines int) string {
	if maxLines <= 0 {
		maxLines = 4
	}
	lines := strings.Split(content, "\n")
	if line < 1 {
		line = 1
	}
	s := line - 1 - maxLines/2
	e := line - 1 + maxLines/2
	if s < 0 {
		s = 0
	}
	if e > len(lines)-1 {
		e = len(lines) - 1
	}
	if s > e {
		return ""
	}
	return strings.Join(lines[s:e+1], "\n")
}
