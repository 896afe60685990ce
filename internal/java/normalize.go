package java

import (
	"strings"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

// Normalize strips // and /* */ comments and collapses runs of spaces and
// tabs to a single space. Newlines are never removed or added, so a line
// number in the normalized text equals the line number in the raw text.
//
// The stripper is string-literal aware: comment markers inside a string or
// char literal are left alone. An unterminated block comment consumes to
// end-of-file and is reported as a warning, never as an error.
func Normalize(raw string) (string, []model.Warning) {
	stripped, warnings := stripComments(raw)
	return collapseSpaces(stripped), warnings
}

func stripComments(src string) (string, []model.Warning) {
	var (
		out      strings.Builder
		warnings []model.Warning
		line     = 1
	)
	out.Grow(len(src))

	const (
		stCode = iota
		stString
		stChar
	)
	state := stCode

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			line++
		}
		switch state {
		case stString:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				if src[i] == '\n' {
					line++
				}
				out.WriteByte(src[i])
			} else if c == '"' || c == '\n' {
				// a newline ends the literal too; Java strings do not span lines
				state = stCode
			}
		case stChar:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				if src[i] == '\n' {
					line++
				}
				out.WriteByte(src[i])
			} else if c == '\'' || c == '\n' {
				state = stCode
			}
		default: // stCode
			if c == '/' && i+1 < len(src) && src[i+1] == '/' {
				// line comment: blank out to end of line
				for i < len(src) && src[i] != '\n' {
					out.WriteByte(' ')
					i++
				}
				if i < len(src) {
					line++
					out.WriteByte('\n')
				}
				continue
			}
			if c == '/' && i+1 < len(src) && src[i+1] == '*' {
				startLine := line
				out.WriteString("  ")
				i += 2
				closed := false
				for i < len(src) {
					if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
						out.WriteString("  ")
						i++
						closed = true
						break
					}
					if src[i] == '\n' {
						line++
						out.WriteByte('\n')
					} else {
						out.WriteByte(' ')
					}
					i++
				}
				if !closed {
					warnings = append(warnings, model.Warning{
						Kind:   model.WarnUnterminatedComment,
						Line:   startLine,
						Detail: "block comment not closed before end of file",
					})
				}
				continue
			}
			out.WriteByte(c)
			if c == '"' {
				state = stString
			} else if c == '\'' {
				state = stChar
			}
		}
	}
	return out.String(), warnings
}

// collapseSpaces squeezes runs of spaces and tabs into one space. Newline
// positions are preserved exactly.
func collapseSpaces(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	var last byte = '\n'
	pending := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == ' ' || c == '\t' {
			pending = true
			continue
		}
		// drop the run entirely at line boundaries, keep one space otherwise
		if pending {
			if c != '\n' && last != '\n' {
				out.WriteByte(' ')
			}
			pending = false
		}
		out.WriteByte(c)
		last = c
	}
	return out.String()
}
