package java

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

type ArgKind int

const (
	// ArgSymbol is an expression or identifier, opaque to literal-matching
	// rules. The raw text is preserved.
	ArgSymbol ArgKind = iota
	ArgString
	ArgNumber
)

// Argument is one call argument in source order. Ambiguous arguments are
// kept as symbols, never dropped, so rules can match by position.
type Argument struct {
	Kind ArgKind
	Str  string  // decoded value when Kind == ArgString
	Num  float64 // value when Kind == ArgNumber
	Raw  string  // trimmed source text, always set
}

// CallSite is one recognized crypto API invocation.
type CallSite struct {
	API  string // canonical identifier, e.g. "Cipher.getInstance"
	Args []Argument
	Line int // 1-based line in the original source
	Raw  string
}

// Arg returns the i-th argument. Out-of-range access reports absent instead
// of panicking; rules treat absent as non-match.
func (c CallSite) Arg(i int) (Argument, bool) {
	if i < 0 || i >= len(c.Args) {
		return Argument{}, false
	}
	return c.Args[i], true
}

// StringArg returns the decoded value of the i-th argument when it is a
// string literal.
func (c CallSite) StringArg(i int) (string, bool) {
	a, ok := c.Arg(i)
	if !ok || a.Kind != ArgString {
		return "", false
	}
	return a.Str, true
}

// NumberArg returns the numeric value of the i-th argument when it is a
// number literal.
func (c CallSite) NumberArg(i int) (float64, bool) {
	a, ok := c.Arg(i)
	if !ok || a.Kind != ArgNumber {
		return 0, false
	}
	return a.Num, true
}

// Extract scans normalized source for invocations of registered crypto APIs
// and returns them in source order. It is a depth-counting scanner, not a
// regex: nested calls, strings with commas, and qualified receivers are
// handled; an argument list left open at end-of-file drops only that call
// site and emits a warning.
func Extract(src string, reg Registry) ([]CallSite, []model.Warning) {
	var (
		sites    []CallSite
		warnings []model.Warning
	)
	lines := newLineIndex(src)

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			i = skipString(src, i)
		case c == '\'':
			i = skipChar(src, i)
		case isIdentStart(c) && (i == 0 || !isIdentPart(src[i-1]) && src[i-1] != '.'):
			segs, end := readQualifiedName(src, i)
			if len(segs) == 1 && segs[0].text == "new" {
				// constructor form: new [pkg.]Type(...)
				j := skipSpaces(src, end)
				tsegs, tend := readQualifiedName(src, j)
				if len(tsegs) > 0 {
					recv := tsegs[len(tsegs)-1]
					if api, ok := reg.matchConstructor(recv.text); ok {
						if site, w, matched := parseCall(src, lines, api, recv.pos, tend); matched {
							sites = append(sites, site)
							warnings = append(warnings, w...)
							i = skipSpaces(src, tend) + 1 // resume inside the arg list
							continue
						} else {
							warnings = append(warnings, w...)
							i = tend
							continue
						}
					}
				}
				i = tend
				if len(tsegs) == 0 {
					i = end
				}
				continue
			}
			if len(segs) >= 2 {
				recv := segs[len(segs)-2]
				meth := segs[len(segs)-1]
				if api, ok := reg.matchMethod(recv.text, meth.text); ok {
					if site, w, matched := parseCall(src, lines, api, recv.pos, end); matched {
						sites = append(sites, site)
						warnings = append(warnings, w...)
						i = skipSpaces(src, end) + 1 // resume inside the arg list
						continue
					} else {
						warnings = append(warnings, w...)
					}
				}
			}
			if len(segs) == 1 {
				// bare constructor-style call, e.g. factory-less SecretKeySpec(...)
				if api, ok := reg.matchConstructor(segs[0].text); ok {
					if site, w, matched := parseCall(src, lines, api, segs[0].pos, end); matched {
						sites = append(sites, site)
						warnings = append(warnings, w...)
						i = skipSpaces(src, end) + 1
						continue
					} else {
						warnings = append(warnings, w...)
					}
				}
			}
			i = end
		default:
			i++
		}
	}
	return sites, warnings
}

type segment struct {
	text string
	pos  int
}

// readQualifiedName reads ident(.ident)* starting at pos and returns the
// segments plus the index just past the name.
func readQualifiedName(src string, pos int) ([]segment, int) {
	var segs []segment
	i := pos
	for i < len(src) && isIdentStart(src[i]) {
		start := i
		for i < len(src) && isIdentPart(src[i]) {
			i++
		}
		segs = append(segs, segment{text: src[start:i], pos: start})
		if i < len(src) && src[i] == '.' && i+1 < len(src) && isIdentStart(src[i+1]) {
			i++
			continue
		}
		break
	}
	return segs, i
}

// parseCall expects an argument list to open at or after nameEnd. It returns
// matched=false when no '(' follows or the list never closes.
func parseCall(src string, lines lineIndex, api API, namePos, nameEnd int) (CallSite, []model.Warning, bool) {
	open := skipSpaces(src, nameEnd)
	if open >= len(src) || src[open] != '(' {
		return CallSite{}, nil, false
	}
	args, end, warnings, ok := parseArgs(src, lines, open)
	if !ok {
		return CallSite{}, warnings, false
	}
	return CallSite{
		API:  api.Name(),
		Args: args,
		Line: lines.lineOf(namePos),
		Raw:  src[namePos:end],
	}, warnings, true
}

// parseArgs scans a balanced argument list starting at the '(' at open.
// Commas split arguments only at depth one; parens, brackets, braces and
// string/char literals nest. Returns the index just past the closing ')'.
func parseArgs(src string, lines lineIndex, open int) ([]Argument, int, []model.Warning, bool) {
	var (
		args     []Argument
		warnings []model.Warning
	)
	depth := 0
	argStart := open + 1
	i := open
	for i < len(src) {
		switch src[i] {
		case '"':
			i = skipString(src, i)
			continue
		case '\'':
			i = skipChar(src, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && src[i] == ')' {
				raw := strings.TrimSpace(src[argStart:i])
				if raw != "" || len(args) > 0 {
					arg, w := classifyArg(raw, lines.lineOf(argStart))
					args = append(args, arg)
					warnings = append(warnings, w...)
				}
				return args, i + 1, warnings, true
			}
		case ',':
			if depth == 1 {
				raw := strings.TrimSpace(src[argStart:i])
				arg, w := classifyArg(raw, lines.lineOf(argStart))
				args = append(args, arg)
				warnings = append(warnings, w...)
				argStart = i + 1
			}
		}
		i++
	}
	warnings = append(warnings, model.Warning{
		Kind:   model.WarnUnbalancedParens,
		Line:   lines.lineOf(open),
		Detail: "argument list not closed before end of file",
	})
	return nil, len(src), warnings, false
}

// classifyArg tags a raw argument as a string literal, a number literal, or
// a symbol. A string literal whose escapes cannot be decoded degrades to a
// symbol with a warning so that position stability is preserved.
func classifyArg(raw string, line int) (Argument, []model.Warning) {
	if len(raw) >= 2 && raw[0] == '"' {
		if decoded, ok := decodeStringLiteral(raw); ok {
			return Argument{Kind: ArgString, Str: decoded, Raw: raw}, nil
		}
		if end := stringLiteralEnd(raw); end == len(raw) {
			return Argument{Kind: ArgSymbol, Raw: raw}, []model.Warning{{
				Kind:   model.WarnBadEscape,
				Line:   line,
				Detail: "unrecognized escape sequence in string literal",
			}}
		}
		// string followed by more expression text, e.g. "x".getBytes()
		return Argument{Kind: ArgSymbol, Raw: raw}, nil
	}
	if n, ok := parseNumberLiteral(raw); ok {
		return Argument{Kind: ArgNumber, Num: n, Raw: raw}, nil
	}
	return Argument{Kind: ArgSymbol, Raw: raw}, nil
}

// stringLiteralEnd returns the index just past the closing quote of the
// literal opening at raw[0], or -1 when unterminated.
func stringLiteralEnd(raw string) int {
	for i := 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

// decodeStringLiteral decodes a complete Java string literal including
// escape sequences. ok is false when the token is not exactly one literal
// or contains an escape we do not understand.
func decodeStringLiteral(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || stringLiteralEnd(raw) != len(raw) {
		return "", false
	}
	var out strings.Builder
	for i := 1; i < len(raw)-1; i++ {
		c := raw[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw)-1 {
			return "", false
		}
		switch raw[i] {
		case 'b':
			out.WriteByte('\b')
		case 't':
			out.WriteByte('\t')
		case 'n':
			out.WriteByte('\n')
		case 'f':
			out.WriteByte('\f')
		case 'r':
			out.WriteByte('\r')
		case '"':
			out.WriteByte('"')
		case '\'':
			out.WriteByte('\'')
		case '\\':
			out.WriteByte('\\')
		case 'u':
			if i+5 > len(raw)-1 {
				return "", false
			}
			v, err := strconv.ParseUint(raw[i+1:i+5], 16, 32)
			if err != nil {
				return "", false
			}
			out.WriteRune(rune(v))
			i += 4
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(raw)-1 && j-i < 3 && raw[j] >= '0' && raw[j] <= '7' {
				j++
			}
			v, err := strconv.ParseUint(raw[i:j], 8, 32)
			if err != nil || v > 0o377 {
				return "", false
			}
			out.WriteByte(byte(v))
			i = j - 1
		default:
			return "", false
		}
	}
	return out.String(), true
}

// parseNumberLiteral accepts Java integer and floating literals, including
// hex/binary prefixes, digit underscores, and L/f/d suffixes.
func parseNumberLiteral(raw string) (float64, bool) {
	s := raw
	if s == "" {
		return 0, false
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" || (s[0] != '.' && (s[0] < '0' || s[0] > '9')) {
		return 0, false
	}
	switch s[len(s)-1] {
	case 'l', 'L', 'f', 'F', 'd', 'D':
		s = s[:len(s)-1]
	}
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		if neg {
			return -float64(v), true
		}
		return float64(v), true
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if neg {
			return -v, true
		}
		return v, true
	}
	return 0, false
}

func skipString(src string, i int) int {
	i++ // opening quote
	for i < len(src) {
		switch src[i] {
		case '\\':
			i++
		case '"', '\n':
			return i + 1
		}
		i++
	}
	return i
}

func skipChar(src string, i int) int {
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i++
		case '\'', '\n':
			return i + 1
		}
		i++
	}
	return i
}

func skipSpaces(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r' || src[i] == '\n') {
		i++
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (l lineIndex) lineOf(pos int) int {
	return sort.SearchInts(l, pos+1)
}
