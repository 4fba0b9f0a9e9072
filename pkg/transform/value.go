package transform

import (
	"regexp"
	"strings"
)

var (
	integerPat = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPat   = regexp.MustCompile(`^[+-]?(([0-9]+\.[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+)$`)
)

// 🔍 ClassifyValue determines which literal kind a raw define() value is.
// Values that do not classify are reported as KindUnrecognized and the
// caller leaves the line alone rather than guessing at a fallback.
func ClassifyValue(raw string) ValueKind {
	v := strings.TrimSpace(raw)
	if v == "" {
		return KindUnrecognized
	}

	switch strings.ToLower(v) {
	case "true", "false":
		return KindBoolean
	}
	if integerPat.MatchString(v) {
		return KindInteger
	}
	if floatPat.MatchString(v) {
		return KindFloat
	}
	if isQuotedString(v) {
		return KindString
	}
	if isArrayLiteral(v) {
		return KindArray
	}
	return KindUnrecognized
}

// isQuotedString reports whether v is one fully quoted literal with no
// unescaped quote of the same kind inside.
func isQuotedString(v string) bool {
	if len(v) < 2 {
		return false
	}
	q := v[0]
	if q != '\'' && q != '"' {
		return false
	}
	if v[len(v)-1] != q {
		return false
	}

	inner := v[1 : len(v)-1]
	for i := 0; i < len(inner); {
		switch inner[i] {
		case '\\':
			if i == len(inner)-1 {
				// would escape the closing quote
				return false
			}
			i += 2
		case q:
			return false
		default:
			i++
		}
	}
	return true
}

// isArrayLiteral matches single-line array() and [] literals with balanced,
// non-nested brackets. Nested arrays stay unrecognized.
func isArrayLiteral(v string) bool {
	var opener, closer byte
	var body string

	switch {
	case strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]"):
		opener, closer = '[', ']'
		body = v[1 : len(v)-1]
	case strings.HasPrefix(strings.ToLower(v), "array"):
		rest := strings.TrimLeft(v[len("array"):], " \t")
		if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
			return false
		}
		opener, closer = '(', ')'
		body = rest[1 : len(rest)-1]
	default:
		return false
	}

	return bracketFree(body, opener, closer)
}

// bracketFree reports whether body contains no further brackets of the
// given kind outside of quoted sections.
func bracketFree(body string, opener, closer byte) bool {
	var quote byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case opener, closer:
			return false
		}
	}
	return quote == 0
}
