package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// 🔧 Transformer rewrites define() lines so their values are read from an
// environment variable with the original literal as the fallback default.
// It is stateless across lines; counters belong to the caller.
type Transformer struct {
	envFunc       string
	omitDefaults  bool
	secretMarkers []string

	definePat *regexp.Regexp
	lookupPat *regexp.Regexp
}

// 🔩 Option configures a Transformer
type Option func(*Transformer)

// WithEnvFunction overrides the environment-lookup function name (default getenv).
func WithEnvFunction(name string) Option {
	return func(t *Transformer) {
		if name != "" {
			t.envFunc = name
		}
	}
}

// WithSecretPolicy controls whether secret-like constants (names containing
// one of the markers) are emitted without a fallback default.
func WithSecretPolicy(enabled bool, markers []string) Option {
	return func(t *Transformer) {
		t.omitDefaults = enabled
		if len(markers) > 0 {
			t.secretMarkers = markers
		}
	}
}

// DefaultSecretMarkers returns the name substrings treated as secret-like.
func DefaultSecretMarkers() []string {
	return []string{"PASSWORD", "SECRET", "KEY"}
}

// 🏭 New creates a new Transformer
func New(opts ...Option) *Transformer {
	t := &Transformer{
		envFunc:       "getenv",
		omitDefaults:  true,
		secretMarkers: DefaultSecretMarkers(),
	}
	for _, opt := range opts {
		opt(t)
	}
	// RE2 has no backreferences, so both name quotes are captured
	// separately and compared in Classify.
	t.definePat = regexp.MustCompile(`^([ \t]*)define\s*\(\s*(['"])([A-Za-z_][A-Za-z0-9_]*)(['"])\s*,\s*(.*?)\s*\)\s*;(.*)$`)
	t.lookupPat = regexp.MustCompile(`\b` + regexp.QuoteMeta(t.envFunc) + `\s*\(`)
	return t
}

// 🔍 Classify decides what to do with a single line. The line must not carry
// its terminator. Malformed input never errors; anything that is not a
// well-formed single-line define with a literal value passes through.
func (t *Transformer) Classify(line string) Verdict {
	if isCommentLine(line) {
		return Verdict{Tag: TagUnchanged}
	}

	m := t.definePat.FindStringSubmatch(line)
	if m == nil {
		return Verdict{Tag: TagUnchanged}
	}
	if m[2] != m[4] {
		// mismatched quotes around the name, not a declaration we trust
		return Verdict{Tag: TagUnchanged}
	}

	raw := m[5]
	if t.lookupPat.MatchString(raw) {
		return Verdict{Tag: TagAlreadyMigrated}
	}

	stmt := &DefineStatement{
		Leading:  m[1],
		Quote:    m[2][0],
		Name:     m[3],
		RawValue: raw,
		Trailing: m[6],
	}

	kind := ClassifyValue(raw)
	if kind == KindUnrecognized {
		return Verdict{Tag: TagSkipped, Statement: stmt, Kind: kind}
	}
	return Verdict{Tag: TagTransformed, Statement: stmt, Kind: kind}
}

// 📝 Render re-emits a statement with its value routed through the env
// lookup. The original literal is reproduced byte-for-byte as the fallback;
// secret-like names drop the fallback entirely when the policy is on.
func (t *Transformer) Render(stmt *DefineStatement) string {
	q := string(stmt.Quote)
	key := q + stmt.Name + q

	var lookup string
	if t.omitDefaults && t.isSecretLike(stmt.Name) {
		lookup = fmt.Sprintf("%s(%s)", t.envFunc, key)
	} else {
		lookup = fmt.Sprintf("%s(%s, %s)", t.envFunc, key, stmt.RawValue)
	}

	return stmt.Leading + "define(" + key + ", " + lookup + ");" + stmt.Trailing
}

// 🔄 TransformLine classifies and rewrites one line, preserving the line's
// own terminator. Lines that are not transformed come back byte-identical.
func (t *Transformer) TransformLine(line string) (string, LineTag) {
	content, ending := SplitEnding(line)
	verdict := t.Classify(content)
	if verdict.Tag != TagTransformed {
		return line, verdict.Tag
	}
	return t.Render(verdict.Statement) + ending, TagTransformed
}

// isSecretLike reports whether the constant name contains a secret marker.
func (t *Transformer) isSecretLike(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range t.secretMarkers {
		if marker != "" && strings.Contains(upper, strings.ToUpper(marker)) {
			return true
		}
	}
	return false
}

// SplitEnding separates a line from its terminator, tolerating LF, CRLF,
// and a missing final newline.
func SplitEnding(line string) (content, ending string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// isCommentLine reports whether the first non-whitespace characters open a
// comment. Defines inside full-line comments are never touched.
func isCommentLine(line string) bool {
	s := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(s, "//") ||
		strings.HasPrefix(s, "#") ||
		strings.HasPrefix(s, "/*") ||
		strings.HasPrefix(s, "*")
}
