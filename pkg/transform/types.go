package transform

// 📊 ValueKind classifies the literal on the right-hand side of a define().
type ValueKind int

const (
	KindUnrecognized ValueKind = iota
	KindString
	KindBoolean
	KindInteger
	KindFloat
	KindArray
)

// String returns a string representation of ValueKind
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	default:
		return "unrecognized"
	}
}

// 🏷️ LineTag classifies a line for statistics
type LineTag int

const (
	TagUnchanged       LineTag = iota // no recognizable define on the line
	TagAlreadyMigrated                // define already routed through the env lookup
	TagTransformed                    // define rewritten on output
	TagSkipped                        // define matched but the value did not classify
)

// String returns a string representation of LineTag
func (t LineTag) String() string {
	switch t {
	case TagAlreadyMigrated:
		return "already_migrated"
	case TagTransformed:
		return "transformed"
	case TagSkipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// 📄 DefineStatement is a single-line constant declaration parsed out of a
// source line. It lives only for the duration of that line.
type DefineStatement struct {
	Name     string // constant identifier, matched inside quotes
	RawValue string // unparsed literal text between the comma and closing paren
	Quote    byte   // quote character wrapping Name, reused for the env key
	Leading  string // indentation before the statement, preserved verbatim
	Trailing string // text after the statement on the same line, preserved verbatim
}

// 🎯 Verdict is the outcome of classifying one line
type Verdict struct {
	Tag       LineTag
	Statement *DefineStatement // set for TagTransformed and TagSkipped
	Kind      ValueKind        // set when Statement is set
}
