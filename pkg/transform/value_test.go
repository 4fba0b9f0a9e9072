package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ValueKind
	}{
		// booleans
		{name: "true", raw: "true", want: KindBoolean},
		{name: "false", raw: "false", want: KindBoolean},
		{name: "mixed_case_boolean", raw: "True", want: KindBoolean},
		{name: "upper_case_boolean", raw: "FALSE", want: KindBoolean},
		{name: "padded_boolean", raw: "  true  ", want: KindBoolean},

		// integers
		{name: "zero", raw: "0", want: KindInteger},
		{name: "integer", raw: "100", want: KindInteger},
		{name: "negative_integer", raw: "-7", want: KindInteger},
		{name: "explicit_positive_integer", raw: "+42", want: KindInteger},

		// floats
		{name: "float", raw: "3.14", want: KindFloat},
		{name: "negative_float", raw: "-0.5", want: KindFloat},
		{name: "leading_dot_float", raw: ".5", want: KindFloat},
		{name: "trailing_dot_float", raw: "2.", want: KindFloat},
		{name: "exponent_float", raw: "1e5", want: KindFloat},
		{name: "decimal_exponent_float", raw: "1.5e-3", want: KindFloat},

		// strings
		{name: "single_quoted_string", raw: "'secret'", want: KindString},
		{name: "double_quoted_string", raw: `"https://api.example.com"`, want: KindString},
		{name: "empty_string", raw: "''", want: KindString},
		{name: "escaped_same_quote", raw: `'it\'s fine'`, want: KindString},
		{name: "other_quote_inside", raw: `'say "hi"'`, want: KindString},
		{name: "unescaped_same_quote", raw: "'a'b'", want: KindUnrecognized},
		{name: "escaped_closing_quote", raw: `'oops\'`, want: KindUnrecognized},
		{name: "unterminated_string", raw: "'open", want: KindUnrecognized},

		// arrays
		{name: "array_call", raw: "array('a', 'b')", want: KindArray},
		{name: "array_call_with_space", raw: "array ('a')", want: KindArray},
		{name: "empty_array_call", raw: "array()", want: KindArray},
		{name: "short_array", raw: "[1, 2, 3]", want: KindArray},
		{name: "empty_short_array", raw: "[]", want: KindArray},
		{name: "array_with_paren_in_string", raw: "array('f(x)')", want: KindArray},
		{name: "nested_array_call", raw: "array(array(1))", want: KindUnrecognized},
		{name: "nested_short_array", raw: "[1, [2]]", want: KindUnrecognized},
		{name: "unterminated_array", raw: "array('a'", want: KindUnrecognized},

		// everything else stays untouched
		{name: "empty", raw: "", want: KindUnrecognized},
		{name: "whitespace_only", raw: "   ", want: KindUnrecognized},
		{name: "constant_reference", raw: "OTHER_CONSTANT", want: KindUnrecognized},
		{name: "arithmetic_expression", raw: "10 * 1024", want: KindUnrecognized},
		{name: "concatenation", raw: "'a' . 'b'", want: KindUnrecognized},
		{name: "function_call", raw: "dirname(__FILE__)", want: KindUnrecognized},
		{name: "null", raw: "null", want: KindUnrecognized},
		{name: "hex_literal", raw: "0xFF", want: KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyValue(tt.raw))
		})
	}
}

// The fallback literal a transformed line carries must classify back to the
// same kind it had on input, otherwise a second pass could change behavior.
func TestClassifyValue_RoundTrip(t *testing.T) {
	tests := []struct {
		raw  string
		kind ValueKind
	}{
		{raw: "true", kind: KindBoolean},
		{raw: "100", kind: KindInteger},
		{raw: "3.14", kind: KindFloat},
		{raw: "'hello'", kind: KindString},
		{raw: `"world"`, kind: KindString},
		{raw: "array('a', 'b')", kind: KindArray},
	}

	tr := New(WithSecretPolicy(false, nil))
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.kind, ClassifyValue(tt.raw))

			verdict := tr.Classify("define('ROUND_TRIP', " + tt.raw + ");")
			require.Equal(t, TagTransformed, verdict.Tag)
			assert.Equal(t, tt.raw, verdict.Statement.RawValue)
			assert.Equal(t, tt.kind, ClassifyValue(verdict.Statement.RawValue))
		})
	}
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "unrecognized", KindUnrecognized.String())
}
