package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/loxwalk/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanSingleCharacterTokens(t *testing.T) {
	tokens, diags := Scan("(){},.-+;*/")
	require.Empty(t, diags)

	expected := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.EOF,
	}
	assert.Equal(t, expected, kinds(tokens))
}

func TestScanTwoCharacterOperatorsMaximalMunch(t *testing.T) {
	tokens, diags := Scan("! != = == < <= > >=")
	require.Empty(t, diags)

	expected := []token.Kind{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.EOF,
	}
	assert.Equal(t, expected, kinds(tokens))
}

func TestScanLineCommentIsIgnored(t *testing.T) {
	tokens, diags := Scan("1 // this is a comment\n2")
	require.Empty(t, diags)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
}

func TestScanString(t *testing.T) {
	tokens, diags := Scan(`"hello world"`)
	require.Empty(t, diags)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.String, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScanStringSpanningLines(t *testing.T) {
	tokens, diags := Scan("\"a\nb\"\n1")
	require.Empty(t, diags)
	assert.Equal(t, "a\nb", tokens[0].Literal)
	assert.Equal(t, 3, tokens[1].Line, "the number after the multi-line string should be on line 3")
}

func TestScanUnterminatedStringReportsDiagnostic(t *testing.T) {
	_, diags := Scan(`"unterminated`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Unterminated string.")
}

func TestScanNumber(t *testing.T) {
	tokens, diags := Scan("123 45.67")
	require.Empty(t, diags)
	assert.Equal(t, 123.0, tokens[0].Literal)
	assert.Equal(t, 45.67, tokens[1].Literal)
}

func TestScanNumberTrailingDotIsNotConsumed(t *testing.T) {
	// "123." with no trailing digit: the dot is not part of the
	// number, matching the Lox-family rule that a number can't end in
	// a bare decimal point.
	tokens, diags := Scan("123.")
	require.Empty(t, diags)
	assert.Equal(t, 123.0, tokens[0].Literal)
	assert.Equal(t, token.Dot, tokens[1].Kind)
}

func TestScanIdentifierAndKeyword(t *testing.T) {
	tokens, diags := Scan("foo and bar")
	require.Empty(t, diags)
	assert.Equal(t, token.Identifier, tokens[0].Kind)
	assert.Equal(t, token.And, tokens[1].Kind)
	assert.Equal(t, token.Identifier, tokens[2].Kind)
}

func TestScanUnexpectedCharacterReportsDiagnosticAndContinues(t *testing.T) {
	tokens, diags := Scan("1 @ 2")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Unexpected character: @")

	// Scanning should continue past the bad character.
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Literal)
	assert.Equal(t, 2.0, tokens[1].Literal)
}

func TestScanAlwaysEndsWithEOF(t *testing.T) {
	tokens, _ := Scan("")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Kind)
}

func TestScanTracksLineNumbers(t *testing.T) {
	tokens, diags := Scan("1\n2\n3")
	require.Empty(t, diags)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}

func TestReassembleNonWhitespaceRoundTrips(t *testing.T) {
	tokens, diags := Scan("var  x   =1+2;")
	require.Empty(t, diags)
	assert.Equal(t, "var x = 1 + 2 ;", ReassembleNonWhitespace(tokens))
}
