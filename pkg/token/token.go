// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical category of a Token. The set is closed:
// the scanner never emits a kind outside this list.
type Kind int

const (
	// Single-character tokens.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Star
	Dot
	Comma
	Plus
	Minus
	Semicolon
	Slash

	// One- or two-character tokens.
	Equal
	EqualEqual
	Bang
	BangEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Literals.
	String
	Number
	Identifier

	// Keywords.
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// EOF marks the end of the token stream. It always carries the
	// source's final line number.
	EOF
)

// names holds the canonical spelling for each Kind, used both by
// String() and by the `tokenize` CLI verb's output format.
var names = map[Kind]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Star:         "STAR",
	Dot:          "DOT",
	Comma:        "COMMA",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	String:       "STRING",
	Number:       "NUMBER",
	Identifier:   "IDENTIFIER",
	And:          "AND",
	Class:        "CLASS",
	Else:         "ELSE",
	False:        "FALSE",
	For:          "FOR",
	Fun:          "FUN",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

// String returns the canonical all-caps spelling used in token dumps
// and diagnostics.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// Keywords maps reserved-word lexemes to their Kind. Anything not in
// this table that looks like an identifier scans as Identifier.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is the value type carrying a kind tag, the lexeme's original
// source text, an optional decoded literal, and a 1-based source line.
//
// Literal is populated only for Number (float64) and String (decoded,
// quote-stripped); every other kind carries a nil Literal.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
}

// New constructs a Token. It's a thin wrapper kept mainly so call
// sites read as a single expression rather than a struct literal.
func New(kind Kind, lexeme string, literal interface{}, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders the token the way the `tokenize` CLI verb prints it:
// "<KIND> <lexeme> <literal-or-\"null\">".
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, literalString(t.Literal))
}

func literalString(literal interface{}) string {
	switch v := literal.(type) {
	case nil:
		return "null"
	case float64:
		return formatNumberLiteral(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumberLiteral renders a NUMBER token's literal with at least
// one digit after the decimal point, e.g. 42.0 rather than 42 — this
// is the token-dump format, distinct from the runtime display form
// (see pkg/interpreter's Stringify) which strips a trailing .0.
func formatNumberLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}
