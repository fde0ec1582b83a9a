// Package token defines the lexical tokens shared by the scanner, parser,
// resolver and interpreter.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// Single-character tokens.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Question
	Colon

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
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
)

var kindNames = [...]string{
	Illegal:      "Illegal",
	EOF:          "Eof",
	LeftParen:    "LeftParen",
	RightParen:   "RightParen",
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	Comma:        "Comma",
	Dot:          "Dot",
	Minus:        "Minus",
	Plus:         "Plus",
	Semicolon:    "Semicolon",
	Slash:        "Slash",
	Star:         "Star",
	Question:     "Question",
	Colon:        "Colon",
	Bang:         "Bang",
	BangEqual:    "BangEqual",
	Equal:        "Equal",
	EqualEqual:   "EqualEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Identifier:   "Identifier",
	String:       "String",
	Number:       "Number",
	And:          "And",
	Class:        "Class",
	Else:         "Else",
	False:        "False",
	Fun:          "Fun",
	For:          "For",
	If:           "If",
	Nil:          "Nil",
	Or:           "Or",
	Print:        "Print",
	Return:       "Return",
	Super:        "Super",
	This:         "This",
	True:         "True",
	Var:          "Var",
	While:        "While",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps reserved words to their kinds. Identifiers found here are
// never classified as Identifier.
var keywords = map[string]Kind{
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

// Lookup returns the keyword kind for ident, or Identifier.
func Lookup(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= And && k <= While
}

// Token is one lexeme scanned from source. Literal holds the decoded payload
// for String (string) and Number (float64) tokens and is nil otherwise.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// New builds a token without a literal payload.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

func (t Token) String() string {
	literal := ""
	switch v := t.Literal.(type) {
	case string:
		literal = v
	case float64:
		literal = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, literal)
}

// Join reconstructs source text from a token sequence by separating lexemes
// with single spaces. Rescanning the result yields the same kind sequence.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Kind == EOF {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

// Kinds projects a token sequence onto its kinds.
func Kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}
