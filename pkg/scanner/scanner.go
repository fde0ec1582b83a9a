// Package scanner turns Lox source text into tokens.
package scanner

import (
	"strconv"
	"strings"
	"unicode"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// Scanner walks the source once with a single forward cursor. Lexical errors
// never stop the scan; they are collected and returned with the tokens.
type Scanner struct {
	source  []rune
	tokens  []token.Token
	errs    diag.List
	start   int
	current int
	line    int
}

// New returns a scanner over source.
func New(source string) *Scanner {
	return &Scanner{source: []rune(source), line: 1}
}

// Scan is shorthand for New(source).ScanTokens().
func Scan(source string) ([]token.Token, diag.List) {
	return New(source).ScanTokens()
}

// ScanTokens consumes the whole source and returns the tokens, always
// terminated by an EOF token, plus every lexical error encountered.
func (s *Scanner) ScanTokens() ([]token.Token, diag.List) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", s.line))
	return s.tokens, s.errs
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '?':
		s.addToken(token.Question)
	case ':':
		s.addToken(token.Colon)
	case '!':
		s.addToken(s.either('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.either('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.either('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.either('=', token.GreaterEqual, token.Greater))
	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.stringLiteral()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.errs.Add(diag.Newf(diag.Lexical, s.line, "Unexpected character '%c'.", c))
		}
	}
}

// blockComment skips to the first "*/". Comments do not nest.
func (s *Scanner) blockComment() {
	startLine := s.line
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		if s.advance() == '\n' {
			s.line++
		}
	}
	s.errs.Add(diag.New(diag.Lexical, startLine, "Unterminated block comment."))
}

func (s *Scanner) stringLiteral() {
	startLine := s.line
	var value strings.Builder
	for !s.isAtEnd() && s.peek() != '"' {
		c := s.advance()
		switch c {
		case '\n':
			s.line++
			value.WriteRune(c)
		case '\\':
			if s.isAtEnd() {
				value.WriteRune(c)
				continue
			}
			next := s.advance()
			switch next {
			case '"', '\\':
				value.WriteRune(next)
			case 'n':
				value.WriteRune('\n')
			case 't':
				value.WriteRune('\t')
			default:
				if next == '\n' {
					s.line++
				}
				value.WriteRune(c)
				value.WriteRune(next)
			}
		default:
			value.WriteRune(c)
		}
	}
	if s.isAtEnd() {
		s.errs.Add(diag.New(diag.Lexical, startLine, "Unterminated string."))
		return
	}
	s.advance() // closing quote
	s.addLiteral(token.String, value.String())
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := string(s.source[s.start:s.current])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.errs.Add(diag.Newf(diag.Lexical, s.line, "Invalid number '%s'.", text))
		return
	}
	s.addLiteral(token.Number, value)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.Lookup(string(s.source[s.start:s.current])))
}

func (s *Scanner) either(expected rune, matched, otherwise token.Kind) token.Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  string(s.source[s.start:s.current]),
		Literal: literal,
		Line:    s.line,
	})
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
