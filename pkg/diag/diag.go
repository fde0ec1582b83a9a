// Package diag carries the errors the pipeline reports back to its caller:
// lexical and syntax errors from the front end, resolution errors from the
// static pass and runtime errors from evaluation.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/token"
)

// Category tags an error with the pipeline stage that produced it.
type Category int

const (
	Lexical Category = iota
	Syntax
	Resolution
	Runtime
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case Resolution:
		return "Resolution"
	case Runtime:
		return "Runtime"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Error is a single diagnostic with a 1-based source line.
type Error struct {
	Category Category
	Line     int
	// Lexeme is the offending token's text; empty for lexical errors.
	Lexeme  string
	AtEnd   bool
	Message string
}

// New builds an error that has no token context.
func New(category Category, line int, message string) *Error {
	return &Error{Category: category, Line: line, Message: message}
}

// Newf is New with formatting.
func Newf(category Category, line int, format string, args ...any) *Error {
	return New(category, line, fmt.Sprintf(format, args...))
}

// At builds an error anchored at tok.
func At(category Category, tok token.Token, message string) *Error {
	return &Error{
		Category: category,
		Line:     tok.Line,
		Lexeme:   tok.Lexeme,
		AtEnd:    tok.Kind == token.EOF,
		Message:  message,
	}
}

// Atf is At with formatting.
func Atf(category Category, tok token.Token, format string, args ...any) *Error {
	return At(category, tok, fmt.Sprintf(format, args...))
}

// Where renders the token context, e.g. " at 'foo'" or " at end".
func (e *Error) Where() string {
	switch {
	case e.AtEnd:
		return " at end"
	case e.Lexeme != "":
		return fmt.Sprintf(" at '%s'", e.Lexeme)
	default:
		return ""
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error%s: %s [line %d]", e.Category, e.Where(), e.Message, e.Line)
}

// List aggregates the errors of one execution unit in report order.
type List []*Error

// Add appends err.
func (l *List) Add(err *Error) {
	*l = append(*l, err)
}

// Append appends every error of other.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, err := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Has reports whether any error in the list belongs to category.
func (l List) Has(category Category) bool {
	for _, err := range l {
		if err.Category == category {
			return true
		}
	}
	return false
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l List) Unwrap() []error {
	out := make([]error, len(l))
	for i, err := range l {
		out[i] = err
	}
	return out
}

// CategoryOf returns the category of the first diagnostic found in err.
func CategoryOf(err error) (Category, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d.Category, true
	}
	return 0, false
}
