package lexer

import (
	"errors"
	"fmt"

	"bennypowers.dev/stylevars/internal/dialect"
)

// ErrLex indicates input that matches none of the dialect's rules
var ErrLex = errors.New("lex error")

// sampleLength bounds how much of the unmatched input an error quotes
const sampleLength = 24

// LexError reports the first position no rule could match
type LexError struct {
	Dialect dialect.Dialect
	Offset  int
	Sample  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: unexpected input at offset %d: %q", e.Dialect, e.Offset, e.Sample)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

// NewLexError creates a LexError quoting the input remaining at offset
func NewLexError(d dialect.Dialect, input string, offset int) error {
	rest := input[min(offset, len(input)):]
	if len(rest) > sampleLength {
		rest = rest[:sampleLength]
	}
	return &LexError{
		Dialect: d,
		Offset:  offset,
		Sample:  rest,
	}
}
