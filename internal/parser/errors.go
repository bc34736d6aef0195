package parser

import (
	"errors"
	"fmt"

	"bennypowers.dev/stylevars/internal/lexer"
)

// ErrParse indicates a token sequence that does not form variable bindings
var ErrParse = errors.New("parse error")

// ParseError reports the token the parser could not place
type ParseError struct {
	Token  lexer.Token
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == lexer.Invalid {
		return fmt.Sprintf("parse error: %s", e.Reason)
	}
	return fmt.Sprintf("parse error at %s: %s", e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a ParseError for tok
func NewParseError(tok lexer.Token, reason string) error {
	return &ParseError{
		Token:  tok,
		Reason: reason,
	}
}
